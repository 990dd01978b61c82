package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/navbind"
	"github.com/aretw0/navbind/internal/logging"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signUpOnlyPage = `<!doctype html><html><body><button id="signUp">Sign up</button></body></html>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProject_Defaults(t *testing.T) {
	p, err := loadProject(projectFlags{})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultBindings(), p.bindings)
	assert.Equal(t, domain.PolicyBestEffort, p.policy)
	assert.Equal(t, domain.EventClick, p.eventType)
	assert.Nil(t, p.loader)
	assert.Equal(t, []string{"signUp", "logIn"}, p.page.IDs())
}

func TestLoadProject_ConfigAndPolicyOverride(t *testing.T) {
	cfg := writeFile(t, "bindings.yaml", `
policy: fail-fast
event: activate
bindings:
  - trigger: signUp
    target: /register
`)

	p, err := loadProject(projectFlags{config: cfg})
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyFailFast, p.policy)
	assert.Equal(t, "activate", p.eventType)
	assert.Equal(t, []domain.Binding{{TriggerID: "signUp", TargetPath: "/register"}}, p.bindings)
	require.NotNil(t, p.loader)

	p, err = loadProject(projectFlags{config: cfg, policy: "best-effort"})
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyBestEffort, p.policy)

	_, err = loadProject(projectFlags{policy: "sometimes"})
	assert.Error(t, err)
}

func TestLoadProject_ConfigReadOnce(t *testing.T) {
	cfg := writeFile(t, "bindings.yaml", `
policy: best-effort
bindings:
  - trigger: signUp
    target: /register
`)
	p, err := loadProject(projectFlags{config: cfg})
	require.NoError(t, err)

	// An edit after startup does not leak into the binder.
	require.NoError(t, os.WriteFile(cfg, []byte("policy: fail-fast\nbindings:\n  - trigger: logIn\n    target: /elsewhere\n"), 0o644))

	binder := navbind.New(navigation.NewNavigator(nil), p.binderOptions()...)
	require.NoError(t, binder.Initialize(context.Background(), p.page))
	assert.Equal(t, p.bindings, binder.Bindings())
	assert.Equal(t, domain.PolicyBestEffort, binder.Policy())
}

func TestLoadProject_Errors(t *testing.T) {
	_, err := loadProject(projectFlags{page: filepath.Join(t.TempDir(), "missing.html")})
	assert.Error(t, err)

	_, err = loadProject(projectFlags{config: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestRunValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		p, err := loadProject(projectFlags{})
		require.NoError(t, err)
		binder := navbind.New(navigation.NewNavigator(nil), p.binderOptions()...)

		var out bytes.Buffer
		require.NoError(t, runValidate(ctx, &out, binder, p))
		assert.Contains(t, out.String(), "signUp -> /user/signup")
		assert.Contains(t, out.String(), "logIn -> /user/login")
		assert.Contains(t, out.String(), "Page is valid!")
	})

	t.Run("Missing Trigger", func(t *testing.T) {
		p, err := loadProject(projectFlags{page: writeFile(t, "page.html", signUpOnlyPage)})
		require.NoError(t, err)
		binder := navbind.New(navigation.NewNavigator(nil), p.binderOptions()...)

		var out bytes.Buffer
		err = runValidate(ctx, &out, binder, p)
		assert.ErrorIs(t, err, errValidation)
		assert.Contains(t, out.String(), `trigger "logIn" not found on page`)
		assert.Contains(t, out.String(), "signUp -> /user/signup")
	})
}

func TestRunInspect(t *testing.T) {
	ctx := context.Background()

	var md bytes.Buffer
	require.NoError(t, runInspect(ctx, &md, projectFlags{}, "markdown", true))
	assert.Contains(t, md.String(), "| `signUp` | `/user/signup` |")

	var mermaid bytes.Buffer
	page := writeFile(t, "page.html", signUpOnlyPage)
	require.NoError(t, runInspect(ctx, &mermaid, projectFlags{page: page}, "mermaid", true))
	assert.Contains(t, mermaid.String(), "trigger_signUp -- \"click\" --> target_user_2f_signup")
	assert.Contains(t, mermaid.String(), "class trigger_logIn missing;")

	assert.Error(t, runInspect(ctx, io.Discard, projectFlags{}, "yaml", true))
}

func TestBuildHTTPHandler(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	t.Run("Best Effort Serves Partial Page", func(t *testing.T) {
		p, err := loadProject(projectFlags{page: writeFile(t, "page.html", signUpOnlyPage)})
		require.NoError(t, err)

		handler, binder, err := buildHTTPHandler(ctx, p, logger)
		require.NoError(t, err)
		assert.Len(t, binder.Bindings(), 1)

		req := httptest.NewRequest(http.MethodPost, "/_activate/signUp", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, domain.PathSignUp, rec.Header().Get("Location"))

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), "navbind_navigations_total"))
	})

	t.Run("Fail Fast Refuses Partial Page", func(t *testing.T) {
		p, err := loadProject(projectFlags{page: writeFile(t, "page.html", signUpOnlyPage), policy: "fail-fast"})
		require.NoError(t, err)

		_, _, err = buildHTTPHandler(ctx, p, logger)
		require.Error(t, err)
		assert.Equal(t, []string{domain.TriggerLogIn}, domain.MissingTriggers(err))
	})
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "navbind version "+strings.TrimSpace(navbind.Version)+"\n", out.String())
}
