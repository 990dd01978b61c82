package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/navbind"
	navhtml "github.com/aretw0/navbind/pkg/adapters/html"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/navigation"
	"github.com/aretw0/navbind/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	doc, err := navhtml.Parse(strings.NewReader(`<html><body>
		<button id="signUp">Sign up</button>
		<span id="note">unbound</span>
	</body></html>`))
	require.NoError(t, err)

	binder := navbind.New(navigation.NewNavigator(nil))
	err = binder.Initialize(context.Background(), doc)
	// logIn is missing from this page.
	require.Equal(t, []string{domain.TriggerLogIn}, domain.MissingTriggers(err))

	return NewServer(doc, binder)
}

func TestHandleListBindings(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleListBindings(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseBound, resp.Phase)
	assert.Equal(t, domain.EventClick, resp.Event)
	assert.Equal(t, []domain.Binding{{TriggerID: domain.TriggerSignUp, TargetPath: domain.PathSignUp}}, resp.Bindings)
}

func TestHandleActivate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	t.Run("Navigates", func(t *testing.T) {
		resp, err := s.handleActivate(ctx, mcp.CallToolRequest{}, ActivateArgs{TriggerID: domain.TriggerSignUp})
		require.NoError(t, err)
		assert.Equal(t, ActivateResponse{TriggerID: domain.TriggerSignUp, Navigated: true, Target: domain.PathSignUp}, resp)
	})

	t.Run("Element Without Binding", func(t *testing.T) {
		resp, err := s.handleActivate(ctx, mcp.CallToolRequest{}, ActivateArgs{TriggerID: "note"})
		require.NoError(t, err)
		assert.False(t, resp.Navigated)
		assert.Empty(t, resp.Target)
	})

	t.Run("Unknown Trigger", func(t *testing.T) {
		_, err := s.handleActivate(ctx, mcp.CallToolRequest{}, ActivateArgs{TriggerID: domain.TriggerLogIn})
		assert.ErrorIs(t, err, ports.ErrNoSuchElement)
	})

	t.Run("Missing Argument", func(t *testing.T) {
		_, err := s.handleActivate(ctx, mcp.CallToolRequest{}, ActivateArgs{})
		assert.Error(t, err)
	})
}

func TestActivateTool_ViaHandler(t *testing.T) {
	s := newTestServer(t)

	handler := mcp.NewStructuredToolHandler(s.handleActivate)
	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "activate_trigger",
			Arguments: map[string]any{"trigger_id": domain.TriggerSignUp},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, ActivateResponse{TriggerID: domain.TriggerSignUp, Navigated: true, Target: domain.PathSignUp}, result.StructuredContent)
}

func TestHandleReadPage(t *testing.T) {
	s := newTestServer(t)

	contents, err := s.handleReadPage(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, PageURI, text.URI)
	assert.Contains(t, text.Text, `<button id="signUp">Sign up</button>`)
}
