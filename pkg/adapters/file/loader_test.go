package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/navbind/pkg/adapters/file"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
policy: fail-fast
event: click
bindings:
  - trigger: signUp
    target: /user/signup
  - trigger: logIn
    target: /user/login
`

const jsonConfig = `{
  "bindings": [
    {"trigger": "signUp", "target": "/user/signup"},
    {"trigger": "logIn", "target": "/user/login"}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := file.Load(writeFile(t, "bindings.yaml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, domain.PolicyFailFast, cfg.PolicyOrDefault())
	assert.Equal(t, "click", cfg.Event)
	assert.Equal(t, domain.DefaultBindings(), cfg.Bindings)
}

func TestLoad_JSON(t *testing.T) {
	cfg, err := file.Load(writeFile(t, "bindings.json", jsonConfig))
	require.NoError(t, err)

	assert.Equal(t, domain.PolicyBestEffort, cfg.PolicyOrDefault())
	assert.Equal(t, domain.DefaultBindings(), cfg.Bindings)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad yaml", "b.yaml", "bindings: [\n"},
		{"bad json", "b.json", "{"},
		{"unknown key", "b.yaml", "bindings: []\ntimeout: 3s\n"},
		{"unknown binding key", "b.yaml", "bindings:\n  - trigger: a\n    target: /a\n    method: post\n"},
		{"bad policy", "b.yaml", "policy: sometimes\nbindings: []\n"},
		{"relative target", "b.yaml", "bindings:\n  - trigger: a\n    target: a\n"},
		{"duplicate trigger", "b.yaml", "bindings:\n  - trigger: a\n    target: /a\n  - trigger: a\n    target: /b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := file.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err, "missing file is an error")
}

func TestDecode_FromConfigTree(t *testing.T) {
	cfg, err := file.Decode(map[string]any{
		"bindings": []any{
			map[string]any{"trigger": "logIn", "target": "/user/login"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Binding{{TriggerID: "logIn", TargetPath: "/user/login"}}, cfg.Bindings)
}

func TestFileLoader_Contract(t *testing.T) {
	loader := file.NewLoader(writeFile(t, "bindings.yml", yamlConfig))
	ports.RunBindingLoaderContract(t, loader, domain.DefaultBindings())
}

func TestFileLoader_ReadsOnce(t *testing.T) {
	path := writeFile(t, "bindings.yaml", yamlConfig)
	loader := file.NewLoader(path)

	cfg, err := loader.Config()
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyFailFast, cfg.PolicyOrDefault())

	require.NoError(t, os.WriteFile(path, []byte("bindings:\n  - trigger: other\n    target: /other\n"), 0o644))

	got, err := loader.LoadBindings()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBindings(), got)
}

func TestFileLoader_MissingFile(t *testing.T) {
	loader := file.NewLoader(filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := loader.LoadBindings()
	assert.Error(t, err)
	_, err = loader.Config()
	assert.Error(t, err)
}
