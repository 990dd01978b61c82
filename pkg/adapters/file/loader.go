package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/navbind/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config represents the structure of a bindings file (YAML or JSON).
//
//	policy: best-effort
//	event: click
//	bindings:
//	  - trigger: signUp
//	    target: /user/signup
type Config struct {
	Policy   string           `mapstructure:"policy"`
	Event    string           `mapstructure:"event"`
	Bindings []domain.Binding `mapstructure:"bindings"`
}

// Load reads and validates a bindings file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bindings config: %w", err)
	}

	var raw map[string]any
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	cfg, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Decode converts a generic document (as produced by YAML/JSON decoders or a
// larger config tree) into a validated Config. Unknown keys are rejected.
func Decode(raw map[string]any) (*Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid bindings config: %w", err)
	}

	if _, err := domain.ParsePolicy(cfg.Policy); err != nil {
		return nil, err
	}
	if err := domain.ValidateBindings(cfg.Bindings); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PolicyOrDefault returns the configured policy, best-effort when unset.
func (c *Config) PolicyOrDefault() domain.Policy {
	p, _ := domain.ParsePolicy(c.Policy)
	return p
}

// Loader implements ports.BindingLoader over a bindings file.
// The file is read once, on first use, so the policy, event and bindings a
// caller sees always come from the same version of the file.
type Loader struct {
	path string

	once sync.Once
	cfg  *Config
	err  error
}

// NewLoader creates a file-backed loader.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Config returns the decoded file, reading it on the first call.
func (l *Loader) Config() (*Config, error) {
	l.once.Do(func() {
		l.cfg, l.err = Load(l.path)
	})
	return l.cfg, l.err
}

// LoadBindings implements ports.BindingLoader.
func (l *Loader) LoadBindings() ([]domain.Binding, error) {
	cfg, err := l.Config()
	if err != nil {
		return nil, err
	}
	return slices.Clone(cfg.Bindings), nil
}
