package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Binding associates a trigger element with a static navigation target.
type Binding struct {
	TriggerID  string `json:"trigger" yaml:"trigger" mapstructure:"trigger"`
	TargetPath string `json:"target" yaml:"target" mapstructure:"target"`
}

// DefaultBindings returns the sign-up and log-in bindings.
func DefaultBindings() []Binding {
	return []Binding{
		{TriggerID: TriggerSignUp, TargetPath: PathSignUp},
		{TriggerID: TriggerLogIn, TargetPath: PathLogIn},
	}
}

// Validate checks the invariants of a single binding.
func (b Binding) Validate() error {
	if b.TriggerID == "" {
		return fmt.Errorf("%w: empty trigger id", ErrInvalidBinding)
	}
	if strings.IndexFunc(b.TriggerID, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: trigger id %q contains whitespace", ErrInvalidBinding, b.TriggerID)
	}
	if !strings.HasPrefix(b.TargetPath, "/") || strings.HasPrefix(b.TargetPath, "//") {
		return fmt.Errorf("%w: target %q for trigger %q is not an absolute path", ErrInvalidBinding, b.TargetPath, b.TriggerID)
	}
	return nil
}

// ValidateBindings checks every binding and rejects duplicate trigger ids.
func ValidateBindings(bindings []Binding) error {
	seen := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		if err := b.Validate(); err != nil {
			return err
		}
		if _, dup := seen[b.TriggerID]; dup {
			return fmt.Errorf("%w: duplicate trigger id %q", ErrInvalidBinding, b.TriggerID)
		}
		seen[b.TriggerID] = struct{}{}
	}
	return nil
}
