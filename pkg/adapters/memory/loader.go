package memory

import (
	"fmt"

	"github.com/aretw0/navbind/pkg/domain"
)

// Loader implements ports.BindingLoader with a fixed list.
type Loader struct {
	bindings []domain.Binding
}

// NewLoader creates a Loader serving bindings as given.
// Invalid lists surface at Initialize time, like any other source.
func NewLoader(bindings ...domain.Binding) *Loader {
	data := make([]domain.Binding, len(bindings))
	copy(data, bindings)
	return &Loader{bindings: data}
}

// NewFromBindings creates a Loader after validating the list.
// This catches typos early, improving DX for tests and embedding.
func NewFromBindings(bindings ...domain.Binding) (*Loader, error) {
	if err := domain.ValidateBindings(bindings); err != nil {
		return nil, fmt.Errorf("memory loader: %w", err)
	}
	return NewLoader(bindings...), nil
}

// LoadBindings returns a copy of the configured list.
func (l *Loader) LoadBindings() ([]domain.Binding, error) {
	out := make([]domain.Binding, len(l.bindings))
	copy(out, l.bindings)
	return out, nil
}
