package ports

import "github.com/aretw0/navbind/pkg/domain"

// BindingLoader defines where the static binding list comes from.
// This allows the configuration source (memory, file) to be decoupled.
type BindingLoader interface {
	LoadBindings() ([]domain.Binding, error)
}
