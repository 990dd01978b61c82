package navbind

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/navbind/internal/logging"
	"github.com/aretw0/navbind/internal/runtime"
	"github.com/aretw0/navbind/pkg/adapters/memory"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/ports"
)

// Binder is the high-level entry point for the navbind library.
// It wraps the internal runtime and resolves the binding list from a loader.
type Binder struct {
	runtime *runtime.Binder
	loader  ports.BindingLoader

	policy    domain.Policy
	eventType string
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Binder.
type Option func(*Binder)

// WithLoader injects the binding source. Defaults to domain.DefaultBindings.
func WithLoader(l ports.BindingLoader) Option {
	return func(b *Binder) {
		b.loader = l
	}
}

// WithBindings is shorthand for WithLoader over a fixed list.
func WithBindings(bindings ...domain.Binding) Option {
	return WithLoader(memory.NewLoader(bindings...))
}

// WithPolicy selects the missing-trigger policy.
func WithPolicy(p domain.Policy) Option {
	return func(b *Binder) {
		b.policy = p
	}
}

// WithEventType sets the activation event type (default: "click").
func WithEventType(eventType string) Option {
	return func(b *Binder) {
		b.eventType = eventType
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Binder) {
		b.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		b.logger = logger
	}
}

// New creates an unbound Binder that navigates through nav.
func New(nav ports.Navigator, opts ...Option) *Binder {
	b := &Binder{}
	for _, opt := range opts {
		opt(b)
	}

	if b.loader == nil {
		b.loader = memory.NewLoader(domain.DefaultBindings()...)
	}
	// Ensure logger is initialized (so we don't pass nil to runtime)
	if b.logger == nil {
		b.logger = logging.NewNop()
	}

	b.runtime = runtime.NewBinder(nav,
		runtime.WithPolicy(b.policy),
		runtime.WithEventType(b.eventType),
		runtime.WithLifecycleHooks(b.hooks),
		runtime.WithLogger(b.logger),
	)
	return b
}

// Initialize loads the bindings and registers them on doc.
// See runtime.Binder.Initialize for the error contract.
func (b *Binder) Initialize(ctx context.Context, doc ports.Document) error {
	if b.runtime.Phase() == domain.PhaseBound {
		return domain.ErrAlreadyBound
	}
	bindings, err := b.loader.LoadBindings()
	if err != nil {
		return fmt.Errorf("failed to load bindings: %w", err)
	}
	return b.runtime.Initialize(ctx, doc, bindings)
}

// Phase reports whether Initialize has run.
func (b *Binder) Phase() domain.Phase {
	return b.runtime.Phase()
}

// Bindings returns the bindings whose listener was registered.
func (b *Binder) Bindings() []domain.Binding {
	return b.runtime.Bindings()
}

// Policy returns the effective missing-trigger policy.
func (b *Binder) Policy() domain.Policy {
	return b.runtime.Policy()
}

// EventType returns the activation event type listened to.
func (b *Binder) EventType() string {
	return b.runtime.EventType()
}
