package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/navbind/internal/logging"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/ports"
)

// Binder wires triggers of a document to navigation targets.
// It is single-shot: once Initialize has run, the binder is bound for good.
type Binder struct {
	navigator ports.Navigator
	policy    domain.Policy
	eventType string
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	phase    domain.Phase
	bindings []domain.Binding
}

// BinderOption defines a functional option for configuring the Binder.
type BinderOption func(*Binder)

// WithPolicy selects how missing triggers are handled (default: best-effort).
func WithPolicy(p domain.Policy) BinderOption {
	return func(b *Binder) {
		if p != "" {
			b.policy = p
		}
	}
}

// WithEventType sets the activation event listened to (default: "click").
func WithEventType(eventType string) BinderOption {
	return func(b *Binder) {
		if eventType != "" {
			b.eventType = eventType
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) BinderOption {
	return func(b *Binder) {
		b.hooks = hooks
	}
}

// WithLogger sets the structured logger. Missing triggers are reported here.
func WithLogger(logger *slog.Logger) BinderOption {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) BinderOption {
	return func(b *Binder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBinder creates an unbound Binder that navigates through nav.
func NewBinder(nav ports.Navigator, opts ...BinderOption) *Binder {
	b := &Binder{
		navigator: nav,
		policy:    domain.PolicyBestEffort,
		eventType: domain.EventClick,
		logger:    logging.NewNop(),
		now:       time.Now,
		phase:     domain.PhaseUnbound,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Initialize registers one activation listener per binding on doc.
//
// It returns domain.ErrAlreadyBound on any call after the first, and an error
// wrapping domain.ErrInvalidBinding (with nothing registered) when the list is
// malformed. Missing triggers are returned as joined *domain.ElementNotFoundError;
// under PolicyFailFast the first one stops the loop.
func (b *Binder) Initialize(ctx context.Context, doc ports.Document, bindings []domain.Binding) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase == domain.PhaseBound {
		return domain.ErrAlreadyBound
	}
	if doc == nil {
		return fmt.Errorf("initialize: nil document")
	}
	if err := domain.ValidateBindings(bindings); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	var errs []error
	for _, binding := range bindings {
		el, ok := doc.ElementByID(binding.TriggerID)
		if !ok {
			err := &domain.ElementNotFoundError{TriggerID: binding.TriggerID}
			b.logger.Error("trigger not bound", "trigger", binding.TriggerID, "target", binding.TargetPath, "error", err)
			b.emitBind(ctx, binding, err)
			errs = append(errs, err)
			if b.policy == domain.PolicyFailFast {
				break
			}
			continue
		}

		el.AddEventListener(b.eventType, b.listenerFor(binding))
		b.bindings = append(b.bindings, binding)
		b.logger.Debug("trigger bound", "trigger", binding.TriggerID, "target", binding.TargetPath, "event", b.eventType)
		b.emitBind(ctx, binding, nil)
	}

	b.phase = domain.PhaseBound
	return errors.Join(errs...)
}

// listenerFor builds the listener for a single binding. The target is captured
// by value; the listener holds no binder lock while navigating.
func (b *Binder) listenerFor(binding domain.Binding) ports.Listener {
	return func(ctx context.Context, ev domain.ActivationEvent) {
		if b.hooks.OnActivate != nil {
			b.hooks.OnActivate(ctx, &ev)
		}

		b.navigator.Navigate(ctx, binding.TargetPath)
		b.logger.Debug("navigation requested", "trigger", binding.TriggerID, "target", binding.TargetPath)

		if b.hooks.OnNavigate != nil {
			b.hooks.OnNavigate(ctx, &domain.NavigationEvent{
				TriggerID:  binding.TriggerID,
				TargetPath: binding.TargetPath,
				Timestamp:  b.now(),
			})
		}
	}
}

func (b *Binder) emitBind(ctx context.Context, binding domain.Binding, err error) {
	hook := b.hooks.OnBind
	if err != nil {
		hook = b.hooks.OnBindError
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.BindEvent{
		TriggerID:  binding.TriggerID,
		TargetPath: binding.TargetPath,
		Err:        err,
		Timestamp:  b.now(),
	})
}

// Phase reports whether Initialize has run.
func (b *Binder) Phase() domain.Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Bindings returns the bindings whose listener was registered.
func (b *Binder) Bindings() []domain.Binding {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Binding, len(b.bindings))
	copy(out, b.bindings)
	return out
}

// Policy returns the configured missing-trigger policy.
func (b *Binder) Policy() domain.Policy {
	return b.policy
}

// EventType returns the activation event the binder listens to.
func (b *Binder) EventType() string {
	return b.eventType
}
