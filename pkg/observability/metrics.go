package observability

import (
	"context"

	"github.com/aretw0/navbind/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the binder's prometheus collectors.
type Metrics struct {
	Bindings    *prometheus.CounterVec
	Activations *prometheus.CounterVec
	Navigations *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered (useful in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Bindings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navbind_bindings_total",
				Help: "Bindings attempted at initialization, by result",
			},
			[]string{"trigger_id", "result"},
		),
		Activations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navbind_activations_total",
				Help: "Activation events received by bound triggers",
			},
			[]string{"trigger_id"},
		),
		Navigations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navbind_navigations_total",
				Help: "Navigations requested from the host",
			},
			[]string{"target"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Bindings, m.Activations, m.Navigations)
	}
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBind: func(ctx context.Context, e *domain.BindEvent) {
			m.Bindings.WithLabelValues(e.TriggerID, "bound").Inc()
		},
		OnBindError: func(ctx context.Context, e *domain.BindEvent) {
			m.Bindings.WithLabelValues(e.TriggerID, "not_found").Inc()
		},
		OnActivate: func(ctx context.Context, e *domain.ActivationEvent) {
			m.Activations.WithLabelValues(e.TriggerID).Inc()
		},
		OnNavigate: func(ctx context.Context, e *domain.NavigationEvent) {
			m.Navigations.WithLabelValues(e.TargetPath).Inc()
		},
	}
}
