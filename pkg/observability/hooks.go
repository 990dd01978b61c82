package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/navbind/pkg/domain"
)

// Compose fans each event out to every non-nil hook, in order.
func Compose(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBind: func(ctx context.Context, e *domain.BindEvent) {
			for _, h := range all {
				if h.OnBind != nil {
					h.OnBind(ctx, e)
				}
			}
		},
		OnBindError: func(ctx context.Context, e *domain.BindEvent) {
			for _, h := range all {
				if h.OnBindError != nil {
					h.OnBindError(ctx, e)
				}
			}
		},
		OnActivate: func(ctx context.Context, e *domain.ActivationEvent) {
			for _, h := range all {
				if h.OnActivate != nil {
					h.OnActivate(ctx, e)
				}
			}
		},
		OnNavigate: func(ctx context.Context, e *domain.NavigationEvent) {
			for _, h := range all {
				if h.OnNavigate != nil {
					h.OnNavigate(ctx, e)
				}
			}
		},
	}
}

// LoggingHooks logs every lifecycle event at info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBind: func(ctx context.Context, e *domain.BindEvent) {
			logger.InfoContext(ctx, "bind", "trigger", e.TriggerID, "target", e.TargetPath)
		},
		OnBindError: func(ctx context.Context, e *domain.BindEvent) {
			logger.WarnContext(ctx, "bind_error", "trigger", e.TriggerID, "error", e.Err)
		},
		OnActivate: func(ctx context.Context, e *domain.ActivationEvent) {
			logger.InfoContext(ctx, "activate", "trigger", e.TriggerID, "type", e.Type)
		},
		OnNavigate: func(ctx context.Context, e *domain.NavigationEvent) {
			logger.InfoContext(ctx, "navigate", "trigger", e.TriggerID, "target", e.TargetPath)
		},
	}
}
