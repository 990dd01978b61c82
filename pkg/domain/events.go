package domain

import (
	"context"
	"time"
)

// ActivationEvent is what a document hands to listeners when a trigger fires.
type ActivationEvent struct {
	Type      string    `json:"type"`
	TriggerID string    `json:"trigger_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NavigationEvent is emitted after the binder asked the host to navigate.
type NavigationEvent struct {
	TriggerID  string    `json:"trigger_id"`
	TargetPath string    `json:"target_path"`
	Timestamp  time.Time `json:"timestamp"`
}

// BindEvent is emitted once per binding during initialization.
// Err is nil when the listener was registered.
type BindEvent struct {
	TriggerID  string    `json:"trigger_id"`
	TargetPath string    `json:"target_path"`
	Err        error     `json:"-"`
	Timestamp  time.Time `json:"timestamp"`
}

// LifecycleHooks defines callbacks for binder observability.
type LifecycleHooks struct {
	OnBind      func(context.Context, *BindEvent)
	OnBindError func(context.Context, *BindEvent)
	OnActivate  func(context.Context, *ActivationEvent)
	OnNavigate  func(context.Context, *NavigationEvent)
}
