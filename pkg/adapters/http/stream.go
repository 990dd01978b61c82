package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/navbind/pkg/domain"
)

// allTopics is the subscription key for clients that did not filter by trigger.
const allTopics = "*"

// StreamManager fans navigation events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // trigger id (or "*") -> set of channels
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

// Subscribe registers a channel for events of triggerID ("" for all).
// The returned function unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(triggerID string) (chan string, func()) {
	if triggerID == "" {
		triggerID = allTopics
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[triggerID]; !ok {
		sm.subscribers[triggerID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[triggerID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[triggerID]; ok {
			if _, live := subs[ch]; !live {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, triggerID)
			}
		}
	}
}

// Broadcast sends msg to subscribers of triggerID and to unfiltered subscribers.
func (sm *StreamManager) Broadcast(triggerID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, topic := range []string{triggerID, allTopics} {
		for ch := range sm.subscribers[topic] {
			select {
			case ch <- msg:
			default:
				// Drop message if channel is full (slow client)
				slog.Warn("SSE: client buffer full, dropping message", "trigger", triggerID)
			}
		}
	}
}

// Hooks returns lifecycle hooks that broadcast every navigation as JSON.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNavigate: func(ctx context.Context, e *domain.NavigationEvent) {
			data, err := json.Marshal(e)
			if err != nil {
				slog.Error("SSE: navigation event encode failed", "error", err)
				return
			}
			sm.Broadcast(e.TriggerID, string(data))
		},
	}
}
