package memory

import (
	"context"
	"sync"
)

// Navigator implements ports.Navigator by recording every requested target.
// Safe for concurrent use.
type Navigator struct {
	mu      sync.Mutex
	history []string
}

// NewNavigator creates an empty recording navigator.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Navigate records target.
func (n *Navigator) Navigate(ctx context.Context, target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, target)
}

// History returns every target in request order.
func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.history...)
}

// Last returns the most recent target, or "" if none.
func (n *Navigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return ""
	}
	return n.history[len(n.history)-1]
}

// Count returns the number of navigations requested.
func (n *Navigator) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.history)
}

// Reset clears the history.
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = nil
}
