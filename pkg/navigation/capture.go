// Package navigation provides a context-scoped Navigator for hosts that turn
// one activation into one response (HTTP redirects, MCP tool results).
package navigation

import (
	"context"
	"sync"

	"github.com/aretw0/navbind/pkg/ports"
)

type captureKey struct{}

// Capture records the navigations requested while handling one activation.
// A document is replaced only once, so the last target wins.
type Capture struct {
	mu     sync.Mutex
	target string
	count  int
}

// WithCapture returns a child context carrying a fresh Capture.
func WithCapture(ctx context.Context) (context.Context, *Capture) {
	c := &Capture{}
	return context.WithValue(ctx, captureKey{}, c), c
}

// FromContext returns the Capture carried by ctx, if any.
func FromContext(ctx context.Context) (*Capture, bool) {
	c, ok := ctx.Value(captureKey{}).(*Capture)
	return c, ok
}

func (c *Capture) record(target string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.count++
}

// Target returns the last requested target and whether any navigation happened.
func (c *Capture) Target() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target, c.count > 0
}

// Count returns how many navigations were requested.
func (c *Capture) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Navigator implements ports.Navigator by recording into the Capture found in
// the context. Without one, it forwards to Fallback when set.
type Navigator struct {
	Fallback ports.Navigator
}

// NewNavigator creates a capturing Navigator with an optional fallback.
func NewNavigator(fallback ports.Navigator) *Navigator {
	return &Navigator{Fallback: fallback}
}

// Navigate implements ports.Navigator.
func (n *Navigator) Navigate(ctx context.Context, target string) {
	if c, ok := FromContext(ctx); ok {
		c.record(target)
		return
	}
	if n.Fallback != nil {
		n.Fallback.Navigate(ctx, target)
	}
}
