package ports

import "context"

// Navigator performs a full navigation to target, discarding the current document.
// From the binder's point of view navigation cannot fail: reachability of the
// target is the host's concern.
type Navigator interface {
	Navigate(ctx context.Context, target string)
}

// NavigatorFunc adapts an ordinary function to Navigator.
type NavigatorFunc func(ctx context.Context, target string)

// Navigate calls f(ctx, target).
func (f NavigatorFunc) Navigate(ctx context.Context, target string) {
	f(ctx, target)
}
