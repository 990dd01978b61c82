package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/navbind/internal/runtime"
	"github.com/aretw0/navbind/pkg/adapters/memory"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinder_LifecycleHooks(t *testing.T) {
	// Setup
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var bound, failed []string
	var activated []string
	var navigated []domain.NavigationEvent

	hooks := domain.LifecycleHooks{
		OnBind: func(ctx context.Context, e *domain.BindEvent) {
			bound = append(bound, e.TriggerID)
		},
		OnBindError: func(ctx context.Context, e *domain.BindEvent) {
			assert.Error(t, e.Err)
			failed = append(failed, e.TriggerID)
		},
		OnActivate: func(ctx context.Context, e *domain.ActivationEvent) {
			activated = append(activated, e.TriggerID)
		},
		OnNavigate: func(ctx context.Context, e *domain.NavigationEvent) {
			navigated = append(navigated, *e)
		},
	}

	doc := memory.NewDocument("logIn")
	binder := runtime.NewBinder(memory.NewNavigator(),
		runtime.WithLifecycleHooks(hooks),
		runtime.WithClock(func() time.Time { return fixed }),
	)

	// Execution
	ctx := context.Background()
	_ = binder.Initialize(ctx, doc, domain.DefaultBindings())

	assert.Equal(t, []string{"logIn"}, bound)
	assert.Equal(t, []string{"signUp"}, failed)
	assert.Empty(t, activated)

	_, err := doc.Dispatch(ctx, "logIn", domain.EventClick)
	require.NoError(t, err)

	assert.Equal(t, []string{"logIn"}, activated)
	require.Len(t, navigated, 1)
	assert.Equal(t, domain.NavigationEvent{TriggerID: "logIn", TargetPath: "/user/login", Timestamp: fixed}, navigated[0])
}

type ctxKey struct{}

func TestBinder_ListenerPassesDispatchContext(t *testing.T) {
	doc := memory.NewDocument("signUp")
	var seen any
	nav := ports.NavigatorFunc(func(ctx context.Context, target string) {
		seen = ctx.Value(ctxKey{})
	})
	binder := runtime.NewBinder(nav)
	require.NoError(t, binder.Initialize(context.Background(), doc, domain.DefaultBindings()[:1]))

	ctx := context.WithValue(context.Background(), ctxKey{}, "request-42")
	_, _ = doc.Dispatch(ctx, "signUp", domain.EventClick)

	assert.Equal(t, "request-42", seen)
}
