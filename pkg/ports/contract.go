package ports

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aretw0/navbind/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DocumentFixture is a document under test together with the host capability
// to fire events on it.
type DocumentFixture struct {
	Document   Document
	Dispatcher Dispatcher
}

// DocumentFactory builds a fresh fixture whose document contains exactly one
// element per id.
type DocumentFactory func(t *testing.T, ids ...string) DocumentFixture

// RunDocumentContract runs a suite of tests to verify that a Document
// implementation adheres to the defined interface contract.
func RunDocumentContract(t *testing.T, newFixture DocumentFactory) {
	ctx := context.Background()

	t.Run("Lookup", func(t *testing.T) {
		fx := newFixture(t, "signUp", "logIn")

		el, ok := fx.Document.ElementByID("signUp")
		require.True(t, ok, "existing element should resolve")
		assert.Equal(t, "signUp", el.ID())

		_, ok = fx.Document.ElementByID("missing")
		assert.False(t, ok, "unknown id should not resolve")
	})

	t.Run("Listener Receives Event", func(t *testing.T) {
		fx := newFixture(t, "signUp")
		el, ok := fx.Document.ElementByID("signUp")
		require.True(t, ok)

		var got []domain.ActivationEvent
		el.AddEventListener(domain.EventClick, func(ctx context.Context, ev domain.ActivationEvent) {
			got = append(got, ev)
		})

		n, err := fx.Dispatcher.Dispatch(ctx, "signUp", domain.EventClick)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		require.Len(t, got, 1)
		assert.Equal(t, domain.EventClick, got[0].Type)
		assert.Equal(t, "signUp", got[0].TriggerID)
	})

	t.Run("Event Type Filtering", func(t *testing.T) {
		fx := newFixture(t, "logIn")
		el, _ := fx.Document.ElementByID("logIn")

		calls := 0
		el.AddEventListener(domain.EventClick, func(context.Context, domain.ActivationEvent) { calls++ })

		n, err := fx.Dispatcher.Dispatch(ctx, "logIn", "keydown")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, 0, calls)
	})

	t.Run("Listeners Fire Independently In Order", func(t *testing.T) {
		fx := newFixture(t, "logIn")
		el, _ := fx.Document.ElementByID("logIn")

		var order []int
		el.AddEventListener(domain.EventClick, func(context.Context, domain.ActivationEvent) { order = append(order, 1) })
		el.AddEventListener(domain.EventClick, func(context.Context, domain.ActivationEvent) { order = append(order, 2) })

		n, err := fx.Dispatcher.Dispatch(ctx, "logIn", domain.EventClick)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("Dispatch To Missing Element", func(t *testing.T) {
		fx := newFixture(t, "signUp")

		n, err := fx.Dispatcher.Dispatch(ctx, "missing", domain.EventClick)
		assert.ErrorIs(t, err, ErrNoSuchElement)
		assert.Equal(t, 0, n)
	})

	t.Run("Concurrent Dispatch", func(t *testing.T) {
		fx := newFixture(t, "signUp")
		el, _ := fx.Document.ElementByID("signUp")

		var calls atomic.Int64
		el.AddEventListener(domain.EventClick, func(context.Context, domain.ActivationEvent) { calls.Add(1) })

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = fx.Dispatcher.Dispatch(ctx, "signUp", domain.EventClick)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(50), calls.Load())
	})
}

// RunBindingLoaderContract verifies that a BindingLoader returns a valid list
// matching want, and that callers cannot mutate the loader through the result.
func RunBindingLoaderContract(t *testing.T, loader BindingLoader, want []domain.Binding) {
	t.Run("Load", func(t *testing.T) {
		got, err := loader.LoadBindings()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, domain.ValidateBindings(got))
	})

	t.Run("Result Is A Copy", func(t *testing.T) {
		first, err := loader.LoadBindings()
		require.NoError(t, err)
		if len(first) == 0 {
			t.Skip("empty binding list")
		}
		first[0].TargetPath = "/mutated"

		second, err := loader.LoadBindings()
		require.NoError(t, err)
		assert.Equal(t, want, second)
	})
}
