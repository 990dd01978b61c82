package ports

import (
	"context"
	"errors"

	"github.com/aretw0/navbind/pkg/domain"
)

// Listener is invoked by a document when an element receives an event it listens to.
// The context is the one the host dispatched the event with.
type Listener func(ctx context.Context, ev domain.ActivationEvent)

// Document is the query side of the host document.
type Document interface {
	// ElementByID returns the element identified by id, if any.
	// When several elements share an id, the first in document order wins.
	ElementByID(id string) (Element, bool)
}

// Element is a handle on one interactive element of a Document.
type Element interface {
	ID() string

	// AddEventListener appends l to the listeners for eventType.
	// Listeners are never replaced or removed; each registration fires independently.
	AddEventListener(eventType string, l Listener)
}

// Dispatcher is implemented by documents whose host can fire events directly
// (tests, request/response hosts).
type Dispatcher interface {
	// Dispatch delivers an event of eventType to the element identified by id
	// and returns how many listeners were invoked.
	Dispatch(ctx context.Context, id, eventType string) (int, error)
}

// ErrNoSuchElement is returned by Dispatch when the id resolves to nothing.
var ErrNoSuchElement = errors.New("no such element")
