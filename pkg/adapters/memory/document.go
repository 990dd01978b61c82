package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/ports"
)

// ErrNoSuchElement is returned by Dispatch when the id resolves to nothing.
var ErrNoSuchElement = ports.ErrNoSuchElement

// Document implements ports.Document in memory.
// Safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	elements map[string]*Element
}

// NewDocument creates a document holding one element per id.
func NewDocument(ids ...string) *Document {
	d := &Document{elements: make(map[string]*Element)}
	for _, id := range ids {
		d.Add(id)
	}
	return d
}

// Add inserts an element, returning the existing one if id is already present.
func (d *Document) Add(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.elements[id]; ok {
		return el
	}
	el := &Element{id: id, listeners: make(map[string][]ports.Listener)}
	d.elements[id] = el
	return el
}

// Remove detaches an element. Its listeners become unreachable.
func (d *Document) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.elements, id)
}

// ElementByID implements ports.Document.
func (d *Document) ElementByID(id string) (ports.Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.elements[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// Dispatch implements ports.Dispatcher.
func (d *Document) Dispatch(ctx context.Context, id, eventType string) (int, error) {
	d.mu.RLock()
	el, ok := d.elements[id]
	d.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("dispatch %s on %q: %w", eventType, id, ErrNoSuchElement)
	}
	return el.fire(ctx, eventType), nil
}

// ListenerCount reports how many listeners id has for eventType.
func (d *Document) ListenerCount(id, eventType string) int {
	d.mu.RLock()
	el, ok := d.elements[id]
	d.mu.RUnlock()
	if !ok {
		return 0
	}
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.listeners[eventType])
}

// Element is an in-memory ports.Element.
type Element struct {
	id        string
	mu        sync.RWMutex
	listeners map[string][]ports.Listener
}

// ID implements ports.Element.
func (e *Element) ID() string { return e.id }

// AddEventListener implements ports.Element.
func (e *Element) AddEventListener(eventType string, l ports.Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[eventType] = append(e.listeners[eventType], l)
}

// fire snapshots the listeners so they run without the element lock held.
func (e *Element) fire(ctx context.Context, eventType string) int {
	e.mu.RLock()
	listeners := append([]ports.Listener(nil), e.listeners[eventType]...)
	e.mu.RUnlock()

	ev := domain.ActivationEvent{Type: eventType, TriggerID: e.id, Timestamp: time.Now()}
	for _, l := range listeners {
		l(ctx, ev)
	}
	return len(listeners)
}
