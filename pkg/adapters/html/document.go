// Package html hosts bindings on a parsed HTML page.
//
// The document is parsed once with golang.org/x/net/html. Elements carrying an
// id attribute become ports.Element handles; listeners live beside the tree and
// are fired through Dispatch, typically by an HTTP activation endpoint.
package html

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/ports"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoSuchElement is returned by Dispatch when the id resolves to nothing.
var ErrNoSuchElement = ports.ErrNoSuchElement

// Document implements ports.Document over a parsed HTML tree.
// The tree is never mutated after parsing; safe for concurrent use.
type Document struct {
	root *html.Node
	ids  []string

	mu   sync.RWMutex
	byID map[string]*Element
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	d := &Document{root: root, byID: make(map[string]*Element)}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id, ok := attr(n, "id"); ok && id != "" {
				// getElementById semantics: first in document order wins
				if _, seen := d.byID[id]; !seen {
					d.byID[id] = &Element{id: id, node: n, listeners: make(map[string][]ports.Listener)}
					d.ids = append(d.ids, id)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return d, nil
}

// ParseFile reads an HTML page from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// ElementByID implements ports.Document.
func (d *Document) ElementByID(id string) (ports.Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// IDs returns every element id in document order.
func (d *Document) IDs() []string {
	return append([]string(nil), d.ids...)
}

// Dispatch implements ports.Dispatcher.
func (d *Document) Dispatch(ctx context.Context, id, eventType string) (int, error) {
	d.mu.RLock()
	el, ok := d.byID[id]
	d.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("dispatch %s on %q: %w", eventType, id, ErrNoSuchElement)
	}
	return el.fire(ctx, eventType), nil
}

// ListenerCount reports how many listeners id has for eventType.
func (d *Document) ListenerCount(id, eventType string) int {
	d.mu.RLock()
	el, ok := d.byID[id]
	d.mu.RUnlock()
	if !ok {
		return 0
	}
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.listeners[eventType])
}

// Element is a ports.Element backed by an html.Node.
type Element struct {
	id   string
	node *html.Node

	mu        sync.RWMutex
	listeners map[string][]ports.Listener
}

// ID implements ports.Element.
func (e *Element) ID() string { return e.id }

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.node.Data }

// AddEventListener implements ports.Element.
func (e *Element) AddEventListener(eventType string, l ports.Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[eventType] = append(e.listeners[eventType], l)
}

func (e *Element) listened() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, ls := range e.listeners {
		if len(ls) > 0 {
			return true
		}
	}
	return false
}

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

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n.Type == html.ElementNode && n.DataAtom == a
}
