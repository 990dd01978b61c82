package html

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ActivationFormID is the id of the hidden form that listened-to buttons submit.
const ActivationFormID = "navbind-activate"

// Render writes the page exactly as parsed.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// RenderActivatable writes the page so every listened-to element activates
// without scripting: buttons submit a hidden POST form to pathFor(id), links
// point their href at it, anything else carries it in data-activate.
// The parsed tree is left untouched.
func (d *Document) RenderActivatable(w io.Writer, pathFor func(id string) string) error {
	d.mu.RLock()
	wired := make(map[*html.Node]string, len(d.byID))
	for id, el := range d.byID {
		if el.listened() {
			wired[el.node] = id
		}
	}
	d.mu.RUnlock()

	root := cloneTree(d.root, func(orig, cp *html.Node) {
		id, ok := wired[orig]
		if !ok {
			return
		}
		path := pathFor(id)
		switch cp.DataAtom {
		case atom.Button:
			setAttr(cp, "type", "submit")
			setAttr(cp, "form", ActivationFormID)
			setAttr(cp, "formaction", path)
			setAttr(cp, "formmethod", "post")
		case atom.A:
			setAttr(cp, "href", path)
		default:
			setAttr(cp, "data-activate", path)
		}
	})

	if len(wired) > 0 {
		body := findFirst(root, atom.Body)
		if body == nil {
			return fmt.Errorf("render: page has no body")
		}
		body.AppendChild(&html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Form,
			Data:     "form",
			Attr: []html.Attribute{
				{Key: "id", Val: ActivationFormID},
				{Key: "method", Val: "post"},
				{Key: "hidden", Val: ""},
			},
		})
	}

	return html.Render(w, root)
}

// cloneTree deep-copies n, calling visit on every copied node.
func cloneTree(n *html.Node, visit func(orig, cp *html.Node)) *html.Node {
	cp := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	visit(n, cp)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cp.AppendChild(cloneTree(c, visit))
	}
	return cp
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if isElement(n, a) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}
