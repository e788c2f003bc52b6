// Package dom is a small server-side document model built on
// golang.org/x/net/html. It covers what the board widgets need from a
// browser DOM: lookup by id, template cloning, adjacent insertion, text and
// attribute edits, class lists, event listeners with bubbling, and rendering
// back to HTML.
//
// A Document is not safe for concurrent use. Each board owns one document
// and touches it from a single goroutine.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Lookup errors. Both indicate a broken page structure.
var (
	ErrElementNotFound = errors.New("dom: element not found")
	ErrNotTemplate     = errors.New("dom: element is not a template")
	ErrEmptyTemplate   = errors.New("dom: template has no element content")
)

// Document is a parsed HTML page plus the event listeners attached to its
// elements.
type Document struct {
	root      *html.Node
	listeners map[*html.Node]map[string][]EventHandler
}

// Parse reads a complete HTML document or a body fragment.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]EventHandler),
	}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ElementByID returns the live element with the given id. Template content
// is not searched.
func (d *Document) ElementByID(id string) (*Element, error) {
	if n := findByID(d.root, id); n != nil {
		return d.wrap(n), nil
	}
	return nil, fmt.Errorf("%w: #%s", ErrElementNotFound, id)
}

// ImportTemplate deep-copies the first element inside the <template> with the
// given id. The copy is detached; insert it with Element.InsertAdjacent.
func (d *Document) ImportTemplate(id string) (*Element, error) {
	tmpl, err := d.ElementByID(id)
	if err != nil {
		return nil, err
	}
	if tmpl.node.DataAtom != atom.Template {
		return nil, fmt.Errorf("%w: #%s is <%s>", ErrNotTemplate, id, tmpl.node.Data)
	}
	for c := tmpl.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.wrap(cloneNode(c)), nil
		}
	}
	return nil, fmt.Errorf("%w: #%s", ErrEmptyTemplate, id)
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// InnerHTML renders the children of the element with the given id.
func (d *Document) InnerHTML(id string) (string, error) {
	el, err := d.ElementByID(id)
	if err != nil {
		return "", err
	}
	return el.InnerHTML()
}

// OuterHTML renders the element with the given id including itself.
func (d *Document) OuterHTML(id string) (string, error) {
	el, err := d.ElementByID(id)
	if err != nil {
		return "", err
	}
	return el.OuterHTML()
}

// ListenerCount returns how many handlers are attached across the document.
func (d *Document) ListenerCount() int {
	total := 0
	for _, byType := range d.listeners {
		for _, hs := range byType {
			total += len(hs)
		}
	}
	return total
}

func (d *Document) wrap(n *html.Node) *Element {
	return &Element{doc: d, node: n}
}

// forget drops listeners attached to n and its descendants.
func (d *Document) forget(n *html.Node) {
	delete(d.listeners, n)
	for c := range n.Descendants() {
		delete(d.listeners, c)
	}
}

// findByID walks n in document order, skipping template content.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	if n.Type == html.ElementNode && n.DataAtom == atom.Template {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("rendering node: %w", err)
		}
	}
	return buf.String(), nil
}
