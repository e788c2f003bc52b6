package dom

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InsertPosition says where Element.InsertAdjacent places the new child.
type InsertPosition string

const (
	// AfterBegin inserts before the host's first child.
	AfterBegin InsertPosition = "afterbegin"
	// BeforeEnd inserts after the host's last child.
	BeforeEnd InsertPosition = "beforeend"
)

// Element is a handle on one element node of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.node.Data }

// ID returns the id attribute.
func (e *Element) ID() string { return attr(e.node, "id") }

// SetID sets the id attribute.
func (e *Element) SetID(id string) { e.SetAttr("id", id) }

// Attr returns the value of the attribute and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr adds or replaces an attribute.
func (e *Element) SetAttr(key, val string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(key string) {
	e.node.Attr = slices.DeleteFunc(e.node.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

// Parent returns the parent element, or nil for a detached or root element.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// QuerySelector returns the first descendant matching sel, or nil.
// Supported selectors are "#id", ".class" and a bare tag name.
func (e *Element) QuerySelector(sel string) *Element {
	match := selectorMatcher(sel)
	for n := range e.node.Descendants() {
		if n.Type == html.ElementNode && match(n) {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// MustQuerySelector is QuerySelector for selectors guaranteed by a template.
// A missing match is reported as ErrElementNotFound.
func (e *Element) MustQuerySelector(sel string) (*Element, error) {
	if found := e.QuerySelector(sel); found != nil {
		return found, nil
	}
	return nil, fmt.Errorf("%w: %s inside <%s id=%q>", ErrElementNotFound, sel, e.Tag(), e.ID())
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// TextContent concatenates every descendant text node.
func (e *Element) TextContent() string {
	var b strings.Builder
	for n := range e.node.Descendants() {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	}
	return b.String()
}

// SetTextContent replaces every child with a single text node.
func (e *Element) SetTextContent(text string) {
	e.ClearChildren()
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// ClearChildren removes every child along with its event listeners.
func (e *Element) ClearChildren() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.doc.forget(c)
		e.node.RemoveChild(c)
		c = next
	}
}

// InsertAdjacent inserts a detached child at pos relative to e's children.
func (e *Element) InsertAdjacent(pos InsertPosition, child *Element) error {
	if child.node.Parent != nil {
		return fmt.Errorf("dom: <%s> is already attached", child.Tag())
	}
	switch pos {
	case AfterBegin:
		e.node.InsertBefore(child.node, e.node.FirstChild)
	case BeforeEnd:
		e.node.AppendChild(child.node)
	default:
		return fmt.Errorf("dom: unsupported insert position %q", pos)
	}
	return nil
}

// Value returns the current value of a form control. Textareas keep their
// value as text content; other controls use the value attribute.
func (e *Element) Value() string {
	if e.node.DataAtom == atom.Textarea {
		return e.TextContent()
	}
	v, _ := e.Attr("value")
	return v
}

// SetValue sets the value of a form control.
func (e *Element) SetValue(v string) {
	if e.node.DataAtom == atom.Textarea {
		e.SetTextContent(v)
		return
	}
	e.SetAttr("value", v)
}

// HasClass reports whether the class attribute contains name.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes(), name)
}

// AddClass adds name to the class attribute if missing.
func (e *Element) AddClass(name string) {
	classes := e.classes()
	if slices.Contains(classes, name) {
		return
	}
	e.SetAttr("class", strings.Join(append(classes, name), " "))
}

// RemoveClass removes name from the class attribute.
func (e *Element) RemoveClass(name string) {
	classes := e.classes()
	if !slices.Contains(classes, name) {
		return
	}
	classes = slices.DeleteFunc(classes, func(c string) bool { return c == name })
	if len(classes) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(classes, " "))
}

// AddEventListener attaches h for events of the given type that reach e,
// either as the target or while bubbling.
func (e *Element) AddEventListener(eventType string, h EventHandler) {
	byType, ok := e.doc.listeners[e.node]
	if !ok {
		byType = make(map[string][]EventHandler)
		e.doc.listeners[e.node] = byType
	}
	byType[eventType] = append(byType[eventType], h)
}

// InnerHTML renders e's children.
func (e *Element) InnerHTML() (string, error) {
	return renderChildren(e.node)
}

// OuterHTML renders e including its own tag.
func (e *Element) OuterHTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.node); err != nil {
		return "", fmt.Errorf("rendering <%s>: %w", e.Tag(), err)
	}
	return buf.String(), nil
}

func (e *Element) classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

func selectorMatcher(sel string) func(*html.Node) bool {
	switch {
	case strings.HasPrefix(sel, "#"):
		id := sel[1:]
		return func(n *html.Node) bool { return attr(n, "id") == id }
	case strings.HasPrefix(sel, "."):
		class := sel[1:]
		return func(n *html.Node) bool { return slices.Contains(strings.Fields(attr(n, "class")), class) }
	default:
		tag := strings.ToLower(sel)
		return func(n *html.Node) bool { return n.Data == tag }
	}
}
