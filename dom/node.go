package dom

import (
	"fmt"
	"sort"

	"github.com/npillmayer/manifest/tree"
	"github.com/spf13/cast"
)

// Node is one composed UI element. It wraps a host element, carries the
// settings it has been configured with, and is linked into the node tree of
// its document.
//
// Nodes are created by Document.New.
type Node struct {
	tree       tree.Node[*Node] // links to parent and children nodes; payload is the node itself
	doc        *Document
	id         uint64
	tag        string
	element    Element
	parent     Element // host container the element is mounted into, if any
	rawID      string  // id setting, may carry '#'-separated path components
	selector   string
	settings   map[string]any // original settings, before merging with defaults
	classes    []string       // active classes, in order of activation
	cssClasses map[string]any // named style-sets, own and inherited
	traits     map[string]any // own and inherited
	data       map[string]any
	attributes map[string]any
	styles     map[string]any
	saved      map[string]string // style snapshot
	actions    map[string]Action
	callback   func(*Node) error
	ready      readiness
	selections map[string]uint64 // selector cache: normalized selector → identity
}

// Action is a named operation of a node, configured with setting "actions"
// and triggered with Node.Do.
type Action func(n *Node, args ...any) error

func newNode(doc *Document, id uint64, tag string, el Element) *Node {
	n := &Node{
		doc:        doc,
		id:         id,
		tag:        tag,
		element:    el,
		selections: make(map[string]uint64),
		ready:      readiness{complete: make(map[*Callback]bool)},
	}
	n.tree.Payload = n
	return n
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.selector != "" {
		return fmt.Sprintf("<%s #%d %q>", n.tag, n.id, n.selector)
	}
	return fmt.Sprintf("<%s #%d>", n.tag, n.id)
}

// ID returns the identity of a node, unique within its document.
func (n *Node) ID() uint64 {
	return n.id
}

// Tag returns the tag the host element has been created for.
func (n *Node) Tag() string {
	return n.tag
}

// Document returns the document owning n.
func (n *Node) Document() *Document {
	return n.doc
}

// Element returns the host element of a node.
func (n *Node) Element() Element {
	return n.element
}

// Selector returns the logical name of a node, or "".
func (n *Node) Selector() string {
	return n.selector
}

// ParentNode returns the node n has been appended to, or nil.
// Nodes appended to raw host elements have no parent node.
func (n *Node) ParentNode() *Node {
	if p := n.tree.Parent(); p != nil {
		return p.Payload
	}
	return nil
}

// Children returns the child nodes of n, in order.
func (n *Node) Children() []*Node {
	chs := n.tree.Children()
	children := make([]*Node, len(chs))
	for i, ch := range chs {
		children[i] = ch.Payload
	}
	return children
}

// Settings returns the original settings of n, i.e. the merge of all
// settings n has been created or re-configured with.
func (n *Node) Settings() map[string]any {
	return n.settings
}

// Classes returns the active classes of n.
func (n *Node) Classes() []string {
	return append([]string(nil), n.classes...)
}

// CSSClasses returns the named style-sets of n.
func (n *Node) CSSClasses() map[string]any {
	return n.cssClasses
}

// Traits returns the traits of n, own ones merged with inherited ones.
func (n *Node) Traits() map[string]any {
	return n.traits
}

// Trait returns the value of a single trait.
func (n *Node) Trait(key string) (any, bool) {
	v, ok := n.traits[key]
	return v, ok
}

// Data returns the data mapping of n.
func (n *Node) Data() map[string]any {
	return n.data
}

// Actions returns the names of n's actions, sorted.
func (n *Node) Actions() []string {
	names := make([]string, 0, len(n.actions))
	for name := range n.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Do triggers the action name.
func (n *Node) Do(name string, args ...any) (*Node, error) {
	action, ok := n.actions[name]
	if !ok {
		return n, fmt.Errorf("%w %q for %v", ErrUnknownAction, name, n)
	}
	tracer().Debugf("%v: action %q", n, name)
	return n, action(n, args...)
}

// --- Pass-throughs to the renderer -----------------------------------------

// Text returns the text content of n's element.
func (n *Node) Text() string {
	return n.doc.renderer.Text(n.element)
}

// SetText replaces the content of n's element by text.
func (n *Node) SetText(text string) *Node {
	n.doc.renderer.SetText(n.element, text)
	return n
}

// SetInnerHTML replaces the content of n's element by markup.
func (n *Node) SetInnerHTML(content string) (*Node, error) {
	return n, n.doc.renderer.SetInnerContent(n.element, content)
}

// Attribute returns an attribute of n's element.
func (n *Node) Attribute(key string) (string, bool) {
	return n.doc.renderer.Attribute(n.element, key)
}

// SetAttribute sets an attribute of n's element. A nil value removes the attribute.
func (n *Node) SetAttribute(key string, value any) *Node {
	if value == nil {
		return n.RemoveAttribute(key)
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		tracer().Infof("%v: attribute %q: %v", n, key, err)
		return n
	}
	n.doc.renderer.SetAttribute(n.element, key, s)
	return n
}

// RemoveAttribute removes an attribute of n's element.
func (n *Node) RemoveAttribute(key string) *Node {
	n.doc.renderer.RemoveAttribute(n.element, key)
	return n
}

// Value returns the "value" attribute of n's element.
func (n *Node) Value() string {
	v, _ := n.Attribute("value")
	return v
}

// SetValue sets the "value" attribute of n's element.
func (n *Node) SetValue(value any) *Node {
	return n.SetAttribute("value", value)
}

// Style returns an inline style property of n's element.
func (n *Node) Style(key string) string {
	return n.doc.renderer.StyleProperty(n.element, key)
}

// SetStyle sets an inline style property of n's element.
func (n *Node) SetStyle(key string, value any) *Node {
	s, err := cast.ToStringE(value)
	if err != nil {
		tracer().Infof("%v: style %q: %v", n, key, err)
		return n
	}
	n.doc.renderer.SetStyleProperty(n.element, key, s)
	return n
}

// ClearStyle removes an inline style property of n's element.
func (n *Node) ClearStyle(key string) *Node {
	n.doc.renderer.SetStyleProperty(n.element, key, "")
	return n
}

// SaveStyles takes a snapshot of style properties, to be restored later by
// RestoreStyles. A second snapshot replaces the first one.
func (n *Node) SaveStyles(keys ...string) *Node {
	n.saved = make(map[string]string, len(keys))
	for _, key := range keys {
		n.saved[key] = n.Style(key)
	}
	return n
}

// RestoreStyles restores the style properties of the last snapshot and
// discards it.
func (n *Node) RestoreStyles() *Node {
	keys := make([]string, 0, len(n.saved))
	for key := range n.saved {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		n.doc.renderer.SetStyleProperty(n.element, key, n.saved[key])
	}
	n.saved = nil
	return n
}

// Dims returns the bounding box of n's element.
func (n *Node) Dims() Rect {
	return n.doc.renderer.BoundingBox(n.element)
}

// ScrollTo scrolls the content of n's element to vertical position y.
func (n *Node) ScrollTo(y float64) *Node {
	n.doc.renderer.SetScrollTop(n.element, y)
	return n
}

// ScrollIntoView scrolls n's element into the visible area.
func (n *Node) ScrollIntoView() *Node {
	n.doc.renderer.ScrollIntoView(n.element)
	return n
}

// On registers a handler for host events of n's element.
func (n *Node) On(event string, handler EventHandler) *Node {
	n.doc.renderer.AddEventListener(n.element, event, handler)
	return n
}
