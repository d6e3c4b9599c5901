package htmlrender

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/manifest/css"
	"github.com/npillmayer/manifest/dom"
	"github.com/npillmayer/manifest/dom/style"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNotAnElement is returned for arguments which are not element nodes of
// an HTML tree.
var ErrNotAnElement = errors.New("not an HTML element")

// Renderer is a dom.Renderer for HTML trees.
type Renderer struct {
	scrollTop map[*html.Node]float64
	listeners map[*html.Node]map[string][]dom.EventHandler
	scrolled  []*html.Node
}

// New creates a renderer.
func New() *Renderer {
	return &Renderer{
		scrollTop: make(map[*html.Node]float64),
		listeners: make(map[*html.Node]map[string][]dom.EventHandler),
	}
}

var _ dom.Renderer = &Renderer{}

func element(el dom.Element) *html.Node {
	h, ok := el.(*html.Node)
	if !ok || h == nil {
		panic(fmt.Sprintf("%v: %T", ErrNotAnElement, el))
	}
	return h
}

// CreateElement creates a detached element node.
func (r *Renderer) CreateElement(tag string) (dom.Element, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" || strings.ContainsAny(tag, " \t\n<>/\"'=") {
		return nil, fmt.Errorf("invalid tag %q", tag)
	}
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}, nil
}

// --- Attributes -------------------------------------------------------------

func (r *Renderer) SetAttribute(el dom.Element, key, value string) {
	h := element(el)
	for i := range h.Attr {
		if h.Attr[i].Namespace == "" && h.Attr[i].Key == key {
			h.Attr[i].Val = value
			return
		}
	}
	h.Attr = append(h.Attr, html.Attribute{Key: key, Val: value})
}

func (r *Renderer) RemoveAttribute(el dom.Element, key string) {
	h := element(el)
	for i := range h.Attr {
		if h.Attr[i].Namespace == "" && h.Attr[i].Key == key {
			h.Attr = append(h.Attr[:i], h.Attr[i+1:]...)
			return
		}
	}
}

func (r *Renderer) Attribute(el dom.Element, key string) (string, bool) {
	for _, a := range element(el).Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// --- Classes ----------------------------------------------------------------

func (r *Renderer) classes(el dom.Element) []string {
	v, _ := r.Attribute(el, "class")
	return strings.Fields(v)
}

func (r *Renderer) AddClass(el dom.Element, class string) {
	if r.HasClass(el, class) {
		return
	}
	r.SetAttribute(el, "class", strings.Join(append(r.classes(el), class), " "))
}

func (r *Renderer) RemoveClass(el dom.Element, class string) {
	cl := r.classes(el)
	kept := cl[:0]
	for _, c := range cl {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		r.RemoveAttribute(el, "class")
		return
	}
	r.SetAttribute(el, "class", strings.Join(kept, " "))
}

func (r *Renderer) HasClass(el dom.Element, class string) bool {
	for _, c := range r.classes(el) {
		if c == class {
			return true
		}
	}
	return false
}

// --- Inline styles ----------------------------------------------------------

// SetStyleProperty sets a property in the style attribute. Compound
// properties are stored as their longhands.
func (r *Renderer) SetStyleProperty(el dom.Element, key, value string) {
	decl := parseStyle(r, el)
	if kv, ok := style.ExpandCompound(key, style.Property(value)); ok {
		for _, p := range kv {
			decl = decl.set(p.Key, p.Value.String())
		}
	} else {
		decl = decl.set(key, value)
	}
	if len(decl) == 0 {
		r.RemoveAttribute(el, "style")
		return
	}
	r.SetAttribute(el, "style", decl.String())
}

// StyleProperty returns a property of the style attribute. For compound
// properties, the value is re-assembled from uniform longhands.
func (r *Renderer) StyleProperty(el dom.Element, key string) string {
	decl := parseStyle(r, el)
	if lh := style.Longhands(key); lh != nil {
		v := decl.get(lh[0])
		for _, k := range lh[1:] {
			if decl.get(k) != v {
				return ""
			}
		}
		return v
	}
	return decl.get(key)
}

type declarations []style.KeyValue

func parseStyle(r *Renderer, el dom.Element) declarations {
	v, _ := r.Attribute(el, "style")
	var decl declarations
	for _, part := range strings.Split(v, ";") {
		k, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		decl = decl.set(strings.TrimSpace(k), strings.TrimSpace(val))
	}
	return decl
}

func (decl declarations) get(key string) string {
	for _, kv := range decl {
		if kv.Key == key {
			return kv.Value.String()
		}
	}
	return ""
}

func (decl declarations) set(key, value string) declarations {
	for i, kv := range decl {
		if kv.Key == key {
			if value == "" {
				return append(decl[:i], decl[i+1:]...)
			}
			decl[i].Value = style.Property(value)
			return decl
		}
	}
	if value == "" || key == "" {
		return decl
	}
	return append(decl, style.KeyValue{Key: key, Value: style.Property(value)})
}

func (decl declarations) String() string {
	var b strings.Builder
	for i, kv := range decl {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(kv.Key + ": " + kv.Value.String() + ";")
	}
	return b.String()
}

// --- Content ----------------------------------------------------------------

// SetInnerContent replaces the children of an element by parsed markup.
func (r *Renderer) SetInnerContent(el dom.Element, content string) error {
	h := element(el)
	nodes, err := html.ParseFragment(strings.NewReader(content), h)
	if err != nil {
		return err
	}
	removeChildren(h)
	for _, n := range nodes {
		h.AppendChild(n)
	}
	return nil
}

func (r *Renderer) SetText(el dom.Element, text string) {
	h := element(el)
	removeChildren(h)
	h.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text of all descendants.
func (r *Renderer) Text(el dom.Element) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(h *html.Node) {
		if h.Type == html.TextNode {
			b.WriteString(h.Data)
		}
		for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
			collect(ch)
		}
	}
	collect(element(el))
	return b.String()
}

func removeChildren(h *html.Node) {
	for h.FirstChild != nil {
		h.RemoveChild(h.FirstChild)
	}
}

// --- Structure --------------------------------------------------------------

// AppendChild appends child to parent, moving it if it is mounted elsewhere.
func (r *Renderer) AppendChild(parent, child dom.Element) {
	p, ch := element(parent), element(child)
	if ch.Parent != nil {
		ch.Parent.RemoveChild(ch)
	}
	p.AppendChild(ch)
}

// RemoveChild detaches child, if it is a child of parent.
func (r *Renderer) RemoveChild(parent, child dom.Element) {
	p, ch := element(parent), element(child)
	if ch.Parent == p {
		p.RemoveChild(ch)
	}
}

// --- Geometry and events ----------------------------------------------------

// BoundingBox returns a box with the width and height of the inline
// styles of el, converted to pixels. Extents which are not fixed lengths
// are zero.
func (r *Renderer) BoundingBox(el dom.Element) dom.Rect {
	return dom.Rect{
		Width:  pixels(r.StyleProperty(el, "width")),
		Height: pixels(r.StyleProperty(el, "height")),
	}
}

func pixels(v string) float64 {
	d, err := css.ParseDimen(v)
	if err != nil {
		tracer().Debugf("ignoring extent: %v", err)
		return 0
	}
	px, _ := d.Pixels()
	return px
}

// ScrollIntoView records el as scrolled to. See Scrolled.
func (r *Renderer) ScrollIntoView(el dom.Element) {
	r.scrolled = append(r.scrolled, element(el))
}

// Scrolled returns the elements ScrollIntoView has been called for, in order.
func (r *Renderer) Scrolled() []*html.Node {
	return r.scrolled
}

func (r *Renderer) SetScrollTop(el dom.Element, y float64) {
	r.scrollTop[element(el)] = y
}

// ScrollTop returns the scroll position of el.
func (r *Renderer) ScrollTop(el dom.Element) float64 {
	return r.scrollTop[element(el)]
}

func (r *Renderer) AddEventListener(el dom.Element, event string, handler dom.EventHandler) {
	h := element(el)
	if r.listeners[h] == nil {
		r.listeners[h] = make(map[string][]dom.EventHandler)
	}
	r.listeners[h][event] = append(r.listeners[h][event], handler)
}

// Dispatch delivers an event to the handlers of el. It returns the number
// of handlers called.
func (r *Renderer) Dispatch(el dom.Element, event string, payload any) int {
	handlers := r.listeners[element(el)][event]
	tracer().Debugf("dispatching %q to %d handlers", event, len(handlers))
	for _, handler := range handlers {
		handler(event, payload)
	}
	return len(handlers)
}

// --- Queries and output -----------------------------------------------------

// Query returns the first element at or below el matching a CSS selector.
func Query(el dom.Element, selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	return sel.MatchFirst(element(el)), nil
}

// QueryAll returns all elements at or below el matching a CSS selector.
func QueryAll(el dom.Element, selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	return sel.MatchAll(element(el)), nil
}

// Render writes the HTML of el and its descendants.
func Render(w io.Writer, el dom.Element) error {
	return html.Render(w, element(el))
}
