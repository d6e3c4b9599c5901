package dom

import (
	"fmt"
	"strings"
)

// fakeRenderer records calls and keeps just enough element state to check
// the effects of nodes on the host tree.
type fakeRenderer struct {
	calls []string
}

type fakeElement struct {
	tag      string
	attrs    map[string]string
	classes  []string
	styles   map[string]string
	text     string
	parent   *fakeElement
	children []*fakeElement
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{}
}

func (r *fakeRenderer) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *fakeRenderer) called(call string) bool {
	for _, c := range r.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (r *fakeRenderer) reset() {
	r.calls = nil
}

func fake(el Element) *fakeElement {
	return el.(*fakeElement)
}

func (r *fakeRenderer) CreateElement(tag string) (Element, error) {
	if tag == "" {
		return nil, fmt.Errorf("empty tag")
	}
	r.record("create %s", tag)
	return &fakeElement{tag: tag, attrs: map[string]string{}, styles: map[string]string{}}, nil
}

func (r *fakeRenderer) SetAttribute(el Element, key, value string) {
	r.record("attr %s=%s", key, value)
	fake(el).attrs[key] = value
}

func (r *fakeRenderer) RemoveAttribute(el Element, key string) {
	r.record("remove-attr %s", key)
	delete(fake(el).attrs, key)
}

func (r *fakeRenderer) Attribute(el Element, key string) (string, bool) {
	v, ok := fake(el).attrs[key]
	return v, ok
}

func (r *fakeRenderer) AddClass(el Element, class string) {
	r.record("add-class %s", class)
	if !r.HasClass(el, class) {
		fake(el).classes = append(fake(el).classes, class)
	}
}

func (r *fakeRenderer) RemoveClass(el Element, class string) {
	r.record("remove-class %s", class)
	f := fake(el)
	for i, c := range f.classes {
		if c == class {
			f.classes = append(f.classes[:i], f.classes[i+1:]...)
			return
		}
	}
}

func (r *fakeRenderer) HasClass(el Element, class string) bool {
	for _, c := range fake(el).classes {
		if c == class {
			return true
		}
	}
	return false
}

func (r *fakeRenderer) SetStyleProperty(el Element, key, value string) {
	r.record("style %s=%s", key, value)
	if value == "" {
		delete(fake(el).styles, key)
		return
	}
	fake(el).styles[key] = value
}

func (r *fakeRenderer) StyleProperty(el Element, key string) string {
	return fake(el).styles[key]
}

func (r *fakeRenderer) SetInnerContent(el Element, content string) error {
	r.record("inner %s", content)
	f := fake(el)
	for _, ch := range f.children {
		ch.parent = nil
	}
	f.children = nil
	f.text = content
	return nil
}

func (r *fakeRenderer) SetText(el Element, text string) {
	r.record("text %s", text)
	fake(el).text = text
}

func (r *fakeRenderer) Text(el Element) string {
	return fake(el).text
}

func (r *fakeRenderer) AppendChild(parent, child Element) {
	p, ch := fake(parent), fake(child)
	r.record("append %s < %s", p.tag, ch.tag)
	if ch.parent != nil {
		ch.parent.remove(ch)
	}
	p.children = append(p.children, ch)
	ch.parent = p
}

func (r *fakeRenderer) RemoveChild(parent, child Element) {
	p, ch := fake(parent), fake(child)
	r.record("remove %s < %s", p.tag, ch.tag)
	if ch.parent == p {
		p.remove(ch)
	}
}

func (f *fakeElement) remove(ch *fakeElement) {
	for i, c := range f.children {
		if c == ch {
			f.children = append(f.children[:i], f.children[i+1:]...)
			break
		}
	}
	ch.parent = nil
}

func (r *fakeRenderer) BoundingBox(el Element) Rect {
	return Rect{Width: 100, Height: 20}
}

func (r *fakeRenderer) ScrollIntoView(el Element) {
	r.record("scroll-into-view %s", fake(el).tag)
}

func (r *fakeRenderer) SetScrollTop(el Element, y float64) {
	r.record("scroll-top %s=%g", fake(el).tag, y)
}

func (r *fakeRenderer) AddEventListener(el Element, event string, handler EventHandler) {
	r.record("listen %s", event)
}

func (f *fakeElement) String() string {
	return fmt.Sprintf("<%s class=%q>", f.tag, strings.Join(f.classes, " "))
}

var _ Renderer = &fakeRenderer{}
