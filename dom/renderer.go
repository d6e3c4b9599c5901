package dom

// Element is an element of the host tree. Elements are opaque to this package,
// they are created and handled exclusively by a Renderer.
type Element any

// Rect is a bounding box of a rendered element.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// EventHandler receives host events, e.g. "click".
type EventHandler func(event string, payload any)

// Renderer performs creation and mutation of host elements.
//
// Renderer methods are not expected to validate their arguments beyond what
// the host tree requires; nodes call them only with elements the renderer
// created.
type Renderer interface {
	CreateElement(tag string) (Element, error)
	SetAttribute(el Element, key, value string)
	RemoveAttribute(el Element, key string)
	Attribute(el Element, key string) (string, bool)
	AddClass(el Element, class string)
	RemoveClass(el Element, class string)
	HasClass(el Element, class string) bool
	SetStyleProperty(el Element, key, value string) // an empty value clears the property
	StyleProperty(el Element, key string) string
	SetInnerContent(el Element, content string) error
	SetText(el Element, text string)
	Text(el Element) string
	AppendChild(parent, child Element)
	RemoveChild(parent, child Element)
	BoundingBox(el Element) Rect
	ScrollIntoView(el Element)
	SetScrollTop(el Element, y float64)
	AddEventListener(el Element, event string, handler EventHandler)
}
