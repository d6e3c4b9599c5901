package dom

import (
	"fmt"

	"github.com/npillmayer/manifest/dom/style"
)

// HasClass is a predicate: is class active for n?
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass activates a class for n and applies its named style-set.
// A class without style-set is activated nonetheless. Adding an active
// class applies its style-set again, on top of the other active classes.
func (n *Node) AddClass(class string) *Node {
	if class == "" {
		return n
	}
	if !n.HasClass(class) {
		n.classes = append(n.classes, class)
		n.doc.renderer.AddClass(n.element, class)
	}
	set, ok := n.styleSet(class)
	if !ok {
		tracer().Infof("%v: %v", n, fmt.Errorf("%w for class %q", ErrMissingStyleSet, class))
		return n
	}
	n.pushStyles(set)
	return n
}

// RemoveClass de-activates a class for n. Style properties of its style-set
// are cleared, then the style-sets of all remaining active classes are
// re-applied, restoring properties they share with the removed one.
func (n *Node) RemoveClass(class string) *Node {
	i := -1
	for j, c := range n.classes {
		if c == class {
			i = j
			break
		}
	}
	if i < 0 {
		return n
	}
	n.classes = append(n.classes[:i], n.classes[i+1:]...)
	n.doc.renderer.RemoveClass(n.element, class)
	if set, ok := n.styleSet(class); ok {
		for _, kv := range set.Properties() {
			n.doc.renderer.SetStyleProperty(n.element, kv.Key, "")
		}
	}
	n.reassertStyleSets()
	return n
}

// ToggleClass adds class if it is inactive and removes it otherwise.
func (n *Node) ToggleClass(class string) *Node {
	if n.HasClass(class) {
		return n.RemoveClass(class)
	}
	return n.AddClass(class)
}

// reassertStyleSets applies the style-sets of all active classes, in order
// of activation.
func (n *Node) reassertStyleSets() {
	for _, class := range n.classes {
		if set, ok := n.styleSet(class); ok {
			n.pushStyles(set)
		}
	}
}

func (n *Node) styleSet(class string) (*style.Set, bool) {
	m, ok := n.cssClasses[class]
	if !ok {
		return nil, false
	}
	set, err := style.SetFromMapping(class, m)
	if err != nil {
		tracer().Infof("%v: %v", n, err)
		return nil, false
	}
	return set, true
}

func (n *Node) pushStyles(set *style.Set) {
	for _, kv := range set.Properties() {
		n.doc.renderer.SetStyleProperty(n.element, kv.Key, kv.Value.String())
	}
}
