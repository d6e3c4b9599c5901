package dom

import (
	"fmt"

	"github.com/npillmayer/manifest/tree"
)

// Append mounts child under n, in the node tree as well as in the host tree,
// and initializes child. If child has been appended elsewhere before, it
// moves. Appending a child to its current parent moves it to the end of
// the host container and initializes it again.
func (n *Node) Append(child *Node) (*Node, error) {
	if child == nil {
		return nil, fmt.Errorf("%w: nil child for %v", ErrUnknownNode, n)
	}
	if child.doc != n.doc {
		return child, fmt.Errorf("%w: cannot append %v to %v", ErrForeignNode, child, n)
	}
	if _, owned := n.doc.nodes[child.id]; !owned {
		return child, fmt.Errorf("%w: %v has been removed", ErrUnknownNode, child)
	}
	for p := &n.tree; p != nil; p = p.Parent() {
		if p == &child.tree {
			return child, fmt.Errorf("%w: %v into %v", ErrHierarchy, child, n)
		}
	}
	child.detachElement()
	n.tree.AddChild(&child.tree)
	n.doc.renderer.AppendChild(n.element, child.element)
	child.parent = n.element
	tracer().Debugf("appended %v to %v", child, n)
	return child, n.doc.scheduleInit(child)
}

// AppendTo is the inverse of Append. It returns n.
func (n *Node) AppendTo(parent *Node) (*Node, error) {
	if parent == nil {
		return n, fmt.Errorf("%w: nil parent for %v", ErrUnknownNode, n)
	}
	_, err := parent.Append(n)
	return n, err
}

// AppendElement mounts a raw host element under n. Raw elements are not
// part of the node tree.
func (n *Node) AppendElement(el Element) Element {
	n.doc.renderer.AppendChild(n.element, el)
	return el
}

// AppendToElement mounts n into a raw host container, e.g. the body of a
// host document, and initializes n. n is unlinked from its parent node, if
// any, and becomes the root of a node tree.
func (n *Node) AppendToElement(container Element) (*Node, error) {
	n.detachElement()
	n.tree.Unlink()
	n.doc.renderer.AppendChild(container, n.element)
	n.parent = container
	tracer().Debugf("appended %v to host element", n)
	return n, n.doc.scheduleInit(n)
}

// Delete detaches n's element from the host tree. n stays linked to its
// parent node and remains owned by its document; it may be appended again.
func (n *Node) Delete() *Node {
	n.detachElement()
	return n
}

// Empty detaches the elements of all children from the host tree and clears
// any other content of n's element. Child nodes stay linked to n.
func (n *Node) Empty() *Node {
	for _, ch := range n.Children() {
		ch.detachElement()
	}
	if err := n.doc.renderer.SetInnerContent(n.element, ""); err != nil {
		tracer().Errorf("%v: emptying element: %v", n, err)
	}
	return n
}

// Remove deletes n and unlinks it from its parent node. n and all its
// descendants are dropped from the document and cannot be used any longer.
func (n *Node) Remove() {
	n.detachElement()
	n.tree.Unlink()
	count := 0
	tree.Walk(&n.tree, func(t *tree.Node[*Node]) bool {
		delete(n.doc.nodes, t.Payload.id)
		count++
		return true
	})
	tracer().Debugf("removed %v and %d descendants", n, count-1)
}

func (n *Node) detachElement() {
	if n.parent != nil {
		n.doc.renderer.RemoveChild(n.parent, n.element)
		n.parent = nil
	}
}
