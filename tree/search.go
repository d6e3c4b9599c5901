package tree

// Predicate is a function type to match against nodes of a tree.
type Predicate[T comparable] func(test *Node[T]) bool

// SearchChildren scans the children of node in order. A child matching the
// predicate ends the search. A child not matching is searched downward
// (its whole subtree) before the scan moves on to the next sibling.
// node itself is never tested.
func SearchChildren[T comparable](node *Node[T], match Predicate[T]) (*Node[T], bool) {
	if node == nil || match == nil {
		return nil, false
	}
	for _, ch := range node.Children() {
		if match(ch) {
			return ch, true
		}
		if found, ok := Search(ch, match, true); ok {
			return found, true
		}
	}
	return nil, false
}

// Search finds the first node matching a predicate, starting with the
// subtree below node. If downward is false and nothing is found there, the
// search is repeated from the parent of node, escalating one level at a time.
// Every ancestor's entire subtree is searched again, including the parts
// already visited from below. The root of the tree is the last node whose
// subtree is searched. Nodes are never tested against the predicate on the
// way up, only as children of a subtree being searched.
func Search[T comparable](node *Node[T], match Predicate[T], downward bool) (*Node[T], bool) {
	for node != nil {
		tracer().Debugf("searching subtree of %v", node)
		if found, ok := SearchChildren(node, match); ok {
			return found, true
		}
		if downward {
			break
		}
		node = node.parent
	}
	return nil, false
}

// Walk visits node and all its descendents top down, depth first.
// If visit returns false, the children of the visited node are skipped.
func Walk[T comparable](node *Node[T], visit func(*Node[T]) bool) {
	if node == nil || visit == nil {
		return
	}
	if !visit(node) {
		return
	}
	for _, ch := range node.Children() {
		Walk(ch, visit)
	}
}
