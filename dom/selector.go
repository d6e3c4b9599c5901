package dom

import (
	"github.com/npillmayer/manifest/tree"
)

// Select finds the node with a logical name. The subtree of n is searched
// first, then, level by level, the subtrees of n's ancestors. The first
// match in child order wins. A node matches if its selector equals the
// selector, or if the last '#'-separated component of its id does. Only the
// last component of selector itself is significant.
//
// Results are cached with n. Subsequent calls return the cached node, even
// if the tree has changed in between, unless refresh is set. Misses are not
// cached. Cached nodes which have been removed from the document are looked
// up anew.
func (n *Node) Select(selector string, refresh bool) (*Node, bool) {
	key := normalize(selector)
	if key == "" {
		return nil, false
	}
	if !refresh {
		if id, ok := n.selections[key]; ok {
			if found, ok := n.doc.nodes[id]; ok {
				tracer().Debugf("%v: select %q from cache: %v", n, key, found)
				return found, true
			}
			delete(n.selections, key)
		}
	}
	found, ok := tree.Search(&n.tree, func(t *tree.Node[*Node]) bool {
		return t.Payload.matches(key)
	}, false)
	if !ok {
		tracer().Debugf("%v: select %q: no selection", n, key)
		delete(n.selections, key)
		return nil, false
	}
	n.selections[key] = found.Payload.id
	tracer().Debugf("%v: select %q: %v", n, key, found.Payload)
	return found.Payload, true
}

func (n *Node) matches(key string) bool {
	return n.selector == key || (n.rawID != "" && normalize(n.rawID) == key)
}
