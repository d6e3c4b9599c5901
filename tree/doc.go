/*
Package tree implements an all-purpose tree type.

There are many tree implementations around. This one supports trees
of a fairly simple structure: every node carries a payload and an ordered
list of children, and knows its parent. Node types of other packages
build on this type by composition, storing a back-pointer to themselves
in the payload (see package dom).

Searching

Searches are sequential and stop at the first match, in child order:

   SearchChildren(node, predicate)   // children of node, each followed by its subtree
   Search(node, predicate, downward) // like SearchChildren, then escalate to the parent
   Walk(node, visitor)               // visit all nodes top down

Search with downward=false implements "nearest scope" lookups: the subtree of
the start node is searched first, then the subtree of its parent, and so on up
to the root.

Links

Parent/child links are kept consistent in both directions. A node appended to
a new parent leaves its former parent, and Unlink removes a node from its parent's
children and clears the back-link in one step. Nothing is left for the garbage
collector to sort out.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'manifest.tree'.
func tracer() tracing.Trace {
	return tracing.Select("manifest.tree")
}
