/*
Package dom composes trees of UI nodes on top of a host-owned document tree.

Overview

Every Node wraps one element of a host tree. The host tree itself is out of
reach for this package: elements are created and mutated through a Renderer,
which clients provide (see package htmlrender for one on top of
golang.org/x/net/html). Nodes are created from settings, a bag of
classes, attributes, inline styles, named style-sets, inherited traits,
data, actions and callbacks:

    doc := dom.NewDocument(renderer)
    list, err := doc.New("ul", map[string]any{
        "id":         "menu",
        "classes":    []string{"menu"},
        "cssClasses": map[string]any{"menu": map[string]any{"color": "navy"}},
        "traits":     map[string]any{"theme": "dark"},
    })

Settings are deep-merged (package merge) against the document's default
settings, and again every time a node is re-configured with Use.

Tree Implementation

Nodes are linked with a general purpose tree type (package tree). In a fully
object oriented programming language we would subclass the tree node type,
but in Go we resort to composition, thus including a generic tree node in every
dom.Node. The tree node's payload points back to the dom.Node, which lets tree
searches hand out dom.Nodes without an adapter.

All nodes are owned by their Document, addressed by a numeric identity.
Removing a node clears parent and child links in both directions and drops the
node and its subtree from the document.

Lifecycle

Appending a node to a parent schedules an initialization run for it:
traits and named style-sets are inherited from the parent, passed on to the
node's children, active style-sets are re-applied, and ready callbacks are
executed. Every ready callback runs at most once per node, however often
initialization is repeated. Initialization runs are queued on the document and
drained before the outermost call returns; runs requested from within a
callback are queued behind the running one.

Documents and nodes are confined to a single goroutine.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'manifest.dom'
func tracer() tracing.Trace {
	return tracing.Select("manifest.dom")
}
