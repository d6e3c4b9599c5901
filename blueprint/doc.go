/*
Package blueprint builds node trees from declarative YAML descriptions.

A blueprint names a tag, the settings for the node and its children:

    title: Menu
    stylesheet: |
      .active { color: red }
    tag: ul
    settings:
      id: menu
      traits: { theme: dark }
    children:
      - tag: li
        settings: { text: Home, classes: [active] }
      - tag: li
        settings: { text: About }

Settings are the same as for dom.Document.New, restricted to what YAML can
express (no actions, callbacks or ready callbacks). A stylesheet given at the
root is parsed into named style-sets of the root node, from where children
inherit them.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package blueprint

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'manifest.blueprint'.
func tracer() tracing.Trace {
	return tracing.Select("manifest.blueprint")
}
