/*
Package htmlrender implements dom.Renderer on top of golang.org/x/net/html.

Host elements are *html.Node. Classes and inline styles live in the "class"
and "style" attributes of an element, so rendering a tree with Render
reflects the state nodes have left behind. Compound style properties like
margin are stored as longhands.

There is no layout engine: bounding boxes are derived from explicit pixel
widths and heights of inline styles, scrolling is recorded only, and events
reach handlers only through Dispatch.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmlrender

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'manifest.dom'.
func tracer() tracing.Trace {
	return tracing.Select("manifest.dom")
}
