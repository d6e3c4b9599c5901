/*
Package cssom provides functionality for CSS styling.

Overview

Nodes carry named style-sets: for every class name, a set of style
properties which is applied while the class is active on the node.
Style-sets may be written down directly as settings (cssClasses), or
they may be imported from CSS text. This package does the latter:
it extracts style-sets from the class rules of a stylesheet.

CSS handling is de-coupled by introducing appropriate interfaces
StyleSheet and Rule. A concrete implementation on top of
https://github.com/aymerick/douceur may be found in sub-package
douceuradapter.

Only plain class selectors (".name") are considered. Selectors with
combinators, ids, attributes or pseudo-classes address structure of
the host tree, which is out of reach for named style-sets.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'manifest.dom'.
func tracer() tracing.Trace {
	return tracing.Select("manifest.dom")
}
