/*
Package merge reconciles settings structures.

Overview

Settings of UI nodes are plain Go values: mappings (maps with string keys),
sequences (slices and arrays) and scalars (everything else). Classify tells
these apart, Merge combines a source structure with a target structure of the
same kind.

Merging mappings is a key-wise union. A key present in the source wins over the
target, even if its value is falsy (0, "", false). Truthiness only decides
whether a nested merge is attempted: if the source value is truthy and both
sides hold containers, they are merged recursively.

Merging sequences does not pair elements by position. Elements of both
sequences are concatenated (source first), de-duplicated by value equality,
and every container element is rebuilt against an empty container of its own
kind. Clients relying on positional merging have to pre-process their
sequences.

Cycles are detected on the recursion path; Merge fails with
ErrMergeCycleDetected instead of looping forever.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package merge

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'manifest.merge'.
func tracer() tracing.Trace {
	return tracing.Select("manifest.merge")
}
