package merge

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// ErrMergeTypeMismatch is returned if source and target hold containers of
// different kinds at the same merge point, or if a container has to be merged
// into a scalar.
var ErrMergeTypeMismatch = errors.New("merge type mismatch")

// ErrMergeCycleDetected is returned if a structure contains itself or nesting
// exceeds MaxDepth.
var ErrMergeCycleDetected = errors.New("merge cycle detected")

// MaxDepth is the maximum nesting depth Merge will follow.
const MaxDepth = 256

// Merge combines source with target and returns the merged structure.
//
// If source is absent, target is returned, and vice versa. A scalar source
// wins over any target. Otherwise source and target must be containers of
// the same kind, and the result is a new container of that kind (see package
// documentation for the rules). Neither argument is modified.
func Merge(source, target any) (any, error) {
	m := merger{onPath: make(map[pathKey]bool)}
	return m.merge(source, target, "", 0)
}

// Clone rebuilds a container against an empty container of its own kind.
// Scalars are returned as they are. Only the outermost level is copied;
// nested containers are shared with v.
func Clone(v any) (any, error) {
	switch Classify(v) {
	case Mapping:
		return Merge(v, map[string]any{})
	case Sequence:
		return Merge(v, []any{})
	}
	return v, nil
}

// Equal reports whether a and b are equal values. It is used to de-duplicate
// sequence elements. Functions are never equal to each other, pointers are
// equal if they point to the same or to deeply equal values.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

type pathKey struct {
	kind Kind
	ptr  uintptr
}

type merger struct {
	onPath map[pathKey]bool
}

func (m *merger) merge(source, target any, path string, depth int) (any, error) {
	if isAbsent(source) {
		return target, nil
	}
	if isAbsent(target) {
		return source, nil
	}
	sk, tk := Classify(source), Classify(target)
	if sk == Scalar {
		return source, nil
	}
	if sk != tk {
		return nil, fmt.Errorf("%w: cannot merge %s into %s at %s", ErrMergeTypeMismatch, sk, tk, where(path))
	}
	if depth >= MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d at %s", ErrMergeCycleDetected, MaxDepth, where(path))
	}
	key, tracked := identity(source, sk)
	if tracked {
		if m.onPath[key] {
			return nil, fmt.Errorf("%w: %s contains itself at %s", ErrMergeCycleDetected, sk, where(path))
		}
		m.onPath[key] = true
		defer delete(m.onPath, key)
	}
	if sk == Mapping {
		return m.mergeMappings(source, target, path, depth)
	}
	return m.mergeSequences(source, target, path, depth)
}

func (m *merger) mergeMappings(source, target any, path string, depth int) (any, error) {
	src, _ := AsMapping(source)
	tgt, _ := AsMapping(target)
	merged := make(map[string]any, len(src)+len(tgt))
	for k, t := range tgt {
		merged[k] = t
	}
	for k, s := range src {
		if Truthy(s) && Classify(s).IsContainer() && Classify(tgt[k]).IsContainer() {
			v, err := m.merge(s, tgt[k], path+"."+k, depth+1)
			if err != nil {
				return nil, err
			}
			merged[k] = v
			continue
		}
		merged[k] = s // present wins, even if falsy
	}
	return merged, nil
}

func (m *merger) mergeSequences(source, target any, path string, depth int) (any, error) {
	src, _ := AsSequence(source)
	tgt, _ := AsSequence(target)
	all := make([]any, 0, len(src)+len(tgt))
	for _, seq := range [][]any{src, tgt} {
		for _, e := range seq {
			if !containsEqual(all, e) {
				all = append(all, e)
			}
		}
	}
	merged := make([]any, 0, len(all))
	for i, e := range all {
		var seed any
		switch Classify(e) {
		case Mapping:
			seed = map[string]any{}
		case Sequence:
			seed = []any{}
		default:
			merged = append(merged, e)
			continue
		}
		v, err := m.merge(e, seed, path+"["+strconv.Itoa(i)+"]", depth+1)
		if err != nil {
			return nil, err
		}
		merged = append(merged, v)
	}
	tracer().Debugf("merged sequences at %s: %d + %d -> %d elements", where(path), len(src), len(tgt), len(merged))
	return merged, nil
}

func containsEqual(seq []any, v any) bool {
	for _, e := range seq {
		if Equal(e, v) {
			return true
		}
	}
	return false
}

// identity returns a key for containers which may take part in a cycle.
// Empty containers cannot contain themselves and may share storage.
func identity(v any, k Kind) (pathKey, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.Len() == 0 {
			return pathKey{}, false
		}
		return pathKey{kind: k, ptr: rv.Pointer()}, true
	}
	return pathKey{}, false
}

func where(path string) string {
	if path == "" {
		return "top level"
	}
	return strconv.Quote(path)
}
