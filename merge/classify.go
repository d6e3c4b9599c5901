package merge

import (
	"math"
	"reflect"
)

// Kind is the structural classification of a value.
type Kind int8

// Every value is exactly one of these.
const (
	Scalar Kind = iota
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	}
	return "scalar"
}

// IsContainer is true for sequences and mappings.
func (k Kind) IsContainer() bool {
	return k == Sequence || k == Mapping
}

// Classify returns the kind of v. Non-nil maps with string keys are mappings,
// non-nil slices and arrays are sequences, with the exception of byte slices.
// Everything else, including nil, is a scalar.
//
// Classify never fails and does not modify v.
func Classify(v any) Kind {
	switch v.(type) {
	case nil, string, []byte:
		return Scalar
	case map[string]any:
		if v.(map[string]any) == nil {
			return Scalar
		}
		return Mapping
	case []any:
		if v.([]any) == nil {
			return Scalar
		}
		return Sequence
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String && !rv.IsNil() {
			return Mapping
		}
	case reflect.Slice:
		if !rv.IsNil() {
			return Sequence
		}
	case reflect.Array:
		return Sequence
	}
	return Scalar
}

// Truthy reports whether v counts as a set value: nil, false, numeric zero,
// NaN, the empty string and nil references are falsy; everything else,
// including empty containers, is truthy.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() != 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// AsMapping returns a mapping as map[string]any. Maps of other types are
// copied key by key; the result shares no map storage with v in that case.
func AsMapping(v any) (map[string]any, bool) {
	if Classify(v) != Mapping {
		return nil, false
	}
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

// AsSequence returns a sequence as []any, copying elements for slices and
// arrays of other element types.
func AsSequence(v any) ([]any, bool) {
	if Classify(v) != Sequence {
		return nil, false
	}
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	s := make([]any, rv.Len())
	for i := range s {
		s[i] = rv.Index(i).Interface()
	}
	return s, true
}

// isAbsent is true for nil and for nil maps and slices.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
