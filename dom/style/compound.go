package style

import (
	"strings"
)

// Compound properties with one to four values, distributed top, right,
// bottom, left as in CSS:
//
//     margin: 1px 2px   ⇒  margin-top: 1px, margin-right: 2px,
//                          margin-bottom: 1px, margin-left: 2px
//
var boxCompounds = map[string][4]string{
	"margin":       {"margin-top", "margin-right", "margin-bottom", "margin-left"},
	"padding":      {"padding-top", "padding-right", "padding-bottom", "padding-left"},
	"border-width": {"border-top-width", "border-right-width", "border-bottom-width", "border-left-width"},
	"border-color": {"border-top-color", "border-right-color", "border-bottom-color", "border-left-color"},
	"border-style": {"border-top-style", "border-right-style", "border-bottom-style", "border-left-style"},
	"border-radius": {"border-top-left-radius", "border-top-right-radius",
		"border-bottom-right-radius", "border-bottom-left-radius"},
}

// IsCompound is a predicate: does key denote a compound property which
// ExpandCompound is able to split?
func IsCompound(key string) bool {
	_, ok := boxCompounds[key]
	return ok
}

// Longhands returns the keys a compound property expands to, or nil.
func Longhands(key string) []string {
	if lh, ok := boxCompounds[key]; ok {
		return lh[:]
	}
	return nil
}

// ExpandCompound splits a compound property into its longhand properties.
// For keys which are not compound properties, or for values with more
// than four components, it returns false. An empty value expands to empty
// longhands, i.e. clears all of them.
func ExpandCompound(key string, value Property) ([]KeyValue, bool) {
	longhands, ok := boxCompounds[key]
	if !ok {
		return nil, false
	}
	fields := strings.Fields(string(value))
	var v [4]Property
	switch len(fields) {
	case 0:
		// all NullStyle
	case 1:
		v = [4]Property{Property(fields[0]), Property(fields[0]), Property(fields[0]), Property(fields[0])}
	case 2:
		v = [4]Property{Property(fields[0]), Property(fields[1]), Property(fields[0]), Property(fields[1])}
	case 3:
		v = [4]Property{Property(fields[0]), Property(fields[1]), Property(fields[2]), Property(fields[1])}
	case 4:
		v = [4]Property{Property(fields[0]), Property(fields[1]), Property(fields[2]), Property(fields[3])}
	default:
		tracer().Debugf("cannot expand %s: %q has %d components", key, value, len(fields))
		return nil, false
	}
	kv := make([]KeyValue, 4)
	for i := range longhands {
		kv[i] = KeyValue{Key: longhands[i], Value: v[i]}
	}
	return kv, true
}
