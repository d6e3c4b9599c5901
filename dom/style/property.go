package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/manifest/merge"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cast"
)

// tracer will return a tracer. We are tracing to 'manifest.dom'
func tracer() tracing.Trace {
	return tracing.Select("manifest.dom")
}

// Property is a raw value for a CSS property. For example, with
//
//     color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient helpers.
type Property string

// NullStyle is an empty property value. Setting a property to NullStyle
// clears it.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- Named style-sets -------------------------------------------------

// Set is a named style-set: the style properties a class contributes to
// a node while the class is active. Sets are created from the mappings
// found in a node's cssClasses settings.
type Set struct {
	name      string
	propsDict map[string]Property
}

// NewSet creates a new empty style-set, given its name.
func NewSet(name string) *Set {
	return &Set{name: name}
}

// SetFromMapping creates a style-set from a settings mapping of
// style-property → value. Values are converted to strings; a value which
// cannot be converted is an error.
func SetFromMapping(name string, m any) (*Set, error) {
	props, ok := merge.AsMapping(m)
	if !ok {
		return nil, fmt.Errorf("style-set %q is a %s, not a mapping", name, merge.Classify(m))
	}
	set := NewSet(name)
	for k, v := range props {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("style-set %q, property %q: %w", name, k, err)
		}
		set.Set(k, Property(s))
	}
	return set, nil
}

// Name returns the name of the style-set, i.e. the class name.
func (s *Set) Name() string {
	return s.name
}

// Stringer for style-sets; used for debugging.
func (s *Set) String() string {
	var b strings.Builder
	b.WriteString("[" + s.name + "] =\n")
	for _, kv := range s.Properties() {
		fmt.Fprintf(&b, "  %s = %s\n", kv.Key, kv.Value)
	}
	return b.String()
}

// Size returns the number of properties in the set.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.propsDict)
}

// Properties returns all properties of a set, ordered by key.
func (s *Set) Properties() []KeyValue {
	if s == nil {
		return nil
	}
	r := make([]KeyValue, 0, len(s.propsDict))
	for k, v := range s.propsDict {
		r = append(r, KeyValue{k, v})
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Key < r[j].Key })
	return r
}

// IsSet is a predicated wether a property is set within this set.
func (s *Set) IsSet(key string) bool {
	if s == nil || s.propsDict == nil {
		return false
	}
	v, ok := s.propsDict[key]
	return ok && !v.IsEmpty()
}

// Get a property's value.
func (s *Set) Get(key string) (Property, bool) {
	if s == nil || s.propsDict == nil {
		return NullStyle, false
	}
	p, ok := s.propsDict[key]
	return p, ok
}

// Set a property's value. Overwrites an existing value, if present.
func (s *Set) Set(key string, p Property) {
	if s.propsDict == nil {
		s.propsDict = make(map[string]Property)
	}
	s.propsDict[key] = p
}

// Mapping returns the set as a settings mapping, suitable as the value of
// a cssClasses entry.
func (s *Set) Mapping() map[string]any {
	m := make(map[string]any, s.Size())
	for k, v := range s.propsDict {
		m[k] = string(v)
	}
	return m
}

// Sets converts a cssClasses mapping (class name → style-set mapping) into
// style-sets. Entries which are not mappings are skipped and traced.
func Sets(cssClasses map[string]any) map[string]*Set {
	sets := make(map[string]*Set, len(cssClasses))
	for name, m := range cssClasses {
		set, err := SetFromMapping(name, m)
		if err != nil {
			tracer().Infof("skipping style-set: %v", err)
			continue
		}
		sets[name] = set
	}
	return sets
}
