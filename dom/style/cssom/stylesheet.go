package cssom

import (
	"strings"

	"github.com/npillmayer/manifest/dom/style"
)

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// In order to de-couple implementations of CSS-stylesheets from the
// construction of named style-sets, we introduce an interface
// for CSS stylesheets. Clients will have to provide a concrete
// implementation of this interface (e.g., see package douceuradapter).
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet
}

// Rule is the type stylesheets consists of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
}

// StyleSets extracts named style-sets from a stylesheet. Only rules with
// plain class selectors contribute, e.g.
//
//     .warn, .error { color: red }
//
// creates style-sets "warn" and "error". Later rules override properties of
// earlier ones, as in CSS. Rules with other selectors are skipped.
//
// The result is a cssClasses mapping (class name → property mapping).
func StyleSets(sheet StyleSheet) map[string]any {
	sets := make(map[string]*style.Set)
	var order []string
	if sheet == nil || sheet.Empty() {
		return map[string]any{}
	}
	rules := sheet.Rules()
	for i, rule := range rules {
		for _, sel := range strings.Split(rule.Selector(), ",") {
			name, ok := className(sel)
			if !ok {
				tracer().Debugf("stylesheet: skipping selector %q", strings.TrimSpace(sel))
				continue
			}
			set, found := sets[name]
			if !found {
				set = style.NewSet(name)
				sets[name] = set
				order = append(order, name)
			}
			for _, key := range rule.Properties() {
				if prev, ok := set.Get(key); ok && prev != "" && isImportant(rules[:i], name, key) && !rule.IsImportant(key) {
					continue
				}
				set.Set(key, rule.Value(key))
			}
		}
	}
	cssClasses := make(map[string]any, len(sets))
	for _, name := range order {
		cssClasses[name] = sets[name].Mapping()
	}
	tracer().Debugf("stylesheet: extracted %d style-sets", len(cssClasses))
	return cssClasses
}

// className returns the class name of a plain class selector like ".warn".
func className(sel string) (string, bool) {
	sel = strings.TrimSpace(sel)
	if len(sel) < 2 || sel[0] != '.' {
		return "", false
	}
	name := sel[1:]
	if strings.ContainsAny(name, " .#:[>+~*") {
		return "", false
	}
	return name, true
}

// isImportant checks if one of the earlier rules for class name has marked
// key as important.
func isImportant(earlier []Rule, name string, key string) bool {
	for _, rule := range earlier {
		for _, sel := range strings.Split(rule.Selector(), ",") {
			if n, ok := className(sel); ok && n == name && rule.IsImportant(key) {
				return true
			}
		}
	}
	return false
}
