/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

It parses CSS text with https://github.com/aymerick/douceur and offers the
result to package cssom, which extracts named style-sets from it.

	sheet, err := douceuradapter.Parse(".warn { color: red }")
	cssClasses := cssom.StyleSets(sheet)   // {"warn": {"color": "red"}}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/manifest/dom/style"
	"github.com/npillmayer/manifest/dom/style/cssom"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'manifest.dom'.
func tracer() tracing.Trace {
	return tracing.Select("manifest.dom")
}

// CSSStyles is an adapter for interface cssom.StyleSheet.
// For an explanation of the motivation behind this design, please refer
// to documentation for interface cssom.StyleSheet.
type CSSStyles struct {
	rules []*css.Rule
}

// Parse parses CSS text into a stylesheet.
func Parse(text string) (*CSSStyles, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing stylesheet: %w", err)
	}
	return Wrap(sheet), nil
}

// Wrap a douceur.css.Stylesheet into CSSStyles.
// At-rules (@media etc.) are flattened: their nested qualified rules are
// kept, the at-rule itself is dropped.
func Wrap(sheet *css.Stylesheet) *CSSStyles {
	styles := &CSSStyles{}
	if sheet == nil {
		return styles
	}
	styles.rules = flatten(sheet.Rules, styles.rules)
	return styles
}

func flatten(rules []*css.Rule, into []*css.Rule) []*css.Rule {
	for _, r := range rules {
		if r.Kind == css.QualifiedRule {
			into = append(into, r)
			continue
		}
		tracer().Debugf("stylesheet: flattening at-rule %s", r.Name)
		into = flatten(r.Rules, into)
	}
	return into
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.rules) == 0
}

// AppendRules appends rules from another stylesheet.
// Stylesheets of other implementations are read through interface cssom.Rule.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	if other == nil {
		return
	}
	if o, ok := other.(*CSSStyles); ok {
		sheet.rules = append(sheet.rules, o.rules...)
		return
	}
	for _, r := range other.Rules() {
		rule := &css.Rule{Kind: css.QualifiedRule, Prelude: r.Selector()}
		for _, key := range r.Properties() {
			rule.Declarations = append(rule.Declarations, &css.Declaration{
				Property:  key,
				Value:     r.Value(key).String(),
				Important: r.IsImportant(key),
			})
		}
		sheet.rules = append(sheet.rules, rule)
	}
}

// Rules returns all the rules of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	rules := make([]cssom.Rule, len(sheet.rules))
	for i, r := range sheet.rules {
		rules[i] = Rule{r}
	}
	return rules
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule struct {
	r *css.Rule
}

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.r.Prelude
}

// Properties returns the property keys of a rule,
// e.g. "margin-top". Keys declared more than once are returned once.
func (r Rule) Properties() []string {
	props := make([]string, 0, len(r.r.Declarations))
	seen := make(map[string]bool, len(r.r.Declarations))
	for _, d := range r.r.Declarations {
		if !seen[d.Property] {
			seen[d.Property] = true
			props = append(props, d.Property)
		}
	}
	return props
}

// Value returns the property value for a given key, e.g. "15px".
// With multiple declarations for key, the last one wins.
func (r Rule) Value(key string) style.Property {
	v := style.NullStyle
	for _, d := range r.r.Declarations {
		if d.Property == key {
			v = style.Property(d.Value)
		}
	}
	return v
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	for _, d := range r.r.Declarations {
		if d.Property == key && d.Important {
			return true
		}
	}
	return false
}

var _ cssom.Rule = Rule{}

// ExtractStyleElements visits an HTML parse tree and collects the content
// of all <style> elements into a single stylesheet. Style elements which
// fail to parse are skipped.
func ExtractStyleElements(htmldoc *html.Node) *CSSStyles {
	sheet := &CSSStyles{}
	var visit func(*html.Node)
	visit = func(h *html.Node) {
		if h.Type == html.ElementNode && h.DataAtom == atom.Style {
			if h.FirstChild != nil {
				if s, err := Parse(h.FirstChild.Data); err != nil {
					tracer().Errorf("skipping <style> element: %v", err)
				} else {
					sheet.AppendRules(s)
				}
			}
			return
		}
		for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
			visit(ch)
		}
	}
	if htmldoc != nil {
		visit(htmldoc)
	}
	return sheet
}
