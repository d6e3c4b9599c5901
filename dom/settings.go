package dom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/npillmayer/manifest/dom/style/cssom"
	"github.com/npillmayer/manifest/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/manifest/merge"
)

// Settings is the typed form of a settings mapping. Clients hand settings to
// a node as map[string]any; keys are those of the mapstructure tags.
//
//     id          string, may be a path "a#b#name"; the last component is
//                 the host id attribute and the selector of the node
//     selector    string, logical name of the node, overrides id
//     text        text content
//     innerHTML   markup content
//     classes     sequence of class names
//     attributes  mapping of host attributes; nil values remove an attribute
//     styles      mapping of inline style properties
//     data        mapping of arbitrary data; scalars are mirrored as data-* attributes
//     traits      mapping of inheritable traits
//     cssClasses  mapping of class name → style-set mapping
//     stylesheet  CSS text; class rules are added to cssClasses
//     actions     mapping of name → Action
//     callback    func(*Node) error, run on every initialization
//     ready       ready callback (*Callback), sequence of those, or true
type Settings struct {
	ID         string         `mapstructure:"id"`
	Selector   string         `mapstructure:"selector"`
	Text       *string        `mapstructure:"text"`
	InnerHTML  *string        `mapstructure:"innerHTML"`
	Classes    []string       `mapstructure:"classes"`
	Attributes map[string]any `mapstructure:"attributes"`
	Styles     map[string]any `mapstructure:"styles"`
	Data       map[string]any `mapstructure:"data"`
	Traits     map[string]any `mapstructure:"traits"`
	CSSClasses map[string]any `mapstructure:"cssClasses"`
	Stylesheet string         `mapstructure:"stylesheet"`
	Actions    map[string]any `mapstructure:"actions"`
	Callback   any            `mapstructure:"callback"`
	Ready      any            `mapstructure:"ready"`
}

// DecodeSettings decodes a settings mapping. Values are converted weakly,
// e.g. a single class name is accepted for classes. Unknown keys are traced
// and otherwise ignored.
func DecodeSettings(m map[string]any) (*Settings, error) {
	s := &Settings{}
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           s,
		WeaklyTypedInput: true,
		Metadata:         &md,
	})
	if err != nil {
		return nil, err
	}
	if err = decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		tracer().Infof("ignoring unknown settings %v", md.Unused)
	}
	return s, nil
}

// Use merges settings over the original settings of n and re-applies the
// result. If settings carry a callback, it is called once the settings are
// applied. Use does not run initialization.
func (n *Node) Use(settings map[string]any) (*Node, error) {
	merged, err := merge.Merge(settings, n.settings)
	if err != nil {
		return n, fmt.Errorf("settings of %v: %w", n, err)
	}
	n.settings, _ = merge.AsMapping(merged)
	if err = n.apply(n.settings); err != nil {
		return n, err
	}
	if _, ok := settings["callback"]; ok && n.callback != nil {
		if err = n.callback(n); err != nil {
			return n, fmt.Errorf("callback of %v: %w", n, err)
		}
	}
	return n, nil
}

// apply merges settings over the document defaults and configures n and
// its host element accordingly. Style-sets of active classes are re-applied
// last.
func (n *Node) apply(settings map[string]any) error {
	effective, err := merge.Merge(settings, n.doc.defaults)
	if err != nil {
		return fmt.Errorf("settings of %v: %w", n, err)
	}
	m, _ := merge.AsMapping(effective)
	s, err := DecodeSettings(m)
	if err != nil {
		return fmt.Errorf("settings of %v: %w", n, err)
	}
	tracer().Debugf("applying settings to %v", n)
	r := n.doc.renderer
	if s.ID != "" {
		n.rawID = s.ID
		n.selector = normalize(s.ID)
		r.SetAttribute(n.element, "id", n.selector)
	}
	if s.Selector != "" {
		n.selector = s.Selector
	}
	if s.Text != nil {
		r.SetText(n.element, *s.Text)
	}
	if s.InnerHTML != nil {
		if err = r.SetInnerContent(n.element, *s.InnerHTML); err != nil {
			return fmt.Errorf("%w: innerHTML of %v: %v", ErrInvalidSetting, n, err)
		}
	}
	n.attributes = s.Attributes
	for _, key := range sortedKeys(s.Attributes) {
		n.SetAttribute(key, s.Attributes[key])
	}
	n.data = s.Data
	for _, key := range sortedKeys(s.Data) {
		if v := s.Data[key]; merge.Classify(v) == merge.Scalar && v != nil {
			n.SetAttribute("data-"+key, v)
		}
	}
	if n.traits, err = mergeMapping(s.Traits, n.traits); err != nil {
		return fmt.Errorf("traits of %v: %w", n, err)
	}
	if err = n.applyStyleSets(s); err != nil {
		return err
	}
	if err = n.applyFuncs(s); err != nil {
		return err
	}
	n.ready.add(s.Ready)
	for _, class := range s.Classes {
		if !n.HasClass(class) {
			n.classes = append(n.classes, class)
			r.AddClass(n.element, class)
		}
	}
	n.reassertStyleSets()
	n.styles = s.Styles
	for _, key := range sortedKeys(s.Styles) {
		n.SetStyle(key, s.Styles[key])
	}
	return nil
}

func (n *Node) applyStyleSets(s *Settings) error {
	var err error
	cssClasses := s.CSSClasses
	if strings.TrimSpace(s.Stylesheet) != "" {
		sheet, perr := douceuradapter.Parse(s.Stylesheet)
		if perr != nil {
			return fmt.Errorf("%w: stylesheet of %v: %v", ErrInvalidSetting, n, perr)
		}
		if cssClasses, err = mergeMapping(s.CSSClasses, cssom.StyleSets(sheet)); err != nil {
			return fmt.Errorf("style-sets of %v: %w", n, err)
		}
	}
	if n.cssClasses, err = mergeMapping(cssClasses, n.cssClasses); err != nil {
		return fmt.Errorf("style-sets of %v: %w", n, err)
	}
	return nil
}

func (n *Node) applyFuncs(s *Settings) error {
	if len(s.Actions) > 0 {
		n.actions = make(map[string]Action, len(s.Actions))
		for name, a := range s.Actions {
			switch fn := a.(type) {
			case Action:
				n.actions[name] = fn
			case func(*Node, ...any) error:
				n.actions[name] = fn
			case func(*Node) error:
				n.actions[name] = func(n *Node, _ ...any) error { return fn(n) }
			default:
				return fmt.Errorf("%w: action %q of %v is a %T", ErrInvalidSetting, name, n, a)
			}
		}
	}
	switch fn := s.Callback.(type) {
	case nil:
	case func(*Node) error:
		n.callback = fn
	case func(*Node):
		n.callback = func(n *Node) error { fn(n); return nil }
	default:
		return fmt.Errorf("%w: callback of %v is a %T", ErrInvalidSetting, n, s.Callback)
	}
	return nil
}

// mergeMapping merges mapping src over dst. The result never shares its
// top level with src.
func mergeMapping(src, dst map[string]any) (map[string]any, error) {
	if src == nil {
		return dst, nil
	}
	var target any = dst
	if dst == nil {
		target = map[string]any{}
	}
	merged, err := merge.Merge(src, target)
	if err != nil {
		return nil, err
	}
	m, _ := merge.AsMapping(merged)
	return m, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalize returns the last '#'-separated component of a selector or id.
func normalize(selector string) string {
	if i := strings.LastIndexByte(selector, '#'); i >= 0 {
		return selector[i+1:]
	}
	return selector
}
