package dom

import (
	"errors"
	"testing"

	"github.com/npillmayer/manifest/merge"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocument() (*Document, *fakeRenderer) {
	r := newFakeRenderer()
	return NewDocument(r), r
}

func TestConstructionAppliesStyleSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.dom")
	defer teardown()
	//
	doc, r := newTestDocument()
	n, err := doc.New("div", map[string]any{
		"classes":    []any{"a"},
		"cssClasses": map[string]any{"a": map[string]any{"color": "red"}},
	})
	require.NoError(t, err)
	t.Logf("renderer calls: %v", r.calls)
	if !r.called("style color=red") {
		t.Errorf("expected renderer to receive color=red, calls are %v", r.calls)
	}
	assert.True(t, n.HasClass("a"))
	assert.Equal(t, "red", n.Style("color"))
}

func TestUseTraitsParentWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.dom")
	defer teardown()
	//
	doc, _ := newTestDocument()
	parent := Must(doc.New("div"))
	child := Must(doc.New("span", map[string]any{
		"traits": map[string]any{"theme": "light", "size": "m"},
	}))
	_, err := parent.Append(child)
	require.NoError(t, err)
	_, err = parent.Use(map[string]any{"traits": map[string]any{"theme": "dark"}})
	require.NoError(t, err)
	_, err = child.Init()
	require.NoError(t, err)
	theme, _ := child.Trait("theme")
	size, _ := child.Trait("size")
	if theme != "dark" {
		t.Errorf("expected child theme to be 'dark', is %v", theme)
	}
	if size != "m" {
		t.Errorf("expected child size to be 'm', is %v", size)
	}
}

func TestInitPropagatesOneGeneration(t *testing.T) {
	doc, _ := newTestDocument()
	root := Must(doc.New("div", map[string]any{"traits": map[string]any{"lang": "de"}}))
	mid := Must(doc.New("div"))
	leaf := Must(doc.New("span", map[string]any{"traits": map[string]any{"own": true}}))
	_, err := mid.Append(leaf) // leaf initialized before mid has traits
	require.NoError(t, err)
	_, err = root.Append(mid)
	require.NoError(t, err)
	lang, ok := leaf.Trait("lang")
	assert.True(t, ok, "mid passes its traits to its children")
	assert.Equal(t, "de", lang)
	own, _ := leaf.Trait("own")
	assert.Equal(t, true, own)
	_, ok = root.Trait("own")
	assert.False(t, ok, "traits flow downward only")
}

func TestInheritAdoptsOverFalsyOwnValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.dom")
	defer teardown()
	//
	doc, _ := newTestDocument()
	parent := Must(doc.New("div", map[string]any{
		"traits": map[string]any{"theme": map[string]any{"fg": "white"}},
	}))
	child := Must(doc.New("span", map[string]any{
		"traits": map[string]any{"theme": "", "size": "m"},
	}))
	_, err := parent.Append(child)
	require.NoError(t, err)
	theme, _ := child.Trait("theme")
	assert.Equal(t, map[string]any{"fg": "white"}, theme)
	size, _ := child.Trait("size")
	assert.Equal(t, "m", size)
}

func TestFailedInheritKeepsState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.dom")
	defer teardown()
	//
	doc, _ := newTestDocument()
	parent := Must(doc.New("div", map[string]any{
		"traits":     map[string]any{"theme": map[string]any{"fg": "white"}},
		"cssClasses": map[string]any{"x": map[string]any{"color": "red"}},
	}))
	child := Must(doc.New("span", map[string]any{
		"traits":     map[string]any{"theme": []any{"dark"}, "size": "m"},
		"cssClasses": map[string]any{"y": map[string]any{"color": "blue"}},
	}))
	_, err := parent.Append(child)
	assert.ErrorIs(t, err, merge.ErrMergeTypeMismatch)
	assert.Equal(t, []any{"dark"}, child.Traits()["theme"])
	assert.Equal(t, "m", child.Traits()["size"])
	assert.Contains(t, child.CSSClasses(), "y")
	assert.NotContains(t, child.CSSClasses(), "x", "no partial inheritance")
	//
	holder := Must(doc.New("div", map[string]any{
		"traits": map[string]any{"theme": map[string]any{"fg": "white"}},
	}))
	inner := Must(doc.New("i", map[string]any{
		"traits":     map[string]any{"theme": []any{"dark"}},
		"cssClasses": map[string]any{"y": map[string]any{"color": "blue"}},
	}))
	holder.tree.AddChild(&inner.tree) // linked without init
	_, err = holder.Init()
	assert.ErrorIs(t, err, merge.ErrMergeTypeMismatch)
	assert.Equal(t, []any{"dark"}, inner.Traits()["theme"])
	assert.Contains(t, inner.CSSClasses(), "y")
}

func TestReadyRunsOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.dom")
	defer teardown()
	//
	doc, _ := newTestDocument()
	parent := Must(doc.New("div"))
	count := 0
	var ready *Callback
	ready = Ready(func(n *Node) error {
		count++
		_, err := n.Init() // re-entrant: queued behind the running init
		return err
	})
	child := Must(doc.New("span", map[string]any{"ready": ready}))
	_, err := parent.Append(child)
	require.NoError(t, err)
	_, err = child.AppendTo(parent)
	require.NoError(t, err)
	_, err = child.Use(map[string]any{"ready": ready})
	require.NoError(t, err)
	_, err = child.Init()
	require.NoError(t, err)
	if count != 1 {
		t.Errorf("expected ready callback to run exactly once, ran %d times", count)
	}
}

func TestReadySequenceAndPendingSingle(t *testing.T) {
	doc, _ := newTestDocument()
	var order []string
	cb := func(name string) *Callback {
		return Ready(func(*Node) error { order = append(order, name); return nil })
	}
	a, b, c := cb("a"), cb("b"), cb("c")
	n := Must(doc.New("div", map[string]any{"ready": []any{a, b}}))
	_, err := n.Use(map[string]any{"ready": c})
	require.NoError(t, err)
	_, err = n.Init()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	_, err = n.Init()
	require.NoError(t, err)
	assert.Len(t, order, 3)
}

func TestReadyCompletedSentinel(t *testing.T) {
	doc, _ := newTestDocument()
	ran := false
	n := Must(doc.New("div",
		map[string]any{"ready": Ready(func(*Node) error { ran = true; return nil })},
		map[string]any{"ready": true},
	))
	_, err := n.Init()
	require.NoError(t, err)
	assert.False(t, ran, "ready=true marks initialization as completed")
}

func TestInvalidReadyCallback(t *testing.T) {
	doc, _ := newTestDocument()
	parent := Must(doc.New("div"))
	for _, ready := range []any{"soon", 42, func(*Node) error { return nil }, []any{"x"}} {
		n, err := doc.New("span", map[string]any{"ready": ready})
		require.NoError(t, err, "invalid ready settings are reported by init")
		_, err = parent.Append(n)
		if !errors.Is(err, ErrInvalidReadyCallback) {
			t.Errorf("expected ErrInvalidReadyCallback for %T, is %v", ready, err)
		}
	}
}

func TestReentrantInitIsQueued(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.dom")
	defer teardown()
	//
	doc, _ := newTestDocument()
	var order []string
	root := Must(doc.New("div"))
	grandchild := Must(doc.New("b", map[string]any{
		"callback": func(*Node) error { order = append(order, "grandchild"); return nil },
	}))
	child := Must(doc.New("p", map[string]any{
		"ready": Ready(func(n *Node) error {
			_, err := n.Append(grandchild)
			order = append(order, "child-ready")
			return err
		}),
		"callback": func(*Node) error { order = append(order, "child"); return nil },
	}))
	_, err := root.Append(child)
	require.NoError(t, err)
	assert.Equal(t, []string{"child-ready", "child", "grandchild"}, order)
	assert.Empty(t, doc.queue)
}

func TestInitErrorClearsQueue(t *testing.T) {
	doc, _ := newTestDocument()
	boom := errors.New("boom")
	root := Must(doc.New("div"))
	other := Must(doc.New("i", map[string]any{"ready": Ready(func(*Node) error {
		t.Error("queued init must not run after an error")
		return nil
	})}))
	child := Must(doc.New("p", map[string]any{"ready": Ready(func(n *Node) error {
		if _, err := n.Append(other); err != nil {
			return err
		}
		return boom
	})}))
	_, err := root.Append(child)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, doc.queue)
}

func TestTerminalCallbackRunsEveryInit(t *testing.T) {
	doc, _ := newTestDocument()
	count := 0
	n := Must(doc.New("div", map[string]any{"callback": func(*Node) { count++ }}))
	_, _ = n.Init()
	_, _ = n.Init()
	_, err := n.Use(map[string]any{"callback": func(*Node) error { count += 10; return nil }})
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestRemoveClassRestoresOverlappingStyleSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.dom")
	defer teardown()
	//
	doc, _ := newTestDocument()
	n := Must(doc.New("div", map[string]any{
		"classes": []any{"a"},
		"cssClasses": map[string]any{
			"a": map[string]any{"color": "red"},
			"b": map[string]any{"color": "blue", "font-weight": "bold"},
		},
	}))
	n.AddClass("b")
	assert.Equal(t, "blue", n.Style("color"))
	assert.Equal(t, "bold", n.Style("font-weight"))
	n.RemoveClass("b")
	assert.Equal(t, "red", n.Style("color"))
	assert.Equal(t, "", n.Style("font-weight"))
	assert.Equal(t, []string{"a"}, n.Classes())
	n.ToggleClass("a")
	assert.Equal(t, "", n.Style("color"))
}

func TestAddActiveClassReappliesStyleSet(t *testing.T) {
	doc, _ := newTestDocument()
	n := Must(doc.New("div", map[string]any{
		"classes": []any{"a", "b"},
		"cssClasses": map[string]any{
			"a": map[string]any{"color": "red"},
			"b": map[string]any{"color": "blue"},
		},
	}))
	assert.Equal(t, "blue", n.Style("color"))
	n.AddClass("a")
	assert.Equal(t, "red", n.Style("color"))
	assert.Equal(t, []string{"a", "b"}, n.Classes())
}

func TestMissingStyleSetIsNotFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.dom")
	defer teardown()
	//
	doc, r := newTestDocument()
	n := Must(doc.New("div"))
	r.reset()
	n.AddClass("plain")
	assert.True(t, n.HasClass("plain"))
	assert.Equal(t, []string{"add-class plain"}, r.calls)
}

func TestSettingsSequenceLaterWins(t *testing.T) {
	doc, _ := newTestDocument()
	n := Must(doc.New("input",
		map[string]any{"attributes": map[string]any{"type": "text", "name": "q"}, "classes": []any{"first"}},
		map[string]any{"attributes": map[string]any{"type": "search"}, "classes": []string{"second"}},
	))
	typ, _ := n.Attribute("type")
	name, _ := n.Attribute("name")
	assert.Equal(t, "search", typ)
	assert.Equal(t, "q", name)
	assert.ElementsMatch(t, []string{"first", "second"}, n.Classes())
	n = Must(doc.New("p", map[string]any{"classes": "solo"}))
	assert.Equal(t, []string{"solo"}, n.Classes())
}

func TestIDSelectorAndData(t *testing.T) {
	doc, _ := newTestDocument()
	n := Must(doc.New("section", map[string]any{
		"id":   "app#sidebar#menu",
		"text": "Menu",
		"data": map[string]any{"count": 3, "nested": map[string]any{"x": 1}},
	}))
	id, _ := n.Attribute("id")
	assert.Equal(t, "menu", id)
	assert.Equal(t, "menu", n.Selector())
	assert.Equal(t, "Menu", n.Text())
	count, _ := n.Attribute("data-count")
	assert.Equal(t, "3", count)
	_, ok := n.Attribute("data-nested")
	assert.False(t, ok, "containers are not mirrored")
	n = Must(doc.New("div", map[string]any{"id": "x", "selector": "named"}))
	assert.Equal(t, "named", n.Selector())
}

func TestActions(t *testing.T) {
	doc, _ := newTestDocument()
	var got []any
	n := Must(doc.New("button", map[string]any{
		"actions": map[string]any{
			"press": func(n *Node, args ...any) error { got = args; return nil },
			"reset": func(n *Node) error { n.SetText(""); return nil },
		},
	}))
	_, err := n.Do("press", 1, "two")
	require.NoError(t, err)
	assert.Equal(t, []any{1, "two"}, got)
	assert.Equal(t, []string{"press", "reset"}, n.Actions())
	_, err = n.Do("fly")
	assert.ErrorIs(t, err, ErrUnknownAction)
	_, err = doc.New("button", map[string]any{"actions": map[string]any{"x": "not a func"}})
	assert.ErrorIs(t, err, ErrInvalidSetting)
}

func TestMergeErrorsPropagate(t *testing.T) {
	doc, _ := newTestDocument()
	n := Must(doc.New("div", map[string]any{"classes": []any{"a"}}))
	_, err := n.Use(map[string]any{"classes": map[string]any{"a": true}})
	assert.ErrorIs(t, err, merge.ErrMergeTypeMismatch)
	n = Must(doc.New("div", map[string]any{"data": map[string]any{"self": map[string]any{}}}))
	cyclic := map[string]any{}
	cyclic["self"] = cyclic
	_, err = n.Use(map[string]any{"data": cyclic})
	assert.ErrorIs(t, err, merge.ErrMergeCycleDetected)
}

func TestStylesheetSetting(t *testing.T) {
	doc, _ := newTestDocument()
	n := Must(doc.New("div", map[string]any{
		"stylesheet": ".hl { color: yellow; font-style: italic }",
		"cssClasses": map[string]any{"hl": map[string]any{"color": "orange"}},
		"classes":    []any{"hl"},
	}))
	assert.Equal(t, "orange", n.Style("color"), "explicit style-sets win over stylesheet")
	assert.Equal(t, "italic", n.Style("font-style"))
	// an unterminated block is accepted, its last declaration stays without value
	n, err := doc.New("div", map[string]any{"stylesheet": ".open { color: red"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"color": ""}, n.CSSClasses()["open"])
	_, err = doc.New("div", map[string]any{"stylesheet": "} .stray { color: red }"})
	assert.ErrorIs(t, err, ErrInvalidSetting)
}

func TestSaveAndRestoreStyles(t *testing.T) {
	doc, r := newTestDocument()
	n := Must(doc.New("div", map[string]any{"styles": map[string]any{"color": "red", "width": 10}}))
	assert.Equal(t, "10", n.Style("width"))
	n.SaveStyles("color", "top")
	n.SetStyle("color", "blue").SetStyle("top", "5px")
	n.RestoreStyles()
	assert.Equal(t, "red", n.Style("color"))
	assert.Equal(t, "", n.Style("top"))
	n.SetValue(7)
	assert.Equal(t, "7", n.Value())
	assert.Equal(t, 100.0, n.Dims().Width)
	n.ScrollTo(12).ScrollIntoView()
	assert.True(t, r.called("scroll-top div=12"))
}

func TestIdentityGenerator(t *testing.T) {
	r := newFakeRenderer()
	doc := NewDocument(r, WithIDGenerator(&startAt{next: 100}))
	a := Must(doc.New("div"))
	b := Must(doc.New("div"))
	assert.Equal(t, uint64(100), a.ID())
	assert.Equal(t, uint64(101), b.ID())
	found, err := doc.Lookup(101)
	require.NoError(t, err)
	assert.Same(t, b, found)
	_, err = doc.Lookup(7)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

type startAt struct{ next uint64 }

func (s *startAt) Next() uint64 {
	s.next++
	return s.next - 1
}

func TestDefaults(t *testing.T) {
	r := newFakeRenderer()
	doc := NewDocument(r, WithDefaults(map[string]any{
		"classes": []any{"base"},
		"traits":  map[string]any{"theme": "plain"},
	}))
	n := Must(doc.New("div", map[string]any{"classes": []any{"own"}}))
	assert.ElementsMatch(t, []string{"base", "own"}, n.Classes())
	theme, _ := n.Trait("theme")
	assert.Equal(t, "plain", theme)
}
