package blueprint

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/manifest/dom"
	"github.com/npillmayer/manifest/dom/htmlrender"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.blueprint", "manifest.dom")
	defer teardown()
	//
	bp, err := Load("testdata/menu.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Menu", bp.Title)
	assert.Equal(t, 3, bp.Count())
	//
	doc := dom.NewDocument(htmlrender.New())
	root, err := bp.Build(doc)
	require.NoError(t, err)
	page := htmlrender.NewPage(bp.Title)
	_, err = root.AppendToElement(page.Body)
	require.NoError(t, err)
	//
	home, ok := root.Select("home", false)
	require.True(t, ok)
	assert.Equal(t, "red", home.Style("color"), "style-set inherited from the root stylesheet")
	about := root.Children()[1]
	theme, _ := about.Trait("theme")
	size, _ := about.Trait("size")
	assert.Equal(t, "dark", theme, "parent traits win")
	assert.Equal(t, "m", size)
	//
	var out strings.Builder
	require.NoError(t, page.Render(&out))
	t.Logf("html = %s", out.String())
	assert.Contains(t, out.String(), `<li class="active" style="color: red;">Home</li>`)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("settings: {}\n"))
	assert.True(t, errors.Is(err, ErrMissingTag), "expected ErrMissingTag, is %v", err)
	_, err = Parse([]byte("tag: div\nchildren:\n  - settings: {}\n"))
	assert.ErrorIs(t, err, ErrMissingTag)
	assert.Contains(t, err.Error(), "root.children[0]")
	_, err = Parse([]byte("tag: div\ncolour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestEncodeRoundTrip(t *testing.T) {
	bp := &Blueprint{Tag: "div", Children: []*Blueprint{{Tag: "p", Settings: map[string]any{"text": "x"}}}}
	var b strings.Builder
	require.NoError(t, bp.Encode(&b))
	again, err := Parse([]byte(b.String()))
	require.NoError(t, err)
	assert.Equal(t, bp, again)
}

func TestBuildPropagatesSettingErrors(t *testing.T) {
	bp := &Blueprint{Tag: "div", Children: []*Blueprint{{Tag: "p", Settings: map[string]any{"ready": "soon"}}}}
	_, err := bp.Build(dom.NewDocument(htmlrender.New()))
	assert.ErrorIs(t, err, dom.ErrInvalidReadyCallback)
	assert.Contains(t, err.Error(), "root.children[0]")
}
