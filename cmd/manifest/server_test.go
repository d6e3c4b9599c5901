package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/npillmayer/manifest/blueprint"
	"github.com/npillmayer/manifest/dom"
	"github.com/npillmayer/manifest/eventbus"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testView(t *testing.T, bus *eventbus.Bus) *view {
	t.Helper()
	bp, err := blueprint.Load("../../blueprint/testdata/menu.yaml")
	require.NoError(t, err)
	var opts []dom.Option
	if bus != nil {
		opts = append(opts, dom.WithEventBus(bus))
	}
	v, err := build(bp, opts)
	require.NoError(t, err)
	return v
}

func TestRenderFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.dom")
	defer teardown()
	//
	v := testView(t, nil)
	var out bytes.Buffer
	require.NoError(t, v.write(&out, "html"))
	assert.Contains(t, out.String(), "<title>Menu</title>")
	assert.Contains(t, out.String(), `<li class="active" style="color: red;">Home</li>`)
	out.Reset()
	require.NoError(t, v.write(&out, "tree"))
	assert.Contains(t, out.String(), "ul #menu .menu")
	out.Reset()
	require.NoError(t, v.write(&out, "dot"))
	assert.Contains(t, out.String(), "digraph")
	assert.Error(t, v.write(&out, "pdf"))
}

func TestServePage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.dom")
	defer teardown()
	//
	srv := httptest.NewServer(newHandler(testView(t, nil)))
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestToggleClassPublishes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "manifest.dom")
	defer teardown()
	//
	bus := eventbus.New()
	var got map[string]any
	_, err := bus.Subscribe("toggled", func(event string, payload any) {
		got, _ = payload.(map[string]any)
	}, false)
	require.NoError(t, err)
	v := testView(t, bus)
	h := newHandler(v)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/nodes/home/classes/active", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, false, got["active"])

	var out bytes.Buffer
	require.NoError(t, v.write(&out, "html"))
	assert.NotContains(t, out.String(), `class="active"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/nodes/nowhere/classes/active", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `manifest_class_toggles_total{class="active"} 1`)
}
