package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscad-forge/customizer/internal/customizer"
	"github.com/openscad-forge/customizer/internal/state"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := state.NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return New(Config{Store: store, Port: 0})
}

func postJSON(t *testing.T, h http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleParse(t *testing.T) {
	h := newTestServer(t).Router()

	rec := postJSON(t, h, "/api/parse", parseRequest{Source: "width = 40; // [10:100]"})
	require.Equal(t, http.StatusOK, rec.Code)

	var schema customizer.Schema
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	p := schema.Parameters["width"]
	require.NotNil(t, p)
	assert.Equal(t, customizer.UISlider, p.UIType)
	assert.Equal(t, 40.0, p.Default.Num)
}

func TestHandleParse_BadBody(t *testing.T) {
	h := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodPost, "/api/parse", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleVisibility(t *testing.T) {
	h := newTestServer(t).Router()

	src := "mode = \"basic\"; // [basic, advanced]\ndetail = 3; // @depends(mode==advanced)\n"
	rec := postJSON(t, h, "/api/visibility", visibilityRequest{
		Source: src,
		Values: map[string]string{"mode": "advanced"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var vis map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vis))
	assert.True(t, vis["detail"])
	assert.True(t, vis["mode"])
}

func TestPresetLifecycle(t *testing.T) {
	h := newTestServer(t).Router()

	rec := postJSON(t, h, "/api/presets/", presetRequest{
		Model:  "plate.scad",
		Name:   "tall",
		Values: map[string]string{"height": "80"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/presets/?model=plate.scad", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var presets []*state.Preset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &presets))
	require.Len(t, presets, 1)
	assert.Equal(t, "tall", presets[0].Name)

	req = httptest.NewRequest(http.MethodDelete, "/api/presets/?model=plate.scad&name=tall", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/presets/?model=plate.scad&name=tall", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleEmit(t *testing.T) {
	h := newTestServer(t).Router()

	schema := customizer.Parse("width = 40;")
	rec := postJSON(t, h, "/api/emit", emitRequest{Schema: schema})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "width = 40;")
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
