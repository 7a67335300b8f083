package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscad-forge/customizer/internal/customizer"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore()
	require.NoError(t, s.Open(":memory:"))
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)

	saved, err := s.SavePreset("plate.scad", "tall", map[string]string{"height": "80"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	got, err := s.GetPreset("plate.scad", "tall")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, map[string]string{"height": "80"}, got.Values)
}

func TestSQLiteStore_SaveOverwritesSameName(t *testing.T) {
	s := newTestStore(t)

	first, err := s.SavePreset("plate.scad", "tall", map[string]string{"height": "80"})
	require.NoError(t, err)
	second, err := s.SavePreset("plate.scad", "tall", map[string]string{"height": "90"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "overwrite must keep the preset id")

	presets, err := s.ListPresets("plate.scad")
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, "90", presets[0].Values["height"])
}

func TestSQLiteStore_ListScopedToModel(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SavePreset("plate.scad", "a", nil)
	require.NoError(t, err)
	_, err = s.SavePreset("box.scad", "b", nil)
	require.NoError(t, err)

	presets, err := s.ListPresets("plate.scad")
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, "a", presets[0].Name)
}

func TestSQLiteStore_DeleteMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.DeletePreset("plate.scad", "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetPreset("plate.scad", "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApply_SkipsUnknownParameters(t *testing.T) {
	schema := customizer.Parse("width = 40;\nheight = 20;")
	p := &Preset{Values: map[string]string{"width": "55", "legacy": "1"}}

	values := Apply(schema, p)
	assert.Equal(t, "55", values["width"])
	assert.Equal(t, "20", values["height"])
	_, hasLegacy := values["legacy"]
	assert.False(t, hasLegacy, "values for removed parameters must be dropped")
}
