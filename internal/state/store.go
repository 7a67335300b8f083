// Package state persists named parameter presets in SQLite. A preset
// is a snapshot of Customizer values for one model file; applying it
// overlays those values on the schema defaults.
package state

import (
	"time"

	"github.com/openscad-forge/customizer/internal/customizer"
	"github.com/openscad-forge/customizer/internal/visibility"
)

// Preset is a stored set of parameter values for a model.
type Preset struct {
	ID        string            `json:"id"`
	Model     string            `json:"model"`
	Name      string            `json:"name"`
	Values    map[string]string `json:"values"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Store is the preset persistence interface.
type Store interface {
	SavePreset(model, name string, values map[string]string) (*Preset, error)
	GetPreset(model, name string) (*Preset, error)
	ListPresets(model string) ([]*Preset, error)
	DeletePreset(model, name string) error
	Close() error
}

// Apply overlays a preset onto schema defaults, skipping values whose
// parameter no longer exists in the schema.
func Apply(schema *customizer.Schema, p *Preset) visibility.Values {
	values := visibility.DefaultValues(schema)
	for name, value := range p.Values {
		if _, ok := schema.Parameters[name]; ok {
			values[name] = value
		}
	}
	return values
}
