package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MaxInput is a lift max as entered by the athlete: a plain 1RM ("400")
// or rep-max notation ("5x300"). JSON numbers are accepted as well.
type MaxInput string

func (m *MaxInput) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*m = MaxInput(strconv.FormatFloat(t, 'f', -1, 64))
	case string:
		*m = MaxInput(t)
	default:
		return fmt.Errorf("max: unexpected JSON value %s", data)
	}
	return nil
}

// Athlete holds the inputs a program is generated from.
type Athlete struct {
	Name  string              `json:"name" yaml:"name"`
	Maxes map[string]MaxInput `json:"maxes" yaml:"maxes"`
	// Light halves the training max jumps between cycles.
	Light bool `json:"light" yaml:"light"`
	// BarbellWeight defaults to 45 when zero.
	BarbellWeight float64 `json:"barbell_weight,omitempty" yaml:"barbell_weight"`
	// TrainingMaxScale defaults to 0.9 when zero.
	TrainingMaxScale float64 `json:"training_max_scale,omitempty" yaml:"training_max_scale"`
	// Cycles defaults to 2 when zero.
	Cycles int `json:"cycles,omitempty" yaml:"cycles"`
}

// PlanRequest asks for a plan from a named preset.
type PlanRequest struct {
	Preset string `json:"preset"`
	Athlete
	IncludeNotes bool `json:"include_notes,omitempty"`
}

// PresetSummary describes an available program preset.
type PresetSummary struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Notes      string   `json:"notes,omitempty"`
	WaveLength int      `json:"wave_length"`
	MainLifts  []string `json:"main_lifts"`
	Sessions   []string `json:"sessions"`
}
