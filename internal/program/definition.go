// Package program turns YAML program definitions and athlete input into
// generated plans.
package program

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meltforce/barbell/internal/barbell"
	"github.com/meltforce/barbell/internal/models"
)

var (
	ErrInvalidDefinition = errors.New("invalid program definition")
	ErrUnknownElement    = errors.New("unknown element")
)

// Definition is a program as written in YAML.
type Definition struct {
	Name       string                `yaml:"name" json:"name"`
	Notes      string                `yaml:"notes" json:"notes,omitempty"`
	WaveLength int                   `yaml:"wave_length" json:"wave_length,omitempty"`
	Modulation []ModulationDef       `yaml:"modulation" json:"modulation,omitempty"`
	MainLifts  []MainLiftDef         `yaml:"main_lifts" json:"main_lifts"`
	Lifts      []LiftDef             `yaml:"lifts" json:"lifts,omitempty"`
	Elements   map[string]ElementDef `yaml:"elements" json:"elements"`
	Sessions   []SessionDef          `yaml:"sessions" json:"sessions"`
}

// MainLiftDef is a lift whose training max comes from the athlete's max.
// Increment is "large" or "small".
type MainLiftDef struct {
	Name      string `yaml:"name" json:"name"`
	Increment string `yaml:"increment" json:"increment"`
}

// LiftDef is a lift fixed by the program, typically accessory work with no
// training max.
type LiftDef struct {
	Name        string   `yaml:"name" json:"name"`
	TrainingMax float64  `yaml:"training_max" json:"training_max,omitempty"`
	Increment   *float64 `yaml:"increment" json:"increment,omitempty"`
}

type ModulationDef struct {
	Cycles int      `yaml:"cycles" json:"cycles"`
	Amount *float64 `yaml:"amount" json:"amount,omitempty"`
}

// ElementDef holds raw load and rep units: numbers are fractions of the
// training max, strings are labels and null is no load.
type ElementDef struct {
	Name             string  `yaml:"name" json:"name"`
	LoadCoefficients [][]any `yaml:"load_coefficients" json:"load_coefficients"`
	Scheme           [][]any `yaml:"scheme" json:"scheme"`
}

type SessionDef struct {
	Name     string    `yaml:"name" json:"name"`
	Elements []SlotDef `yaml:"elements" json:"elements"`
}

// SlotDef is either Element+Lift or a Superset.
type SlotDef struct {
	Element  string   `yaml:"element" json:"element,omitempty"`
	Lift     string   `yaml:"lift" json:"lift,omitempty"`
	Superset []RefDef `yaml:"superset" json:"superset,omitempty"`
}

type RefDef struct {
	Element string `yaml:"element" json:"element"`
	Lift    string `yaml:"lift" json:"lift"`
}

// Parse decodes and validates a YAML program definition.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing program definition: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if len(d.Sessions) == 0 {
		return fmt.Errorf("%w: %q has no sessions", ErrInvalidDefinition, d.Name)
	}
	if d.WaveLength < 0 {
		return fmt.Errorf("%w: wave_length must not be negative", ErrInvalidDefinition)
	}
	for _, ml := range d.MainLifts {
		if ml.Name == "" {
			return fmt.Errorf("%w: main lift without a name", ErrInvalidDefinition)
		}
		if ml.Increment != "large" && ml.Increment != "small" {
			return fmt.Errorf("%w: main lift %q: increment must be large or small", ErrInvalidDefinition, ml.Name)
		}
	}
	// Catch bad units and element names now rather than on first use.
	if _, err := d.Config(); err != nil {
		return err
	}
	return nil
}

// MainLiftNames returns the lifts an athlete must supply maxes for.
func (d *Definition) MainLiftNames() []string {
	names := make([]string, len(d.MainLifts))
	for i, ml := range d.MainLifts {
		names[i] = ml.Name
	}
	return names
}

// Summary describes the definition under key.
func (d *Definition) Summary(key string) models.PresetSummary {
	s := models.PresetSummary{
		Key:        key,
		Name:       d.Name,
		Notes:      d.Notes,
		WaveLength: d.WaveLength,
		MainLifts:  d.MainLiftNames(),
	}
	if s.WaveLength == 0 {
		s.WaveLength = barbell.DefaultWaveLength
	}
	for _, sd := range d.Sessions {
		s.Sessions = append(s.Sessions, sd.Name)
	}
	return s
}

// Config resolves element names and unit values into a mesocycle
// configuration.
func (d *Definition) Config() (barbell.MesocycleConfig, error) {
	elements := make(map[string]barbell.ElementConfig, len(d.Elements))
	for key, ed := range d.Elements {
		ec, err := ed.config(key)
		if err != nil {
			return barbell.MesocycleConfig{}, err
		}
		elements[key] = ec
	}

	ref := func(session, element, lift string) (barbell.ElementRef, error) {
		ec, ok := elements[element]
		if !ok {
			return barbell.ElementRef{}, fmt.Errorf("session %q: %q: %w", session, element, ErrUnknownElement)
		}
		return barbell.Ref(ec, lift), nil
	}

	cfg := barbell.MesocycleConfig{
		Name:       d.Name,
		Notes:      d.Notes,
		WaveLength: d.WaveLength,
	}
	for _, m := range d.Modulation {
		cfg.Modulation = append(cfg.Modulation, barbell.Modulation{Cycles: m.Cycles, Amount: m.Amount})
	}
	for _, sd := range d.Sessions {
		sc := barbell.SessionConfig{Name: sd.Name}
		for i, slot := range sd.Elements {
			switch {
			case len(slot.Superset) > 0 && slot.Element == "":
				refs := make([]barbell.ElementRef, 0, len(slot.Superset))
				for _, rd := range slot.Superset {
					r, err := ref(sd.Name, rd.Element, rd.Lift)
					if err != nil {
						return barbell.MesocycleConfig{}, err
					}
					refs = append(refs, r)
				}
				sc.Elements = append(sc.Elements, barbell.Superset(refs...))
			case len(slot.Superset) == 0 && slot.Element != "":
				r, err := ref(sd.Name, slot.Element, slot.Lift)
				if err != nil {
					return barbell.MesocycleConfig{}, err
				}
				sc.Elements = append(sc.Elements, barbell.Single(r.Element, r.Lift))
			default:
				return barbell.MesocycleConfig{}, fmt.Errorf("%w: session %q slot %d needs element or superset", ErrInvalidDefinition, sd.Name, i+1)
			}
		}
		cfg.Sessions = append(cfg.Sessions, sc)
	}
	return cfg, nil
}

func (ed ElementDef) config(key string) (barbell.ElementConfig, error) {
	name := ed.Name
	if name == "" {
		name = key
	}
	ec := barbell.ElementConfig{Name: name}
	for _, entry := range ed.LoadCoefficients {
		units := make([]models.LoadUnit, 0, len(entry))
		for _, v := range entry {
			u, err := loadUnit(v)
			if err != nil {
				return ec, fmt.Errorf("%w: element %q: %v", ErrInvalidDefinition, key, err)
			}
			if u.Kind == models.UnitFraction && u.Fraction < 0 {
				return ec, fmt.Errorf("%w: element %q: negative load %s", ErrInvalidDefinition, key, u)
			}
			units = append(units, u)
		}
		ec.LoadCoefficients = append(ec.LoadCoefficients, units)
	}
	for _, entry := range ed.Scheme {
		reps := make([]models.Reps, 0, len(entry))
		for _, v := range entry {
			r, err := repUnit(v)
			if err != nil {
				return ec, fmt.Errorf("%w: element %q: %v", ErrInvalidDefinition, key, err)
			}
			reps = append(reps, r)
		}
		ec.Scheme = append(ec.Scheme, reps)
	}
	if err := ec.Validate(); err != nil {
		return ec, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return ec, nil
}

func loadUnit(v any) (models.LoadUnit, error) {
	switch t := v.(type) {
	case nil:
		return models.NoLoad(), nil
	case int:
		return models.Fraction(float64(t)), nil
	case float64:
		return models.Fraction(t), nil
	case string:
		if strings.TrimSpace(t) == "" {
			return models.LoadUnit{}, fmt.Errorf("empty load label")
		}
		return models.Label(t), nil
	default:
		return models.LoadUnit{}, fmt.Errorf("unsupported load %v (%T)", v, v)
	}
}

func repUnit(v any) (models.Reps, error) {
	switch t := v.(type) {
	case int:
		return models.Count(t), nil
	case float64:
		if t != float64(int(t)) {
			return models.Reps{}, fmt.Errorf("fractional reps %v", t)
		}
		return models.Count(int(t)), nil
	case string:
		if strings.TrimSpace(t) == "" {
			return models.Reps{}, fmt.Errorf("empty rep label")
		}
		return models.RepLabel(t), nil
	default:
		return models.Reps{}, fmt.Errorf("unsupported reps %v (%T)", v, v)
	}
}
