package barbell

import (
	"errors"
	"fmt"

	"github.com/meltforce/barbell/internal/models"
)

var (
	ErrEmptyLoadCoefficients = errors.New("element has no load coefficients")
	ErrEmptyScheme           = errors.New("element has no rep scheme")
)

// ElementConfig is a named progression.
//
// LoadCoefficients holds one entry per session; each entry lists one load
// unit per set, so it decides both how many distinct sessions exist and
// how many sets each has. Scheme holds rep targets per session and cycles
// independently: a shorter scheme list repeats, a shorter rep entry is
// repeated to cover every load of the session, and rep targets beyond the
// number of loads are dropped.
type ElementConfig struct {
	Name             string
	LoadCoefficients [][]models.LoadUnit
	Scheme           [][]models.Reps
}

// Validate rejects configurations that cannot produce a session.
func (c ElementConfig) Validate() error {
	if len(c.LoadCoefficients) == 0 {
		return fmt.Errorf("element %q: %w", c.Name, ErrEmptyLoadCoefficients)
	}
	for i, loads := range c.LoadCoefficients {
		if len(loads) == 0 {
			return fmt.Errorf("element %q: session %d: %w", c.Name, i+1, ErrEmptyLoadCoefficients)
		}
	}
	if len(c.Scheme) == 0 {
		return fmt.Errorf("element %q: %w", c.Name, ErrEmptyScheme)
	}
	for i, reps := range c.Scheme {
		if len(reps) == 0 {
			return fmt.Errorf("element %q: session %d: %w", c.Name, i+1, ErrEmptyScheme)
		}
	}
	return nil
}

// Element generates one lift's prescriptions, session after session.
type Element struct {
	config      ElementConfig
	lift        *Lift
	loadIndex   int
	schemeIndex int
}

// NewElement binds cfg to lift.
func NewElement(cfg ElementConfig, lift *Lift) (*Element, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Element{config: cfg, lift: lift}, nil
}

// Next returns the next session's sets and advances both cursors, wrapping
// each at the end of its list. Loads are computed from the lift's training
// max at call time.
func (e *Element) Next() models.Prescription {
	if e.loadIndex == len(e.config.LoadCoefficients) {
		e.loadIndex = 0
	}
	units := e.config.LoadCoefficients[e.loadIndex]
	e.loadIndex++

	loads := make([]models.Load, len(units))
	for i, u := range units {
		loads[i] = e.resolve(u)
	}

	if e.schemeIndex == len(e.config.Scheme) {
		e.schemeIndex = 0
	}
	reps := e.config.Scheme[e.schemeIndex]
	e.schemeIndex++

	scale := (len(loads) + len(reps) - 1) / len(reps)
	queue := make([]models.Reps, 0, scale*len(reps))
	for range scale {
		queue = append(queue, reps...)
	}

	sets := make([]models.Set, len(loads))
	for i, load := range loads {
		sets[i] = models.Set{Load: load, Reps: queue[i]}
	}
	return models.Prescription{Lift: e.lift.Name, Sets: sets}
}

func (e *Element) resolve(u models.LoadUnit) models.Load {
	switch u.Kind {
	case models.UnitFraction:
		return models.Weight(RoundWeight(u.Fraction*e.lift.TrainingMax, DefaultPrecision, e.lift.BarbellWeight))
	case models.UnitLabel:
		return models.LabelLoad(u.Label)
	default:
		return models.Load{}
	}
}
