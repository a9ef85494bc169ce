package program

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/meltforce/barbell/internal/barbell"
	"github.com/meltforce/barbell/internal/models"
	"github.com/meltforce/barbell/internal/onerm"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrMissingMax   = fmt.Errorf("%w: missing max", ErrInvalidInput)
)

const (
	DefaultTrainingMaxScale = 0.9
	DefaultCycles           = 2
	MaxCycles               = 12
)

// Increments between cycles, by lift size and program weight.
var increments = map[bool]map[string]float64{
	false: {"large": 10, "small": 5},
	true:  {"large": 5, "small": 2.5},
}

// withDefaults fills zero fields of a.
func withDefaults(a models.Athlete) models.Athlete {
	if a.BarbellWeight == 0 {
		a.BarbellWeight = barbell.DefaultBarbellWeight
	}
	if a.TrainingMaxScale == 0 {
		a.TrainingMaxScale = DefaultTrainingMaxScale
	}
	if a.Cycles == 0 {
		a.Cycles = DefaultCycles
	}
	return a
}

func validateAthlete(a models.Athlete) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if a.BarbellWeight < 0 {
		return fmt.Errorf("%w: barbell_weight must not be negative", ErrInvalidInput)
	}
	if a.TrainingMaxScale <= 0 || a.TrainingMaxScale > 1 {
		return fmt.Errorf("%w: training_max_scale must be in (0, 1]", ErrInvalidInput)
	}
	if a.Cycles < 1 || a.Cycles > MaxCycles {
		return fmt.Errorf("%w: cycles must be between 1 and %d", ErrInvalidInput, MaxCycles)
	}
	return nil
}

// Roster builds the lifts for d from the athlete's maxes. Main lifts get
// a training max of TrainingMaxScale times their 1RM; fixed lifts come
// from the definition. records lists the parsed maxes in main lift order.
func (d *Definition) Roster(a models.Athlete) (roster barbell.Roster, records []models.LiftRecord, err error) {
	bar := barbell.Float(a.BarbellWeight)
	// A scale of exactly 1 would read as a literal training max of 1.
	scale := a.TrainingMaxScale
	if scale >= 1 {
		scale = 0
	}
	for _, ml := range d.MainLifts {
		raw, ok := a.Maxes[ml.Name]
		if !ok || strings.TrimSpace(string(raw)) == "" {
			return nil, nil, fmt.Errorf("%w for %q", ErrMissingMax, ml.Name)
		}
		pr, err := onerm.Parse(string(raw))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q: %w", ErrInvalidInput, ml.Name, err)
		}
		roster = append(roster, barbell.NewLift(barbell.LiftConfig{
			Name:           ml.Name,
			PersonalRecord: barbell.Float(pr),
			TrainingMax:    scale,
			Increment:      barbell.Float(increments[a.Light][ml.Increment]),
			BarbellWeight:  bar,
		}))
		records = append(records, models.LiftRecord{Lift: ml.Name, PersonalRecord: pr})
	}
	for _, ld := range d.Lifts {
		roster = append(roster, barbell.NewLift(barbell.LiftConfig{
			Name:          ld.Name,
			TrainingMax:   ld.TrainingMax,
			Increment:     ld.Increment,
			BarbellWeight: bar,
		}))
	}
	return roster, records, nil
}

// meta describes the inputs a plan was generated from.
func meta(a models.Athlete, records []models.LiftRecord) map[string]string {
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = r.Lift + " " + formatWeight(r.PersonalRecord)
	}
	return map[string]string{
		"Generated from PRs":  strings.Join(parts, ", "),
		"Light Program Jumps": strconv.FormatBool(a.Light),
		"Barbell Used":        formatWeight(a.BarbellWeight),
	}
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
