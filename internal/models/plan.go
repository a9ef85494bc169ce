package models

import (
	"time"

	"github.com/google/uuid"
)

// Set is one prescribed set: a load paired with a rep target.
type Set struct {
	Load Load `json:"load"`
	Reps Reps `json:"reps"`
}

// Prescription is one element's output for a single workout.
type Prescription struct {
	Lift string `json:"lift"`
	Sets []Set  `json:"sets"`
}

// Entry is one slot of a workout: either a single prescription or a
// superset group performed back to back.
type Entry struct {
	Prescription *Prescription  `json:"prescription,omitempty"`
	Superset     []Prescription `json:"superset,omitempty"`
}

// IsSuperset reports whether the entry groups several prescriptions.
func (e Entry) IsSuperset() bool {
	return e.Prescription == nil
}

// Prescriptions returns the entry's prescriptions in order, one for a
// single entry and every member for a superset.
func (e Entry) Prescriptions() []Prescription {
	if e.Prescription != nil {
		return []Prescription{*e.Prescription}
	}
	return e.Superset
}

// Workout is one session's prescription across all of its elements.
type Workout struct {
	Session string  `json:"session"`
	Entries []Entry `json:"entries"`
}

// Week holds one workout per session type.
type Week []Workout

// Cycle is one wave of weeks.
type Cycle []Week

// LiftMax records a lift's training max at a point in the plan.
type LiftMax struct {
	Lift        string  `json:"lift"`
	TrainingMax float64 `json:"training_max"`
}

// LiftRecord is an athlete's personal record for a lift, as entered or
// estimated from a rep max.
type LiftRecord struct {
	Lift           string  `json:"lift"`
	PersonalRecord float64 `json:"personal_record"`
}

// PlanCycle is a generated cycle with the training maxes it was computed against.
type PlanCycle struct {
	Number        int       `json:"number"`
	TrainingMaxes []LiftMax `json:"training_maxes"`
	Weeks         Cycle     `json:"weeks"`
}

// Plan is a complete generated program, ready for rendering.
type Plan struct {
	ID            uuid.UUID         `json:"id"`
	Preset        string            `json:"preset"`
	Program       string            `json:"program"`
	Athlete       string            `json:"athlete"`
	Notes         string            `json:"notes,omitempty"`
	Meta          map[string]string `json:"meta,omitempty"`
	Records       []LiftRecord      `json:"personal_records"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Cycles        []PlanCycle       `json:"cycles"`
	TrainingNotes []string          `json:"training_notes,omitempty"`
}
