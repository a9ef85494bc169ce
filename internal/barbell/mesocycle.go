package barbell

import (
	"fmt"

	"github.com/meltforce/barbell/internal/models"
)

// DefaultWaveLength is the number of weeks in one generated cycle.
const DefaultWaveLength = 3

// Modulation is one step of a training max schedule: once Cycles cycles
// have been generated, every lift's training max goes up by Amount, or by
// the lift's own increment when Amount is nil.
type Modulation struct {
	Cycles int
	Amount *float64
}

// MesocycleConfig describes a program: its session types and how training
// maxes move between cycles.
type MesocycleConfig struct {
	Name     string
	Notes    string
	Sessions []SessionConfig
	// WaveLength is the number of pulls per cycle; zero means DefaultWaveLength.
	WaveLength int
	// Modulation is applied in order and wraps. Empty means every lift
	// goes up by its increment after every cycle.
	Modulation []Modulation
}

// Mesocycle owns a roster and one Session per configured session type.
type Mesocycle struct {
	config     MesocycleConfig
	roster     Roster
	sessions   []*Session
	modIndex   int
	modCounter int
}

// NewMesocycle instantiates every session in cfg against roster.
func NewMesocycle(cfg MesocycleConfig, roster Roster) (*Mesocycle, error) {
	m := &Mesocycle{config: cfg, roster: roster}
	for _, sc := range cfg.Sessions {
		s, err := NewSession(sc, roster)
		if err != nil {
			return nil, fmt.Errorf("mesocycle %q: %w", cfg.Name, err)
		}
		m.sessions = append(m.sessions, s)
	}
	return m, nil
}

// WaveLength returns the number of weeks GenerateCycle produces.
func (m *Mesocycle) WaveLength() int {
	if m.config.WaveLength > 0 {
		return m.config.WaveLength
	}
	return DefaultWaveLength
}

// GenerateCycle pulls every session once per week of the wave.
func (m *Mesocycle) GenerateCycle() models.Cycle {
	n := m.WaveLength()
	cycle := make(models.Cycle, 0, n)
	for range n {
		week := make(models.Week, 0, len(m.sessions))
		for _, s := range m.sessions {
			week = append(week, s.Next())
		}
		cycle = append(cycle, week)
	}
	return cycle
}

// IncreaseTrainingMaxes bumps every lift in the roster by its increment.
// Elements read training maxes when pulled, so the next cycle picks the
// change up.
func (m *Mesocycle) IncreaseTrainingMaxes() {
	for _, l := range m.roster {
		l.IncreaseTrainingMax()
	}
}

// Modulate advances the training max schedule by one cycle.
func (m *Mesocycle) Modulate() {
	if len(m.config.Modulation) == 0 {
		m.IncreaseTrainingMaxes()
		return
	}
	step := m.config.Modulation[m.modIndex]
	m.modCounter++
	if m.modCounter < max(step.Cycles, 1) {
		return
	}
	for _, l := range m.roster {
		if step.Amount == nil {
			l.IncreaseTrainingMax()
		} else {
			l.IncreaseTrainingMaxBy(*step.Amount)
		}
	}
	m.modCounter = 0
	m.modIndex = (m.modIndex + 1) % len(m.config.Modulation)
}

// Run generates n cycles, modulating training maxes between them. Each
// cycle records the training maxes it was computed against.
func (m *Mesocycle) Run(n int) []models.PlanCycle {
	cycles := make([]models.PlanCycle, 0, n)
	for i := range n {
		if i > 0 {
			m.Modulate()
		}
		cycles = append(cycles, models.PlanCycle{
			Number:        i + 1,
			TrainingMaxes: m.TrainingMaxes(),
			Weeks:         m.GenerateCycle(),
		})
	}
	return cycles
}

// TrainingMaxes snapshots the roster's current training maxes.
func (m *Mesocycle) TrainingMaxes() []models.LiftMax {
	out := make([]models.LiftMax, 0, len(m.roster))
	for _, l := range m.roster {
		out = append(out, models.LiftMax{Lift: l.Name, TrainingMax: l.TrainingMax})
	}
	return out
}
