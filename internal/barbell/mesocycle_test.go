package barbell

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meltforce/barbell/internal/models"
)

var steps = ElementConfig{
	Name:             "Steps",
	LoadCoefficients: [][]models.LoadUnit{fractions(0.5), fractions(0.6), fractions(0.7)},
	Scheme:           [][]models.Reps{counts(5)},
}

func firstWeights(c models.Cycle) []int {
	var out []int
	for _, week := range c {
		out = append(out, week[0].Entries[0].Prescriptions()[0].Sets[0].Load.Weight)
	}
	return out
}

func newSteps(t *testing.T, mods []Modulation) (*Mesocycle, *Lift) {
	t.Helper()
	lift := NewLift(LiftConfig{Name: "Squat", TrainingMax: 100})
	m, err := NewMesocycle(MesocycleConfig{
		Name:       "Steps",
		Sessions:   []SessionConfig{{Name: "Squat", Elements: []ElementSpec{Single(steps, "Squat")}}},
		Modulation: mods,
	}, Roster{lift})
	if err != nil {
		t.Fatalf("NewMesocycle: %v", err)
	}
	return m, lift
}

// TestGenerateCycleLength verifies the default wave length and week layout.
func TestGenerateCycleLength(t *testing.T) {
	m, _ := newSteps(t, nil)
	c := m.GenerateCycle()
	if len(c) != DefaultWaveLength {
		t.Fatalf("len(cycle) = %d, want %d", len(c), DefaultWaveLength)
	}
	for i, week := range c {
		if len(week) != 1 {
			t.Errorf("week %d has %d workouts, want 1", i+1, len(week))
		}
	}
	if diff := cmp.Diff([]int{50, 60, 70}, firstWeights(c)); diff != "" {
		t.Errorf("weights mismatch (-want +got):\n%s", diff)
	}
}

// TestWaveLengthOverride verifies a configured wave length.
func TestWaveLengthOverride(t *testing.T) {
	lift := NewLift(LiftConfig{Name: "Squat", TrainingMax: 100})
	m, err := NewMesocycle(MesocycleConfig{
		Sessions:   []SessionConfig{{Name: "Squat", Elements: []ElementSpec{Single(steps, "Squat")}}},
		WaveLength: 4,
	}, Roster{lift})
	if err != nil {
		t.Fatalf("NewMesocycle: %v", err)
	}
	if got := len(m.GenerateCycle()); got != 4 {
		t.Errorf("len(cycle) = %d, want 4", got)
	}
}

// TestRunIncreasesBetweenCycles verifies that the second cycle uses the bumped training max.
func TestRunIncreasesBetweenCycles(t *testing.T) {
	m, lift := newSteps(t, nil)
	cycles := m.Run(2)
	if len(cycles) != 2 {
		t.Fatalf("len(cycles) = %d, want 2", len(cycles))
	}
	if diff := cmp.Diff([]int{55, 65, 75}, firstWeights(cycles[1].Weeks)); diff != "" {
		t.Errorf("second cycle mismatch (-want +got):\n%s", diff)
	}
	if lift.TrainingMax != 110 {
		t.Errorf("TrainingMax = %v, want 110", lift.TrainingMax)
	}
	if cycles[0].TrainingMaxes[0].TrainingMax != 100 || cycles[1].TrainingMaxes[0].TrainingMax != 110 {
		t.Errorf("cycle training maxes = %v, %v, want 100 then 110", cycles[0].TrainingMaxes, cycles[1].TrainingMaxes)
	}
	if cycles[1].Number != 2 {
		t.Errorf("Number = %d, want 2", cycles[1].Number)
	}
}

// TestModulateSchedule verifies that a schedule holds, bumps and wraps.
func TestModulateSchedule(t *testing.T) {
	m, lift := newSteps(t, []Modulation{
		{Cycles: 2},
		{Cycles: 1, Amount: Float(5)},
	})
	want := []float64{100, 110, 115, 115, 125, 130}
	for i, w := range want {
		m.Modulate()
		if lift.TrainingMax != w {
			t.Errorf("after modulate %d TrainingMax = %v, want %v", i+1, lift.TrainingMax, w)
		}
	}
}

// TestTrainingMaxesSnapshot verifies roster snapshots.
func TestTrainingMaxesSnapshot(t *testing.T) {
	m, _ := newSteps(t, nil)
	m.IncreaseTrainingMaxes()
	want := []models.LiftMax{{Lift: "Squat", TrainingMax: 110}}
	if diff := cmp.Diff(want, m.TrainingMaxes()); diff != "" {
		t.Errorf("TrainingMaxes mismatch (-want +got):\n%s", diff)
	}
}

// TestNewMesocycleUnknownLift verifies that session errors surface.
func TestNewMesocycleUnknownLift(t *testing.T) {
	_, err := NewMesocycle(MesocycleConfig{
		Name:     "Broken",
		Sessions: []SessionConfig{{Name: "Press", Elements: []ElementSpec{Single(steps, "Press")}}},
	}, Roster{})
	if !errors.Is(err, ErrUnknownLift) {
		t.Errorf("err = %v, want ErrUnknownLift", err)
	}
}
