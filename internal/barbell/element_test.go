package barbell

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meltforce/barbell/internal/models"
)

func fractions(fs ...float64) []models.LoadUnit {
	out := make([]models.LoadUnit, len(fs))
	for i, f := range fs {
		out[i] = models.Fraction(f)
	}
	return out
}

func counts(ns ...int) []models.Reps {
	out := make([]models.Reps, len(ns))
	for i, n := range ns {
		out[i] = models.Count(n)
	}
	return out
}

var wendler = ElementConfig{
	Name: "Wendler",
	LoadCoefficients: [][]models.LoadUnit{
		fractions(0.65, 0.75, 0.85),
		fractions(0.70, 0.80, 0.90),
		fractions(0.75, 0.85, 0.95),
	},
	Scheme: [][]models.Reps{
		{models.Count(5), models.Count(5), models.RepLabel("5+")},
		{models.Count(3), models.Count(3), models.RepLabel("3+")},
		{models.Count(5), models.Count(3), models.RepLabel("1+")},
	},
}

func set(w int, r models.Reps) models.Set {
	return models.Set{Load: models.Weight(w), Reps: r}
}

// TestElementWendlerWeek verifies the first 5/3/1 week against a 400 training max.
func TestElementWendlerWeek(t *testing.T) {
	lift := NewLift(LiftConfig{Name: "Squat", TrainingMax: 400})
	e, err := NewElement(wendler, lift)
	if err != nil {
		t.Fatalf("NewElement: %v", err)
	}
	got := e.Next()
	want := models.Prescription{Lift: "Squat", Sets: []models.Set{
		set(260, models.Count(5)),
		set(300, models.Count(5)),
		set(340, models.RepLabel("5+")),
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Next() mismatch (-want +got):\n%s", diff)
	}
}

// TestElementReadsLiveTrainingMax verifies that increases apply to the next pull.
func TestElementReadsLiveTrainingMax(t *testing.T) {
	lift := NewLift(LiftConfig{Name: "Squat", TrainingMax: 400})
	e, err := NewElement(wendler, lift)
	if err != nil {
		t.Fatalf("NewElement: %v", err)
	}
	e.Next()
	lift.IncreaseTrainingMax()
	got := e.Next()
	want := models.Prescription{Lift: "Squat", Sets: []models.Set{
		set(285, models.Count(3)),
		set(330, models.Count(3)),
		set(370, models.RepLabel("3+")),
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Next() mismatch (-want +got):\n%s", diff)
	}
}

// TestElementStretchesScheme verifies that a short rep entry repeats to cover every load.
func TestElementStretchesScheme(t *testing.T) {
	cfg := ElementConfig{
		Name:             "Stretch",
		LoadCoefficients: [][]models.LoadUnit{fractions(0.7, 0.8, 0.9)},
		Scheme:           [][]models.Reps{{models.Count(5), models.RepLabel("5+")}},
	}
	e, err := NewElement(cfg, NewLift(LiftConfig{Name: "Bench Press", TrainingMax: 200}))
	if err != nil {
		t.Fatalf("NewElement: %v", err)
	}
	got := e.Next()
	want := []models.Reps{models.Count(5), models.RepLabel("5+"), models.Count(5)}
	if len(got.Sets) != len(want) {
		t.Fatalf("len(Sets) = %d, want %d", len(got.Sets), len(want))
	}
	for i, s := range got.Sets {
		if s.Reps != want[i] {
			t.Errorf("set %d reps = %v, want %v", i, s.Reps, want[i])
		}
	}
}

// TestElementTruncatesScheme verifies that extra rep targets are dropped.
func TestElementTruncatesScheme(t *testing.T) {
	cfg := ElementConfig{
		Name:             "Single",
		LoadCoefficients: [][]models.LoadUnit{fractions(0.9)},
		Scheme:           [][]models.Reps{counts(5, 3, 1)},
	}
	e, err := NewElement(cfg, NewLift(LiftConfig{Name: "Deadlift", TrainingMax: 500}))
	if err != nil {
		t.Fatalf("NewElement: %v", err)
	}
	got := e.Next()
	if len(got.Sets) != 1 || got.Sets[0].Reps != models.Count(5) {
		t.Errorf("Sets = %v, want one set of 5", got.Sets)
	}
}

// TestElementIndependentCursors verifies that loads and schemes wrap on their own lengths.
func TestElementIndependentCursors(t *testing.T) {
	cfg := ElementConfig{
		Name:             "Wave",
		LoadCoefficients: [][]models.LoadUnit{{models.Label("A")}, {models.Label("B")}},
		Scheme:           [][]models.Reps{counts(1), counts(2), counts(3)},
	}
	e, err := NewElement(cfg, NewLift(LiftConfig{Name: "Press"}))
	if err != nil {
		t.Fatalf("NewElement: %v", err)
	}
	want := []struct {
		load string
		reps int
	}{{"A", 1}, {"B", 2}, {"A", 3}, {"B", 1}, {"A", 2}, {"B", 3}, {"A", 1}}
	for i, w := range want {
		s := e.Next().Sets[0]
		if s.Load.Label != w.load || s.Reps.Count != w.reps {
			t.Errorf("pull %d = (%v, %v), want (%s, %d)", i+1, s.Load, s.Reps, w.load, w.reps)
		}
	}
}

// TestElementLabelsAndNoLoad verifies that non-fraction units pass through.
func TestElementLabelsAndNoLoad(t *testing.T) {
	cfg := ElementConfig{
		Name:             "Accessory",
		LoadCoefficients: [][]models.LoadUnit{{models.Label("+5% Joker"), models.NoLoad()}},
		Scheme:           [][]models.Reps{{models.RepLabel("1.1.1"), models.RepLabel("10-20")}},
	}
	e, err := NewElement(cfg, NewLift(LiftConfig{Name: "Pull Up"}))
	if err != nil {
		t.Fatalf("NewElement: %v", err)
	}
	got := e.Next()
	want := models.Prescription{Lift: "Pull Up", Sets: []models.Set{
		{Load: models.LabelLoad("+5% Joker"), Reps: models.RepLabel("1.1.1")},
		{Load: models.Load{}, Reps: models.RepLabel("10-20")},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Next() mismatch (-want +got):\n%s", diff)
	}
}

// TestNewElementRejectsEmpty verifies that empty loads or schemes fail construction.
func TestNewElementRejectsEmpty(t *testing.T) {
	lift := NewLift(LiftConfig{Name: "Squat", TrainingMax: 300})
	tests := []struct {
		name string
		cfg  ElementConfig
		want error
	}{
		{"no loads", ElementConfig{Name: "x", Scheme: [][]models.Reps{counts(5)}}, ErrEmptyLoadCoefficients},
		{"empty load entry", ElementConfig{Name: "x", LoadCoefficients: [][]models.LoadUnit{{}}, Scheme: [][]models.Reps{counts(5)}}, ErrEmptyLoadCoefficients},
		{"no scheme", ElementConfig{Name: "x", LoadCoefficients: [][]models.LoadUnit{fractions(0.5)}}, ErrEmptyScheme},
		{"empty scheme entry", ElementConfig{Name: "x", LoadCoefficients: [][]models.LoadUnit{fractions(0.5)}, Scheme: [][]models.Reps{{}}}, ErrEmptyScheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewElement(tt.cfg, lift)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
