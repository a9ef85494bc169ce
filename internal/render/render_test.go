package render

import (
	"strings"
	"testing"

	"github.com/meltforce/barbell/internal/models"
)

func testPlan() *models.Plan {
	squat := models.Prescription{Lift: "Squat", Sets: []models.Set{
		{Load: models.Weight(235), Reps: models.Count(5)},
		{Load: models.Weight(270), Reps: models.Count(5)},
		{Load: models.Weight(305), Reps: models.RepLabel("5+")},
	}}
	return &models.Plan{
		Athlete: "Shea",
		Program: "Wendler 531 Cycle",
		Notes:   "Three week Wendler microcycle.",
		Meta:    map[string]string{"Barbell Used": "45", "Light Program Jumps": "false"},
		Cycles: []models.PlanCycle{{
			Number:        1,
			TrainingMaxes: []models.LiftMax{{Lift: "Squat", TrainingMax: 360}, {Lift: "Pull Up"}},
			Weeks: models.Cycle{{{
				Session: "Press",
				Entries: []models.Entry{
					{Prescription: &squat},
					{Superset: []models.Prescription{
						{Lift: "Press", Sets: []models.Set{{Load: models.Weight(100), Reps: models.RepLabel("3-5 sets of 5-8 reps")}}},
						{Lift: "Pull Up", Sets: []models.Set{{Reps: models.RepLabel("5 sets of 10")}}},
					}},
				},
			}}},
		}},
		TrainingNotes: []string{"  Eat more.\n"},
	}
}

// TestMarkdown verifies headings, slot lettering and superset numbering.
func TestMarkdown(t *testing.T) {
	md := Markdown(testPlan())
	for _, want := range []string{
		"# Training Plan for Shea\n",
		"**Wendler 531 Cycle**: Three week Wendler microcycle.",
		"- Barbell Used: 45\n",
		"## Cycle 1\n",
		"Training Maxes: Squat 360\n",
		"### Week 1\n",
		"#### Press\n",
		"A. Squat 235x5, 270x5, 305x5+\n",
		"B1. Press 3-5 sets of 5-8 reps @ 100\n",
		"B2. Pull Up 5 sets of 10\n",
		"## Training Notes\n\nEat more.\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "Pull Up 0") {
		t.Error("markdown lists a zero training max")
	}
}

// TestSet covers each load and rep combination.
func TestSet(t *testing.T) {
	tests := []struct {
		set  models.Set
		want string
	}{
		{models.Set{Load: models.Weight(300), Reps: models.Count(5)}, "300x5"},
		{models.Set{Load: models.LabelLoad("+5% Joker"), Reps: models.Count(1)}, "+5% Joker x1"},
		{models.Set{Reps: models.RepLabel("5 sets of 10")}, "5 sets of 10"},
		{models.Set{Load: models.Weight(235), Reps: models.RepLabel("3-5 sets of 5-8 reps")}, "3-5 sets of 5-8 reps @ 235"},
	}
	for _, tt := range tests {
		if got := Set(tt.set); got != tt.want {
			t.Errorf("Set(%+v) = %q, want %q", tt.set, got, tt.want)
		}
	}
}

// TestHTML verifies the goldmark conversion and escaping of raw HTML.
func TestHTML(t *testing.T) {
	p := testPlan()
	p.Athlete = "<b>Shea</b>"
	out, err := HTML(p)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(out, "<title>Training Plan for &lt;b&gt;Shea&lt;/b&gt;</title>") {
		t.Errorf("title not escaped:\n%s", out)
	}
	if !strings.Contains(out, "<h2>Cycle 1</h2>") {
		t.Errorf("missing cycle heading:\n%s", out)
	}
	if !strings.Contains(out, "A. Squat 235x5, 270x5, 305x5+<br>") {
		t.Errorf("missing hard-wrapped slot line:\n%s", out)
	}
	if strings.Contains(out, "<h1>Training Plan for <b>") {
		t.Errorf("raw HTML passed through:\n%s", out)
	}
}
