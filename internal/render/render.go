// Package render formats generated plans as Markdown text or HTML.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/meltforce/barbell/internal/models"
)

// mdRenderer keeps one prescription per line. Raw HTML in notes is
// escaped, not passed through.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Markdown renders plan as a Markdown document, one "A." style line per
// workout slot and numbered lines ("C1.", "C2.") for supersets.
func Markdown(plan *models.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Training Plan for %s\n\n", plan.Athlete)
	if plan.Program != "" {
		fmt.Fprintf(&b, "**%s**", plan.Program)
		if plan.Notes != "" {
			fmt.Fprintf(&b, ": %s", plan.Notes)
		}
		b.WriteString("\n\n")
	}
	if len(plan.Meta) > 0 {
		keys := make([]string, 0, len(plan.Meta))
		for k := range plan.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, plan.Meta[k])
		}
		b.WriteString("\n")
	}

	for _, c := range plan.Cycles {
		fmt.Fprintf(&b, "## Cycle %d\n\n", c.Number)
		if tms := trainingMaxes(c.TrainingMaxes); tms != "" {
			fmt.Fprintf(&b, "Training Maxes: %s\n\n", tms)
		}
		for i, week := range c.Weeks {
			fmt.Fprintf(&b, "### Week %d\n\n", i+1)
			for _, w := range week {
				writeWorkout(&b, w)
			}
		}
	}

	if len(plan.TrainingNotes) > 0 {
		b.WriteString("## Training Notes\n\n")
		for _, n := range plan.TrainingNotes {
			b.WriteString(strings.TrimSpace(n))
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// HTML renders plan as a standalone HTML page.
func HTML(plan *models.Plan) (string, error) {
	var body bytes.Buffer
	if err := mdRenderer.Convert([]byte(Markdown(plan)), &body); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	var out bytes.Buffer
	err := pageTmpl.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{
		Title: "Training Plan for " + plan.Athlete,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return out.String(), nil
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

func writeWorkout(b *strings.Builder, w models.Workout) {
	fmt.Fprintf(b, "#### %s\n\n", w.Session)
	for i, e := range w.Entries {
		slot := string(rune('A' + i))
		ps := e.Prescriptions()
		if !e.IsSuperset() {
			fmt.Fprintf(b, "%s. %s\n", slot, Prescription(ps[0]))
			continue
		}
		for j, p := range ps {
			fmt.Fprintf(b, "%s%d. %s\n", slot, j+1, Prescription(p))
		}
	}
	b.WriteString("\n")
}

// Prescription formats one lift's sets on a single line, e.g.
// "Squat 235x5, 270x5, 305x5+".
func Prescription(p models.Prescription) string {
	parts := make([]string, len(p.Sets))
	for i, s := range p.Sets {
		parts[i] = Set(s)
	}
	return p.Lift + " " + strings.Join(parts, ", ")
}

// Set formats a single set. Descriptive rep targets ("3-5 sets of 5-8
// reps") read better with the weight trailing.
func Set(s models.Set) string {
	reps := s.Reps.String()
	switch {
	case s.Load.IsNone():
		return reps
	case strings.Contains(reps, " "):
		return reps + " @ " + s.Load.String()
	case s.Load.Kind == models.LoadLabel:
		return s.Load.String() + " x" + reps
	default:
		return s.Load.String() + "x" + reps
	}
}

func trainingMaxes(tms []models.LiftMax) string {
	var parts []string
	for _, tm := range tms {
		if tm.TrainingMax == 0 {
			continue
		}
		parts = append(parts, tm.Lift+" "+strconv.FormatFloat(tm.TrainingMax, 'f', -1, 64))
	}
	return strings.Join(parts, ", ")
}
