package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// LoadUnitKind tells a configured load unit apart: a fraction of the
// training max, a verbatim label, or no load at all.
type LoadUnitKind int

const (
	UnitNone LoadUnitKind = iota
	UnitFraction
	UnitLabel
)

// LoadUnit is one set's load as written in an element's load coefficients.
type LoadUnit struct {
	Kind     LoadUnitKind
	Fraction float64
	Label    string
}

// Fraction returns a load unit multiplied against the lift's training max.
func Fraction(f float64) LoadUnit {
	return LoadUnit{Kind: UnitFraction, Fraction: f}
}

// Label returns a load unit passed through verbatim, e.g. "+5% Joker".
func Label(s string) LoadUnit {
	return LoadUnit{Kind: UnitLabel, Label: s}
}

// NoLoad returns a load unit for work without a prescribed weight.
func NoLoad() LoadUnit {
	return LoadUnit{Kind: UnitNone}
}

func (u LoadUnit) String() string {
	switch u.Kind {
	case UnitFraction:
		return strconv.FormatFloat(u.Fraction*100, 'f', -1, 64) + "%"
	case UnitLabel:
		return u.Label
	default:
		return "none"
	}
}

// LoadKind tells a resolved load apart.
type LoadKind int

const (
	LoadNone LoadKind = iota
	LoadWeight
	LoadLabel
)

// Load is a resolved set load: a rounded weight, a label, or nothing.
// It encodes to JSON as a number, a string or null.
type Load struct {
	Kind   LoadKind
	Weight int
	Label  string
}

// Weight returns a resolved load of w.
func Weight(w int) Load {
	return Load{Kind: LoadWeight, Weight: w}
}

// LabelLoad returns a resolved load carrying a verbatim label.
func LabelLoad(s string) Load {
	return Load{Kind: LoadLabel, Label: s}
}

// IsNone reports whether the set has no prescribed load.
func (l Load) IsNone() bool {
	return l.Kind == LoadNone
}

func (l Load) String() string {
	switch l.Kind {
	case LoadWeight:
		return strconv.Itoa(l.Weight)
	case LoadLabel:
		return l.Label
	default:
		return ""
	}
}

func (l Load) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LoadWeight:
		return json.Marshal(l.Weight)
	case LoadLabel:
		return json.Marshal(l.Label)
	default:
		return []byte("null"), nil
	}
}

func (l *Load) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*l = Load{}
	case float64:
		*l = Weight(int(t))
	case string:
		*l = LabelLoad(t)
	default:
		return fmt.Errorf("load: unexpected JSON value %s", data)
	}
	return nil
}

// Reps is a rep target: an integer count or a label such as "5+" or "1.1.1".
// A non-empty Label takes precedence over Count.
type Reps struct {
	Count int
	Label string
}

// Count returns an integer rep target.
func Count(n int) Reps {
	return Reps{Count: n}
}

// RepLabel returns a rep target passed through verbatim.
func RepLabel(s string) Reps {
	return Reps{Label: s}
}

// IsLabel reports whether the target is a label rather than a count.
func (r Reps) IsLabel() bool {
	return r.Label != ""
}

func (r Reps) String() string {
	if r.IsLabel() {
		return r.Label
	}
	return strconv.Itoa(r.Count)
}

func (r Reps) MarshalJSON() ([]byte, error) {
	if r.IsLabel() {
		return json.Marshal(r.Label)
	}
	return json.Marshal(r.Count)
}

func (r *Reps) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*r = Count(int(t))
	case string:
		*r = RepLabel(t)
	default:
		return fmt.Errorf("reps: unexpected JSON value %s", data)
	}
	return nil
}
