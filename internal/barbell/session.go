package barbell

import (
	"errors"
	"fmt"

	"github.com/meltforce/barbell/internal/models"
)

var (
	ErrUnknownLift   = errors.New("lift not in roster")
	ErrEmptySuperset = errors.New("superset has no members")
	ErrInvalidSpec   = errors.New("element spec must be a single element or a superset")
)

// ElementRef attaches an element progression to a lift by name.
type ElementRef struct {
	Element ElementConfig
	Lift    string
}

// Ref is shorthand for an ElementRef literal.
func Ref(element ElementConfig, lift string) ElementRef {
	return ElementRef{Element: element, Lift: lift}
}

// ElementSpec is one slot of a session: exactly one of Single or Superset
// is set.
type ElementSpec struct {
	Single   *ElementRef
	Superset []ElementRef
}

// Single returns a spec for one element performed on its own.
func Single(element ElementConfig, lift string) ElementSpec {
	return ElementSpec{Single: &ElementRef{Element: element, Lift: lift}}
}

// Superset returns a spec for elements performed back to back.
func Superset(refs ...ElementRef) ElementSpec {
	return ElementSpec{Superset: refs}
}

// SessionConfig is a named workout type.
type SessionConfig struct {
	Name     string
	Elements []ElementSpec
}

// slot mirrors ElementSpec with instantiated elements.
type slot struct {
	single   *Element
	superset []*Element
}

// Session produces one workout per pull.
type Session struct {
	name  string
	slots []slot
}

// NewSession instantiates an Element for every spec in cfg, resolving lift
// names against roster. A name missing from the roster is an error.
func NewSession(cfg SessionConfig, roster Roster) (*Session, error) {
	s := &Session{name: cfg.Name}
	for i, spec := range cfg.Elements {
		switch {
		case spec.Single != nil && spec.Superset == nil:
			e, err := bind(*spec.Single, roster)
			if err != nil {
				return nil, fmt.Errorf("session %q: %w", cfg.Name, err)
			}
			s.slots = append(s.slots, slot{single: e})
		case spec.Single == nil && spec.Superset != nil:
			if len(spec.Superset) == 0 {
				return nil, fmt.Errorf("session %q: slot %d: %w", cfg.Name, i+1, ErrEmptySuperset)
			}
			group := make([]*Element, 0, len(spec.Superset))
			for _, ref := range spec.Superset {
				e, err := bind(ref, roster)
				if err != nil {
					return nil, fmt.Errorf("session %q: %w", cfg.Name, err)
				}
				group = append(group, e)
			}
			s.slots = append(s.slots, slot{superset: group})
		default:
			return nil, fmt.Errorf("session %q: slot %d: %w", cfg.Name, i+1, ErrInvalidSpec)
		}
	}
	return s, nil
}

func bind(ref ElementRef, roster Roster) (*Element, error) {
	lift, ok := roster.Find(ref.Lift)
	if !ok {
		return nil, fmt.Errorf("%q: %w", ref.Lift, ErrUnknownLift)
	}
	return NewElement(ref.Element, lift)
}

// Next pulls every element once, in order, keeping superset groups together.
func (s *Session) Next() models.Workout {
	w := models.Workout{Session: s.name, Entries: make([]models.Entry, 0, len(s.slots))}
	for _, sl := range s.slots {
		if sl.single != nil {
			p := sl.single.Next()
			w.Entries = append(w.Entries, models.Entry{Prescription: &p})
			continue
		}
		group := make([]models.Prescription, 0, len(sl.superset))
		for _, e := range sl.superset {
			group = append(group, e.Next())
		}
		w.Entries = append(w.Entries, models.Entry{Superset: group})
	}
	return w
}
