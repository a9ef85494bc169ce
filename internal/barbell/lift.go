package barbell

// LiftConfig describes a lift at construction time.
//
// TrainingMax is read three ways: a value strictly between 0 and 1 is a
// fraction of PersonalRecord, any other non-zero value is the training max
// itself, and zero means "use the personal record".
type LiftConfig struct {
	Name           string
	PersonalRecord *float64
	TrainingMax    float64
	// Increment defaults to DefaultIncrement when nil.
	Increment *float64
	// BarbellWeight defaults to DefaultBarbellWeight when nil.
	BarbellWeight *float64
}

// Lift holds one exercise's record, training max and progression step.
type Lift struct {
	Name           string   `json:"name"`
	PersonalRecord *float64 `json:"personal_record"`
	TrainingMax    float64  `json:"training_max"`
	Increment      float64  `json:"increment"`
	BarbellWeight  float64  `json:"barbell_weight"`
}

// Float returns a pointer to v, for the optional fields of LiftConfig.
func Float(v float64) *float64 {
	return &v
}

// NewLift builds a Lift from cfg, deriving the training max.
func NewLift(cfg LiftConfig) *Lift {
	l := &Lift{
		Name:           cfg.Name,
		PersonalRecord: cfg.PersonalRecord,
		Increment:      DefaultIncrement,
		BarbellWeight:  DefaultBarbellWeight,
	}
	if cfg.Increment != nil {
		l.Increment = *cfg.Increment
	}
	if cfg.BarbellWeight != nil {
		l.BarbellWeight = *cfg.BarbellWeight
	}

	var record float64
	if cfg.PersonalRecord != nil {
		record = *cfg.PersonalRecord
	}
	switch {
	case cfg.TrainingMax > 0 && cfg.TrainingMax < 1:
		l.TrainingMax = cfg.TrainingMax * record
	case cfg.TrainingMax != 0:
		l.TrainingMax = cfg.TrainingMax
	default:
		l.TrainingMax = record
	}
	return l
}

// IncreaseTrainingMax adds the lift's increment to its training max.
// Each call adds again.
func (l *Lift) IncreaseTrainingMax() {
	l.IncreaseTrainingMaxBy(l.Increment)
}

// IncreaseTrainingMaxBy adds amount to the training max. Lifts without a
// training max (accessory work) are left alone.
func (l *Lift) IncreaseTrainingMaxBy(amount float64) {
	if l.TrainingMax == 0 || amount == 0 {
		return
	}
	l.TrainingMax += amount
}

// Roster is the ordered set of lifts a program is built against.
type Roster []*Lift

// Find returns the first lift named name.
func (r Roster) Find(name string) (*Lift, bool) {
	for _, l := range r {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}
