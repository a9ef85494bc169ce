package program

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/barbell/internal/barbell"
	"github.com/meltforce/barbell/internal/models"
	"github.com/meltforce/barbell/internal/onerm"
)

// NoteLister supplies training notes for plans that ask for them.
type NoteLister interface {
	List(ctx context.Context) ([]models.Note, error)
}

// Defaults apply to requests that leave the corresponding field empty.
type Defaults struct {
	Preset           string
	BarbellWeight    float64
	TrainingMaxScale float64
}

// Service generates plans from a catalog of program definitions.
type Service struct {
	catalog  *Catalog
	notes    NoteLister
	defaults Defaults
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a Service. notes may be nil, in which case plans never
// carry training notes.
func NewService(catalog *Catalog, notes NoteLister, defaults Defaults, log *slog.Logger) *Service {
	return &Service{
		catalog:  catalog,
		notes:    notes,
		defaults: defaults,
		log:      log,
		now:      time.Now,
	}
}

// Presets summarizes every program in the catalog.
func (s *Service) Presets(_ context.Context) ([]models.PresetSummary, error) {
	keys := s.catalog.Keys()
	out := make([]models.PresetSummary, 0, len(keys))
	for _, k := range keys {
		def, err := s.catalog.Get(k)
		if err != nil {
			return nil, err
		}
		out = append(out, def.Summary(k))
	}
	return out, nil
}

// Definition returns the full definition of a preset.
func (s *Service) Definition(_ context.Context, key string) (*Definition, error) {
	return s.catalog.Get(key)
}

// Estimate parses a max as typed by an athlete, estimating rep maxes with
// method ("epley", "brzycki" or "average"; empty is epley).
func (s *Service) Estimate(_ context.Context, input, method string) (float64, error) {
	m, err := onerm.ParseMethod(method)
	if err != nil {
		return 0, err
	}
	return onerm.ParseWith(input, m)
}

// Generate builds a fresh roster and mesocycle for req and runs it.
func (s *Service) Generate(ctx context.Context, req models.PlanRequest) (*models.Plan, error) {
	key := req.Preset
	if key == "" {
		key = s.defaults.Preset
	}
	def, err := s.catalog.Get(key)
	if err != nil {
		return nil, err
	}

	a := req.Athlete
	if a.BarbellWeight == 0 {
		a.BarbellWeight = s.defaults.BarbellWeight
	}
	if a.TrainingMaxScale == 0 {
		a.TrainingMaxScale = s.defaults.TrainingMaxScale
	}
	a = withDefaults(a)
	if err := validateAthlete(a); err != nil {
		return nil, err
	}

	roster, records, err := def.Roster(a)
	if err != nil {
		return nil, err
	}
	cfg, err := def.Config()
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", key, err)
	}
	meso, err := barbell.NewMesocycle(cfg, roster)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", key, err)
	}

	plan := &models.Plan{
		ID:          uuid.New(),
		Preset:      key,
		Program:     def.Name,
		Athlete:     a.Name,
		Notes:       def.Notes,
		Meta:        meta(a, records),
		Records:     records,
		GeneratedAt: s.now().UTC(),
		Cycles:      meso.Run(a.Cycles),
	}

	if req.IncludeNotes && s.notes != nil {
		notes, err := s.notes.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading training notes: %w", err)
		}
		for _, n := range notes {
			plan.TrainingNotes = append(plan.TrainingNotes, n.Body)
		}
	}

	s.log.Info("plan generated",
		"id", plan.ID,
		"preset", key,
		"athlete", a.Name,
		"cycles", len(plan.Cycles),
		"notes", len(plan.TrainingNotes),
	)
	return plan, nil
}
