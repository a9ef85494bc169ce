package mcp

import (
	"context"

	"github.com/meltforce/barbell/internal/models"
	"github.com/meltforce/barbell/internal/program"
)

// Planner abstracts plan generation for MCP tools. Both *program.Service
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type Planner interface {
	Presets(ctx context.Context) ([]models.PresetSummary, error)
	Generate(ctx context.Context, req models.PlanRequest) (*models.Plan, error)
	Estimate(ctx context.Context, input, method string) (float64, error)
}

var _ Planner = (*program.Service)(nil)
