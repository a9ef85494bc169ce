package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/barbell/internal/models"
	"github.com/meltforce/barbell/internal/render"
)

// --- Tool definitions ---

var toolListPresets = mcp.NewTool("list_presets",
	mcp.WithDescription("List the available program presets with their main lifts, sessions and wave length."),
)

var toolGenerateProgram = mcp.NewTool("generate_program",
	mcp.WithDescription("Generate a multi-cycle barbell training plan from an athlete's maxes. Returns Markdown by default, one line per lift with weight x reps for every set."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Athlete name, used in the plan title")),
	mcp.WithObject("maxes", mcp.Required(), mcp.Description("Max per main lift, keyed by lift name. Values are a 1RM (\"400\") or a rep max (\"5x300\"), e.g. {\"Squat\": \"400\", \"Press\": \"5x150\"}")),
	mcp.WithString("preset", mcp.Description("Preset key from list_presets. Defaults to the server's default preset.")),
	mcp.WithBoolean("light", mcp.Description("Use small training max jumps between cycles (5/2.5 instead of 10/5)")),
	mcp.WithNumber("barbell_weight", mcp.Description("Bar weight. Defaults to 45.")),
	mcp.WithNumber("cycles", mcp.Description("Number of cycles to generate. Defaults to 2.")),
	mcp.WithBoolean("include_notes", mcp.Description("Append stored training notes to the plan")),
	mcp.WithString("format", mcp.Description("Output format. Defaults to markdown."), mcp.Enum("markdown", "json")),
)

var toolEstimateOneRepMax = mcp.NewTool("estimate_one_rep_max",
	mcp.WithDescription("Estimate a one-rep max. Accepts a plain weight (\"315\") or reps x weight (\"5x300\"), rounded to the nearest 5."),
	mcp.WithString("max", mcp.Required(), mcp.Description("Max as typed by the athlete, e.g. 5x300")),
	mcp.WithString("method", mcp.Description("Estimation formula for rep maxes. Defaults to epley."), mcp.Enum("epley", "brzycki", "average")),
)

// --- Tool handlers ---

func (h *handlers) listPresets(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	presets, err := h.planner.Presets(ctx)
	if err != nil {
		h.log.Error("mcp list_presets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(presets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

type generateArgs struct {
	models.PlanRequest
	Format string `json:"format"`
}

func (h *handlers) generateProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args generateArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}
	if args.Name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	if len(args.Maxes) == 0 {
		return mcp.NewToolResultError("maxes parameter is required"), nil
	}

	plan, err := h.planner.Generate(ctx, args.PlanRequest)
	if err != nil {
		h.log.Warn("mcp generate_program", "error", err)
		return mcp.NewToolResultError("generate failed: " + err.Error()), nil
	}

	switch args.Format {
	case "", "markdown":
		return mcp.NewToolResultText(render.Markdown(plan)), nil
	case "json":
		result, err := mcp.NewToolResultJSON(plan)
		if err != nil {
			return mcp.NewToolResultError("serialization failed"), nil
		}
		return result, nil
	default:
		return mcp.NewToolResultError("unknown format " + args.Format), nil
	}
}

type estimateResult struct {
	Input     string  `json:"input"`
	Method    string  `json:"method,omitempty"`
	OneRepMax float64 `json:"one_rep_max"`
}

func (h *handlers) estimateOneRepMax(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("max")
	if err != nil {
		return mcp.NewToolResultError("max parameter is required"), nil
	}

	method := req.GetString("method", "epley")

	oneRM, err := h.planner.Estimate(ctx, input, method)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(estimateResult{Input: input, Method: method, OneRepMax: oneRM})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
