// Package mcp exposes program generation as Model Context Protocol tools.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(p Planner, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Barbell", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Barbell program generator. List the preset programs, estimate one-rep maxes from rep sets, and generate multi-cycle training plans from an athlete's maxes."),
	)

	h := &handlers{planner: p, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListPresets, Handler: h.listPresets},
		server.ServerTool{Tool: toolGenerateProgram, Handler: h.generateProgram},
		server.ServerTool{Tool: toolEstimateOneRepMax, Handler: h.estimateOneRepMax},
	)

	s.AddResources(
		server.ServerResource{Resource: resPresets, Handler: h.presets},
	)

	return s
}

type handlers struct {
	planner Planner
	log     *slog.Logger
}

var resPresets = mcp.NewResource(
	"barbell://presets",
	"Program Presets",
	mcp.WithResourceDescription("Every built-in and configured program with its main lifts and sessions"),
	mcp.WithMIMEType("application/json"),
)
