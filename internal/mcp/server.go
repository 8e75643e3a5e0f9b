// Package mcp exposes the training log over the Model Context Protocol so
// an LLM client can query volume history and the live session.
package mcp

import (
	"log/slog"

	"github.com/claude/liftlog/internal/session"
	"github.com/claude/liftlog/internal/state"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(store *state.Store, ctrl *session.Controller, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog resistance training tracker. Query workout routines, training volume history, per-muscle volume distribution, and the currently active session."),
	)

	h := &handlers{store: store, ctrl: ctrl, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetVolumeHistory, Handler: h.getVolumeHistory},
		server.ServerTool{Tool: toolGetMuscleVolume, Handler: h.getMuscleVolume},
		server.ServerTool{Tool: toolListRoutines, Handler: h.listRoutines},
		server.ServerTool{Tool: toolGetActiveSession, Handler: h.getActiveSession},
		server.ServerTool{Tool: toolExportHistory, Handler: h.exportHistory},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resTrainingState, Handler: h.trainingState},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	store *state.Store
	ctrl  *session.Controller
	log   *slog.Logger
}

// --- Resource definitions ---

var resTrainingState = mcp.NewResource(
	"liftlog://training_state",
	"Training State",
	mcp.WithResourceDescription("The full training state: muscle groups, exercise catalog, routines, session history, and settings"),
	mcp.WithMIMEType("application/json"),
)
