package mcp

import (
	"context"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/csvio"
	"github.com/claude/liftlog/internal/volume"
	"github.com/mark3labs/mcp-go/mcp"
)

// parseDays interprets an optional day-count parameter, defaulting to the
// standard analytics window.
func parseDays(s string) (int, error) {
	if s == "" {
		return volume.DefaultDaysBack, nil
	}
	days, err := strconv.Atoi(s)
	if err != nil || days < 1 {
		return 0, strconv.ErrSyntax
	}
	return days, nil
}

// --- Tool definitions ---

var toolGetVolumeHistory = mcp.NewTool("get_volume_history",
	mcp.WithDescription("Per-day training volume (reps times weight, summed per set) for the active routine over a trailing window. Returns daily points and the window total."),
	mcp.WithString("days", mcp.Description("Trailing window size in days. Defaults to 31.")),
)

var toolGetMuscleVolume = mcp.NewTool("get_muscle_volume",
	mcp.WithDescription("Training volume attributed to each muscle group over a trailing window, using per-exercise muscle contribution percentages. Sorted by volume descending."),
	mcp.WithString("days", mcp.Description("Trailing window size in days. Defaults to 31.")),
)

var toolListRoutines = mcp.NewTool("list_routines",
	mcp.WithDescription("List all workout routines with their days and planned sets, plus which routine is active."),
)

var toolGetActiveSession = mcp.NewTool("get_active_session",
	mcp.WithDescription("The currently active training session: current set, exercise, and per-exercise completion progress. Reports inactive when no session is running."),
)

var toolExportHistory = mcp.NewTool("export_history",
	mcp.WithDescription("Export the full completed-set history as CSV, one row per rep group."),
)

// --- Tool handlers ---

func (h *handlers) getVolumeHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days, err := parseDays(req.GetString("days", ""))
	if err != nil {
		return mcp.NewToolResultError("days must be a positive integer"), nil
	}

	st := h.store.Snapshot()
	points, total := volume.TotalOverTime(st.Sessions, st.CompletedSets, st.ActiveRoutineID, days, time.Now())

	result, err := mcp.NewToolResultJSON(map[string]any{
		"days":   days,
		"points": points,
		"total":  total,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMuscleVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days, err := parseDays(req.GetString("days", ""))
	if err != nil {
		return mcp.NewToolResultError("days must be a positive integer"), nil
	}

	st := h.store.Snapshot()
	points, total := volume.PerMuscleGroup(st.CompletedSets, st.Exercises, st.MuscleGroups, days, time.Now())

	result, err := mcp.NewToolResultJSON(map[string]any{
		"days":    days,
		"muscles": points,
		"total":   total,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listRoutines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := h.store.Snapshot()
	result, err := mcp.NewToolResultJSON(map[string]any{
		"routines":        st.Routines,
		"activeRoutineId": st.ActiveRoutineID,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getActiveSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.ctrl.Status())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) exportHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sets := h.store.Snapshot().CompletedSets
	return mcp.NewToolResultText(csvio.ExportString(sets)), nil
}
