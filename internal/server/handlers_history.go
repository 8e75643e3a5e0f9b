package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/csvio"
	"github.com/claude/liftlog/internal/importer"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/volume"
)

func (s *Server) handleVolumeStats(w http.ResponseWriter, r *http.Request) {
	daysBack, err := parseDaysBack(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	st := s.store.Snapshot()
	points, total := volume.TotalOverTime(st.Sessions, st.CompletedSets, st.ActiveRoutineID, daysBack, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"days":   daysBack,
		"points": points,
		"total":  total,
	})
}

func (s *Server) handleMuscleStats(w http.ResponseWriter, r *http.Request) {
	daysBack, err := parseDaysBack(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	st := s.store.Snapshot()
	points, total := volume.PerMuscleGroup(st.CompletedSets, st.Exercises, st.MuscleGroups, daysBack, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"days":    daysBack,
		"muscles": points,
		"total":   total,
	})
}

func parseDaysBack(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return volume.DefaultDaysBack, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, &models.ValidationError{Field: "days", Reason: "must be a positive integer"}
	}
	return days, nil
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	st := s.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions":      st.Sessions,
		"completedSets": st.CompletedSets,
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	sets := s.store.Snapshot().CompletedSets

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+csvio.Filename(time.Now())+`"`)
	if err := csvio.Export(w, sets); err != nil {
		s.log.Error("csv export failed", "error", err)
	}
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	mode, err := importer.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	stats, err := s.imp.ImportCSV(r.Context(), r.Body, mode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
