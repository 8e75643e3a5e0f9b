package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/liftlog/internal/models"
)

type startSessionRequest struct {
	RoutineID string `json:"routineId"`
	DayID     string `json:"dayId"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	sess, err := s.ctrl.StartSession(r.Context(), req.RoutineID, req.DayID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

type repGroupRequest struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
	Order  int     `json:"order"`
}

type recordSetRequest struct {
	ExerciseID string            `json:"exerciseId,omitempty"`
	RepGroups  []repGroupRequest `json:"repGroups"`
	Notes      string            `json:"notes"`
}

func (req recordSetRequest) groups() []models.RepGroup {
	groups := make([]models.RepGroup, 0, len(req.RepGroups))
	for _, g := range req.RepGroups {
		groups = append(groups, models.RepGroup{Reps: g.Reps, Weight: g.Weight, Order: g.Order})
	}
	return groups
}

func (s *Server) handleRecordSet(w http.ResponseWriter, r *http.Request) {
	var req recordSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	set, err := s.ctrl.RecordSet(r.Context(), req.groups(), req.Notes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleRecordAdHocSet(w http.ResponseWriter, r *http.Request) {
	var req recordSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	set, err := s.ctrl.RecordAdHocSet(r.Context(), req.ExerciseID, req.groups(), req.Notes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleAdvanceSet(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.AdvanceSet(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ctrl.Status())
}

func (s *Server) handleRetreatSet(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.RetreatSet(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ctrl.Status())
}

type completeSessionRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	var req completeSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
	}

	sess, err := s.ctrl.CompleteSession(r.Context(), req.Notes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.CancelSession(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Status())
}
