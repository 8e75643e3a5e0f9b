package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/session"
	"github.com/claude/liftlog/internal/share"
	"github.com/claude/liftlog/internal/state"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListMuscleGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot().MuscleGroups)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot().Exercises)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ex, ok := s.store.Snapshot().ExerciseByID(id)
	if !ok {
		s.writeError(w, &models.NotFoundError{Kind: "exercise", ID: id})
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

type createExerciseRequest struct {
	Name          string                      `json:"name"`
	Contributions []models.MuscleContribution `json:"muscleContributions"`
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		s.writeError(w, &models.ValidationError{Field: "name", Reason: "must not be empty"})
		return
	}

	ex := models.Exercise{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Contributions: req.Contributions,
	}
	err := s.store.Update(r.Context(), func(st *state.State) error {
		for _, c := range ex.Contributions {
			if _, ok := st.MuscleGroupByID(c.MuscleGroupID); !ok {
				return &models.NotFoundError{Kind: "muscle group", ID: c.MuscleGroupID}
			}
		}
		st.Exercises = append(st.Exercises, ex)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ex)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req createExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		s.writeError(w, &models.ValidationError{Field: "name", Reason: "must not be empty"})
		return
	}

	ex := models.Exercise{
		ID:            id,
		Name:          req.Name,
		Contributions: req.Contributions,
	}
	err := s.store.Update(r.Context(), func(st *state.State) error {
		for _, c := range ex.Contributions {
			if _, ok := st.MuscleGroupByID(c.MuscleGroupID); !ok {
				return &models.NotFoundError{Kind: "muscle group", ID: c.MuscleGroupID}
			}
		}
		for i := range st.Exercises {
			if st.Exercises[i].ID == id {
				st.Exercises[i] = ex
				return nil
			}
		}
		return &models.NotFoundError{Kind: "exercise", ID: id}
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	st := s.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"routines":        st.Routines,
		"activeRoutineId": st.ActiveRoutineID,
	})
}

func (s *Server) handleGetRoutine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	routine, ok := s.store.Snapshot().RoutineByID(id)
	if !ok {
		s.writeError(w, &models.NotFoundError{Kind: "routine", ID: id})
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

type routineMetaRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateRoutine(w http.ResponseWriter, r *http.Request) {
	var req routineMetaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		s.writeError(w, &models.ValidationError{Field: "name", Reason: "must not be empty"})
		return
	}

	now := time.Now().UTC()
	routine := models.WorkoutRoutine{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Days:        []models.WorkoutDay{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.store.Update(r.Context(), func(st *state.State) error {
		st.AddRoutine(routine)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, routine)
}

func (s *Server) handleUpdateRoutine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req routineMetaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	err := s.store.Update(r.Context(), func(st *state.State) error {
		return st.UpdateRoutineMeta(id, req.Name, req.Description, time.Now().UTC())
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	routine, _ := s.store.Snapshot().RoutineByID(id)
	writeJSON(w, http.StatusOK, routine)
}

func (s *Server) handleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Update(r.Context(), func(st *state.State) error {
		return st.DeleteRoutine(id)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleActivateRoutine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Update(r.Context(), func(st *state.State) error {
		if _, ok := st.RoutineByID(id); !ok {
			return &models.NotFoundError{Kind: "routine", ID: id}
		}
		if st.ActiveRoutineID != id {
			st.ActiveRoutineID = id
			st.CurrentDayIndex = 0
		}
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"activeRoutineId": id})
}

type addDayRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddDay(w http.ResponseWriter, r *http.Request) {
	routineID := chi.URLParam(r, "id")
	var req addDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		s.writeError(w, &models.ValidationError{Field: "name", Reason: "must not be empty"})
		return
	}

	day := models.WorkoutDay{
		ID:          uuid.New().String(),
		Name:        req.Name,
		PlannedSets: []models.PlannedSet{},
	}
	err := s.store.Update(r.Context(), func(st *state.State) error {
		return st.AddDay(routineID, day, time.Now().UTC())
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, day)
}

func (s *Server) handleRemoveDay(w http.ResponseWriter, r *http.Request) {
	routineID := chi.URLParam(r, "id")
	dayID := chi.URLParam(r, "dayID")
	err := s.store.Update(r.Context(), func(st *state.State) error {
		return st.RemoveDay(routineID, dayID, time.Now().UTC())
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type plannedSetRequest struct {
	ExerciseID   string  `json:"exerciseId"`
	TargetReps   int     `json:"targetReps"`
	TargetWeight float64 `json:"targetWeight"`
	RestSeconds  int     `json:"restSeconds"`
	Order        int     `json:"order"`
}

func (s *Server) handleAddPlannedSet(w http.ResponseWriter, r *http.Request) {
	routineID := chi.URLParam(r, "id")
	dayID := chi.URLParam(r, "dayID")
	var req plannedSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	ps := models.PlannedSet{
		ID:           uuid.New().String(),
		ExerciseID:   req.ExerciseID,
		TargetReps:   req.TargetReps,
		TargetWeight: req.TargetWeight,
		RestSeconds:  req.RestSeconds,
		Order:        req.Order,
	}
	err := s.store.Update(r.Context(), func(st *state.State) error {
		if _, ok := st.ExerciseByID(ps.ExerciseID); !ok {
			return &models.NotFoundError{Kind: "exercise", ID: ps.ExerciseID}
		}
		return st.AddPlannedSet(routineID, dayID, ps, time.Now().UTC())
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ps)
}

func (s *Server) handleUpdatePlannedSet(w http.ResponseWriter, r *http.Request) {
	routineID := chi.URLParam(r, "id")
	dayID := chi.URLParam(r, "dayID")
	setID := chi.URLParam(r, "setID")
	var req plannedSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	ps := models.PlannedSet{
		ID:           setID,
		ExerciseID:   req.ExerciseID,
		TargetReps:   req.TargetReps,
		TargetWeight: req.TargetWeight,
		RestSeconds:  req.RestSeconds,
		Order:        req.Order,
	}
	err := s.store.Update(r.Context(), func(st *state.State) error {
		return st.UpdatePlannedSet(routineID, dayID, ps, time.Now().UTC())
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (s *Server) handleRemovePlannedSet(w http.ResponseWriter, r *http.Request) {
	routineID := chi.URLParam(r, "id")
	dayID := chi.URLParam(r, "dayID")
	setID := chi.URLParam(r, "setID")
	err := s.store.Update(r.Context(), func(st *state.State) error {
		return st.RemovePlannedSet(routineID, dayID, setID, time.Now().UTC())
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	Order []string `json:"order"`
}

func (s *Server) handleReorderPlannedSets(w http.ResponseWriter, r *http.Request) {
	routineID := chi.URLParam(r, "id")
	dayID := chi.URLParam(r, "dayID")
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	err := s.store.Update(r.Context(), func(st *state.State) error {
		return st.ReorderPlannedSets(routineID, dayID, req.Order, time.Now().UTC())
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	day, _ := s.store.Snapshot().DayByID(routineID, dayID)
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleShareRoutine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	routine, ok := s.store.Snapshot().RoutineByID(id)
	if !ok {
		s.writeError(w, &models.NotFoundError{Kind: "routine", ID: id})
		return
	}
	writeJSON(w, http.StatusOK, share.Export(routine))
}

func (s *Server) handleImportRoutine(w http.ResponseWriter, r *http.Request) {
	var payload share.RoutinePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if payload.Name == "" {
		s.writeError(w, &models.ValidationError{Field: "name", Reason: "must not be empty"})
		return
	}

	routine := share.Import(payload, time.Now().UTC())
	err := s.store.Update(r.Context(), func(st *state.State) error {
		st.AddRoutine(routine)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, routine)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP status codes. Validation and
// format failures are 400, missing entities 404, session lifecycle
// conflicts 409; everything else is a 500 and gets logged.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		vErr  *models.ValidationError
		fErr  *models.FormatError
		nfErr *models.NotFoundError
	)
	switch {
	case errors.As(err, &vErr), errors.As(err, &fErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &nfErr):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, session.ErrSessionInProgress),
		errors.Is(err, session.ErrNoActiveSession),
		errors.Is(err, session.ErrNoCurrentSet):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
