package session

import (
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/state"
)

// ExerciseProgress reports, for one exercise of the active day, how many
// planned sets exist and how many the session has already completed
// (matched by planned-set id).
type ExerciseProgress struct {
	ExerciseID    string `json:"exerciseId"`
	ExerciseName  string `json:"exerciseName"`
	PlannedSets   int    `json:"plannedSets"`
	CompletedSets int    `json:"completedSets"`
}

// Status is a read-only view of the active session, derived from a single
// state snapshot. CurrentSet is nil once the set index has run past the
// day's plan; AllSetsCompleted is the stronger condition that every planned
// set has a matching completed set.
type Status struct {
	Active    bool      `json:"active"`
	SessionID string    `json:"sessionId,omitempty"`
	RoutineID string    `json:"routineId,omitempty"`
	DayID     string    `json:"dayId,omitempty"`
	DayName   string    `json:"dayName,omitempty"`
	StartedAt time.Time `json:"startedAt,omitzero"`

	CurrentSetIndex     int                `json:"currentSetIndex"`
	CurrentSet          *models.PlannedSet `json:"currentSet,omitempty"`
	CurrentExercise     *models.Exercise   `json:"currentExercise,omitempty"`
	CurrentExerciseName string             `json:"currentExerciseName,omitempty"`
	SetNumberInExercise int                `json:"setNumberInExercise,omitempty"`

	Progress         []ExerciseProgress `json:"progress,omitempty"`
	AllSetsCompleted bool               `json:"allSetsCompleted"`
}

// Status derives the session view from the current snapshot. It never
// mutates state and degrades gracefully: a deleted exercise shows up as
// "Unknown Exercise" rather than failing.
func (c *Controller) Status() Status {
	st := c.store.Snapshot()
	if !st.WorkoutInProgress {
		return Status{}
	}
	sess, ok := st.SessionByID(st.ActiveSessionID)
	if !ok {
		return Status{}
	}
	day, ok := st.DayByID(sess.RoutineID, sess.DayID)
	if !ok {
		return Status{Active: true, SessionID: sess.ID, RoutineID: sess.RoutineID, DayID: sess.DayID, StartedAt: sess.StartedAt}
	}

	status := Status{
		Active:          true,
		SessionID:       sess.ID,
		RoutineID:       sess.RoutineID,
		DayID:           sess.DayID,
		DayName:         day.Name,
		StartedAt:       sess.StartedAt,
		CurrentSetIndex: st.CurrentSetIndex,
	}

	// Planned-set ids already fulfilled in this session.
	completed := make(map[string]bool)
	for _, cs := range st.CompletedSets {
		if cs.SessionID == sess.ID && cs.PlannedSetID != "" {
			completed[cs.PlannedSetID] = true
		}
	}

	if st.CurrentSetIndex < len(day.PlannedSets) {
		planned := day.PlannedSets[st.CurrentSetIndex]
		status.CurrentSet = &planned
		status.CurrentExerciseName = UnknownExerciseName
		if ex, ok := st.ExerciseByID(planned.ExerciseID); ok {
			status.CurrentExercise = &ex
			status.CurrentExerciseName = ex.Name
		}

		// 1-based set number within the current exercise.
		n := 0
		for i := 0; i <= st.CurrentSetIndex; i++ {
			if day.PlannedSets[i].ExerciseID == planned.ExerciseID {
				n++
			}
		}
		status.SetNumberInExercise = n
	}

	status.Progress = exerciseProgress(st, day, completed)

	status.AllSetsCompleted = true
	for _, p := range day.PlannedSets {
		if !completed[p.ID] {
			status.AllSetsCompleted = false
			break
		}
	}

	return status
}

// exerciseProgress tallies planned and fulfilled sets per exercise, in the
// order exercises first appear in the day.
func exerciseProgress(st *state.State, day models.WorkoutDay, completed map[string]bool) []ExerciseProgress {
	index := make(map[string]int)
	var progress []ExerciseProgress

	for _, p := range day.PlannedSets {
		i, seen := index[p.ExerciseID]
		if !seen {
			name := UnknownExerciseName
			if ex, ok := st.ExerciseByID(p.ExerciseID); ok {
				name = ex.Name
			}
			i = len(progress)
			index[p.ExerciseID] = i
			progress = append(progress, ExerciseProgress{ExerciseID: p.ExerciseID, ExerciseName: name})
		}
		progress[i].PlannedSets++
		if completed[p.ID] {
			progress[i].CompletedSets++
		}
	}
	return progress
}
