// Package state holds the application's single state container: the typed
// collections plus the session-controller pointers, with copy-on-write
// update semantics and a JSON snapshot codec for the persisted blob.
package state

import (
	"github.com/claude/liftlog/internal/models"
)

// State is the one in-memory container all components read from. Mutation
// goes through Store.Update, which clones the container first; a snapshot
// handed to a reader is never mutated afterwards.
type State struct {
	MuscleGroups  []models.MuscleGroup    `json:"muscleGroups"`
	Exercises     []models.Exercise       `json:"exercises"`
	Routines      []models.WorkoutRoutine `json:"routines"`
	Sessions      []models.WorkoutSession `json:"sessions"`
	CompletedSets []models.CompletedSet   `json:"completedSets"`
	Settings      models.Settings         `json:"settings"`

	ActiveRoutineID   string `json:"activeRoutineId"`
	ActiveSessionID   string `json:"activeSessionId"`
	CurrentDayIndex   int    `json:"currentDayIndex"`
	CurrentSetIndex   int    `json:"currentSetIndex"`
	WorkoutInProgress bool   `json:"isWorkoutInProgress"`
}

// Clone returns a deep copy of the container. Nested slices are copied so
// the clone can be mutated freely without touching the original.
func (s *State) Clone() *State {
	c := *s

	c.MuscleGroups = append([]models.MuscleGroup(nil), s.MuscleGroups...)
	c.Sessions = append([]models.WorkoutSession(nil), s.Sessions...)

	c.Exercises = make([]models.Exercise, len(s.Exercises))
	for i, ex := range s.Exercises {
		ex.Contributions = append([]models.MuscleContribution(nil), ex.Contributions...)
		ex.Videos = append([]string(nil), ex.Videos...)
		c.Exercises[i] = ex
	}

	c.Routines = make([]models.WorkoutRoutine, len(s.Routines))
	for i, r := range s.Routines {
		days := make([]models.WorkoutDay, len(r.Days))
		for j, d := range r.Days {
			d.PlannedSets = append([]models.PlannedSet(nil), d.PlannedSets...)
			days[j] = d
		}
		r.Days = days
		c.Routines[i] = r
	}

	c.CompletedSets = make([]models.CompletedSet, len(s.CompletedSets))
	for i, set := range s.CompletedSets {
		set.RepGroups = append([]models.RepGroup(nil), set.RepGroups...)
		c.CompletedSets[i] = set
	}

	return &c
}

// ExerciseByID looks up an exercise. The second return reports whether the
// reference resolved; callers decide how to degrade on a dangling id.
func (s *State) ExerciseByID(id string) (models.Exercise, bool) {
	for _, ex := range s.Exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

// MuscleGroupByID looks up a muscle group.
func (s *State) MuscleGroupByID(id string) (models.MuscleGroup, bool) {
	for _, g := range s.MuscleGroups {
		if g.ID == id {
			return g, true
		}
	}
	return models.MuscleGroup{}, false
}

// RoutineByID looks up a routine.
func (s *State) RoutineByID(id string) (models.WorkoutRoutine, bool) {
	for _, r := range s.Routines {
		if r.ID == id {
			return r, true
		}
	}
	return models.WorkoutRoutine{}, false
}

// DayByID looks up a day within a routine.
func (s *State) DayByID(routineID, dayID string) (models.WorkoutDay, bool) {
	r, ok := s.RoutineByID(routineID)
	if !ok {
		return models.WorkoutDay{}, false
	}
	for _, d := range r.Days {
		if d.ID == dayID {
			return d, true
		}
	}
	return models.WorkoutDay{}, false
}

// SessionByID looks up a workout session.
func (s *State) SessionByID(id string) (models.WorkoutSession, bool) {
	for _, sess := range s.Sessions {
		if sess.ID == id {
			return sess, true
		}
	}
	return models.WorkoutSession{}, false
}
