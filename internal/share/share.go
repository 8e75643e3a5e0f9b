// Package share converts routines to and from the id-free payload shape
// handed to the external share codec. Imports mint fresh identifiers so a
// shared routine can never collide with local data.
package share

import (
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// RoutinePayload is the serializable routine shape. It carries no ids of
// its own beyond exercise references, which point into the catalog.
type RoutinePayload struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Days        []DayPayload `json:"days"`
}

// DayPayload is one day of a shared routine.
type DayPayload struct {
	Name        string              `json:"name"`
	Order       int                 `json:"order,omitempty"`
	PlannedSets []PlannedSetPayload `json:"plannedSets"`
}

// PlannedSetPayload is one planned set of a shared day.
type PlannedSetPayload struct {
	ExerciseID   string  `json:"exerciseId"`
	TargetReps   int     `json:"targetReps"`
	TargetWeight float64 `json:"targetWeight,omitempty"`
	RestSeconds  int     `json:"restSeconds,omitempty"`
	Order        int     `json:"order,omitempty"`
}

// Export strips a routine down to the shareable shape.
func Export(r models.WorkoutRoutine) RoutinePayload {
	p := RoutinePayload{
		Name:        r.Name,
		Description: r.Description,
		Days:        make([]DayPayload, len(r.Days)),
	}
	for i, d := range r.Days {
		day := DayPayload{
			Name:        d.Name,
			Order:       d.Order,
			PlannedSets: make([]PlannedSetPayload, len(d.PlannedSets)),
		}
		for j, ps := range d.PlannedSets {
			day.PlannedSets[j] = PlannedSetPayload{
				ExerciseID:   ps.ExerciseID,
				TargetReps:   ps.TargetReps,
				TargetWeight: ps.TargetWeight,
				RestSeconds:  ps.RestSeconds,
				Order:        ps.Order,
			}
		}
		p.Days[i] = day
	}
	return p
}

// Import builds a routine from a shared payload, assigning fresh ids to
// the routine, every day, and every planned set.
func Import(p RoutinePayload, now time.Time) models.WorkoutRoutine {
	r := models.WorkoutRoutine{
		ID:          uuid.New().String(),
		Name:        p.Name,
		Description: p.Description,
		Days:        make([]models.WorkoutDay, len(p.Days)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, d := range p.Days {
		day := models.WorkoutDay{
			ID:          uuid.New().String(),
			Name:        d.Name,
			Order:       d.Order,
			PlannedSets: make([]models.PlannedSet, len(d.PlannedSets)),
		}
		for j, ps := range d.PlannedSets {
			day.PlannedSets[j] = models.PlannedSet{
				ID:           uuid.New().String(),
				ExerciseID:   ps.ExerciseID,
				TargetReps:   ps.TargetReps,
				TargetWeight: ps.TargetWeight,
				RestSeconds:  ps.RestSeconds,
				Order:        ps.Order,
			}
		}
		r.Days[i] = day
	}
	return r
}
