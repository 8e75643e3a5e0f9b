package models

import "time"

// MuscleCategory groups muscles by movement pattern.
type MuscleCategory string

const (
	CategoryPush MuscleCategory = "push"
	CategoryPull MuscleCategory = "pull"
	CategoryLegs MuscleCategory = "legs"
	CategoryCore MuscleCategory = "core"
)

// MuscleGroup is static reference data, created at initialization and
// immutable except through explicit edits.
type MuscleGroup struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category MuscleCategory `json:"category"`
}

// MuscleContribution attributes a percentage of an exercise's trained
// effect to one muscle group. Percentages across an exercise should sum
// to 100 but this is not enforced; consumers tolerate any total.
type MuscleContribution struct {
	MuscleGroupID string  `json:"muscleGroupId"`
	Percentage    float64 `json:"percentage"`
}

// Exercise is a movement in the catalog, referenced by id from planned
// and completed sets. A dangling reference (exercise deleted) is
// tolerated by consumers.
type Exercise struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Contributions []MuscleContribution `json:"muscleContributions"`
	Description   string               `json:"description,omitempty"`
	Videos        []string             `json:"videos,omitempty"`
	Notes         string               `json:"notes,omitempty"`
}

// PlannedSet is the template for a set to be performed.
type PlannedSet struct {
	ID           string  `json:"id"`
	ExerciseID   string  `json:"exerciseId"`
	TargetReps   int     `json:"targetReps"`
	TargetWeight float64 `json:"targetWeight,omitempty"`
	RestSeconds  int     `json:"restSeconds,omitempty"`
	Order        int     `json:"order,omitempty"`
}

// WorkoutDay is one ordered list of planned sets within a routine.
// A day belongs to exactly one routine.
type WorkoutDay struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	PlannedSets []PlannedSet `json:"plannedSets"`
	Order       int          `json:"order,omitempty"`
}

// WorkoutRoutine is a named multi-day workout template. UpdatedAt is
// refreshed on any structural mutation.
type WorkoutRoutine struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Days        []WorkoutDay `json:"days"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// WorkoutSession is one execution instance of a routine's day. It bounds
// a group of completed sets via their SessionID.
type WorkoutSession struct {
	ID          string     `json:"id"`
	RoutineID   string     `json:"routineId"`
	DayID       string     `json:"dayId"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// RepGroup is a contiguous block of identical-weight repetitions within a
// completed set. Order defines intra-set sequence; multiple rep groups per
// set support drop-sets and varying-weight sets.
type RepGroup struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
	Order  int     `json:"order"`
}

// NewRepGroup validates and constructs a RepGroup. Negative reps or weight
// fail with a ValidationError.
func NewRepGroup(reps int, weight float64, order int) (RepGroup, error) {
	if reps < 0 {
		return RepGroup{}, &ValidationError{Field: "reps", Reason: "must not be negative"}
	}
	if weight < 0 {
		return RepGroup{}, &ValidationError{Field: "weight", Reason: "must not be negative"}
	}
	return RepGroup{Reps: reps, Weight: weight, Order: order}, nil
}

// Volume is reps times weight for this rep group.
func (g RepGroup) Volume() float64 {
	return float64(g.Reps) * g.Weight
}

// CompletedSet is the recorded outcome of performing a set. It is the
// central audit-log entity: created once per finished set, immutable after
// creation except for corrective edits. PlannedSetID links back to the
// template when the set was not ad hoc.
type CompletedSet struct {
	ID           string     `json:"id"`
	SessionID    string     `json:"sessionId"`
	ExerciseID   string     `json:"exerciseId"`
	PlannedSetID string     `json:"plannedSetId,omitempty"`
	RepGroups    []RepGroup `json:"repGroups"`
	CompletedAt  time.Time  `json:"completedAt"`
	Notes        string     `json:"notes,omitempty"`
}

// Volume is the set volume: the sum of reps times weight across the set's
// rep groups. All aggregation is built from this quantity.
func (s CompletedSet) Volume() float64 {
	var total float64
	for _, g := range s.RepGroups {
		total += g.Volume()
	}
	return total
}

// Settings holds user preferences persisted alongside the collections.
type Settings struct {
	WeightUnit string `json:"weightUnit"`
}
