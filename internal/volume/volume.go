// Package volume aggregates completed-set history into time-windowed
// volume statistics: per-date totals for the active routine and per-muscle
// distributions across all routines.
package volume

import (
	"math"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// DefaultDaysBack is the lookback window used when the caller does not
// specify one.
const DefaultDaysBack = 31

// Point is one per-date entry in a total-volume series.
type Point struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
}

// MusclePoint is one muscle group's accumulated volume share.
type MusclePoint struct {
	MuscleGroupID string  `json:"muscleGroupId"`
	Name          string  `json:"name"`
	Volume        float64 `json:"volume"`
}

// Cutoff returns the window start for a daysBack lookback: midnight UTC of
// the calendar day daysBack days before now. Calendar subtraction, not a
// fixed millisecond window, so results change at day boundaries. A set
// completed exactly at the cutoff instant is inside the window.
func Cutoff(now time.Time, daysBack int) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d-daysBack, 0, 0, 0, 0, time.UTC)
}

// TotalOverTime builds the per-date total volume series for the active
// routine. Only sets belonging to sessions of activeRoutineID whose
// startedAt falls within the window count. Points are sorted ascending by
// date string; the second return is the grand total across the filtered
// sets. An empty activeRoutineID yields an empty series and zero total.
func TotalOverTime(sessions []models.WorkoutSession, sets []models.CompletedSet, activeRoutineID string, daysBack int, now time.Time) ([]Point, float64) {
	if activeRoutineID == "" {
		return nil, 0
	}
	cut := Cutoff(now, daysBack)

	inWindow := make(map[string]bool)
	for _, s := range sessions {
		if s.RoutineID != activeRoutineID {
			continue
		}
		if s.StartedAt.Before(cut) || s.StartedAt.After(now) {
			continue
		}
		inWindow[s.ID] = true
	}

	byDate := make(map[string]float64)
	var total float64
	for _, set := range sets {
		if !inWindow[set.SessionID] {
			continue
		}
		v := set.Volume()
		byDate[set.CompletedAt.UTC().Format("2006-01-02")] += v
		total += v
	}

	points := make([]Point, 0, len(byDate))
	for date, v := range byDate {
		points = append(points, Point{Date: date, Volume: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, total
}

// PerMuscleGroup distributes windowed set volume across muscle groups by
// each exercise's contribution percentages. Sets whose exercise is missing
// are skipped entirely. Each contribution is rounded independently, so the
// per-muscle sum may drift from the grand total by a few units when
// percentages do not divide evenly; the grand total always accumulates the
// full undistributed set volume. Results are sorted descending by volume,
// with the muscle group's display name resolved when known and the raw id
// otherwise. No routine filter applies.
func PerMuscleGroup(sets []models.CompletedSet, exercises []models.Exercise, groups []models.MuscleGroup, daysBack int, now time.Time) ([]MusclePoint, float64) {
	cut := Cutoff(now, daysBack)

	exByID := make(map[string]models.Exercise, len(exercises))
	for _, ex := range exercises {
		exByID[ex.ID] = ex
	}
	nameByID := make(map[string]string, len(groups))
	for _, g := range groups {
		nameByID[g.ID] = g.Name
	}

	acc := make(map[string]float64)
	var total float64
	for _, set := range sets {
		if set.CompletedAt.Before(cut) {
			continue
		}
		ex, ok := exByID[set.ExerciseID]
		if !ok {
			continue
		}
		v := set.Volume()
		for _, c := range ex.Contributions {
			acc[c.MuscleGroupID] += math.Round(v * c.Percentage / 100)
		}
		total += v
	}

	points := make([]MusclePoint, 0, len(acc))
	for id, v := range acc {
		name, ok := nameByID[id]
		if !ok {
			name = id
		}
		points = append(points, MusclePoint{MuscleGroupID: id, Name: name, Volume: v})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Volume != points[j].Volume {
			return points[i].Volume > points[j].Volume
		}
		return points[i].Name < points[j].Name
	})
	return points, total
}
