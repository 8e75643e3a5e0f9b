package state

import "github.com/claude/liftlog/internal/models"

// Seed builds the initial container for a fresh installation: the standard
// muscle-group catalog and a starter set of barbell exercises. Users edit
// the catalog from there.
func Seed() *State {
	return &State{
		MuscleGroups: []models.MuscleGroup{
			{ID: "chest", Name: "Chest", Category: models.CategoryPush},
			{ID: "front-delts", Name: "Front Delts", Category: models.CategoryPush},
			{ID: "side-delts", Name: "Side Delts", Category: models.CategoryPush},
			{ID: "triceps", Name: "Triceps", Category: models.CategoryPush},
			{ID: "lats", Name: "Lats", Category: models.CategoryPull},
			{ID: "upper-back", Name: "Upper Back", Category: models.CategoryPull},
			{ID: "rear-delts", Name: "Rear Delts", Category: models.CategoryPull},
			{ID: "biceps", Name: "Biceps", Category: models.CategoryPull},
			{ID: "quads", Name: "Quadriceps", Category: models.CategoryLegs},
			{ID: "hamstrings", Name: "Hamstrings", Category: models.CategoryLegs},
			{ID: "glutes", Name: "Glutes", Category: models.CategoryLegs},
			{ID: "calves", Name: "Calves", Category: models.CategoryLegs},
			{ID: "abs", Name: "Abs", Category: models.CategoryCore},
			{ID: "lower-back", Name: "Lower Back", Category: models.CategoryCore},
		},
		Exercises: []models.Exercise{
			{
				ID:   "squat",
				Name: "Back Squat",
				Contributions: []models.MuscleContribution{
					{MuscleGroupID: "quads", Percentage: 50},
					{MuscleGroupID: "glutes", Percentage: 30},
					{MuscleGroupID: "hamstrings", Percentage: 10},
					{MuscleGroupID: "lower-back", Percentage: 10},
				},
			},
			{
				ID:   "bench-press",
				Name: "Bench Press",
				Contributions: []models.MuscleContribution{
					{MuscleGroupID: "chest", Percentage: 60},
					{MuscleGroupID: "triceps", Percentage: 25},
					{MuscleGroupID: "front-delts", Percentage: 15},
				},
			},
			{
				ID:   "deadlift",
				Name: "Deadlift",
				Contributions: []models.MuscleContribution{
					{MuscleGroupID: "hamstrings", Percentage: 30},
					{MuscleGroupID: "glutes", Percentage: 30},
					{MuscleGroupID: "lower-back", Percentage: 25},
					{MuscleGroupID: "upper-back", Percentage: 15},
				},
			},
			{
				ID:   "barbell-row",
				Name: "Barbell Row",
				Contributions: []models.MuscleContribution{
					{MuscleGroupID: "lats", Percentage: 40},
					{MuscleGroupID: "upper-back", Percentage: 35},
					{MuscleGroupID: "biceps", Percentage: 15},
					{MuscleGroupID: "rear-delts", Percentage: 10},
				},
			},
			{
				ID:   "overhead-press",
				Name: "Overhead Press",
				Contributions: []models.MuscleContribution{
					{MuscleGroupID: "front-delts", Percentage: 45},
					{MuscleGroupID: "side-delts", Percentage: 25},
					{MuscleGroupID: "triceps", Percentage: 30},
				},
			},
		},
		Settings: models.Settings{WeightUnit: "kg"},
	}
}
