package state

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testState() *State {
	return &State{
		Routines: []models.WorkoutRoutine{{
			ID:   "r1",
			Name: "PPL",
			Days: []models.WorkoutDay{{
				ID:   "d1",
				Name: "Push",
				PlannedSets: []models.PlannedSet{
					{ID: "p1", ExerciseID: "bench-press", TargetReps: 8, Order: 0},
					{ID: "p2", ExerciseID: "overhead-press", TargetReps: 10, Order: 1},
				},
			}},
		}},
	}
}

// TestCloneIsolation verifies mutating a clone's nested slices leaves the
// original untouched.
func TestCloneIsolation(t *testing.T) {
	orig := testState()
	orig.CompletedSets = []models.CompletedSet{{
		ID:        "c1",
		RepGroups: []models.RepGroup{{Reps: 10, Weight: 100}},
	}}

	clone := orig.Clone()
	clone.Routines[0].Days[0].PlannedSets[0].TargetReps = 99
	clone.Routines[0].Name = "changed"
	clone.CompletedSets[0].RepGroups[0].Reps = 1
	clone.CompletedSets = append(clone.CompletedSets, models.CompletedSet{ID: "c2"})

	if orig.Routines[0].Days[0].PlannedSets[0].TargetReps != 8 {
		t.Error("clone mutation leaked into original planned sets")
	}
	if orig.Routines[0].Name != "PPL" {
		t.Error("clone mutation leaked into original routine")
	}
	if orig.CompletedSets[0].RepGroups[0].Reps != 10 {
		t.Error("clone mutation leaked into original rep groups")
	}
	if len(orig.CompletedSets) != 1 {
		t.Error("clone append leaked into original collection")
	}
}

// TestCodecRoundTrip verifies the snapshot codec restores collections,
// controller pointers, and timestamps.
func TestCodecRoundTrip(t *testing.T) {
	st := testState()
	st.ActiveRoutineID = "r1"
	st.ActiveSessionID = "s1"
	st.CurrentDayIndex = 2
	st.CurrentSetIndex = 3
	st.WorkoutInProgress = true
	startedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	st.Sessions = []models.WorkoutSession{{ID: "s1", RoutineID: "r1", DayID: "d1", StartedAt: startedAt}}

	data, err := Encode(st)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if got.ActiveRoutineID != "r1" || got.ActiveSessionID != "s1" {
		t.Errorf("pointers = %q %q", got.ActiveRoutineID, got.ActiveSessionID)
	}
	if got.CurrentDayIndex != 2 || got.CurrentSetIndex != 3 || !got.WorkoutInProgress {
		t.Errorf("indices = %d %d %v", got.CurrentDayIndex, got.CurrentSetIndex, got.WorkoutInProgress)
	}
	if !got.Sessions[0].StartedAt.Equal(startedAt) {
		t.Errorf("startedAt = %v, want %v", got.Sessions[0].StartedAt, startedAt)
	}
	if len(got.Routines) != 1 || len(got.Routines[0].Days[0].PlannedSets) != 2 {
		t.Error("collections not restored")
	}
}

// TestDecodeRejectsGarbage verifies malformed blobs fail decoding instead
// of yielding a half-built state.
func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("expected error for non-JSON blob")
	}
	if _, err := Decode([]byte(`{"version":99,"state":{}}`)); err == nil {
		t.Error("expected error for unknown version")
	}
}

// TestStoreUpdateAtomic verifies a failed reducer leaves the snapshot
// unchanged and a successful one replaces it.
func TestStoreUpdateAtomic(t *testing.T) {
	s := NewStore(testState(), storage.NewMemoryStore(), testLogger())
	before := s.Snapshot()

	wantErr := errors.New("boom")
	err := s.Update(context.Background(), func(st *State) error {
		st.Routines = nil
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want boom", err)
	}
	if s.Snapshot() != before {
		t.Error("failed update replaced the snapshot")
	}

	if err := s.Update(context.Background(), func(st *State) error {
		st.ActiveRoutineID = "r1"
		return nil
	}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if s.Snapshot().ActiveRoutineID != "r1" {
		t.Error("successful update not visible")
	}
	if before.ActiveRoutineID != "" {
		t.Error("old snapshot was mutated in place")
	}
}

// TestStorePersistsOnUpdate verifies every successful update writes a
// decodable snapshot to the blob store.
func TestStorePersistsOnUpdate(t *testing.T) {
	blob := storage.NewMemoryStore()
	s := NewStore(testState(), blob, testLogger())

	if err := s.Update(context.Background(), func(st *State) error {
		st.ActiveRoutineID = "r1"
		return nil
	}); err != nil {
		t.Fatalf("update error: %v", err)
	}

	data, err := blob.Load(context.Background(), storage.StateKey)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	restored, err := Decode(data)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if restored.ActiveRoutineID != "r1" {
		t.Errorf("persisted ActiveRoutineID = %q, want r1", restored.ActiveRoutineID)
	}
}

// TestOpenSeedsFreshState verifies Open seeds the default catalog when the
// blob store is empty, and restores the persisted state otherwise.
func TestOpenSeedsFreshState(t *testing.T) {
	blob := storage.NewMemoryStore()
	ctx := context.Background()

	s, err := Open(ctx, blob, testLogger())
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	if len(s.Snapshot().MuscleGroups) == 0 || len(s.Snapshot().Exercises) == 0 {
		t.Fatal("fresh state not seeded")
	}

	if err := s.Update(ctx, func(st *State) error {
		st.ActiveRoutineID = "marker"
		return nil
	}); err != nil {
		t.Fatalf("update error: %v", err)
	}

	reopened, err := Open(ctx, blob, testLogger())
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if reopened.Snapshot().ActiveRoutineID != "marker" {
		t.Error("reopen did not restore persisted state")
	}
}

// TestRoutineEditsRefreshUpdatedAt verifies structural mutations stamp the
// routine's UpdatedAt.
func TestRoutineEditsRefreshUpdatedAt(t *testing.T) {
	st := testState()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	if err := st.AddPlannedSet("r1", "d1", models.PlannedSet{ID: "p3", ExerciseID: "squat", TargetReps: 5}, now); err != nil {
		t.Fatalf("add error: %v", err)
	}
	if !st.Routines[0].UpdatedAt.Equal(now) {
		t.Errorf("updatedAt = %v, want %v", st.Routines[0].UpdatedAt, now)
	}
	if len(st.Routines[0].Days[0].PlannedSets) != 3 {
		t.Errorf("planned sets = %d, want 3", len(st.Routines[0].Days[0].PlannedSets))
	}
}

// TestReorderPlannedSets verifies reorder rewrites positions to match the
// id sequence and rejects a non-permutation.
func TestReorderPlannedSets(t *testing.T) {
	st := testState()
	now := time.Now()

	if err := st.ReorderPlannedSets("r1", "d1", []string{"p2", "p1"}, now); err != nil {
		t.Fatalf("reorder error: %v", err)
	}
	sets := st.Routines[0].Days[0].PlannedSets
	if sets[0].ID != "p2" || sets[0].Order != 0 {
		t.Errorf("sets[0] = %+v, want p2 at 0", sets[0])
	}
	if sets[1].ID != "p1" || sets[1].Order != 1 {
		t.Errorf("sets[1] = %+v, want p1 at 1", sets[1])
	}

	if err := st.ReorderPlannedSets("r1", "d1", []string{"p2"}, now); err == nil {
		t.Error("expected error for short id list")
	}
	var nferr *models.NotFoundError
	if err := st.ReorderPlannedSets("r1", "d1", []string{"p2", "ghost"}, now); !errors.As(err, &nferr) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

// TestDeleteRoutineClearsActivePointer verifies deleting the active routine
// resets the rotation pointer.
func TestDeleteRoutineClearsActivePointer(t *testing.T) {
	st := testState()
	st.ActiveRoutineID = "r1"
	st.CurrentDayIndex = 1

	if err := st.DeleteRoutine("r1"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if st.ActiveRoutineID != "" || st.CurrentDayIndex != 0 {
		t.Errorf("pointers = %q %d, want cleared", st.ActiveRoutineID, st.CurrentDayIndex)
	}

	var nferr *models.NotFoundError
	if err := st.DeleteRoutine("r1"); !errors.As(err, &nferr) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}
