package importer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/csvio"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/state"
	"github.com/claude/liftlog/internal/storage"
)

var ctx = context.Background()

func newTestStore(existing ...models.CompletedSet) *state.Store {
	return state.NewStore(
		&state.State{CompletedSets: existing},
		storage.NewMemoryStore(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func existingSet(id string) models.CompletedSet {
	return models.CompletedSet{
		ID:          id,
		SessionID:   "s-old",
		ExerciseID:  "squat",
		CompletedAt: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC),
		RepGroups:   []models.RepGroup{{Reps: 5, Weight: 100}},
	}
}

const importCSV = csvio.Header + "\n" +
	"set-1,sess-1,bench-press,,2026-08-01T10:00:00Z,,0,8,70\n" +
	"set-1,sess-1,bench-press,,2026-08-01T10:00:00Z,,1,5,60\n" +
	"set-2,sess-1,squat,,2026-08-01T10:10:00Z,,0,5,120\n"

// TestImportMerge verifies merge concatenates the imported batch onto the
// existing collection.
func TestImportMerge(t *testing.T) {
	store := newTestStore(existingSet("old-1"))
	imp := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)), false)

	stats, err := imp.ImportCSV(ctx, strings.NewReader(importCSV), ModeMerge)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if stats.SetsImported != 2 || stats.RepGroups != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.SetsBefore != 1 || stats.SetsAfter != 3 {
		t.Errorf("before/after = %d/%d, want 1/3", stats.SetsBefore, stats.SetsAfter)
	}

	sets := store.Snapshot().CompletedSets
	if len(sets) != 3 {
		t.Fatalf("sets = %d, want 3", len(sets))
	}
	if sets[0].ID != "old-1" || sets[1].ID != "set-1" || sets[2].ID != "set-2" {
		t.Errorf("order = [%s %s %s]", sets[0].ID, sets[1].ID, sets[2].ID)
	}
}

// TestImportMergeKeepsDuplicateIDs pins the documented merge behavior: an
// imported set whose id collides with an existing one produces two distinct
// entries, not a replacement.
func TestImportMergeKeepsDuplicateIDs(t *testing.T) {
	store := newTestStore(existingSet("set-2"))
	imp := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)), false)

	if _, err := imp.ImportCSV(ctx, strings.NewReader(importCSV), ModeMerge); err != nil {
		t.Fatalf("import error: %v", err)
	}

	var count int
	for _, s := range store.Snapshot().CompletedSets {
		if s.ID == "set-2" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("sets with id set-2 = %d, want 2 (no dedup)", count)
	}
}

// TestImportReplace verifies replace discards the live collection, and in
// particular that replacing with an empty import clears everything.
func TestImportReplace(t *testing.T) {
	store := newTestStore(existingSet("old-1"), existingSet("old-2"))
	imp := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)), false)

	stats, err := imp.ImportCSV(ctx, strings.NewReader(csvio.Header+"\n"), ModeReplace)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if stats.SetsAfter != 0 {
		t.Errorf("after = %d, want 0", stats.SetsAfter)
	}
	if len(store.Snapshot().CompletedSets) != 0 {
		t.Error("replace with empty import did not clear the collection")
	}
}

// TestImportParseFailureLeavesStateUntouched verifies the all-or-nothing
// contract: a bad row means no change at all.
func TestImportParseFailureLeavesStateUntouched(t *testing.T) {
	store := newTestStore(existingSet("old-1"))
	imp := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)), false)

	bad := csvio.Header + "\nset-1,sess-1,bench\n"
	_, err := imp.ImportCSV(ctx, strings.NewReader(bad), ModeReplace)
	var ferr *models.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v, want FormatError", err)
	}
	if len(store.Snapshot().CompletedSets) != 1 {
		t.Error("failed import mutated the collection")
	}
}

// TestImportDryRun verifies a dry run reports counts without applying.
func TestImportDryRun(t *testing.T) {
	store := newTestStore(existingSet("old-1"))
	imp := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)), true)

	stats, err := imp.ImportCSV(ctx, strings.NewReader(importCSV), ModeMerge)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if !stats.DryRun || stats.SetsAfter != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if len(store.Snapshot().CompletedSets) != 1 {
		t.Error("dry run mutated the collection")
	}
}

// TestParseMode verifies mode string validation.
func TestParseMode(t *testing.T) {
	if m, err := ParseMode("merge"); err != nil || m != ModeMerge {
		t.Errorf("merge: %v %v", m, err)
	}
	if m, err := ParseMode("replace"); err != nil || m != ModeReplace {
		t.Errorf("replace: %v %v", m, err)
	}
	if _, err := ParseMode("upsert"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
