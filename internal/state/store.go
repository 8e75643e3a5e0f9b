package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/claude/liftlog/internal/storage"
)

// Store guards the current State snapshot and applies reducer-style
// updates. Each update runs against a clone of the current snapshot, so a
// snapshot handed out by Snapshot is never torn by a concurrent write.
// Every successful update is persisted to the blob store; persistence is
// fire-and-forget: failures are logged, not surfaced to the caller.
type Store struct {
	mu   sync.RWMutex
	cur  *State
	blob storage.BlobStore
	log  *slog.Logger
}

// Open loads the persisted state from the blob store, seeding a fresh
// container with the default catalog when no blob exists yet.
func Open(ctx context.Context, blob storage.BlobStore, log *slog.Logger) (*Store, error) {
	s := &Store{blob: blob, log: log}

	data, err := blob.Load(ctx, storage.StateKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.cur = Seed()
		log.Info("no persisted state, seeded defaults",
			"muscle_groups", len(s.cur.MuscleGroups), "exercises", len(s.cur.Exercises))
		s.persist(ctx, s.cur)
	case err != nil:
		return nil, fmt.Errorf("loading state: %w", err)
	default:
		st, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("restoring state: %w", err)
		}
		s.cur = st
	}
	return s, nil
}

// NewStore wraps an existing container. Used by tests and the offline
// import CLI, which build their starting state directly.
func NewStore(initial *State, blob storage.BlobStore, log *slog.Logger) *Store {
	return &Store{cur: initial, blob: blob, log: log}
}

// Snapshot returns the current state. The returned value must be treated
// as read-only; updates replace the snapshot rather than mutating it.
func (s *Store) Snapshot() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Update clones the current state, applies fn to the clone, and on success
// swaps it in and persists it. If fn returns an error the state is
// unchanged, making multi-step operations atomic from the caller's view.
func (s *Store) Update(ctx context.Context, fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cur.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.cur = next
	s.persist(ctx, next)
	return nil
}

func (s *Store) persist(ctx context.Context, st *State) {
	data, err := Encode(st)
	if err != nil {
		s.log.Error("state encode failed", "error", err)
		return
	}
	if err := s.blob.Save(ctx, storage.StateKey, data); err != nil {
		s.log.Error("state persist failed", "error", err)
	}
}
