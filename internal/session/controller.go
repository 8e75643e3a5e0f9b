// Package session drives progression through a routine's planned sets: one
// active workout session at a time, advanced set-by-set, producing the
// completed-set records all analytics are built from.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/state"
	"github.com/google/uuid"
)

var (
	// ErrSessionInProgress is returned by StartSession while another
	// session is active.
	ErrSessionInProgress = errors.New("a session is already in progress")
	// ErrNoActiveSession is returned by transitions that need an active
	// session.
	ErrNoActiveSession = errors.New("no active session")
	// ErrNoCurrentSet is returned by RecordSet when the set index has run
	// past the day's planned sets; ad-hoc recording still works.
	ErrNoCurrentSet = errors.New("no current planned set")
)

// UnknownExerciseName is the display fallback for sets whose exercise was
// deleted from the catalog.
const UnknownExerciseName = "Unknown Exercise"

// Controller is the training-session state machine. All state lives in the
// store; the controller survives restarts by resuming from the persisted
// pointers rather than re-deriving them from history.
type Controller struct {
	store *state.Store
	clock func() time.Time
	newID func() string
}

// NewController creates a Controller over the given store.
func NewController(store *state.Store) *Controller {
	return &Controller{
		store: store,
		clock: time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// StartSession begins a session for the given routine day. Valid only while
// idle; the routine and day must both exist, otherwise a NotFoundError is
// returned. The routine becomes the active routine and the day pointer is
// aligned to the started day so rotation continues from there.
func (c *Controller) StartSession(ctx context.Context, routineID, dayID string) (models.WorkoutSession, error) {
	var started models.WorkoutSession
	err := c.store.Update(ctx, func(st *state.State) error {
		if st.WorkoutInProgress {
			return ErrSessionInProgress
		}
		routine, ok := st.RoutineByID(routineID)
		if !ok {
			return &models.NotFoundError{Kind: "routine", ID: routineID}
		}
		dayIdx := -1
		for i, d := range routine.Days {
			if d.ID == dayID {
				dayIdx = i
				break
			}
		}
		if dayIdx < 0 {
			return &models.NotFoundError{Kind: "day", ID: dayID}
		}

		started = models.WorkoutSession{
			ID:        c.newID(),
			RoutineID: routineID,
			DayID:     dayID,
			StartedAt: c.clock(),
		}
		st.Sessions = append(st.Sessions, started)
		st.ActiveRoutineID = routineID
		st.ActiveSessionID = started.ID
		st.CurrentDayIndex = dayIdx
		st.CurrentSetIndex = 0
		st.WorkoutInProgress = true
		return nil
	})
	return started, err
}

// RecordSet appends a completed set for the current planned set, linking it
// back to its template. The set index is not advanced; callers pair this
// with AdvanceSet. Rep groups are validated before anything is written.
func (c *Controller) RecordSet(ctx context.Context, groups []models.RepGroup, notes string) (models.CompletedSet, error) {
	var recorded models.CompletedSet
	err := c.store.Update(ctx, func(st *state.State) error {
		sess, day, err := activeDay(st)
		if err != nil {
			return err
		}
		if st.CurrentSetIndex >= len(day.PlannedSets) {
			return ErrNoCurrentSet
		}
		planned := day.PlannedSets[st.CurrentSetIndex]

		set, err := c.buildSet(sess.ID, planned.ExerciseID, planned.ID, groups, notes)
		if err != nil {
			return err
		}
		st.CompletedSets = append(st.CompletedSets, set)
		recorded = set
		return nil
	})
	return recorded, err
}

// RecordAdHocSet appends a completed set outside the day's plan: it
// references an exercise directly and carries no planned-set link.
func (c *Controller) RecordAdHocSet(ctx context.Context, exerciseID string, groups []models.RepGroup, notes string) (models.CompletedSet, error) {
	var recorded models.CompletedSet
	err := c.store.Update(ctx, func(st *state.State) error {
		sess, _, err := activeDay(st)
		if err != nil {
			return err
		}
		set, err := c.buildSet(sess.ID, exerciseID, "", groups, notes)
		if err != nil {
			return err
		}
		st.CompletedSets = append(st.CompletedSets, set)
		recorded = set
		return nil
	})
	return recorded, err
}

func (c *Controller) buildSet(sessionID, exerciseID, plannedSetID string, groups []models.RepGroup, notes string) (models.CompletedSet, error) {
	if len(groups) == 0 {
		return models.CompletedSet{}, &models.ValidationError{Field: "repGroups", Reason: "at least one rep group is required"}
	}
	validated := make([]models.RepGroup, 0, len(groups))
	for _, g := range groups {
		vg, err := models.NewRepGroup(g.Reps, g.Weight, g.Order)
		if err != nil {
			return models.CompletedSet{}, err
		}
		validated = append(validated, vg)
	}
	return models.CompletedSet{
		ID:           c.newID(),
		SessionID:    sessionID,
		ExerciseID:   exerciseID,
		PlannedSetID: plannedSetID,
		RepGroups:    validated,
		CompletedAt:  c.clock(),
		Notes:        notes,
	}, nil
}

// AdvanceSet moves the set pointer forward. No upper bound is enforced; an
// index past the day's planned sets is the workout-complete condition.
func (c *Controller) AdvanceSet(ctx context.Context) error {
	return c.store.Update(ctx, func(st *state.State) error {
		if !st.WorkoutInProgress {
			return ErrNoActiveSession
		}
		st.CurrentSetIndex++
		return nil
	})
}

// RetreatSet moves the set pointer back, floored at zero.
func (c *Controller) RetreatSet(ctx context.Context) error {
	return c.store.Update(ctx, func(st *state.State) error {
		if !st.WorkoutInProgress {
			return ErrNoActiveSession
		}
		if st.CurrentSetIndex > 0 {
			st.CurrentSetIndex--
		}
		return nil
	})
}

// CompleteSession stamps the active session finished and rotates the day
// pointer to the next day of the routine, wrapping past the last day.
func (c *Controller) CompleteSession(ctx context.Context, notes string) (models.WorkoutSession, error) {
	var completed models.WorkoutSession
	err := c.store.Update(ctx, func(st *state.State) error {
		if !st.WorkoutInProgress {
			return ErrNoActiveSession
		}
		now := c.clock()
		for i := range st.Sessions {
			if st.Sessions[i].ID != st.ActiveSessionID {
				continue
			}
			st.Sessions[i].CompletedAt = &now
			if notes != "" {
				st.Sessions[i].Notes = notes
			}
			completed = st.Sessions[i]
			break
		}

		if routine, ok := st.RoutineByID(st.ActiveRoutineID); ok && len(routine.Days) > 0 {
			st.CurrentDayIndex = (st.CurrentDayIndex + 1) % len(routine.Days)
		} else {
			st.CurrentDayIndex = 0
		}
		st.ActiveSessionID = ""
		st.CurrentSetIndex = 0
		st.WorkoutInProgress = false
		return nil
	})
	return completed, err
}

// CancelSession discards the active session and exactly the completed sets
// recorded under it. The day pointer does not advance.
func (c *Controller) CancelSession(ctx context.Context) error {
	return c.store.Update(ctx, func(st *state.State) error {
		if !st.WorkoutInProgress {
			return ErrNoActiveSession
		}
		sessionID := st.ActiveSessionID

		sessions := st.Sessions[:0]
		for _, s := range st.Sessions {
			if s.ID != sessionID {
				sessions = append(sessions, s)
			}
		}
		st.Sessions = sessions

		sets := st.CompletedSets[:0]
		for _, cs := range st.CompletedSets {
			if cs.SessionID != sessionID {
				sets = append(sets, cs)
			}
		}
		st.CompletedSets = sets

		st.ActiveSessionID = ""
		st.CurrentSetIndex = 0
		st.WorkoutInProgress = false
		return nil
	})
}

func activeDay(st *state.State) (models.WorkoutSession, models.WorkoutDay, error) {
	if !st.WorkoutInProgress {
		return models.WorkoutSession{}, models.WorkoutDay{}, ErrNoActiveSession
	}
	sess, ok := st.SessionByID(st.ActiveSessionID)
	if !ok {
		return models.WorkoutSession{}, models.WorkoutDay{}, ErrNoActiveSession
	}
	day, ok := st.DayByID(sess.RoutineID, sess.DayID)
	if !ok {
		return models.WorkoutSession{}, models.WorkoutDay{}, &models.NotFoundError{Kind: "day", ID: sess.DayID}
	}
	return sess, day, nil
}
