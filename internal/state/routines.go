package state

import (
	"time"

	"github.com/claude/liftlog/internal/models"
)

// Routine editing operations. These mutate the receiver and are meant to
// run inside Store.Update reducers. Every structural mutation refreshes the
// routine's UpdatedAt stamp.

func (s *State) routineIndex(id string) int {
	for i, r := range s.Routines {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// AddRoutine appends a routine to the container.
func (s *State) AddRoutine(r models.WorkoutRoutine) {
	s.Routines = append(s.Routines, r)
}

// UpdateRoutineMeta renames a routine and updates its description.
func (s *State) UpdateRoutineMeta(id, name, description string, now time.Time) error {
	i := s.routineIndex(id)
	if i < 0 {
		return &models.NotFoundError{Kind: "routine", ID: id}
	}
	s.Routines[i].Name = name
	s.Routines[i].Description = description
	s.Routines[i].UpdatedAt = now
	return nil
}

// DeleteRoutine removes a routine. The active-routine pointer is cleared
// when it referenced the deleted routine; history is left untouched.
func (s *State) DeleteRoutine(id string) error {
	i := s.routineIndex(id)
	if i < 0 {
		return &models.NotFoundError{Kind: "routine", ID: id}
	}
	s.Routines = append(s.Routines[:i], s.Routines[i+1:]...)
	if s.ActiveRoutineID == id {
		s.ActiveRoutineID = ""
		s.CurrentDayIndex = 0
	}
	return nil
}

// AddDay appends a day to a routine.
func (s *State) AddDay(routineID string, day models.WorkoutDay, now time.Time) error {
	i := s.routineIndex(routineID)
	if i < 0 {
		return &models.NotFoundError{Kind: "routine", ID: routineID}
	}
	s.Routines[i].Days = append(s.Routines[i].Days, day)
	s.Routines[i].UpdatedAt = now
	return nil
}

// RemoveDay deletes a day from a routine.
func (s *State) RemoveDay(routineID, dayID string, now time.Time) error {
	i := s.routineIndex(routineID)
	if i < 0 {
		return &models.NotFoundError{Kind: "routine", ID: routineID}
	}
	days := s.Routines[i].Days
	for j, d := range days {
		if d.ID == dayID {
			s.Routines[i].Days = append(days[:j], days[j+1:]...)
			s.Routines[i].UpdatedAt = now
			return nil
		}
	}
	return &models.NotFoundError{Kind: "day", ID: dayID}
}

func (s *State) dayRef(routineID, dayID string) (*models.WorkoutDay, int) {
	i := s.routineIndex(routineID)
	if i < 0 {
		return nil, -1
	}
	for j := range s.Routines[i].Days {
		if s.Routines[i].Days[j].ID == dayID {
			return &s.Routines[i].Days[j], i
		}
	}
	return nil, i
}

// AddPlannedSet appends a planned set to a day.
func (s *State) AddPlannedSet(routineID, dayID string, ps models.PlannedSet, now time.Time) error {
	day, ri := s.dayRef(routineID, dayID)
	if ri < 0 {
		return &models.NotFoundError{Kind: "routine", ID: routineID}
	}
	if day == nil {
		return &models.NotFoundError{Kind: "day", ID: dayID}
	}
	day.PlannedSets = append(day.PlannedSets, ps)
	s.Routines[ri].UpdatedAt = now
	return nil
}

// UpdatePlannedSet replaces a planned set in place, matched by id.
func (s *State) UpdatePlannedSet(routineID, dayID string, ps models.PlannedSet, now time.Time) error {
	day, ri := s.dayRef(routineID, dayID)
	if ri < 0 {
		return &models.NotFoundError{Kind: "routine", ID: routineID}
	}
	if day == nil {
		return &models.NotFoundError{Kind: "day", ID: dayID}
	}
	for j := range day.PlannedSets {
		if day.PlannedSets[j].ID == ps.ID {
			day.PlannedSets[j] = ps
			s.Routines[ri].UpdatedAt = now
			return nil
		}
	}
	return &models.NotFoundError{Kind: "planned set", ID: ps.ID}
}

// RemovePlannedSet deletes a planned set from a day.
func (s *State) RemovePlannedSet(routineID, dayID, setID string, now time.Time) error {
	day, ri := s.dayRef(routineID, dayID)
	if ri < 0 {
		return &models.NotFoundError{Kind: "routine", ID: routineID}
	}
	if day == nil {
		return &models.NotFoundError{Kind: "day", ID: dayID}
	}
	for j, p := range day.PlannedSets {
		if p.ID == setID {
			day.PlannedSets = append(day.PlannedSets[:j], day.PlannedSets[j+1:]...)
			s.Routines[ri].UpdatedAt = now
			return nil
		}
	}
	return &models.NotFoundError{Kind: "planned set", ID: setID}
}

// ReorderPlannedSets rewrites a day's planned-set order to match the given
// id sequence. The sequence must be a permutation of the day's set ids.
func (s *State) ReorderPlannedSets(routineID, dayID string, orderedIDs []string, now time.Time) error {
	day, ri := s.dayRef(routineID, dayID)
	if ri < 0 {
		return &models.NotFoundError{Kind: "routine", ID: routineID}
	}
	if day == nil {
		return &models.NotFoundError{Kind: "day", ID: dayID}
	}
	if len(orderedIDs) != len(day.PlannedSets) {
		return &models.ValidationError{Field: "order", Reason: "id list does not match the day's planned sets"}
	}

	byID := make(map[string]models.PlannedSet, len(day.PlannedSets))
	for _, p := range day.PlannedSets {
		byID[p.ID] = p
	}
	reordered := make([]models.PlannedSet, 0, len(orderedIDs))
	for pos, id := range orderedIDs {
		p, ok := byID[id]
		if !ok {
			return &models.NotFoundError{Kind: "planned set", ID: id}
		}
		p.Order = pos
		reordered = append(reordered, p)
		delete(byID, id)
	}
	day.PlannedSets = reordered
	s.Routines[ri].UpdatedAt = now
	return nil
}
