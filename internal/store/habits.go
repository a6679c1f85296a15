package store

import (
	"slices"

	"github.com/idilsaglam/tada/internal/analytics"
	"github.com/idilsaglam/tada/internal/model"
)

// HabitPatch lists the fields EditHabit should change.
type HabitPatch struct {
	Text *string
	Goal *int
}

// AddHabit creates a habit with an empty progress map.
func (s *Store) AddHabit(text string, goal int) (model.Habit, error) {
	text, err := s.validate.text(text)
	if err != nil {
		return model.Habit{}, err
	}
	if err := s.validate.goal(goal); err != nil {
		return model.Habit{}, err
	}

	h := model.Habit{ID: s.nextID(), Text: text, Goal: goal, Progress: map[string]int{}}
	s.habits = append(s.habits, h)
	return h.Clone(), s.saveHabits()
}

// ToggleHabitCompletion flips day between unmet and met: a day already at
// goal drops to 0, anything else jumps straight to goal. Partial counts are
// not preserved. Unknown ids are ignored.
func (s *Store) ToggleHabitCompletion(id int64, day string) error {
	if err := s.validate.day(day); err != nil {
		return err
	}
	i := s.habitIndex(id)
	if i < 0 {
		return nil
	}
	h := &s.habits[i]
	if h.Progress == nil {
		h.Progress = map[string]int{}
	}
	if analytics.IsGoalMet(h.Progress, h.Goal, day) {
		h.Progress[day] = 0
	} else {
		h.Progress[day] = h.Goal
	}
	return s.saveHabits()
}

// EditHabit applies patch to the habit with id, or rejects it whole.
func (s *Store) EditHabit(id int64, patch HabitPatch) error {
	var text string
	if patch.Text != nil {
		var err error
		if text, err = s.validate.text(*patch.Text); err != nil {
			return err
		}
	}
	if patch.Goal != nil {
		if err := s.validate.goal(*patch.Goal); err != nil {
			return err
		}
	}

	i := s.habitIndex(id)
	if i < 0 {
		return nil
	}
	if patch.Text != nil {
		s.habits[i].Text = text
	}
	if patch.Goal != nil {
		s.habits[i].Goal = *patch.Goal
	}
	return s.saveHabits()
}

// DeleteHabit removes the habit unconditionally; confirming is the caller's job.
func (s *Store) DeleteHabit(id int64) error {
	n := len(s.habits)
	s.habits = slices.DeleteFunc(s.habits, func(h model.Habit) bool { return h.ID == id })
	if len(s.habits) == n {
		return nil
	}
	return s.saveHabits()
}

// Habits returns a deep copy of the collection in insertion order.
func (s *Store) Habits() []model.Habit {
	out := make([]model.Habit, len(s.habits))
	for i, h := range s.habits {
		out[i] = h.Clone()
	}
	return out
}

// Habit returns a copy of the habit with id.
func (s *Store) Habit(id int64) (model.Habit, bool) {
	i := s.habitIndex(id)
	if i < 0 {
		return model.Habit{}, false
	}
	return s.habits[i].Clone(), true
}

// HabitSummary runs analytics for one habit as of the store's today.
func (s *Store) HabitSummary(id int64) (analytics.Summary, bool) {
	i := s.habitIndex(id)
	if i < 0 {
		return analytics.Summary{}, false
	}
	return analytics.Summarize(s.habits[i], s.Today()), true
}

func (s *Store) habitIndex(id int64) int {
	return slices.IndexFunc(s.habits, func(h model.Habit) bool { return h.ID == id })
}
