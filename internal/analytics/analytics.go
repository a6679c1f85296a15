// Package analytics derives habit statistics from a progress map.
// Nothing here mutates its input or returns an error; progress keys that are
// not valid date keys are ignored.
package analytics

import (
	"time"

	"github.com/idilsaglam/tada/internal/datekey"
	"github.com/idilsaglam/tada/internal/model"
)

// DayCell is one day of the weekly grid.
type DayCell struct {
	Date    datekey.Date
	Key     string
	Count   int
	MetGoal bool
}

// MonthCell is one day of a month calendar. Blank padding cells are nil.
type MonthCell struct {
	Date    datekey.Date
	Key     string
	MetGoal bool
	IsToday bool
}

// IsGoalMet reports whether progress on key reached goal.
func IsGoalMet(progress map[string]int, goal int, key string) bool {
	return progress[key] >= goal
}

// WeekStart returns the Monday of the week containing ref.
func WeekStart(ref datekey.Date) datekey.Date {
	wd := int(ref.Weekday())
	back := wd - 1
	if ref.Weekday() == time.Sunday {
		back = 6
	}
	return ref.AddDays(-back)
}

// WeeklyGrid returns Monday through Sunday of the week containing ref.
func WeeklyGrid(progress map[string]int, goal int, ref datekey.Date) []DayCell {
	monday := WeekStart(ref)
	cells := make([]DayCell, 7)
	for i := range cells {
		d := monday.AddDays(i)
		k := d.Key()
		cells[i] = DayCell{
			Date:    d,
			Key:     k,
			Count:   progress[k],
			MetGoal: IsGoalMet(progress, goal, k),
		}
	}
	return cells
}

// MonthGrid lays out a Sunday-first calendar for month: one nil per weekday
// before the 1st, then one cell per day.
func MonthGrid(progress map[string]int, goal int, year int, month time.Month, today datekey.Date) []*MonthCell {
	first := datekey.Date{Year: year, Month: month, Day: 1}
	lead := int(first.Weekday())
	n := datekey.DaysIn(year, month)

	cells := make([]*MonthCell, lead, lead+n)
	for day := 1; day <= n; day++ {
		d := datekey.Date{Year: year, Month: month, Day: day}
		k := d.Key()
		cells = append(cells, &MonthCell{
			Date:    d,
			Key:     k,
			MetGoal: IsGoalMet(progress, goal, k),
			IsToday: d == today,
		})
	}
	return cells
}

// metDays collects the well-formed keys whose progress reached goal.
func metDays(progress map[string]int, goal int) map[string]struct{} {
	set := make(map[string]struct{}, len(progress))
	for k, v := range progress {
		if v >= goal && datekey.Valid(k) {
			set[k] = struct{}{}
		}
	}
	return set
}

// Streak counts consecutive goal-met days ending today, or ending yesterday
// when today is not met yet.
func Streak(progress map[string]int, goal int, today datekey.Date) int {
	if len(progress) == 0 || goal <= 0 {
		return 0
	}
	met := metDays(progress, goal)
	if len(met) == 0 {
		return 0
	}

	cursor := today
	if _, ok := met[cursor.Key()]; !ok {
		cursor = cursor.AddDays(-1)
	}
	streak := 0
	for {
		if _, ok := met[cursor.Key()]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDays(-1)
	}
}

// TotalCompletions counts distinct days where goal was met.
func TotalCompletions(progress map[string]int, goal int) int {
	return len(metDays(progress, goal))
}

// Summary bundles the per-habit numbers a list row shows.
type Summary struct {
	Streak     int
	Total      int
	TodayCount int
	MetToday   bool
	Tier       Tier
}

// Summarize computes the Summary of h as of today.
func Summarize(h model.Habit, today datekey.Date) Summary {
	key := today.Key()
	streak := Streak(h.Progress, h.Goal, today)
	return Summary{
		Streak:     streak,
		Total:      TotalCompletions(h.Progress, h.Goal),
		TodayCount: h.Progress[key],
		MetToday:   IsGoalMet(h.Progress, h.Goal, key),
		Tier:       TierFor(streak),
	}
}
