package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/idilsaglam/tada/internal/datekey"
	"github.com/idilsaglam/tada/internal/model"
)

var today = datekey.Date{Year: 2024, Month: time.July, Day: 31} // a Wednesday

func TestIsGoalMetAndTotals(t *testing.T) {
	progress := map[string]int{"2024-07-28": 3, "2024-07-29": 1}

	assert.True(t, IsGoalMet(progress, 3, "2024-07-28"))
	assert.False(t, IsGoalMet(progress, 3, "2024-07-29"))
	assert.False(t, IsGoalMet(progress, 3, "2024-07-30"))
	assert.Equal(t, 1, TotalCompletions(progress, 3))
}

func TestTotalCompletionsIgnoresMalformedKeys(t *testing.T) {
	progress := map[string]int{"2024-07-28": 1, "yesterday": 5, "2024-02-30": 1}
	assert.Equal(t, 1, TotalCompletions(progress, 1))
}

func TestWeeklyGrid(t *testing.T) {
	progress := map[string]int{"2024-07-29": 2, "2024-08-04": 1}

	tests := []struct {
		name string
		ref  datekey.Date
	}{
		{"monday", datekey.Date{Year: 2024, Month: time.July, Day: 29}},
		{"wednesday", today},
		{"sunday", datekey.Date{Year: 2024, Month: time.August, Day: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := WeeklyGrid(progress, 2, tt.ref)
			require.Len(t, grid, 7)
			assert.Equal(t, "2024-07-29", grid[0].Key)
			assert.Equal(t, "2024-08-04", grid[6].Key)
			assert.Equal(t, time.Monday, grid[0].Date.Weekday())
			assert.True(t, grid[0].MetGoal)
			assert.Equal(t, 2, grid[0].Count)
			assert.False(t, grid[6].MetGoal)
			assert.Equal(t, 1, grid[6].Count)
		})
	}
}

func TestWeeklyGridAcrossMonthBoundary(t *testing.T) {
	grid := WeeklyGrid(nil, 1, datekey.Date{Year: 2025, Month: time.January, Day: 1})
	assert.Equal(t, "2024-12-30", grid[0].Key)
	assert.Equal(t, "2025-01-05", grid[6].Key)
}

func TestMonthGrid(t *testing.T) {
	progress := map[string]int{"2024-07-04": 1}
	// July 2024 starts on a Monday: one blank, then 31 days.
	grid := MonthGrid(progress, 1, 2024, time.July, today)
	require.Len(t, grid, 32)
	assert.Nil(t, grid[0])
	require.NotNil(t, grid[1])
	assert.Equal(t, "2024-07-01", grid[1].Key)
	assert.True(t, grid[4].MetGoal)
	assert.Equal(t, "2024-07-04", grid[4].Key)
	assert.True(t, grid[31].IsToday)
	assert.False(t, grid[30].IsToday)

	// September 2024 starts on a Sunday: no blanks.
	grid = MonthGrid(nil, 1, 2024, time.September, today)
	require.Len(t, grid, 30)
	assert.NotNil(t, grid[0])

	// February 2025 starts on a Saturday: six blanks, 28 days.
	grid = MonthGrid(nil, 1, 2025, time.February, today)
	require.Len(t, grid, 34)
	for i := 0; i < 6; i++ {
		assert.Nil(t, grid[i])
	}
}

func TestStreak(t *testing.T) {
	key := func(n int) string { return today.AddDays(-n).Key() }

	tests := []struct {
		name     string
		progress map[string]int
		goal     int
		want     int
	}{
		{"empty", map[string]int{}, 1, 0},
		{"nil", nil, 1, 0},
		{"zero goal", map[string]int{key(0): 1}, 0, 0},
		{"today only", map[string]int{key(0): 1}, 1, 1},
		{"today unmet, yesterday and two before met",
			map[string]int{key(0): 0, key(1): 1, key(2): 1, key(3): 1}, 1, 3},
		{"gap breaks streak", map[string]int{key(0): 1, key(1): 1, key(3): 1}, 1, 2},
		{"ended two days ago", map[string]int{key(2): 1, key(3): 1}, 1, 0},
		{"partial progress does not count",
			map[string]int{key(0): 3, key(1): 2, key(2): 3}, 3, 1},
		{"nothing met", map[string]int{key(0): 1}, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.progress, tt.goal, today))
		})
	}
}

func TestStreakMonotonicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 60).Draw(t, "n")
		goal := rapid.IntRange(1, 5).Draw(t, "goal")
		progress := map[string]int{}
		for i := 0; i < n; i++ {
			progress[today.AddDays(-i).Key()] = goal + rapid.IntRange(0, 3).Draw(t, "extra")
		}
		progress[today.AddDays(-n).Key()] = rapid.IntRange(0, goal-1).Draw(t, "miss")
		// older met days beyond the gap must not count
		progress[today.AddDays(-n-1).Key()] = goal

		if got := Streak(progress, goal, today); got != n {
			t.Fatalf("Streak = %d, want %d", got, n)
		}
	})
}

func TestTierFor(t *testing.T) {
	cases := map[int]Tier{0: TierNone, 1: TierWarm, 2: TierWarm, 3: TierHot, 6: TierHot, 7: TierBlazing, 13: TierBlazing, 14: TierInferno, 100: TierInferno}
	for n, want := range cases {
		assert.Equal(t, want, TierFor(n), "streak %d", n)
	}
	assert.Equal(t, "blazing", TierBlazing.String())
}

func TestSummarize(t *testing.T) {
	h := model.Habit{ID: 1, Text: "Read", Goal: 2, Progress: map[string]int{
		today.Key():             2,
		today.AddDays(-1).Key(): 2,
		today.AddDays(-2).Key(): 2,
		"2024-01-01":            5,
	}}
	s := Summarize(h, today)
	assert.Equal(t, 3, s.Streak)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.TodayCount)
	assert.True(t, s.MetToday)
	assert.Equal(t, TierHot, s.Tier)

	fresh := model.Habit{ID: 2, Text: "Run", Goal: 1, Progress: map[string]int{}}
	s = Summarize(fresh, today)
	assert.Zero(t, s.Streak)
	assert.Zero(t, s.Total)
	assert.False(t, s.MetToday)
}
