package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/idilsaglam/tada/internal/analytics"
	"github.com/idilsaglam/tada/internal/datekey"
)

// Checkbox is the todo check mark for done.
func Checkbox(done bool) string {
	t := Current()
	if done {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}

// DueLabel renders a todo's due date relative to today, colored by urgency.
// Todos without a date get "".
func DueLabel(key string, today datekey.Date) string {
	label := datekey.RelativeLabel(key, today)
	if label == "" {
		return ""
	}
	t := Current()
	switch datekey.Status(key, today) {
	case datekey.DueOverdue:
		return t.Error.Render(label)
	case datekey.DueToday:
		return t.Pending.Render(label)
	}
	return t.Muted.Render(label)
}

// Flame renders the streak badge, or "" when there is no streak.
func Flame(streak int) string {
	tier := analytics.TierFor(streak)
	if tier == analytics.TierNone {
		return ""
	}
	t := Current()
	return t.Flames[tier].Render(fmt.Sprintf("%s %d", t.SymFlame, streak))
}

// TodayLine is the "goal met" row of a habit card.
func TodayLine(s analytics.Summary, goal int) string {
	t := Current()
	if s.MetToday {
		return t.Success.Render(fmt.Sprintf("%s Goal met for today!  %d/%d", t.DayMet, goal, goal))
	}
	return t.Muted.Render(fmt.Sprintf("%s Not done today  %d/%d", t.DayUnmet, s.TodayCount, goal))
}

// WeekStrip renders the Monday-first week as two rows: weekday initials and
// one mark per day. today is highlighted when it falls in the week.
func WeekStrip(cells []analytics.DayCell, today datekey.Date) string {
	t := Current()
	heads := make([]string, len(cells))
	marks := make([]string, len(cells))
	for i, c := range cells {
		heads[i] = t.Muted.Render(c.Date.Weekday().String()[:1])
		mark := t.Muted.Render(t.DayUnmet)
		if c.MetGoal {
			mark = t.Success.Render(t.DayMet)
		}
		if c.Date == today {
			mark = t.Selected.Render(mark)
		}
		marks[i] = mark
	}
	return strings.Join(heads, " ") + "\n" + strings.Join(marks, " ")
}

// MonthCalendar renders a Sunday-first month grid. cells come from
// analytics.MonthGrid; nil cells are leading blanks.
func MonthCalendar(year int, month time.Month, cells []*analytics.MonthCell) string {
	t := Current()
	title := fmt.Sprintf("%s %d", month, year)
	const width = 7*3 - 1
	pad := max(0, (width-len(title))/2)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", pad) + t.Title.Render(title) + "\n")
	b.WriteString(t.Muted.Render("Su Mo Tu We Th Fr Sa"))

	for i, c := range cells {
		if i%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
		if c == nil {
			b.WriteString("  ")
			continue
		}
		day := fmt.Sprintf("%2d", c.Date.Day)
		switch {
		case c.MetGoal:
			day = t.Success.Bold(true).Render(day)
		default:
			day = t.Muted.Render(day)
		}
		if c.IsToday {
			day = t.Selected.Render(day)
		}
		b.WriteString(day)
	}
	return b.String()
}
