package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/analytics"
	"github.com/idilsaglam/tada/internal/datekey"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

// todoItem adapts a todo to bubbles/list.Item.
type todoItem struct {
	todo  model.Todo
	today datekey.Date
}

func (i todoItem) FilterValue() string { return i.todo.Text }

type habitItem struct {
	habit   model.Habit
	summary analytics.Summary
	today   datekey.Date
}

func (i habitItem) FilterValue() string { return i.habit.Text }

// todoDelegate renders one todo per line.
type todoDelegate struct{}

func (d todoDelegate) Height() int                               { return 1 }
func (d todoDelegate) Spacing() int                              { return 0 }
func (d todoDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	t := ui.Current()
	text := ui.Truncate(it.todo.Text, max(10, m.Width()-24))
	if it.todo.Completed {
		text = t.Done.Render(text)
	}
	line := ui.Checkbox(it.todo.Completed) + " " + text
	if due := ui.DueLabel(it.todo.Due(), it.today); due != "" {
		line += "  " + due
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+line)
}

// habitDelegate renders a habit as a title row plus its week strip.
type habitDelegate struct{}

func (d habitDelegate) Height() int                               { return 4 }
func (d habitDelegate) Spacing() int                              { return 1 }
func (d habitDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d habitDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(habitItem)
	if !ok {
		return
	}
	t := ui.Current()
	h, s := it.habit, it.summary

	title := t.Title.Render(ui.Truncate(h.Text, max(10, m.Width()-30)))
	if flame := ui.Flame(s.Streak); flame != "" {
		title += "  " + flame
	}
	title += "  " + t.Accent.Render(fmt.Sprintf("total %d", s.Total))

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	week := ui.WeekStrip(analytics.WeeklyGrid(h.Progress, h.Goal, it.today), it.today)
	lines := []string{prefix + title, "  " + ui.TodayLine(s, h.Goal)}
	for _, l := range strings.Split(week, "\n") {
		lines = append(lines, "  "+l)
	}
	fmt.Fprint(w, strings.Join(lines, "\n"))
}
