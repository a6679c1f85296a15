package cli

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/tada/internal/analytics"
	"github.com/idilsaglam/tada/internal/datekey"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

const maxTextWidth = 60

// row is a todo with its 1-based index in the full listing, so filtered and
// grouped views still print indexes that todo done/rm accept.
type row struct {
	index int
	todo  model.Todo
}

func todoPanel(st *store.Store, f model.Filter, group bool) []string {
	t := ui.Current()
	active, completed := st.Counts()
	total := active + completed

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), completed,
		t.Pending.Render(t.SymPending), active,
		t.Accent.Render("Total"), total,
	)
	if f != model.FilterAll {
		header += "  " + t.Muted.Render("("+f.Label()+")")
	}

	var rows []row
	for i, td := range st.FilteredTodos(model.FilterAll) {
		if f.Match(td) {
			rows = append(rows, row{index: i + 1, todo: td})
		}
	}

	lines := []string{header, t.Muted.Render(ui.ProgressBar(completed, total, 28)), ""}
	if group {
		lines = append(lines, groupLines(rows, st.Today())...)
	} else {
		lines = append(lines, flatLines(rows, st.Today())...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `tada todo add \"Buy milk\" --due tomorrow`"))
	return lines
}

func flatLines(rows []row, today datekey.Date) []string {
	t := ui.Current()
	if len(rows) == 0 {
		return []string{t.Muted.Render("no todos")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		text := ui.Truncate(r.todo.Text, maxTextWidth)
		if r.todo.Completed {
			text = t.Done.Render(text)
		}
		line := fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", r.index)), ui.Checkbox(r.todo.Completed), text)
		if due := ui.DueLabel(r.todo.Due(), today); due != "" {
			line += "  " + due
		}
		out = append(out, line)
	}
	return out
}

func groupLines(rows []row, today datekey.Date) []string {
	t := ui.Current()
	var pend, done []row
	for _, r := range rows {
		if r.todo.Completed {
			done = append(done, r)
		} else {
			pend = append(pend, r)
		}
	}
	section := func(title string, rs []row) []string {
		lines := []string{t.Accent.Render(title)}
		if len(rs) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(rs, today)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

func habitLines(index int, h model.Habit, today datekey.Date) []string {
	t := ui.Current()
	s := analytics.Summarize(h, today)

	title := fmt.Sprintf("%s %s", t.Muted.Render(fmt.Sprintf("%2d.", index)), t.Title.Render(ui.Truncate(h.Text, maxTextWidth)))
	stats := t.Muted.Render(fmt.Sprintf("goal %d/day", h.Goal)) + "  " + t.Accent.Render(fmt.Sprintf("total %d", s.Total))
	if flame := ui.Flame(s.Streak); flame != "" {
		stats = flame + "  " + stats
	}
	return []string{
		title,
		"    " + stats,
		"    " + ui.TodayLine(s, h.Goal),
		indent(ui.WeekStrip(analytics.WeeklyGrid(h.Progress, h.Goal, today), today), "    "),
	}
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
