// Package tui is the interactive Bubble Tea front end: a Tasks view and a
// Habits view over one record store.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/analytics"
	"github.com/idilsaglam/tada/internal/datekey"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

type view int

const (
	viewTodos view = iota
	viewHabits
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeConfirm  // habit delete y/n
	modeCalendar // habit month calendar
)

// reloadMsg reports that the backing files changed on disk.
type reloadMsg struct{ key string }

// Model is the Bubble Tea model.
type Model struct {
	st   *store.Store
	keys keyMap
	help help.Model

	view   view
	mode   mode
	filter model.Filter

	todos  list.Model
	habits list.Model

	// Form for add and edit: text plus a second field, the due date for
	// todos or the goal for habits.
	text   textinput.Model
	extra  textinput.Model
	focus  int
	editID int64

	pendingDelete int64

	calID    int64
	calYear  int
	calMonth time.Month

	status    string
	statusErr bool

	width, height int
	events        <-chan string
}

// New builds the model over st and loads the lists.
func New(st *store.Store) Model {
	t := ui.Current()

	newList := func(d list.ItemDelegate) list.Model {
		l := list.New(nil, d, 80, 20)
		l.SetShowHelp(false)
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.SetShowPagination(true)
		l.Styles.Title = t.Title
		l.Styles.PaginationStyle = t.Help
		return l
	}

	text := textinput.New()
	text.Prompt = "> "
	text.CharLimit = 200
	extra := textinput.New()
	extra.Prompt = "  "
	extra.CharLimit = 10

	m := Model{
		st:     st,
		keys:   newKeyMap(),
		help:   help.New(),
		filter: model.FilterAll,
		todos:  newList(todoDelegate{}),
		habits: newList(habitDelegate{}),
		text:   text,
		extra:  extra,
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd { return m.waitForChange() }

// waitForChange blocks on the watcher channel, if any.
func (m Model) waitForChange() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		key, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg{key: key}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case reloadMsg:
		if err := m.st.Initialize(); err != nil {
			m.setErr(fmt.Errorf("reload %s: %w", msg.key, err))
		}
		m.refresh()
		return m, m.waitForChange()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeCalendar:
			return m.updateCalendar(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.SwitchView):
		if m.view == viewTodos {
			m.view = viewHabits
		} else {
			m.view = viewTodos
		}
		m.status = ""
		return m, nil
	case key.Matches(msg, k.Filter) && m.view == viewTodos:
		m.filter = m.filter.Next()
		m.refresh()
		m.todos.Select(0)
		return m, nil
	case key.Matches(msg, k.Add):
		return m.openForm(modeAdd)
	case key.Matches(msg, k.Edit):
		return m.openForm(modeEdit)
	case key.Matches(msg, k.Toggle):
		m.toggle()
		return m, nil
	case key.Matches(msg, k.Delete):
		m.delete()
		return m, nil
	case key.Matches(msg, k.Clear) && m.view == viewTodos:
		_, n := m.st.Counts()
		if err := m.st.ClearCompleted(); err != nil {
			m.setErr(err)
		} else {
			m.setStatus(fmt.Sprintf("cleared %d completed", n))
		}
		m.refresh()
		return m, nil
	case key.Matches(msg, k.Calendar) && m.view == viewHabits:
		if h, ok := m.selectedHabit(); ok {
			today := m.st.Today()
			m.mode = modeCalendar
			m.calID, m.calYear, m.calMonth = h.ID, today.Year, today.Month
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.view == viewTodos {
		m.todos, cmd = m.todos.Update(msg)
	} else {
		m.habits, cmd = m.habits.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggle() {
	var err error
	if m.view == viewTodos {
		t, ok := m.selectedTodo()
		if !ok {
			return
		}
		err = m.st.ToggleTodo(t.ID)
	} else {
		h, ok := m.selectedHabit()
		if !ok {
			return
		}
		err = m.st.ToggleHabitCompletion(h.ID, m.st.Today().Key())
	}
	if err != nil {
		m.setErr(err)
	}
	m.refresh()
}

func (m *Model) delete() {
	if m.view == viewHabits {
		if h, ok := m.selectedHabit(); ok {
			m.mode = modeConfirm
			m.pendingDelete = h.ID
		}
		return
	}
	t, ok := m.selectedTodo()
	if !ok {
		return
	}
	if err := m.st.DeleteTodo(t.ID); err != nil {
		m.setErr(err)
	} else {
		m.setStatus("removed")
	}
	m.refresh()
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		if err := m.st.DeleteHabit(m.pendingDelete); err != nil {
			m.setErr(err)
		} else {
			m.setStatus("habit deleted")
		}
		m.refresh()
	case key.Matches(msg, m.keys.No):
	default:
		return m, nil
	}
	m.mode = modeBrowse
	m.pendingDelete = 0
	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevMonth):
		m.calYear, m.calMonth = shiftMonth(m.calYear, m.calMonth, -1)
	case key.Matches(msg, m.keys.NextMonth):
		m.calYear, m.calMonth = shiftMonth(m.calYear, m.calMonth, 1)
	case key.Matches(msg, m.keys.Cancel, m.keys.Calendar, m.keys.Quit):
		m.mode = modeBrowse
	}
	return m, nil
}

func shiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 12, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

func (m Model) openForm(md mode) (tea.Model, tea.Cmd) {
	m.text.SetValue("")
	m.extra.SetValue("")
	m.editID = 0
	m.status = ""

	if m.view == viewTodos {
		m.text.Placeholder = "What needs doing?"
		m.extra.Placeholder = "due: YYYY-MM-DD, today, tomorrow (optional)"
		m.extra.CharLimit = 10
		if md == modeEdit {
			t, ok := m.selectedTodo()
			if !ok {
				return m, nil
			}
			m.editID = t.ID
			m.text.SetValue(t.Text)
			m.extra.SetValue(t.Due())
		}
	} else {
		m.text.Placeholder = "New habit"
		m.extra.Placeholder = "daily goal"
		m.extra.CharLimit = 4
		m.extra.SetValue("1")
		if md == modeEdit {
			h, ok := m.selectedHabit()
			if !ok {
				return m, nil
			}
			m.editID = h.ID
			m.text.SetValue(h.Text)
			m.extra.SetValue(strconv.Itoa(h.Goal))
		}
	}
	m.text.CursorEnd()
	m.mode = md
	m.focus = 0
	m.extra.Blur()
	return m, m.text.Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.focus = 1 - m.focus
		if m.focus == 0 {
			m.extra.Blur()
			return m, m.text.Focus()
		}
		m.text.Blur()
		return m, m.extra.Focus()
	case key.Matches(msg, m.keys.Submit):
		if err := m.submit(); err != nil {
			m.setErr(err)
			if !errors.Is(err, model.ErrValidation) {
				m.closeForm()
			}
			return m, nil
		}
		m.closeForm()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.text, cmd = m.text.Update(msg)
	} else {
		m.extra, cmd = m.extra.Update(msg)
	}
	return m, cmd
}

// submit applies the form. Validation errors keep the form open.
func (m *Model) submit() error {
	text := m.text.Value()
	extra := strings.TrimSpace(m.extra.Value())

	if m.view == viewTodos {
		due := datekey.Resolve(extra, m.st.Today())
		if m.mode == modeAdd {
			_, err := m.st.AddTodo(text, &due)
			if err == nil {
				m.setStatus("added")
			}
			return err
		}
		patch := store.TodoPatch{Text: &text, DueDate: &due}
		if due == "" {
			patch.ClearDueDate = true
		}
		if err := m.st.EditTodo(m.editID, patch); err != nil {
			return err
		}
		m.setStatus("updated")
		return nil
	}

	goal, err := strconv.Atoi(extra)
	if err != nil {
		return &model.ValidationError{Field: "goal", Err: fmt.Errorf("not a number: %q", extra)}
	}
	if m.mode == modeAdd {
		_, err := m.st.AddHabit(text, goal)
		if err == nil {
			m.setStatus("habit added")
		}
		return err
	}
	if err := m.st.EditHabit(m.editID, store.HabitPatch{Text: &text, Goal: &goal}); err != nil {
		return err
	}
	m.setStatus("updated")
	return nil
}

func (m *Model) closeForm() {
	m.mode = modeBrowse
	m.text.Blur()
	m.extra.Blur()
	m.editID = 0
}

func (m *Model) setStatus(s string) { m.status, m.statusErr = s, false }

func (m *Model) setErr(err error) { m.status, m.statusErr = err.Error(), true }

// refresh reloads both lists from the store, keeping the cursor in range.
func (m *Model) refresh() {
	today := m.st.Today()

	todos := m.st.FilteredTodos(m.filter)
	items := make([]list.Item, len(todos))
	for i, t := range todos {
		items[i] = todoItem{todo: t, today: today}
	}
	idx := m.todos.Index()
	m.todos.SetItems(items)
	m.todos.Select(min(idx, max(0, len(items)-1)))

	habits := m.st.Habits()
	hitems := make([]list.Item, len(habits))
	for i, h := range habits {
		hitems[i] = habitItem{habit: h, summary: analytics.Summarize(h, today), today: today}
	}
	idx = m.habits.Index()
	m.habits.SetItems(hitems)
	m.habits.Select(min(idx, max(0, len(hitems)-1)))

	t := ui.Current()
	active, completed := m.st.Counts()
	m.todos.Title = fmt.Sprintf("%s  %s %d  %s %d  %s",
		t.Title.Render("Tasks"),
		t.Success.Render(t.SymDone), completed,
		t.Pending.Render(t.SymPending), active,
		t.Muted.Render("filter: "+m.filter.Label()),
	)
	m.habits.Title = fmt.Sprintf("%s  %s", t.Title.Render("Habits"), t.Muted.Render(today.Key()))
}

func (m *Model) resize() {
	w := max(20, m.width-4)
	h := max(5, m.height-8)
	m.todos.SetSize(w, h)
	m.habits.SetSize(w, h)
	m.text.Width = max(10, w-4)
	m.help.Width = w
}

func (m Model) selectedTodo() (model.Todo, bool) {
	it, ok := m.todos.SelectedItem().(todoItem)
	return it.todo, ok
}

func (m Model) selectedHabit() (model.Habit, bool) {
	it, ok := m.habits.SelectedItem().(habitItem)
	return it.habit, ok
}

func (m Model) View() string {
	t := ui.Current()

	tabs := []string{"Tasks", "Habits"}
	for i := range tabs {
		if view(i) == m.view {
			tabs[i] = t.Selected.Render(" " + tabs[i] + " ")
		} else {
			tabs[i] = t.Muted.Render(" " + tabs[i] + " ")
		}
	}
	parts := []string{strings.Join(tabs, " "), ""}

	switch {
	case m.mode == modeCalendar:
		parts = append(parts, m.calendarView())
	case m.view == viewTodos:
		if len(m.todos.Items()) == 0 {
			parts = append(parts, m.todos.Title, "", t.Muted.Render(emptyTodos(m.filter)))
		} else {
			parts = append(parts, m.todos.View())
		}
	default:
		if len(m.habits.Items()) == 0 {
			parts = append(parts, m.habits.Title, "", t.Muted.Render("No habits yet. Press a to add one."))
		} else {
			parts = append(parts, m.habits.View())
		}
	}

	switch m.mode {
	case modeAdd, modeEdit:
		parts = append(parts, m.formView())
	case modeConfirm:
		name := ""
		if h, ok := m.st.Habit(m.pendingDelete); ok {
			name = h.Text
		}
		parts = append(parts, t.Error.Render(fmt.Sprintf("Delete habit %q and all its history? (y/n)", name)))
	}

	if m.status != "" {
		if m.statusErr {
			parts = append(parts, t.Error.Render("✖ "+m.status))
		} else {
			parts = append(parts, t.Success.Render(t.SymDone+" "+m.status))
		}
	}
	parts = append(parts, m.help.ShortHelpView(m.helpFor()))
	return ui.Panel(parts)
}

func emptyTodos(f model.Filter) string {
	switch f {
	case model.FilterActive:
		return "Nothing left to do."
	case model.FilterCompleted:
		return "Nothing completed yet."
	}
	return "No todos yet. Press a to add one."
}

func (m Model) formView() string {
	t := ui.Current()
	title := "Add"
	if m.mode == modeEdit {
		title = "Edit"
	}
	if m.view == viewTodos {
		title += " todo"
	} else {
		title += " habit"
	}
	body := t.Title.Render(title) + "\n" + m.text.View() + "\n" + m.extra.View()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(body)
}

func (m Model) calendarView() string {
	t := ui.Current()
	h, ok := m.st.Habit(m.calID)
	if !ok {
		return t.Muted.Render("habit no longer exists")
	}
	cells := analytics.MonthGrid(h.Progress, h.Goal, m.calYear, m.calMonth, m.st.Today())
	return strings.Join([]string{
		t.Title.Render(h.Text),
		t.Muted.Render("Completion History"),
		"",
		ui.MonthCalendar(m.calYear, m.calMonth, cells),
	}, "\n")
}
