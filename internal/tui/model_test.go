package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
)

var fixedNow = time.Date(2024, time.July, 31, 9, 0, 0, 0, time.Local)

func openStore(t *testing.T, dir string) *store.Store {
	t.Helper()
	js, err := jsonstore.New(dir)
	require.NoError(t, err)
	st, err := store.Open(js, store.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return st
}

func newModel(t *testing.T) (Model, *store.Store, string) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	dir := t.TempDir()
	st := openStore(t, dir)
	return New(st), st, dir
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestAddTodoThroughForm(t *testing.T) {
	m, st, _ := newModel(t)

	m = press(t, m, runes("a"))
	require.Equal(t, modeAdd, m.mode)

	m = press(t, m, runes("Buy milk"), tab, runes("tomorrow"), enter)
	assert.Equal(t, modeBrowse, m.mode)
	assert.False(t, m.statusErr, m.status)

	todos := st.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Text)
	assert.Equal(t, "2024-08-01", todos[0].Due())
	assert.Len(t, m.todos.Items(), 1)
}

func TestFormKeepsOpenOnInvalidInput(t *testing.T) {
	m, st, _ := newModel(t)

	m = press(t, m, runes("a"), enter)
	assert.Equal(t, modeAdd, m.mode)
	assert.True(t, m.statusErr)
	assert.Empty(t, st.Todos())

	m = press(t, m, runes("x"), tab, runes("someday"), enter)
	assert.Equal(t, modeAdd, m.mode, "bad due date keeps the form")
	assert.Contains(t, m.status, "dueDate")

	m = press(t, m, esc)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Empty(t, st.Todos())
}

func TestToggleFilterClear(t *testing.T) {
	m, st, _ := newModel(t)
	_, err := st.AddTodo("one", nil)
	require.NoError(t, err)
	_, err = st.AddTodo("two", nil)
	require.NoError(t, err)
	m.refresh()

	m = press(t, m, space)
	assert.True(t, st.Todos()[0].Completed)

	m = press(t, m, runes("f"))
	assert.Equal(t, model.FilterActive, m.filter)
	assert.Len(t, m.todos.Items(), 1)

	m = press(t, m, runes("f"))
	assert.Equal(t, model.FilterCompleted, m.filter)
	assert.Len(t, m.todos.Items(), 1)

	m = press(t, m, runes("f"), runes("c"))
	assert.Equal(t, model.FilterAll, m.filter)
	assert.Len(t, st.Todos(), 1)
	assert.Equal(t, "cleared 1 completed", m.status)
}

func TestEditAndDeleteTodo(t *testing.T) {
	m, st, _ := newModel(t)
	due := "2024-08-09"
	_, err := st.AddTodo("draft", &due)
	require.NoError(t, err)
	m.refresh()

	m = press(t, m, runes("e"))
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "draft", m.text.Value())
	assert.Equal(t, "2024-08-09", m.extra.Value())

	m.extra.SetValue("")
	m = press(t, m, runes(" v2"), enter)
	got := st.Todos()[0]
	assert.Equal(t, "draft v2", got.Text)
	assert.False(t, got.HasDue())

	m = press(t, m, runes("d"))
	assert.Empty(t, st.Todos())
	assert.Empty(t, m.todos.Items())
}

func TestHabitsView(t *testing.T) {
	m, st, _ := newModel(t)

	m = press(t, m, tab)
	require.Equal(t, viewHabits, m.view)

	m = press(t, m, runes("a"))
	assert.Equal(t, "1", m.extra.Value(), "goal defaults to 1")
	m = press(t, m, runes("Read"), enter)
	require.Len(t, st.Habits(), 1)

	m = press(t, m, space)
	s, ok := st.HabitSummary(st.Habits()[0].ID)
	require.True(t, ok)
	assert.Equal(t, 1, s.Streak)
	assert.True(t, s.MetToday)

	m = press(t, m, runes("e"))
	m.extra.SetValue("0")
	m = press(t, m, enter)
	assert.Equal(t, modeEdit, m.mode, "goal 0 is rejected")
	m.extra.SetValue("4")
	m = press(t, m, enter)
	assert.Equal(t, 4, st.Habits()[0].Goal)

	m = press(t, m, runes("d"))
	require.Equal(t, modeConfirm, m.mode)
	m = press(t, m, runes("n"))
	assert.Equal(t, modeBrowse, m.mode)
	assert.Len(t, st.Habits(), 1)

	m = press(t, m, runes("d"), runes("y"))
	assert.Empty(t, st.Habits())
	assert.Equal(t, "habit deleted", m.status)
}

func TestCalendarModal(t *testing.T) {
	m, st, _ := newModel(t)
	_, err := st.AddHabit("Run", 1)
	require.NoError(t, err)
	m.refresh()

	m = press(t, m, tab, enter)
	require.Equal(t, modeCalendar, m.mode)
	assert.Equal(t, time.July, m.calMonth)

	m = press(t, m, left)
	assert.Equal(t, time.June, m.calMonth)
	m = press(t, m, right, right, right, right, right, right)
	assert.Equal(t, time.December, m.calMonth)
	m = press(t, m, right)
	assert.Equal(t, time.January, m.calMonth)
	assert.Equal(t, 2025, m.calYear)

	assert.Contains(t, m.View(), "January 2025")

	m = press(t, m, esc)
	assert.Equal(t, modeBrowse, m.mode)
}

func TestReloadPicksUpExternalChanges(t *testing.T) {
	m, _, dir := newModel(t)

	other := openStore(t, dir)
	_, err := other.AddTodo("from elsewhere", nil)
	require.NoError(t, err)

	m = press(t, m, reloadMsg{key: store.KeyTodos})
	require.Len(t, m.todos.Items(), 1)
	assert.Equal(t, "from elsewhere", m.todos.Items()[0].(todoItem).todo.Text)
}

func TestQuitAndView(t *testing.T) {
	m, st, _ := newModel(t)
	_, err := st.AddTodo("visible", nil)
	require.NoError(t, err)
	m.refresh()

	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	v := m.View()
	assert.Contains(t, v, "Tasks")
	assert.Contains(t, v, "Habits")
	assert.Contains(t, v, "visible")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	// q types into the form rather than quitting.
	m = press(t, m, runes("a"))
	next, _ := m.Update(runes("q"))
	assert.Equal(t, "q", next.(Model).text.Value())
}
