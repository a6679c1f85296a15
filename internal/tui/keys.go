package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	SwitchView key.Binding
	Filter     key.Binding
	Add, Edit  key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Clear      key.Binding
	Calendar   key.Binding
	PrevMonth  key.Binding
	NextMonth  key.Binding
	Submit     key.Binding
	NextField  key.Binding
	Cancel     key.Binding
	Yes, No    key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		SwitchView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "tasks/habits")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear done")),
		Calendar:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calendar")),
		PrevMonth:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev month")),
		NextMonth:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next month")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		NextField:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:        key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "delete")),
		No:         key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "keep")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpFor lists the bindings that apply in the current state.
func (m Model) helpFor() []key.Binding {
	k := m.keys
	switch m.mode {
	case modeAdd, modeEdit:
		return []key.Binding{k.Submit, k.NextField, k.Cancel}
	case modeConfirm:
		return []key.Binding{k.Yes, k.No}
	case modeCalendar:
		return []key.Binding{k.PrevMonth, k.NextMonth, k.Cancel}
	}
	if m.view == viewHabits {
		return []key.Binding{k.SwitchView, k.Add, k.Edit, k.Toggle, k.Delete, k.Calendar, k.Quit}
	}
	return []key.Binding{k.SwitchView, k.Filter, k.Add, k.Edit, k.Toggle, k.Delete, k.Clear, k.Quit}
}
