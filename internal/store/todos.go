package store

import (
	"slices"
	"strings"

	"github.com/idilsaglam/tada/internal/model"
)

// TodoPatch lists the fields EditTodo should change. Nil fields are left
// alone; ClearDueDate removes the due date and wins over DueDate.
type TodoPatch struct {
	Text         *string
	DueDate      *string
	ClearDueDate bool
}

// AddTodo appends a new open todo. due may be nil or a YYYY-MM-DD key.
func (s *Store) AddTodo(text string, due *string) (model.Todo, error) {
	text, err := s.validate.text(text)
	if err != nil {
		return model.Todo{}, err
	}
	t := model.Todo{Text: text}
	if due != nil && *due != "" {
		if err := s.validate.dueDate(*due); err != nil {
			return model.Todo{}, err
		}
		d := *due
		t.DueDate = &d
	}

	t.ID = s.nextID()
	s.todos = append(s.todos, t)
	return t, s.saveTodos()
}

// ToggleTodo flips the completed flag. Unknown ids are ignored.
func (s *Store) ToggleTodo(id int64) error {
	i := s.todoIndex(id)
	if i < 0 {
		return nil
	}
	s.todos[i].Completed = !s.todos[i].Completed
	return s.saveTodos()
}

// EditTodo applies patch to the todo with id. Invalid input rejects the whole
// patch; unknown ids are ignored.
func (s *Store) EditTodo(id int64, patch TodoPatch) error {
	var text string
	if patch.Text != nil {
		var err error
		if text, err = s.validate.text(*patch.Text); err != nil {
			return err
		}
	}
	if patch.DueDate != nil && !patch.ClearDueDate {
		if err := s.validate.dueDate(*patch.DueDate); err != nil {
			return err
		}
	}

	i := s.todoIndex(id)
	if i < 0 {
		return nil
	}
	if patch.Text != nil {
		s.todos[i].Text = text
	}
	switch {
	case patch.ClearDueDate, patch.DueDate != nil && *patch.DueDate == "":
		s.todos[i].DueDate = nil
	case patch.DueDate != nil:
		d := *patch.DueDate
		s.todos[i].DueDate = &d
	}
	return s.saveTodos()
}

// DeleteTodo removes the todo with id, if present.
func (s *Store) DeleteTodo(id int64) error {
	n := len(s.todos)
	s.todos = slices.DeleteFunc(s.todos, func(t model.Todo) bool { return t.ID == id })
	if len(s.todos) == n {
		return nil
	}
	return s.saveTodos()
}

// ClearCompleted removes every completed todo.
func (s *Store) ClearCompleted() error {
	n := len(s.todos)
	s.todos = slices.DeleteFunc(s.todos, func(t model.Todo) bool { return t.Completed })
	if len(s.todos) == n {
		return nil
	}
	return s.saveTodos()
}

// Todos returns a copy of the collection in insertion order.
func (s *Store) Todos() []model.Todo {
	out := make([]model.Todo, len(s.todos))
	for i, t := range s.todos {
		out[i] = cloneTodo(t)
	}
	return out
}

// FilteredTodos sorts by due date (dated first, ascending; undated keep
// insertion order) and then applies filter.
func (s *Store) FilteredTodos(filter model.Filter) []model.Todo {
	sorted := s.Todos()
	slices.SortStableFunc(sorted, compareDue)
	return slices.DeleteFunc(sorted, func(t model.Todo) bool { return !filter.Match(t) })
}

// Counts returns the number of open and completed todos.
func (s *Store) Counts() (active, completed int) {
	for _, t := range s.todos {
		if !t.Completed {
			active++
		}
	}
	return active, len(s.todos) - active
}

func compareDue(a, b model.Todo) int {
	switch {
	case a.HasDue() && b.HasDue():
		return strings.Compare(a.Due(), b.Due())
	case a.HasDue():
		return -1
	case b.HasDue():
		return 1
	}
	return 0
}

func (s *Store) todoIndex(id int64) int {
	return slices.IndexFunc(s.todos, func(t model.Todo) bool { return t.ID == id })
}

func cloneTodo(t model.Todo) model.Todo {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
