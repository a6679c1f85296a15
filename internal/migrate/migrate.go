// Package migrate rewrites persisted collections from superseded layouts
// into the current record shapes.
//
// Migration runs on every load and is idempotent: feeding its own output back
// in changes nothing. Malformed records never fail a load. They are coerced
// to safe defaults, or dropped and counted when they are not objects at all.
package migrate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/idilsaglam/tada/internal/model"
)

// ErrCorrupt is returned when a stored collection is not a JSON array.
var ErrCorrupt = errors.New("stored collection is not a JSON array")

// Report says what a migration pass rewrote.
type Report struct {
	HabitsMigrated int
	TodosMigrated  int
	// Repaired counts current-shape records whose fields were coerced:
	// an out-of-range goal or skipped progress entries.
	Repaired int
	Dropped  int
}

// Changed reports whether the migrated output differs from the stored input.
func (r Report) Changed() bool {
	return r.HabitsMigrated > 0 || r.TodosMigrated > 0 || r.Repaired > 0 || r.Dropped > 0
}

// Habits decodes a stored habit collection, migrating legacy entries.
// Empty input is an empty collection.
func Habits(data []byte) ([]model.Habit, Report, error) {
	var rep Report
	elems, err := elements(data)
	if err != nil {
		return nil, rep, err
	}
	out := make([]model.Habit, 0, len(elems))
	for _, raw := range elems {
		sh, ok := DecodeHabit(raw)
		if !ok {
			rep.Dropped++
			continue
		}
		if sh.Shape == ShapeLegacy {
			rep.HabitsMigrated++
		}
		if sh.NeedsRepair() {
			rep.Repaired++
		}
		out = append(out, sh.Resolve())
	}
	return out, rep, nil
}

// Todos decodes a stored todo collection, adding a null due date to entries
// that predate it.
func Todos(data []byte) ([]model.Todo, Report, error) {
	var rep Report
	elems, err := elements(data)
	if err != nil {
		return nil, rep, err
	}
	out := make([]model.Todo, 0, len(elems))
	for _, raw := range elems {
		fields, ok := object(raw)
		if !ok {
			rep.Dropped++
			continue
		}
		var t model.Todo
		if err := json.Unmarshal(raw, &t); err != nil {
			// wrong-typed fields; keep what decodes
			t = lenientTodo(fields)
		}
		if _, has := fields["dueDate"]; !has {
			rep.TodosMigrated++
			t.DueDate = nil
		}
		if t.DueDate != nil && *t.DueDate == "" {
			t.DueDate = nil
		}
		out = append(out, t)
	}
	return out, rep, nil
}

func elements(data []byte) ([]json.RawMessage, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return elems, nil
}

func object(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func lenientTodo(fields map[string]json.RawMessage) model.Todo {
	var t model.Todo
	_ = json.Unmarshal(fields["id"], &t.ID)
	_ = json.Unmarshal(fields["text"], &t.Text)
	_ = json.Unmarshal(fields["completed"], &t.Completed)
	var due string
	if json.Unmarshal(fields["dueDate"], &due) == nil && due != "" {
		t.DueDate = &due
	}
	return t
}
