package model

// Todo is a one-off task.
// DueDate is a YYYY-MM-DD key or nil; it is written as JSON null when unset.
type Todo struct {
	ID        int64   `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	DueDate   *string `json:"dueDate"`
}

// Due returns the due date key, or "" when the todo has none.
func (t Todo) Due() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// HasDue reports whether a due date is set.
func (t Todo) HasDue() bool { return t.DueDate != nil && *t.DueDate != "" }

// Filter selects which todos a list view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// Match reports whether t belongs in the filtered view.
func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next cycles All -> Active -> Completed -> All.
func (f Filter) Next() Filter {
	for i, x := range Filters {
		if x == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Label is the tab title.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// ParseFilter accepts all, active or completed (empty means all).
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive, FilterCompleted:
		return Filter(s), nil
	}
	return "", &ValidationError{Field: "filter", Err: errUnknownFilter(s)}
}
