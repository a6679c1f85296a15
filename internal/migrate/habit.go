package migrate

import (
	"encoding/json"

	"github.com/idilsaglam/tada/internal/model"
)

// Shape tags which layout a stored habit record uses.
type Shape int

const (
	ShapeCurrent Shape = iota
	ShapeLegacy
)

func (s Shape) String() string {
	if s == ShapeLegacy {
		return "legacy"
	}
	return "current"
}

// LegacyHabit is the superseded layout: a list of fully completed days and no
// goal or progress counts.
type LegacyHabit struct {
	ID              int64
	Text            string
	CompletionDates []string
}

// StoredHabit is a decoded habit record in either layout. Exactly one of
// Current and Legacy is meaningful, selected by Shape.
type StoredHabit struct {
	Shape   Shape
	Current model.Habit
	Legacy  LegacyHabit
	// Skipped counts progress entries that were not non-negative integers.
	Skipped int
}

// DecodeHabit classifies one stored record. A record is legacy when it has
// completionDates and no progress. ok is false when raw is not an object.
func DecodeHabit(raw json.RawMessage) (StoredHabit, bool) {
	fields, ok := object(raw)
	if !ok {
		return StoredHabit{}, false
	}
	_, hasDates := fields["completionDates"]
	_, hasProgress := fields["progress"]

	if hasDates && !hasProgress {
		lh := LegacyHabit{CompletionDates: completionDates(fields["completionDates"])}
		_ = json.Unmarshal(fields["id"], &lh.ID)
		_ = json.Unmarshal(fields["text"], &lh.Text)
		return StoredHabit{Shape: ShapeLegacy, Legacy: lh}, true
	}

	var h model.Habit
	_ = json.Unmarshal(fields["id"], &h.ID)
	_ = json.Unmarshal(fields["text"], &h.Text)
	_ = json.Unmarshal(fields["goal"], &h.Goal)
	progress, skipped := progressCounts(fields["progress"])
	h.Progress = progress
	return StoredHabit{Shape: ShapeCurrent, Current: h, Skipped: skipped}, true
}

// NeedsRepair reports whether Resolve will change a current-shape record.
func (s StoredHabit) NeedsRepair() bool {
	return s.Shape == ShapeCurrent && (s.Skipped > 0 || s.Current.Goal < 1)
}

// progressCounts decodes the progress map entry by entry. Values that are not
// non-negative integers are skipped and counted. A missing or null map is
// empty; any other non-object counts as one skipped entry.
func progressCounts(raw json.RawMessage) (map[string]int, int) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, 0
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, 1
	}
	progress := make(map[string]int, len(entries))
	skipped := 0
	for day, v := range entries {
		var n int
		if err := json.Unmarshal(v, &n); err != nil || n < 0 || string(v) == "null" {
			skipped++
			continue
		}
		progress[day] = n
	}
	return progress, skipped
}

// Resolve returns the record in the current layout. Each legacy completion
// date becomes a progress count of 1 against a goal of 1. A current record
// with a goal below 1 gets goal 1.
func (s StoredHabit) Resolve() model.Habit {
	if s.Shape == ShapeCurrent {
		h := s.Current
		if h.Progress == nil {
			h.Progress = map[string]int{}
		}
		if h.Goal < 1 {
			h.Goal = 1
		}
		return h
	}
	progress := make(map[string]int, len(s.Legacy.CompletionDates))
	for _, d := range s.Legacy.CompletionDates {
		progress[d] = 1
	}
	return model.Habit{
		ID:       s.Legacy.ID,
		Text:     s.Legacy.Text,
		Goal:     1,
		Progress: progress,
	}
}

// completionDates reads the legacy list. Anything other than a list reads as
// empty and non-string entries are skipped.
func completionDates(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	dates := make([]string, 0, len(items))
	for _, it := range items {
		var s string
		if json.Unmarshal(it, &s) == nil {
			dates = append(dates, s)
		}
	}
	return dates
}
