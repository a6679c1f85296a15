package model

// Habit is a recurring daily record. Progress maps a YYYY-MM-DD key to the
// number of units done that day; a missing key means zero.
type Habit struct {
	ID       int64          `json:"id"`
	Text     string         `json:"text"`
	Goal     int            `json:"goal"`
	Progress map[string]int `json:"progress"`
}

// Count returns the recorded progress for key.
func (h Habit) Count(key string) int { return h.Progress[key] }

// Clone deep-copies h so callers never share the progress map.
func (h Habit) Clone() Habit {
	p := make(map[string]int, len(h.Progress))
	for k, v := range h.Progress {
		p[k] = v
	}
	h.Progress = p
	return h
}
