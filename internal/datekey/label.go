package datekey

import (
	"strings"
	"time"
)

// DueStatus classifies a due date relative to today.
type DueStatus int

const (
	DueNone DueStatus = iota
	DueOverdue
	DueToday
	DueFuture
)

func (s DueStatus) String() string {
	switch s {
	case DueOverdue:
		return "overdue"
	case DueToday:
		return "today"
	case DueFuture:
		return "future"
	default:
		return "none"
	}
}

// RelativeLabel renders key as "Today", "Tomorrow", "Yesterday" or a short
// "Jan 2" label. An empty key gives "" and a malformed key is returned as is.
func RelativeLabel(key string, today Date) string {
	if key == "" {
		return ""
	}
	d, err := Parse(key)
	if err != nil {
		return key
	}
	switch d {
	case today:
		return "Today"
	case today.AddDays(1):
		return "Tomorrow"
	case today.AddDays(-1):
		return "Yesterday"
	}
	return d.Time(time.UTC).Format("Jan 2")
}

// Status reports where key falls relative to today. Empty and malformed keys
// are DueNone.
func Status(key string, today Date) DueStatus {
	if key == "" {
		return DueNone
	}
	d, err := Parse(key)
	if err != nil {
		return DueNone
	}
	switch d.Compare(today) {
	case -1:
		return DueOverdue
	case 0:
		return DueToday
	default:
		return DueFuture
	}
}

// Resolve maps the words today, tomorrow and yesterday to keys relative to
// today. Anything else comes back trimmed but otherwise unchanged.
func Resolve(s string, today Date) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today":
		return today.Key()
	case "tomorrow":
		return today.AddDays(1).Key()
	case "yesterday":
		return today.AddDays(-1).Key()
	}
	return s
}
