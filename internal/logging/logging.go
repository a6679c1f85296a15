// Package logging builds the leveled console logger shared by the CLI, the
// TUI and the record store.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix tags every line so tada output is easy to pick out of stderr.
const Prefix = "tada"

// ParseLevel accepts debug, info, warn, error and fatal (any case). An empty
// string is warn.
func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return log.WarnLevel, nil
	}
	if s == "warning" {
		s = "warn"
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.WarnLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// New returns a logger writing to w. Timestamps are only reported at debug
// level, where they help line up reloads with writes.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          Prefix,
		ReportTimestamp: level <= log.DebugLevel,
		TimeFormat:      "15:04:05.000",
	})
}
