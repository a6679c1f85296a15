// Package ui holds the lipgloss styles and the small renderers shared by the
// CLI and the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette, symbols and box borders.
// All renderers pull from the current theme.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help                          lipgloss.Style
	Flames                                        [5]lipgloss.Style // indexed by analytics.Tier

	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
	BoxUnchecked, BoxChecked string
	DayMet, DayUnmet         string
	SymDone, SymPending      string
	SymFlame                 string
}

var current = classic()

// SetTheme switches to neon, mono or classic (anything unknown). mono also
// turns color off.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
		SetColor(false)
	default:
		current = classic()
	}
}

// Current is the active theme.
func Current() Theme { return current }

// SetColor turns colors off for every renderer when enabled is false.
// Turning it back on restores terminal detection.
func SetColor(enabled bool) {
	if !enabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

func fg(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

func classic() Theme {
	return Theme{
		Name:    "classic",
		Title:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Accent:  fg("12"),
		Success: fg("42"),
		Error:   fg("9").Bold(true),
		Pending: fg("214"),

		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Flames:   [5]lipgloss.Style{lipgloss.NewStyle(), fg("215"), fg("208"), fg("196"), fg("196").Bold(true)},

		Border:       lipgloss.RoundedBorder(),
		BorderColor:  lipgloss.Color("8"),
		BoxUnchecked: "☐", BoxChecked: "☑",
		DayMet: "●", DayUnmet: "○",
		SymDone: "✔", SymPending: "•",
		SymFlame: "🔥",
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = fg("13").Bold(true)
	t.Accent = fg("14")
	t.Pending = fg("11")
	t.Success = fg("10")
	t.BorderColor = lipgloss.Color("13")
	t.BoxUnchecked, t.BoxChecked = "◻", "◼"
	t.DayMet, t.DayUnmet = "◆", "◇"
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
		Selected: plain.Reverse(true),
		Done:     plain,
		Help:     plain,
		Flames:   [5]lipgloss.Style{plain, plain, plain, plain, plain},

		Border:       lipgloss.NormalBorder(),
		BorderColor:  lipgloss.NoColor{},
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		DayMet: "x", DayUnmet: ".",
		SymDone: "x", SymPending: "-",
		SymFlame: "^",
	}
}
