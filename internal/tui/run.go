package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/store"
)

// Watcher reports storage keys that changed outside this process.
type Watcher interface {
	Watch(ctx context.Context, debounce time.Duration) (<-chan string, error)
}

// Options configure Run.
type Options struct {
	Watcher Watcher // nil disables live reload
	Logger  *log.Logger
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, st *store.Store, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(st)
	if opts.Watcher != nil {
		ch, err := opts.Watcher.Watch(ctx, 0)
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Warn("live reload disabled", "err", err)
			}
		} else {
			m.events = ch
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
