package jsonstore

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events one rename produces.
const DefaultDebounce = 150 * time.Millisecond

// Watch reports keys whose files changed until ctx is done. Our own writes
// are reported too; reloading identical data is harmless. Watcher errors are
// logged and watching continues.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	if err := w.Add(s.dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", s.dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	out := make(chan string, 4)
	go func() {
		defer close(out)
		defer w.Close()
		s.watchLoop(ctx, w.Events, w.Errors, out, debounce)
	}()
	return out, nil
}

// watchLoop debounces events into keys on out. It returns when ctx is done
// or either input channel closes.
func (s *Store) watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, out chan<- string, debounce time.Duration) {
	pending := map[string]bool{}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			key, ok := keyFor(ev.Name)
			if !ok {
				continue
			}
			pending[key] = true
			timer.Reset(debounce)
		case <-timer.C:
			for key := range pending {
				select {
				case out <- key:
				case <-ctx.Done():
					return
				}
			}
			pending = map[string]bool{}
		case err, ok := <-errs:
			if !ok {
				return
			}
			s.log.Warn("watch error", "dir", s.dir, "err", err)
		}
	}
}
