// Package store owns the authoritative todo and habit collections.
//
// Every mutation updates memory first and then writes the whole affected
// collection back to Storage before returning. A failed write surfaces as a
// *model.StorageWriteError while memory keeps the new state, so the caller can
// simply repeat the call.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/datekey"
	"github.com/idilsaglam/tada/internal/migrate"
	"github.com/idilsaglam/tada/internal/model"
)

// Storage keys, one per collection.
const (
	KeyTodos  = "todos"
	KeyHabits = "habits"
)

// Storage is a durable key/value store holding whole serialized collections.
// Get reports ok=false for a key that was never written.
type Storage interface {
	Get(key string) (data []byte, ok bool, err error)
	Put(key string, data []byte) error
}

// Store is the record store. It is not safe for concurrent use.
type Store struct {
	storage  Storage
	now      func() time.Time
	log      *log.Logger
	validate *inputValidator

	todos  []model.Todo
	habits []model.Habit
	lastID int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for ids and "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for migration and write events.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open builds a Store over storage and runs Initialize, so no operation can
// observe unmigrated data.
func Open(storage Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage:  storage,
		now:      time.Now,
		log:      log.New(io.Discard),
		validate: newInputValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize (re)reads both collections and migrates them. When migration
// rewrote anything the result is written back; a failed write-back is logged
// and does not fail the load. It is safe to call again at any time, e.g.
// after the storage changed underneath.
func (s *Store) Initialize() error {
	rawTodos, _, err := s.storage.Get(KeyTodos)
	if err != nil {
		return fmt.Errorf("read %s: %w", KeyTodos, err)
	}
	rawHabits, _, err := s.storage.Get(KeyHabits)
	if err != nil {
		return fmt.Errorf("read %s: %w", KeyHabits, err)
	}

	todos, todoRep, err := migrate.Todos(rawTodos)
	if err != nil {
		return fmt.Errorf("load %s: %w", KeyTodos, err)
	}
	habits, habitRep, err := migrate.Habits(rawHabits)
	if err != nil {
		return fmt.Errorf("load %s: %w", KeyHabits, err)
	}

	s.todos = todos
	s.habits = habits
	s.lastID = 0
	for _, t := range todos {
		s.lastID = max(s.lastID, t.ID)
	}
	for _, h := range habits {
		s.lastID = max(s.lastID, h.ID)
	}

	// A failed write-back keeps the migrated state in memory; the next
	// mutation of that collection writes it again.
	if todoRep.Changed() {
		s.log.Info("migrating todo data structure", "due_date_added", todoRep.TodosMigrated, "dropped", todoRep.Dropped)
		if err := s.saveTodos(); err != nil {
			s.log.Warn("migrated todos not saved", "err", err)
		}
	}
	if habitRep.Changed() {
		s.log.Info("migrating habit data structure", "migrated", habitRep.HabitsMigrated, "repaired", habitRep.Repaired, "dropped", habitRep.Dropped)
		if err := s.saveHabits(); err != nil {
			s.log.Warn("migrated habits not saved", "err", err)
		}
	}
	s.log.Debug("store loaded", "todos", len(s.todos), "habits", len(s.habits))
	return nil
}

// Today is the current local date according to the store's clock.
func (s *Store) Today() datekey.Date { return datekey.FromTime(s.now()) }

// nextID is time-derived and strictly increasing across both collections.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) saveTodos() error { return s.put(KeyTodos, s.todos) }

func (s *Store) saveHabits() error { return s.put(KeyHabits, s.habits) }

func (s *Store) put(key string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &model.StorageWriteError{Key: key, Err: fmt.Errorf("json marshal: %w", err)}
	}
	if err := s.storage.Put(key, b); err != nil {
		s.log.Error("write failed", "key", key, "err", err)
		return &model.StorageWriteError{Key: key, Err: err}
	}
	s.log.Debug("saved", "key", key, "bytes", len(b))
	return nil
}
