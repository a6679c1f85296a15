package jsonstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

func TestGetMissingKey(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	b, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, b)
}

func TestPutThenGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put("habits", []byte(`[]`)))
	b, ok, err := s.Get("habits")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]\n", string(b))

	require.NoError(t, s.Put("habits", []byte("[1]\n")))
	b, _, _ = s.Get("habits")
	assert.Equal(t, "[1]\n", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are cleaned up")
	assert.Equal(t, "habits.json", entries[0].Name())
}

func TestStoreRoundTripThroughFiles(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"id":1,"text":"Floss","completionDates":["2024-07-01"]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "habits.json"), []byte(legacy), 0o644))

	js, err := New(dir)
	require.NoError(t, err)
	s, err := store.Open(js)
	require.NoError(t, err)

	_, err = s.AddTodo("Buy milk", nil)
	require.NoError(t, err)

	reopened, err := store.Open(js)
	require.NoError(t, err)
	todos := reopened.FilteredTodos(model.FilterAll)
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Text)

	h, ok := reopened.Habit(1)
	require.True(t, ok)
	assert.Equal(t, map[string]int{"2024-07-01": 1}, h.Progress)

	raw, err := os.ReadFile(filepath.Join(dir, "habits.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "completionDates")
}

func TestKeyFor(t *testing.T) {
	k, ok := keyFor("/data/todos.json")
	assert.True(t, ok)
	assert.Equal(t, "todos", k)

	_, ok = keyFor("/data/.todos-123.tmp")
	assert.False(t, ok)
	_, ok = keyFor("/data/notes.txt")
	assert.False(t, ok)
}

func TestWatchReportsExternalWrite(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := s.Watch(ctx, 20*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "todos.json"), []byte("[]"), 0o644))

	select {
	case key := <-ch:
		assert.Equal(t, "todos", key)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	for range ch {
	}
}

func TestWatchLogsWatcherErrors(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()
	s, err := New(dir, WithLogger(log.New(&buf)))
	require.NoError(t, err)

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	out := make(chan string, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.watchLoop(context.Background(), events, errs, out, 10*time.Millisecond)
	}()

	errs <- errors.New("event queue overflow")
	// still watching after the error
	events <- fsnotify.Event{Name: filepath.Join(dir, "habits.json"), Op: fsnotify.Write}
	select {
	case key := <-out:
		assert.Equal(t, "habits", key)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported after watcher error")
	}

	close(errs)
	<-done
	assert.Contains(t, buf.String(), "watch error")
	assert.Contains(t, buf.String(), "event queue overflow")
}
