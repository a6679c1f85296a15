package migrate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/idilsaglam/tada/internal/model"
)

func TestLegacyHabitMigrates(t *testing.T) {
	in := `[{"id":1,"text":"Read","completionDates":["2024-01-01","2024-01-02"]}]`

	habits, rep, err := Habits([]byte(in))
	require.NoError(t, err)
	require.Len(t, habits, 1)

	assert.Equal(t, model.Habit{
		ID:       1,
		Text:     "Read",
		Goal:     1,
		Progress: map[string]int{"2024-01-01": 1, "2024-01-02": 1},
	}, habits[0])
	assert.Equal(t, 1, rep.HabitsMigrated)
	assert.True(t, rep.Changed())

	out, err := json.Marshal(habits)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "completionDates")
}

func TestMixedHabitCollection(t *testing.T) {
	in := `[
		{"id":1,"text":"Old","completionDates":["2024-01-01"]},
		{"id":2,"text":"New","goal":3,"progress":{"2024-01-01":2}},
		{"id":3,"text":"Both","goal":2,"progress":{"2024-01-05":2},"completionDates":["2024-01-01"]}
	]`
	habits, rep, err := Habits([]byte(in))
	require.NoError(t, err)
	require.Len(t, habits, 3)

	assert.Equal(t, 1, rep.HabitsMigrated)
	assert.Equal(t, 1, habits[0].Goal)
	assert.Equal(t, model.Habit{ID: 2, Text: "New", Goal: 3, Progress: map[string]int{"2024-01-01": 2}}, habits[1])
	// progress present: current shape, completionDates ignored
	assert.Equal(t, map[string]int{"2024-01-05": 2}, habits[2].Progress)
	assert.Equal(t, 2, habits[2].Goal)
}

func TestCompletionDatesNotAList(t *testing.T) {
	for _, dates := range []string{`"2024-01-01"`, `null`, `{"a":1}`, `42`} {
		in := `[{"id":7,"text":"x","completionDates":` + dates + `}]`
		habits, rep, err := Habits([]byte(in))
		require.NoError(t, err, dates)
		require.Len(t, habits, 1)
		assert.Empty(t, habits[0].Progress, dates)
		assert.NotNil(t, habits[0].Progress, dates)
		assert.Equal(t, 1, habits[0].Goal)
		assert.Equal(t, 1, rep.HabitsMigrated)
	}
}

func TestCompletionDatesSkipsNonStrings(t *testing.T) {
	in := `[{"id":7,"text":"x","completionDates":["2024-01-01",3,null,"2024-01-03"]}]`
	habits, _, err := Habits([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2024-01-01": 1, "2024-01-03": 1}, habits[0].Progress)
}

func TestDecodeHabitShape(t *testing.T) {
	sh, ok := DecodeHabit(json.RawMessage(`{"id":1,"completionDates":[]}`))
	require.True(t, ok)
	assert.Equal(t, ShapeLegacy, sh.Shape)
	assert.Equal(t, "legacy", sh.Shape.String())

	sh, ok = DecodeHabit(json.RawMessage(`{"id":1,"goal":1,"progress":{}}`))
	require.True(t, ok)
	assert.Equal(t, ShapeCurrent, sh.Shape)

	_, ok = DecodeHabit(json.RawMessage(`"nope"`))
	assert.False(t, ok)
}

func TestBadProgressEntriesAreSkippedOneByOne(t *testing.T) {
	in := `[{"id":1,"text":"Run","goal":1,"progress":{
		"2024-01-01":1,"2024-01-02":1,"2024-01-03":1.5,"2024-01-04":"x","2024-01-05":null,"2024-01-06":-2
	}}]`
	habits, rep, err := Habits([]byte(in))
	require.NoError(t, err)
	require.Len(t, habits, 1)

	assert.Equal(t, map[string]int{"2024-01-01": 1, "2024-01-02": 1}, habits[0].Progress)
	assert.Equal(t, 1, rep.Repaired)
	assert.Equal(t, 0, rep.HabitsMigrated)
	assert.True(t, rep.Changed(), "repaired records must be written back")
}

func TestProgressNotAnObject(t *testing.T) {
	habits, rep, err := Habits([]byte(`[{"id":1,"text":"Run","goal":2,"progress":"lots"}]`))
	require.NoError(t, err)
	assert.Empty(t, habits[0].Progress)
	assert.NotNil(t, habits[0].Progress)
	assert.Equal(t, 1, rep.Repaired)

	_, rep, err = Habits([]byte(`[{"id":1,"text":"Run","goal":2,"progress":null}]`))
	require.NoError(t, err)
	assert.False(t, rep.Changed())
}

func TestGoalBelowOneIsRaised(t *testing.T) {
	for _, goal := range []string{``, `,"goal":0`, `,"goal":-3`, `,"goal":"three"`} {
		in := `[{"id":1,"text":"run","progress":{"2024-02-01":1}` + goal + `}]`
		habits, rep, err := Habits([]byte(in))
		require.NoError(t, err, goal)
		require.Len(t, habits, 1)
		assert.Equal(t, 1, habits[0].Goal, goal)
		assert.Equal(t, map[string]int{"2024-02-01": 1}, habits[0].Progress, goal)
		assert.Equal(t, 1, rep.Repaired, goal)
	}

	sh, ok := DecodeHabit(json.RawMessage(`{"id":1,"text":"ok","goal":2,"progress":{}}`))
	require.True(t, ok)
	assert.False(t, sh.NeedsRepair())
}

func TestTodosGainNullDueDate(t *testing.T) {
	in := `[
		{"id":1,"text":"old","completed":true},
		{"id":2,"text":"new","completed":false,"dueDate":"2024-07-30"},
		{"id":3,"text":"none","completed":false,"dueDate":null}
	]`
	todos, rep, err := Todos([]byte(in))
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, 1, rep.TodosMigrated)

	assert.Nil(t, todos[0].DueDate)
	assert.True(t, todos[0].Completed)
	assert.Equal(t, "old", todos[0].Text)
	assert.Equal(t, "2024-07-30", todos[1].Due())
	assert.Nil(t, todos[2].DueDate)

	out, err := json.Marshal(todos[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"text":"old","completed":true,"dueDate":null}`, string(out))
}

func TestMalformedRecordsAreDropped(t *testing.T) {
	habits, rep, err := Habits([]byte(`[1, "x", null, {"id":4,"text":"ok","goal":1,"progress":{}}]`))
	require.NoError(t, err)
	assert.Len(t, habits, 1)
	assert.Equal(t, 3, rep.Dropped)

	todos, rep, err := Todos([]byte(`[[], {"id":"wrong","text":"kept","dueDate":"2024-01-01"}]`))
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, 1, rep.Dropped)
	assert.Equal(t, "kept", todos[0].Text)
	assert.Equal(t, "2024-01-01", todos[0].Due())
}

func TestEmptyAndCorrupt(t *testing.T) {
	habits, rep, err := Habits(nil)
	require.NoError(t, err)
	assert.Empty(t, habits)
	assert.False(t, rep.Changed())

	_, _, err = Todos([]byte(`{"not":"a list"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestMigrationIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		var records []map[string]any
		for i := 0; i < n; i++ {
			rec := map[string]any{"id": i + 1, "text": rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "text")}
			switch rapid.IntRange(0, 4).Draw(t, "kind") {
			case 0:
				rec["completionDates"] = rapid.SliceOfN(rapid.StringMatching(`2024-0[1-9]-[12][0-9]`), 0, 5).Draw(t, "dates")
			case 1:
				rec["completionDates"] = "garbage"
			case 2:
				rec["goal"] = rapid.IntRange(1, 5).Draw(t, "goal")
				rec["progress"] = rapid.MapOfN(rapid.StringMatching(`2024-0[1-9]-[12][0-9]`), rapid.IntRange(0, 6), 0, 5).Draw(t, "progress")
			case 3:
				rec["goal"] = rapid.IntRange(-2, 0).Draw(t, "badGoal")
				rec["progress"] = map[string]any{"2024-01-01": 1, "2024-01-02": 1.5, "2024-01-03": "two", "2024-01-04": -1}
			default:
				rec["goal"] = 1
			}
			records = append(records, rec)
		}
		in, err := json.Marshal(records)
		if err != nil {
			t.Fatal(err)
		}

		once, _, err := Habits(in)
		if err != nil {
			t.Fatal(err)
		}
		onceJSON, _ := json.Marshal(once)
		twice, rep, err := Habits(onceJSON)
		if err != nil {
			t.Fatal(err)
		}
		if rep.Changed() {
			t.Fatalf("second pass reported changes: %+v", rep)
		}
		twiceJSON, _ := json.Marshal(twice)
		if string(onceJSON) != string(twiceJSON) {
			t.Fatalf("not idempotent:\n%s\n%s", onceJSON, twiceJSON)
		}

		todoIn, _ := json.Marshal(records)
		todos, _, err := Todos(todoIn)
		if err != nil {
			t.Fatal(err)
		}
		todosJSON, _ := json.Marshal(todos)
		again, rep, err := Todos(todosJSON)
		if err != nil {
			t.Fatal(err)
		}
		againJSON, _ := json.Marshal(again)
		if rep.Changed() || string(todosJSON) != string(againJSON) {
			t.Fatalf("todo migration not idempotent:\n%s\n%s", todosJSON, againJSON)
		}
	})
}
