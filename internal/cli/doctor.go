package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/migrate"
	"github.com/idilsaglam/tada/internal/schema"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check stored data without changing it",
		Long: `doctor reads the stored collections, reports records still in a legacy
shape (they are upgraded the next time any other command runs) and checks the
upgraded result against the record schema. Nothing is written.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := a.openStorage()
			if err != nil {
				return err
			}
			problems := 0
			for _, key := range []string{store.KeyTodos, store.KeyHabits} {
				problems += a.checkCollection(storage, key)
			}
			if problems > 0 {
				ui.Fail(a.err, fmt.Sprintf("%d problem(s) found", problems))
				return errReported
			}
			ui.OK(a.out, "data looks healthy")
			return nil
		},
	}
}

// checkCollection prints a report for one key and returns the number of
// problems migration cannot fix.
func (a *app) checkCollection(storage store.Storage, key string) int {
	t := ui.Current()
	raw, ok, err := storage.Get(key)
	switch {
	case err != nil:
		ui.Fail(a.out, fmt.Sprintf("%s: %v", key, err))
		return 1
	case !ok:
		fmt.Fprintln(a.out, t.Muted.Render(key+": nothing stored yet"))
		return 0
	}

	var (
		migrated any
		rep      migrate.Report
	)
	switch key {
	case store.KeyHabits:
		migrated, rep, err = migrate.Habits(raw)
	default:
		migrated, rep, err = migrate.Todos(raw)
	}
	if err != nil {
		ui.Fail(a.out, fmt.Sprintf("%s: %v", key, err))
		return 1
	}

	if n := rep.HabitsMigrated + rep.TodosMigrated; n > 0 {
		fmt.Fprintln(a.out, t.Pending.Render(fmt.Sprintf("%s: %d record(s) in a legacy shape will be upgraded", key, n)))
	}
	if rep.Repaired > 0 {
		fmt.Fprintln(a.out, t.Pending.Render(fmt.Sprintf("%s: %d record(s) with bad goal or progress values will be repaired", key, rep.Repaired)))
	}
	if rep.Dropped > 0 {
		fmt.Fprintln(a.out, t.Pending.Render(fmt.Sprintf("%s: %d unreadable record(s) will be dropped", key, rep.Dropped)))
	}

	upgraded, err := json.Marshal(migrated)
	if err != nil {
		ui.Fail(a.out, fmt.Sprintf("%s: %v", key, err))
		return 1
	}
	violations, err := schema.Validate(key, upgraded)
	if err != nil {
		ui.Fail(a.out, fmt.Sprintf("%s: %v", key, err))
		return 1
	}
	for _, v := range violations {
		ui.Fail(a.out, fmt.Sprintf("%s%s: %s", key, v.Path, v.Message))
	}
	if len(violations) == 0 {
		ui.OK(a.out, fmt.Sprintf("%s: ok", key))
	}
	return len(violations)
}
