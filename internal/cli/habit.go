package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/analytics"
	"github.com/idilsaglam/tada/internal/datekey"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

func newHabitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"h"},
		Short:   "Track daily habits",
		Example: `  tada habit add "Drink water" --goal 8
  tada habit check 1
  tada habit check 1 --date yesterday
  tada habit cal 1 --month 2024-07`,
	}
	cmd.AddCommand(
		newHabitAddCmd(a),
		newHabitListCmd(a),
		newHabitCheckCmd(a),
		newHabitEditCmd(a),
		newHabitRemoveCmd(a),
		newHabitCalendarCmd(a),
	)
	return cmd
}

func newHabitAddCmd(a *app) *cobra.Command {
	var goal int
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a habit with a daily goal",
		Args:  minArgs(1, "tada habit add <text...> [--goal N]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			h, err := st.AddHabit(strings.Join(args, " "), goal)
			if err != nil {
				return err
			}
			ui.OK(a.out, fmt.Sprintf("added %q, goal %d/day", h.Text, h.Goal))
			return nil
		},
	}
	cmd.Flags().IntVar(&goal, "goal", 1, "completions per day")
	return cmd
}

func newHabitListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Show habits with this week's progress and streaks",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			t := ui.Current()
			habits := st.Habits()
			lines := []string{t.Title.Render("Habits") + "  " + t.Muted.Render(st.Today().Key()), ""}
			if len(habits) == 0 {
				lines = append(lines, t.Muted.Render("no habits yet"))
			}
			for i, h := range habits {
				if i > 0 {
					lines = append(lines, "")
				}
				lines = append(lines, habitLines(i+1, h, st.Today())...)
			}
			lines = append(lines, "", t.Muted.Render("Tip: mark today with `tada habit check <index>`"))
			fmt.Fprintln(a.out, ui.Panel(lines))
			return nil
		},
	}
}

func newHabitCheckCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "check <index>",
		Short: "Toggle a day's completion (today by default)",
		Args:  exactArgs(1, "tada habit check <index> [--date DATE]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, h, err := a.habitAt("check", args[0])
			if err != nil {
				return err
			}
			day := datekey.Resolve(date, st.Today())
			if err := st.ToggleHabitCompletion(h.ID, day); err != nil {
				return err
			}
			updated, _ := st.Habit(h.ID)
			if analytics.IsGoalMet(updated.Progress, updated.Goal, day) {
				msg := fmt.Sprintf("%s: %s done", h.Text, day)
				if s, ok := st.HabitSummary(h.ID); ok && s.Streak > 0 {
					msg += fmt.Sprintf(", streak %d", s.Streak)
				}
				ui.OK(a.out, msg)
			} else {
				ui.OK(a.out, fmt.Sprintf("%s: %s unchecked", h.Text, day))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "today", "day to toggle: YYYY-MM-DD, today or yesterday")
	return cmd
}

func newHabitEditCmd(a *app) *cobra.Command {
	var (
		text string
		goal int
	)
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change a habit's text or goal",
		Args:  exactArgs(1, "tada habit edit <index> [--text T] [--goal N]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if !f.Changed("text") && !f.Changed("goal") {
				return usagef("edit: nothing to change, pass --text or --goal")
			}
			st, h, err := a.habitAt("edit", args[0])
			if err != nil {
				return err
			}
			var patch store.HabitPatch
			if f.Changed("text") {
				patch.Text = &text
			}
			if f.Changed("goal") {
				patch.Goal = &goal
			}
			if err := st.EditHabit(h.ID, patch); err != nil {
				return err
			}
			ui.OK(a.out, "updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "new text")
	cmd.Flags().IntVar(&goal, "goal", 0, "new daily goal")
	return cmd
}

func newHabitRemoveCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <index>",
		Short: "Delete a habit and its history",
		Args:  exactArgs(1, "tada habit rm <index> [--yes]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, h, err := a.habitAt("rm", args[0])
			if err != nil {
				return err
			}
			if !yes && !a.confirm(fmt.Sprintf("Delete habit %q and all its history?", h.Text)) {
				fmt.Fprintln(a.out, ui.Current().Muted.Render("kept"))
				return nil
			}
			if err := st.DeleteHabit(h.ID); err != nil {
				return err
			}
			ui.OK(a.out, "removed")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newHabitCalendarCmd(a *app) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "cal <index>",
		Short: "Show a habit's completion calendar for a month",
		Args:  exactArgs(1, "tada habit cal <index> [--month YYYY-MM]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, h, err := a.habitAt("cal", args[0])
			if err != nil {
				return err
			}
			today := st.Today()
			year, mon := today.Year, today.Month
			if month != "" {
				tm, err := time.Parse("2006-01", month)
				if err != nil {
					return &model.ValidationError{Field: "month", Err: fmt.Errorf("want YYYY-MM, got %q", month)}
				}
				year, mon = tm.Year(), tm.Month()
			}
			t := ui.Current()
			cells := analytics.MonthGrid(h.Progress, h.Goal, year, mon, today)
			lines := []string{
				t.Title.Render(ui.Truncate(h.Text, maxTextWidth)),
				t.Muted.Render("Completion History"),
				"",
				ui.MonthCalendar(year, mon, cells),
			}
			fmt.Fprintln(a.out, ui.Panel(lines))
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show, YYYY-MM (default this month)")
	return cmd
}

func (a *app) habitAt(verb, arg string) (*store.Store, model.Habit, error) {
	st, err := a.openStore()
	if err != nil {
		return nil, model.Habit{}, err
	}
	habits := st.Habits()
	i, err := parseIndex(verb, arg, len(habits), "habit ls")
	if err != nil {
		return nil, model.Habit{}, err
	}
	return st, habits[i], nil
}

// confirm asks a yes/no question on stdin; anything but y/yes is no.
func (a *app) confirm(question string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(a.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
