package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/datekey"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

func newTodoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"t"},
		Short:   "Manage todos",
		Example: `  tada todo add "Buy milk" --due tomorrow
  tada todo ls --filter active
  tada todo done 2
  tada todo rm 3`,
	}
	cmd.AddCommand(
		newTodoAddCmd(a),
		newTodoListCmd(a),
		newTodoDoneCmd(a),
		newTodoRemoveCmd(a),
		newTodoClearCmd(a),
		newTodoEditCmd(a),
	)
	return cmd
}

func newTodoAddCmd(a *app) *cobra.Command {
	var due string
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a todo (text can be multiple words)",
		Args:  minArgs(1, "tada todo add <text...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			var duePtr *string
			if due != "" {
				d := datekey.Resolve(due, st.Today())
				duePtr = &d
			}
			t, err := st.AddTodo(strings.Join(args, " "), duePtr)
			if err != nil {
				return err
			}
			msg := "added"
			if t.HasDue() {
				msg += ", due " + datekey.RelativeLabel(t.Due(), st.Today())
			}
			ui.OK(a.out, msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "due date: YYYY-MM-DD, today or tomorrow")
	return cmd
}

func newTodoListCmd(a *app) *cobra.Command {
	var (
		filter string
		group  bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos, dated ones first",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, ui.Panel(todoPanel(st, f, group)))
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all, active or completed")
	cmd.Flags().BoolVar(&group, "group", false, "group by pending and done")
	return cmd
}

func newTodoDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for the todo at a 1-based index",
		Args:  exactArgs(1, "tada todo done <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, t, err := a.todoAt("done", args[0])
			if err != nil {
				return err
			}
			if err := st.ToggleTodo(t.ID); err != nil {
				return err
			}
			if t.Completed {
				ui.OK(a.out, "reopened")
			} else {
				ui.OK(a.out, "done")
			}
			return nil
		},
	}
}

func newTodoRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the todo at a 1-based index",
		Args:  exactArgs(1, "tada todo rm <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, t, err := a.todoAt("rm", args[0])
			if err != nil {
				return err
			}
			if err := st.DeleteTodo(t.ID); err != nil {
				return err
			}
			ui.OK(a.out, "removed")
			return nil
		},
	}
}

func newTodoClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every completed todo",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			_, completed := st.Counts()
			if err := st.ClearCompleted(); err != nil {
				return err
			}
			ui.OK(a.out, fmt.Sprintf("cleared %d completed", completed))
			return nil
		},
	}
}

func newTodoEditCmd(a *app) *cobra.Command {
	var (
		text, due string
		noDue     bool
	)
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change a todo's text or due date",
		Args:  exactArgs(1, "tada todo edit <index> [--text T] [--due DATE] [--no-due]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if !f.Changed("text") && !f.Changed("due") && !noDue {
				return usagef("edit: nothing to change, pass --text, --due or --no-due")
			}
			if f.Changed("due") && noDue {
				return usagef("edit: --due and --no-due cannot be combined")
			}
			st, t, err := a.todoAt("edit", args[0])
			if err != nil {
				return err
			}
			var patch store.TodoPatch
			if f.Changed("text") {
				patch.Text = &text
			}
			if f.Changed("due") {
				d := datekey.Resolve(due, st.Today())
				patch.DueDate = &d
			}
			patch.ClearDueDate = noDue
			if err := st.EditTodo(t.ID, patch); err != nil {
				return err
			}
			ui.OK(a.out, "updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "new text")
	cmd.Flags().StringVar(&due, "due", "", "new due date: YYYY-MM-DD, today or tomorrow")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "remove the due date")
	return cmd
}

// todoAt resolves a 1-based index against the listed (due-sorted) order.
func (a *app) todoAt(verb, arg string) (*store.Store, model.Todo, error) {
	st, err := a.openStore()
	if err != nil {
		return nil, model.Todo{}, err
	}
	todos := st.FilteredTodos(model.FilterAll)
	i, err := parseIndex(verb, arg, len(todos), "todo ls")
	if err != nil {
		return nil, model.Todo{}, err
	}
	return st, todos[i], nil
}
