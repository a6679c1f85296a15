// Package cli is the tada command line: a cobra command tree over the
// record store. Execute returns the process exit code (0 ok, 1 error,
// 2 usage or invalid input).
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// Version is stamped at build time.
var Version = "0.3.0"

// usageError marks bad invocations: wrong arity, bad flags, bad numbers.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error {
	return &usageError{fmt.Errorf(format, a...)}
}

// indexError is a 1-based index outside the listed items.
type indexError struct {
	have, got int
	list      string // command that shows valid indexes
}

func (e *indexError) Error() string {
	return fmt.Sprintf("index out of range: have %d, got %d", e.have, e.got)
}

// errReported means the command already printed its own failure.
var errReported = errors.New("reported")

// globalFlags are the root's persistent flags.
type globalFlags struct {
	config   string
	dataDir  string
	backend  string
	theme    string
	logLevel string
	noColor  bool
}

// app carries what commands share once the root has resolved config.
type app struct {
	in       io.Reader
	out, err io.Writer

	flags globalFlags
	cfg   *config.Config
	log   *log.Logger

	storage store.Storage
	json    *jsonstore.Store // set for the json backend, used for watching
	closers []func() error
}

// Execute runs the command line in args and returns the exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{in: stdin, out: stdout, err: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		ui.Fail(stderr, err.Error())
	}
	var ie *indexError
	if errors.As(err, &ie) {
		ui.Hint(stderr, fmt.Sprintf("run `tada %s` to see valid indexes", ie.list))
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var ue *usageError
	var ie *indexError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ue), errors.As(err, &ie), errors.Is(err, model.ErrValidation):
		return 2
	}
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tada",
		Short: "Todos and daily habits in your terminal",
		Long: `tada keeps a todo list with optional due dates and a set of daily habits
with per-day goals, streaks and a completion calendar.

Run without a command to open the interactive view.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          noArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", "", "config file (default $XDG_CONFIG_HOME/tada/config.toml)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "directory holding todos and habits")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: json or sqlite")
	pf.StringVar(&a.flags.theme, "theme", "", "classic, neon or mono")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "debug, info, warn or error")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colors")

	root.AddCommand(newTodoCmd(a), newHabitCmd(a), newTUICmd(a), newDoctorCmd(a))
	return root
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive view",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

// setup resolves config (defaults, file, env, then flags), theme and logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.config)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("data-dir") {
		cfg.DataDir = a.flags.dataDir
	}
	if f.Changed("backend") {
		cfg.Backend = a.flags.backend
	}
	if f.Changed("theme") {
		cfg.Theme = a.flags.theme
	}
	if f.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if f.Changed("no-color") {
		cfg.NoColor = a.flags.noColor
	}
	if err := cfg.Validate(); err != nil {
		return &usageError{err}
	}

	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return &usageError{err}
	}
	a.cfg = cfg
	a.log = logging.New(a.err, lvl)

	ui.SetTheme(cfg.Theme)
	if cfg.NoColor {
		ui.SetColor(false)
	}
	a.log.Debug("config resolved", "data_dir", cfg.DataDir, "backend", cfg.Backend, "theme", cfg.Theme)
	return nil
}

// openStorage opens the configured backend without loading anything.
func (a *app) openStorage() (store.Storage, error) {
	if a.storage != nil {
		return a.storage, nil
	}
	switch a.cfg.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
		db, err := sqlitestore.Open(a.cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.storage = db
	default:
		js, err := jsonstore.New(a.cfg.DataDir, jsonstore.WithLogger(a.log))
		if err != nil {
			return nil, err
		}
		a.json = js
		a.storage = js
	}
	return a.storage, nil
}

// openStore opens storage and loads (and if needed migrates) the records.
func (a *app) openStore() (*store.Store, error) {
	storage, err := a.openStorage()
	if err != nil {
		return nil, err
	}
	return store.Open(storage, store.WithLogger(a.log))
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil && a.log != nil {
			a.log.Warn("close", "err", err)
		}
	}
	a.closers = nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

// parseIndex turns a 1-based argument into a slice index for n items.
func parseIndex(verb, arg string, n int, list string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usagef("%s: not a number: %s", verb, arg)
	}
	if i < 1 || i > n {
		return 0, &indexError{have: n, got: i, list: list}
	}
	return i - 1, nil
}

func (a *app) runTUI(ctx context.Context) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	opts := tui.Options{Logger: a.log}
	if a.json != nil && a.cfg.Watch {
		opts.Watcher = a.json
	}
	return tui.Run(ctx, st, opts)
}
