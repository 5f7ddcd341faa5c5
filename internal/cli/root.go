// Package cli wires the cobra command tree to the store and its views.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/fixtures"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Streams are the process I/O the commands read from and write to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams.
func StdStreams() Streams { return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr} }

// usageError marks errors that should exit with ExitUsage.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// usageArgs turns argument validation failures into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// flags holds the persistent root flags; empty means "not set".
type flags struct {
	config   string
	theme    string
	seed     string
	fixtures string
	logLevel string
	logFile  string
	logTime  bool
	group    bool
}

type app struct {
	streams Streams
	flags   flags

	cfg      *config.Config
	logger   *log.Logger
	closeLog func() error
}

// Run executes the command line and returns the process exit code.
func Run(args []string, streams Streams) int {
	a := &app{streams: streams}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	err := root.Execute()
	if a.closeLog != nil {
		if cerr := a.closeLog(); cerr != nil && err == nil {
			err = fmt.Errorf("close log: %w", cerr)
		}
	}
	if err == nil {
		return ExitOK
	}

	ui.Fail(streams.Err, err.Error())
	var ue *usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitError
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "An in-memory todo session",
		Long: `todo keeps a todo list for the length of one session.

Without a subcommand it opens the interactive view. Nothing is written to
disk: the list starts from the demo seed (or a fixtures file) every time.`,
		Args:              usageArgs(cobra.NoArgs),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			return tui.Run(s, a.logger, tea.WithInput(a.streams.In), tea.WithOutput(a.streams.Out))
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", "", "config file (default: ./tada.toml or ~/.tada/config.toml)")
	pf.StringVar(&a.flags.theme, "theme", "", "colour theme: classic, neon or mono")
	pf.StringVar(&a.flags.seed, "seed", "", "initial list: demo or none")
	pf.StringVar(&a.flags.fixtures, "fixtures", "", "YAML file with the initial list (overrides --seed)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFile, "log-file", "", "append logs to this file")
	pf.BoolVar(&a.flags.logTime, "log-timestamps", false, "include timestamps in log lines")
	pf.BoolVar(&a.flags.group, "group", false, "group output by pending/done")

	root.AddCommand(a.lsCmd(), a.runCmd(), a.checkCmd())
	return root
}

// setup loads config, applies flags on top and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.flags.config)
	if err != nil {
		return err
	}
	pf := cmd.Flags()
	if pf.Changed("theme") {
		cfg.Theme = a.flags.theme
	}
	if pf.Changed("seed") {
		cfg.Seed = a.flags.seed
	}
	if pf.Changed("fixtures") {
		cfg.Fixtures = a.flags.fixtures
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if pf.Changed("log-file") {
		cfg.LogFile = a.flags.logFile
	}
	if pf.Changed("log-timestamps") {
		cfg.LogTime = a.flags.logTime
	}
	if pf.Changed("group") {
		cfg.Group = a.flags.group
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return &usageError{err: err}
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	// The interactive view owns the terminal; only a log file may be written.
	fallback := a.streams.Err
	if cmd == cmd.Root() {
		fallback = io.Discard
	}
	logger, closeFn, err := logging.New(logging.Options{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		File:      cfg.LogFile,
		Fallback:  fallback,
		Timestamp: cfg.LogTime,
	})
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logger, closeFn
	a.logger.Debug("config loaded", "source", cfg.Source, "theme", cfg.Theme, "seed", cfg.Seed, "fixtures", cfg.Fixtures)
	return nil
}

// session builds the store a command works on.
func (a *app) session() (*todo.Store, error) {
	switch {
	case a.cfg.Fixtures != "":
		seeds, err := fixtures.Load(a.cfg.Fixtures)
		if err != nil {
			return nil, fmt.Errorf("fixtures %s: %w", a.cfg.Fixtures, err)
		}
		a.logger.Debug("seeded from fixtures", "path", a.cfg.Fixtures, "count", len(seeds))
		return todo.New(todo.WithSeed(seeds)), nil
	case a.cfg.Seed == config.SeedDemo:
		return todo.New(todo.WithSeed(todo.DemoSeed())), nil
	default:
		return todo.New(), nil
	}
}
