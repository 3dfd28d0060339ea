package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/addrbook/internal/book"
	"github.com/smileynet/addrbook/internal/command"
	"github.com/smileynet/addrbook/internal/config"
	"github.com/smileynet/addrbook/internal/logger"
	"github.com/smileynet/addrbook/internal/state"
	"github.com/smileynet/addrbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"Extra config file, applied after user and project config." type:"path"`
	Snapshot string `help:"JSON snapshot file to load at start and save on exit."`
	LogLevel string `help:"Log level: debug, info, warn, error." name:"log-level"`
}

// CLI is the top-level command structure for addrbook.
type CLI struct {
	Globals

	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Repl      ReplCmd          `cmd:"" default:"1" help:"Start a line-oriented session (default)."`
	TUI       TUICmd           `cmd:"" name:"tui" help:"Start a terminal UI session."`
	Birthdays BirthdaysCmd     `cmd:"" help:"Print who to greet in the next week from a snapshot."`
}

// setupError marks failures that happen before a session starts.
type setupError struct {
	err error
}

func (e *setupError) Error() string { return e.err.Error() }
func (e *setupError) Unwrap() error { return e.err }

// app bundles the dependencies built from configuration.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	book  *book.AddressBook
	store *state.FileStore // nil when the book is in memory only
}

// loadConfig loads layered config from user, project, and flag paths with env overrides.
func loadConfig(extra string) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/addrbook/config.yaml"),
		".addrbook/config.yaml",
	}
	if extra != "" {
		paths = append(paths, extra)
	}
	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp builds the logger, the book, and the optional snapshot store.
func newApp(g *Globals) (*app, error) {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return nil, &setupError{err}
	}

	// Apply CLI flag overrides.
	if g.Snapshot != "" {
		cfg.Book.Snapshot = g.Snapshot
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, &setupError{err}
	}

	log, err := logger.NewLogger(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		return nil, &setupError{err}
	}

	a := &app{
		cfg:  cfg,
		log:  log,
		book: book.New(book.WithWindowDays(cfg.Birthdays.WindowDays)),
	}

	if cfg.Book.Snapshot != "" {
		a.store = state.NewFileStore(cfg.Book.Snapshot)
		found, err := a.store.Load(a.book)
		if err != nil {
			return nil, err
		}
		log.Debug("snapshot loaded",
			zap.String("path", cfg.Book.Snapshot),
			zap.Bool("found", found),
			zap.Int("contacts", a.book.Len()))
	}
	return a, nil
}

func (a *app) dispatcher() *command.Dispatcher {
	return command.New(a.book, command.WithLogger(a.log))
}

// finish saves the snapshot when autosave is on and syncs the logger.
func (a *app) finish(ctx context.Context) error {
	defer func() { _ = a.log.Sync() }()

	if a.store == nil || !a.cfg.Book.Autosave {
		return nil
	}
	if err := a.store.Save(a.book); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("snapshot saved",
		zap.String("path", a.store.Path()),
		zap.Int("contacts", a.book.Len()))
	return nil
}

// session runs s and then finish, reporting the first error.
func (a *app) session(s tui.Session) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logger.ContextWithLogger(ctx, a.log)

	runErr := s.Run(ctx)
	// Save even after an interrupt so typed-in contacts survive.
	if err := a.finish(ctx); err != nil {
		return errors.Join(runErr, err)
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// ReplCmd runs a line-oriented session on stdin/stdout.
type ReplCmd struct{}

// Run executes the repl command.
func (r *ReplCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	return a.session(tui.NewPlainSession(a.dispatcher(), os.Stdin, os.Stdout, a.cfg.UI.Prompt))
}

// TUICmd runs a terminal UI session, falling back to the line session off a TTY.
type TUICmd struct{}

// Run executes the tui command.
func (c *TUICmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return a.session(tui.NewSession(tui.SessionOptions{
		Handler: a.dispatcher(),
		Prompt:  a.cfg.UI.Prompt,
	}))
}

// BirthdaysCmd prints the weekly birthday report for a saved book.
type BirthdaysCmd struct{}

// ErrNoSnapshot indicates the birthdays command was run without a snapshot to read.
var ErrNoSnapshot = errors.New("no snapshot configured (use --snapshot or book.snapshot)")

// Run executes the birthdays command.
func (c *BirthdaysCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}
	defer func() { _ = a.log.Sync() }()
	return c.run(os.Stdout, a)
}

// run prints the report, enabling testable wiring.
func (c *BirthdaysCmd) run(w io.Writer, a *app) error {
	if a.store == nil {
		return fmt.Errorf("birthdays: %w", &setupError{ErrNoSnapshot})
	}
	report := a.book.BirthdaysPerWeek()
	if !strings.HasSuffix(report, "\n") {
		report += "\n"
	}
	_, _ = fmt.Fprint(w, report)
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *setupError
	if errors.As(err, &se) {
		return exitSetup
	}
	return exitRuntime
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("Keep contacts, phones and birthdays for one session."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
