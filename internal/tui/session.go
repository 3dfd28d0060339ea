package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/addrbook/internal/command"
)

// Session runs one interactive address book session until the user quits
// or input ends.
type Session interface {
	Run(ctx context.Context) error
}

// SessionOptions configures session creation.
type SessionOptions struct {
	Handler    Handler
	Reader     io.Reader // Input source (default: os.Stdin).
	Writer     io.Writer // Output destination (default: os.Stdout).
	Prompt     string    // Text shown before each input line.
	ForcePlain bool      // Force the line prompt even if both ends are a TTY.
}

// NewSession returns a terminal UI session when input and output are TTYs,
// or a plain line session otherwise. ForcePlain overrides TTY detection.
func NewSession(opts SessionOptions) Session {
	if opts.Reader == nil {
		opts.Reader = os.Stdin
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	plain := &PlainSession{h: opts.Handler, r: opts.Reader, w: opts.Writer, prompt: opts.Prompt}
	if opts.ForcePlain || !isTTY(opts.Reader) || !isTTY(opts.Writer) {
		return plain
	}
	return &TUISession{h: opts.Handler, r: opts.Reader, w: opts.Writer, prompt: opts.Prompt, fallback: plain}
}

// isTTY reports whether v is a file connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainSession reads commands line by line and prints each reply.
type PlainSession struct {
	h      Handler
	r      io.Reader
	w      io.Writer
	prompt string
}

// NewPlainSession creates a line-oriented session.
func NewPlainSession(h Handler, r io.Reader, w io.Writer, prompt string) *PlainSession {
	return &PlainSession{h: h, r: r, w: w, prompt: prompt}
}

// Run prints the welcome banner, then prompts and dispatches until a quit
// reply, end of input, or context cancellation. Cancellation returns while a
// read is still pending.
func (s *PlainSession) Run(ctx context.Context) error {
	_, _ = fmt.Fprintln(s.w, command.Welcome)

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(s.r, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _ = fmt.Fprint(s.w, s.prompt)

		var line string
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(s.w)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				// Keep the shell prompt off the session's prompt line.
				_, _ = fmt.Fprintln(s.w)
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			line = l
		}

		reply := s.h.Handle(line)
		if reply.Text != "" {
			_, _ = fmt.Fprintln(s.w, reply.Text)
		}
		if reply.Quit {
			return nil
		}
	}
}

// readLines sends each line of r, without its line ending, until r ends or
// done is closed. Lines have no length limit. A read error other than io.EOF
// is sent on the error channel before lines is closed.
func readLines(r io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				select {
				case lines <- strings.TrimRight(line, "\r\n"):
				case <-done:
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					errc <- err
				}
				return
			}
		}
	}()
	return lines, errc
}

// TUISession runs the session as a Bubble Tea program.
// Falls back to a PlainSession if the program fails to start.
type TUISession struct {
	h        Handler
	r        io.Reader
	w        io.Writer
	prompt   string
	fallback *PlainSession
}

// Run starts the Bubble Tea program and blocks until it exits.
func (s *TUISession) Run(ctx context.Context) error {
	p := tea.NewProgram(NewModel(s.h, s.prompt),
		tea.WithInput(s.r),
		tea.WithOutput(s.w),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return s.fallback.Run(ctx)
	}
	return nil
}
