// Package command parses and dispatches the interactive address book protocol.
package command

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/addrbook"
	"github.com/smileynet/addrbook/internal/book"
	"github.com/smileynet/addrbook/internal/contact"
)

// Errors raised while dispatching a line. They are turned into reply text by message.
var (
	ErrSyntax  = errors.New("command: wrong number of arguments")
	ErrUnknown = errors.New("command: unknown command")
)

// Reply text shared across commands.
const (
	Greeting    = "Greetings, Seeker!"
	Farewell    = "Good bye!"
	Welcome     = "Welcome! Enter 'help' to see the list of commands!"
	msgSyntax   = "Wrong syntax!"
	msgUnknown  = "Invalid command."
	msgNoName   = "No such name in the book!"
	msgBadPhone = "Phone must be 10 digits!"
)

// Reply is the outcome of one input line.
type Reply struct {
	Text   string
	Quit   bool
	Failed bool // The line was rejected; Text explains why.
}

// Parse splits a line into a lower-cased command and its arguments.
// A blank line yields an empty command.
func Parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

type handler struct {
	arity int
	run   func(d *Dispatcher, args []string) (Reply, error)
}

var handlers = map[string]handler{
	"hello":         {arity: 0, run: (*Dispatcher).hello},
	"help":          {arity: 0, run: (*Dispatcher).help},
	"add":           {arity: 2, run: (*Dispatcher).add},
	"change":        {arity: 3, run: (*Dispatcher).change},
	"phone":         {arity: 1, run: (*Dispatcher).phone},
	"all":           {arity: 0, run: (*Dispatcher).all},
	"add-birthday":  {arity: 2, run: (*Dispatcher).addBirthday},
	"show-birthday": {arity: 1, run: (*Dispatcher).showBirthday},
	"birthdays":     {arity: 0, run: (*Dispatcher).birthdays},
	"close":         {arity: 0, run: (*Dispatcher).quit},
	"exit":          {arity: 0, run: (*Dispatcher).quit},
}

// Dispatcher runs protocol commands against one address book.
type Dispatcher struct {
	book     *book.AddressBook
	log      *zap.Logger
	helpText string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// WithHelp replaces the embedded help text.
func WithHelp(text string) Option {
	return func(d *Dispatcher) {
		d.helpText = text
	}
}

// New creates a Dispatcher that owns b.
func New(b *book.AddressBook, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		book:     b,
		log:      zap.NewNop(),
		helpText: addrbook.Help,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Book returns the address book the dispatcher operates on.
func (d *Dispatcher) Book() *book.AddressBook { return d.book }

// Handle runs one input line and returns the text to show the user.
func (d *Dispatcher) Handle(line string) Reply {
	cmd, args := Parse(line)
	if cmd == "" {
		return Reply{}
	}
	d.log.Debug("dispatch", zap.String("command", cmd), zap.Int("args", len(args)))

	reply, err := d.dispatch(cmd, args)
	if err != nil {
		d.log.Info("command failed", zap.String("command", cmd), zap.Error(err))
		return Reply{Text: message(err), Failed: true}
	}
	return reply
}

func (d *Dispatcher) dispatch(cmd string, args []string) (Reply, error) {
	h, ok := handlers[cmd]
	if !ok {
		return Reply{}, fmt.Errorf("%w: %q", ErrUnknown, cmd)
	}
	if len(args) != h.arity {
		// Argument-free commands given arguments are not recognised at all.
		if h.arity == 0 {
			return Reply{}, fmt.Errorf("%w: %q takes no arguments", ErrUnknown, cmd)
		}
		return Reply{}, fmt.Errorf("%w: %q wants %d, got %d", ErrSyntax, cmd, h.arity, len(args))
	}
	return h.run(d, args)
}

// message maps a dispatch error to the text shown to the user.
func message(err error) string {
	switch {
	case errors.Is(err, book.ErrNotFound):
		return msgNoName
	case errors.Is(err, contact.ErrInvalidPhone):
		return msgBadPhone
	case errors.Is(err, ErrUnknown):
		return msgUnknown
	default:
		return msgSyntax
	}
}
