// Package book implements the in-memory address book keyed by contact name.
package book

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smileynet/addrbook/internal/contact"
)

// ErrNotFound indicates no record exists under the requested name.
var ErrNotFound = errors.New("book: no such name")

// DefaultWindowDays is the number of days ahead the birthday report looks.
const DefaultWindowDays = 7

// AddOutcome is the result of AddressBook.AddRecord.
type AddOutcome int

const (
	ContactAdded AddOutcome = iota
	PhoneAdded
)

// AddressBook maps contact names to records and remembers insertion order for listing.
type AddressBook struct {
	records map[string]*contact.Record
	order   []string
	now     func() time.Time
	window  int
}

// Option configures an AddressBook.
type Option func(*AddressBook)

// WithClock sets the source of "now" for birthday queries.
func WithClock(now func() time.Time) Option {
	return func(b *AddressBook) {
		b.now = now
	}
}

// WithWindowDays sets how many days ahead the birthday report looks.
// Values outside 1..DefaultWindowDays are ignored.
func WithWindowDays(days int) Option {
	return func(b *AddressBook) {
		if days >= 1 && days <= DefaultWindowDays {
			b.window = days
		}
	}
}

// New creates an empty AddressBook.
func New(opts ...Option) *AddressBook {
	b := &AddressBook{
		records: make(map[string]*contact.Record),
		now:     time.Now,
		window:  DefaultWindowDays,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddRecord inserts r, or merges it into the record already stored under the same name.
// A merge carries over only the first phone of r.
func (b *AddressBook) AddRecord(r *contact.Record) AddOutcome {
	key := r.Name().Value()
	existing, ok := b.records[key]
	if !ok {
		b.records[key] = r
		b.order = append(b.order, key)
		return ContactAdded
	}
	if phones := r.Phones(); len(phones) > 0 {
		existing.AddPhone(phones[0])
	}
	return PhoneAdded
}

// AddMessage renders the user-facing text for an AddRecord outcome.
func AddMessage(o AddOutcome, name contact.Name) string {
	if o == PhoneAdded {
		return fmt.Sprintf("Phone added to %s!", name)
	}
	return "Contact added!"
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*contact.Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return r, nil
}

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*contact.Record {
	out := make([]*contact.Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.order) }

// String renders every record on its own line.
func (b *AddressBook) String() string {
	var sb strings.Builder
	for _, r := range b.Records() {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
