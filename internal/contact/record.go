package contact

import (
	"errors"
	"fmt"
	"strings"
)

// EditOutcome is the result of Record.EditPhone.
type EditOutcome int

const (
	PhoneChanged EditOutcome = iota
	PhoneNotFound
)

func (o EditOutcome) String() string {
	switch o {
	case PhoneChanged:
		return "changed"
	case PhoneNotFound:
		return "not-found"
	default:
		return fmt.Sprintf("EditOutcome(%d)", int(o))
	}
}

// BirthdayOutcome is the result of Record.AddBirthday.
type BirthdayOutcome int

const (
	BirthdayAdded BirthdayOutcome = iota
	BirthdayAlreadySet
	BirthdayBadFormat
	BirthdayInvalidDate
)

func (o BirthdayOutcome) String() string {
	switch o {
	case BirthdayAdded:
		return "added"
	case BirthdayAlreadySet:
		return "already-set"
	case BirthdayBadFormat:
		return "bad-format"
	case BirthdayInvalidDate:
		return "invalid-date"
	default:
		return fmt.Sprintf("BirthdayOutcome(%d)", int(o))
	}
}

// Record is one contact: a name, its phones in insertion order, and an optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday Birthday
	hasBday  bool
}

// NewRecord creates a Record with the given phones and no birthday.
func NewRecord(name Name, phones ...Phone) *Record {
	r := &Record{name: name}
	r.phones = append(r.phones, phones...)
	return r
}

// Name returns the contact name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone list.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) { return r.birthday, r.hasBday }

// AddPhone appends p. Duplicates are kept.
func (r *Record) AddPhone(p Phone) {
	r.phones = append(r.phones, p)
}

// EditPhone replaces the first phone equal to from with to.
func (r *Record) EditPhone(from, to Phone) EditOutcome {
	for i := range r.phones {
		if r.phones[i].value == from.value {
			r.phones[i] = to
			return PhoneChanged
		}
	}
	return PhoneNotFound
}

// AddBirthday parses text and sets it as the birthday unless one is already set.
// Format and calendar checks run first, so malformed text is reported as such
// even when a birthday exists.
func (r *Record) AddBirthday(text string) BirthdayOutcome {
	b, err := ParseBirthday(text)
	switch {
	case errors.Is(err, ErrBirthdayFormat):
		return BirthdayBadFormat
	case err != nil:
		return BirthdayInvalidDate
	}
	if r.hasBday {
		return BirthdayAlreadySet
	}
	r.birthday = b
	r.hasBday = true
	return BirthdayAdded
}

// PhoneList renders the phones comma-separated.
func (r *Record) PhoneList() string {
	vals := make([]string, len(r.phones))
	for i, p := range r.phones {
		vals[i] = p.value
	}
	return strings.Join(vals, ", ")
}

// BirthdayText renders the birthday as DD.MM.YYYY, or "None" when unset.
func (r *Record) BirthdayText() string {
	if !r.hasBday {
		return "None"
	}
	return r.birthday.String()
}

func (r *Record) String() string {
	return fmt.Sprintf("Contact name: %s; phones: %s; birthday: %s", r.name, r.PhoneList(), r.BirthdayText())
}

// EditMessage renders the user-facing text for an EditPhone outcome.
func (r *Record) EditMessage(o EditOutcome, from Phone) string {
	if o == PhoneChanged {
		return "Phone changed!"
	}
	return fmt.Sprintf("The record for %s does not contain phone %s", r.name, from)
}

// BirthdayMessage renders the user-facing text for an AddBirthday outcome.
func (r *Record) BirthdayMessage(o BirthdayOutcome) string {
	switch o {
	case BirthdayAdded:
		return "Birthday added!"
	case BirthdayAlreadySet:
		return fmt.Sprintf("Cannot add! Birthday for %s is already specified!", r.name)
	case BirthdayBadFormat:
		return "Enter birthday as DD.MM.YYYY!"
	default:
		return "Enter a valid date!"
	}
}
