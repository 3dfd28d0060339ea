// Package contact holds the value types and the Record aggregate of an address book entry.
package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the smart constructors.
var (
	ErrEmptyName      = errors.New("contact: name is required")
	ErrInvalidPhone   = errors.New("contact: phone must be 10 digits")
	ErrBirthdayFormat = errors.New("contact: birthday must be DD.MM.YYYY")
	ErrInvalidDate    = errors.New("contact: birthday is not a valid date")
)

// PhoneLength is the exact number of digits a phone number carries.
const PhoneLength = 10

// Field is a named scalar value holder.
type Field struct {
	value string
}

// Value returns the held string.
func (f Field) Value() string { return f.value }

func (f Field) String() string { return f.value }

// Name identifies a contact and keys it within an address book.
type Name struct {
	Field
}

// NewName validates and creates a Name.
func NewName(s string) (Name, error) {
	if strings.TrimSpace(s) == "" {
		return Name{}, ErrEmptyName
	}
	return Name{Field{value: s}}, nil
}

// Phone is a 10-digit phone number.
type Phone struct {
	Field
}

// NewPhone validates and creates a Phone.
func NewPhone(s string) (Phone, error) {
	if !ValidPhone(s) {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhone, s)
	}
	return Phone{Field{value: s}}, nil
}

// ValidPhone reports whether s is exactly PhoneLength ASCII digits.
func ValidPhone(s string) bool {
	if len(s) != PhoneLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
