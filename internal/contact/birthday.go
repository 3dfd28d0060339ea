package contact

import (
	"fmt"
	"regexp"
	"time"
)

// BirthdayLayout is the DD.MM.YYYY text form of a Birthday.
const BirthdayLayout = "02.01.2006"

var birthdayShape = regexp.MustCompile(`\b\d{2}\.\d{2}\.\d{4}`)

// Birthday is a calendar date without time of day.
type Birthday struct {
	year  int
	month time.Month
	day   int
}

// ParseBirthday validates and creates a Birthday from DD.MM.YYYY text.
// Text without a DD.MM.YYYY-shaped substring fails with ErrBirthdayFormat.
// Shaped text that is not exactly a real calendar date, or has year 0000,
// fails with ErrInvalidDate.
func ParseBirthday(text string) (Birthday, error) {
	if !birthdayShape.MatchString(text) {
		return Birthday{}, fmt.Errorf("%w: %q", ErrBirthdayFormat, text)
	}
	// time.Parse rejects day overflow (31.02) and trailing text.
	t, err := time.Parse(BirthdayLayout, text)
	if err != nil || t.Year() < 1 {
		return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	return Birthday{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// Year returns the birth year.
func (b Birthday) Year() int { return b.year }

// Month returns the birth month.
func (b Birthday) Month() time.Month { return b.month }

// Day returns the day of month.
func (b Birthday) Day() int { return b.day }

// In returns this birthday's month and day in the given year at midnight in loc.
// 29 February falls on 1 March in non-leap years.
func (b Birthday) In(year int, loc *time.Location) time.Time {
	return time.Date(year, b.month, b.day, 0, 0, 0, 0, loc)
}

func (b Birthday) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", b.day, int(b.month), b.year)
}
