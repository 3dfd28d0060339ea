package book

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// withBirthdays builds a book whose clock reads the given date and adds one
// record per name/birthday pair, in order.
func withBirthdays(t *testing.T, now func() time.Time, opts []Option, pairs ...string) *AddressBook {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("withBirthdays needs name/birthday pairs")
	}
	b := New(append([]Option{WithClock(now)}, opts...)...)
	for i := 0; i < len(pairs); i += 2 {
		r := record(t, pairs[i], "0123456789")
		if pairs[i+1] != "" {
			r.AddBirthday(pairs[i+1])
		}
		b.AddRecord(r)
	}
	return b
}

func TestBirthdaysPerWeek_OffsetFiveLandsOnMonday(t *testing.T) {
	// Given today is Wednesday 05.06.2024 and a birthday on 10 June
	b := withBirthdays(t, fixedClock(2024, time.June, 5), nil, "Kim", "10.06.1987")

	// When the weekly report is built
	got := b.BirthdaysPerWeek()

	// Then Kim is listed on Monday 10 June
	if got != "Monday: Kim\n" {
		t.Errorf("BirthdaysPerWeek() = %q, want %q", got, "Monday: Kim\n")
	}
}

func TestBirthdaysPerWeek_WindowAndWeekendRebucket(t *testing.T) {
	// Given today is Wednesday 05.06.2024
	b := withBirthdays(t, fixedClock(2024, time.June, 5), nil,
		"Sat", "08.06.1990",
		"Mon", "10.06.1991",
		"Sun", "09.06.1992",
		"Thu", "06.06.1993",
		"Today", "05.06.1994",
		"Week", "12.06.1995",
		"Far", "13.06.1996",
		"Past", "01.06.1997",
		"NoBday", "",
	)

	// When the weekly report is built
	got := b.BirthdaysPerWeek()

	// Then weekend birthdays move to Monday, today and day 8 are excluded
	want := "Monday: Sat, Mon, Sun\n" +
		"Wednesday: Week\n" +
		"Thursday: Thu\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BirthdaysPerWeek() mismatch (-want +got):\n%s", diff)
	}
}

func TestBirthdaysPerWeek_Nobody(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
	}{
		{name: "empty book"},
		{name: "no birthdays set", pairs: []string{"Ann", ""}},
		{name: "only today", pairs: []string{"Ann", "05.06.2000"}},
		{name: "outside window", pairs: []string{"Ann", "20.06.2000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := withBirthdays(t, fixedClock(2024, time.June, 5), nil, tt.pairs...)

			if got := b.BirthdaysPerWeek(); got != NobodyToGreet {
				t.Errorf("BirthdaysPerWeek() = %q, want %q", got, NobodyToGreet)
			}
		})
	}
}

func TestBirthdaysPerWeek_DecemberNotRolledIntoNextYear(t *testing.T) {
	// Given today is 2 January and a birthday on 30 December
	b := withBirthdays(t, fixedClock(2025, time.January, 2), nil, "Nick", "30.12.1980")

	// Then it does not appear: this year's occurrence is 362 days away
	if got := b.BirthdaysPerWeek(); got != NobodyToGreet {
		t.Errorf("BirthdaysPerWeek() = %q, want %q", got, NobodyToGreet)
	}
}

func TestBirthdaysPerWeek_LeapDayInCommonYear(t *testing.T) {
	// Given today is Monday 27.02.2023 and a 29 February birthday
	b := withBirthdays(t, fixedClock(2023, time.February, 27), nil, "Leap", "29.02.2000")

	// Then the birthday is observed on Wednesday 1 March
	if got := b.BirthdaysPerWeek(); got != "Wednesday: Leap\n" {
		t.Errorf("BirthdaysPerWeek() = %q, want %q", got, "Wednesday: Leap\n")
	}
}

func TestBirthdaysPerWeek_CustomWindow(t *testing.T) {
	opts := []Option{WithWindowDays(3)}
	b := withBirthdays(t, fixedClock(2024, time.June, 5), opts,
		"Near", "07.06.1990",
		"Far", "10.06.1990",
	)

	if got := b.BirthdaysPerWeek(); got != "Friday: Near\n" {
		t.Errorf("BirthdaysPerWeek() = %q, want %q", got, "Friday: Near\n")
	}
}

func TestBirthdaysPerWeek_LateEveningInOtherZone(t *testing.T) {
	// Given a clock at 23:30 on 05.06.2024 in a zone ahead of UTC
	zone := time.FixedZone("UTC+5", 5*60*60)
	now := func() time.Time { return time.Date(2024, time.June, 5, 23, 30, 0, 0, zone) }
	b := withBirthdays(t, now, nil, "Tomorrow", "06.06.1999")

	// Then the local calendar date is used and tomorrow is offset 1
	if got := b.BirthdaysPerWeek(); got != "Thursday: Tomorrow\n" {
		t.Errorf("BirthdaysPerWeek() = %q, want %q", got, "Thursday: Tomorrow\n")
	}
}

func TestUpcomingBirthdays_Groups(t *testing.T) {
	b := withBirthdays(t, fixedClock(2024, time.June, 5), nil,
		"A", "08.06.1990",
		"B", "07.06.1990",
	)

	got := b.UpcomingBirthdays()

	want := map[time.Weekday][]string{
		time.Monday: {"A"},
		time.Friday: {"B"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UpcomingBirthdays() mismatch (-want +got):\n%s", diff)
	}
}

func TestWithWindowDays_IgnoresOutOfRange(t *testing.T) {
	for _, days := range []int{0, -1, DefaultWindowDays + 1, 14} {
		b := New(WithWindowDays(days))
		if b.window != DefaultWindowDays {
			t.Errorf("WithWindowDays(%d): window = %d, want %d", days, b.window, DefaultWindowDays)
		}
	}
}
