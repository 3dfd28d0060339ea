package book

import (
	"strings"
	"time"
)

// NobodyToGreet is the report text when no birthday falls inside the window.
const NobodyToGreet = "Noone to greet in the next week!"

// reportOrder lists weekdays Monday first.
var reportOrder = [...]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// UpcomingBirthdays groups contact names by the weekday of their birthday
// this year, for birthdays 1 to window days after today. Weekend birthdays
// are grouped under Monday. Birthdays that already passed this year are not
// rolled into next year.
func (b *AddressBook) UpcomingBirthdays() map[time.Weekday][]string {
	now := b.now()
	today := dateOnly(now.Year(), now.Month(), now.Day())

	out := make(map[time.Weekday][]string)
	for _, r := range b.Records() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}
		occurrence := bday.In(today.Year(), time.UTC)
		offset := int(occurrence.Sub(today).Hours() / 24)
		if offset < 1 || offset > b.window {
			continue
		}
		day := occurrence.Weekday()
		if day == time.Saturday || day == time.Sunday {
			day = time.Monday
		}
		out[day] = append(out[day], r.Name().Value())
	}
	return out
}

// BirthdaysPerWeek renders UpcomingBirthdays as "Weekday: a, b" lines,
// Monday to Sunday, skipping empty days.
func (b *AddressBook) BirthdaysPerWeek() string {
	groups := b.UpcomingBirthdays()

	var sb strings.Builder
	for _, day := range reportOrder {
		names, ok := groups[day]
		if !ok {
			continue
		}
		sb.WriteString(day.String())
		sb.WriteString(": ")
		sb.WriteString(strings.Join(names, ", "))
		sb.WriteByte('\n')
	}
	if sb.Len() == 0 {
		return NobodyToGreet
	}
	return sb.String()
}

// dateOnly is midnight UTC of the given calendar date, so day offsets are
// never skewed by daylight saving transitions.
func dateOnly(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
