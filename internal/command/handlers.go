package command

import (
	"fmt"

	"github.com/smileynet/addrbook/internal/book"
	"github.com/smileynet/addrbook/internal/contact"
)

func text(s string) (Reply, error) { return Reply{Text: s}, nil }

func (d *Dispatcher) hello(_ []string) (Reply, error) { return text(Greeting) }

func (d *Dispatcher) help(_ []string) (Reply, error) { return text(d.helpText) }

func (d *Dispatcher) quit(_ []string) (Reply, error) {
	return Reply{Text: Farewell, Quit: true}, nil
}

func (d *Dispatcher) add(args []string) (Reply, error) {
	name, err := contact.NewName(args[0])
	if err != nil {
		return Reply{}, fmt.Errorf("add: %w", err)
	}
	phone, err := contact.NewPhone(args[1])
	if err != nil {
		return Reply{}, fmt.Errorf("add: %w", err)
	}
	outcome := d.book.AddRecord(contact.NewRecord(name, phone))
	return text(book.AddMessage(outcome, name))
}

func (d *Dispatcher) change(args []string) (Reply, error) {
	from, err := contact.NewPhone(args[1])
	if err != nil {
		return Reply{}, fmt.Errorf("change: %w", err)
	}
	to, err := contact.NewPhone(args[2])
	if err != nil {
		return Reply{}, fmt.Errorf("change: %w", err)
	}
	r, err := d.book.Find(args[0])
	if err != nil {
		return Reply{}, fmt.Errorf("change: %w", err)
	}
	return text(r.EditMessage(r.EditPhone(from, to), from))
}

func (d *Dispatcher) phone(args []string) (Reply, error) {
	r, err := d.book.Find(args[0])
	if err != nil {
		return Reply{}, fmt.Errorf("phone: %w", err)
	}
	return text(r.PhoneList())
}

func (d *Dispatcher) all(_ []string) (Reply, error) { return text(d.book.String()) }

func (d *Dispatcher) addBirthday(args []string) (Reply, error) {
	r, err := d.book.Find(args[0])
	if err != nil {
		return Reply{}, fmt.Errorf("add-birthday: %w", err)
	}
	return text(r.BirthdayMessage(r.AddBirthday(args[1])))
}

func (d *Dispatcher) showBirthday(args []string) (Reply, error) {
	r, err := d.book.Find(args[0])
	if err != nil {
		return Reply{}, fmt.Errorf("show-birthday: %w", err)
	}
	return text(r.BirthdayText())
}

func (d *Dispatcher) birthdays(_ []string) (Reply, error) {
	return text(d.book.BirthdaysPerWeek())
}
