package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/smileynet/addrbook/internal/book"
	"github.com/smileynet/addrbook/internal/command"
)

func TestNewSession_NonTTYIsPlain(t *testing.T) {
	s := NewSession(SessionOptions{
		Handler: command.New(book.New()),
		Reader:  strings.NewReader(""),
		Writer:  &bytes.Buffer{},
	})
	if _, ok := s.(*PlainSession); !ok {
		t.Errorf("NewSession() = %T, want *PlainSession", s)
	}
}

func TestNewSession_ForcePlain(t *testing.T) {
	s := NewSession(SessionOptions{Handler: command.New(book.New()), ForcePlain: true})
	if _, ok := s.(*PlainSession); !ok {
		t.Errorf("NewSession(ForcePlain) = %T, want *PlainSession", s)
	}
}

func TestPlainSession_Transcript(t *testing.T) {
	// Given a scripted session
	in := strings.NewReader(strings.Join([]string{
		"hello",
		"add Bob 0123456789",
		"",
		"phone Bob",
		"exit",
		"hello",
	}, "\n"))
	var out bytes.Buffer
	s := NewPlainSession(command.New(book.New()), in, &out, "> ")

	// When it runs
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Then each reply follows its prompt and input after exit is ignored
	want := command.Welcome + "\n" +
		"> " + command.Greeting + "\n" +
		"> Contact added!\n" +
		"> " +
		"> 0123456789\n" +
		"> " + command.Farewell + "\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainSession_EOF(t *testing.T) {
	var out bytes.Buffer
	d := command.New(book.New())
	s := NewPlainSession(d, strings.NewReader("add Amy 1111111111\n"), &out, "> ")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if d.Book().Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Book().Len())
	}
	if !strings.HasSuffix(out.String(), "> \n") {
		t.Errorf("output should end with a newline after the last prompt, got %q", out.String())
	}
}

func TestPlainSession_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewPlainSession(command.New(book.New()), strings.NewReader("hello\n"), &bytes.Buffer{}, "> ").Run(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestPlainSession_CancelWhileReading(t *testing.T) {
	// Given a session whose input never produces a line
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	s := NewPlainSession(command.New(book.New()), pr, io.Discard, "> ")

	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	// When the context is cancelled
	cancel()

	// Then Run returns without waiting for input
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() still blocked on input after cancel")
	}
}

func TestPlainSession_LongLine(t *testing.T) {
	// Given a line longer than bufio.Scanner's default token size
	name := strings.Repeat("x", 100*1024)
	in := strings.NewReader("add " + name + " 0123456789\r\nexit\n")
	var out bytes.Buffer
	d := command.New(book.New())

	// When it runs
	if err := NewPlainSession(d, in, &out, "> ").Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Then the contact is added and the session continues to exit
	if _, err := d.Book().Find(name); err != nil {
		t.Errorf("Find() error = %v", err)
	}
	if !strings.HasSuffix(out.String(), command.Farewell+"\n") {
		t.Errorf("session should end with the farewell, got tail %q", out.String()[max(0, out.Len()-40):])
	}
}

func TestPlainSession_ReadError(t *testing.T) {
	errRead := errors.New("read failed")
	in := io.MultiReader(strings.NewReader("hello\n"), iotest.ErrReader(errRead))
	var out bytes.Buffer

	err := NewPlainSession(command.New(book.New()), in, &out, "> ").Run(context.Background())

	if !errors.Is(err, errRead) {
		t.Errorf("Run() error = %v, want %v", err, errRead)
	}
	if !strings.Contains(out.String(), command.Greeting) {
		t.Errorf("line before the error should be handled, got %q", out.String())
	}
}
