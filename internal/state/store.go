// Package state persists an address book as a JSON snapshot file.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smileynet/addrbook/internal/book"
	"github.com/smileynet/addrbook/internal/contact"
)

var (
	// ErrInvalidPath indicates an empty snapshot path.
	ErrInvalidPath = errors.New("state: invalid snapshot path")
	// ErrCorrupt indicates a snapshot entry that fails contact validation.
	ErrCorrupt = errors.New("state: corrupt snapshot")
)

// Snapshot is the on-disk form of an address book.
type Snapshot struct {
	Contacts []Entry `json:"contacts"`
}

// Entry is the on-disk form of one record.
type Entry struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
}

// FileStore saves and loads a single snapshot file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for the snapshot at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string { return s.path }

// Save writes every record of b, in insertion order.
func (s *FileStore) Save(b *book.AddressBook) error {
	if s.path == "" {
		return ErrInvalidPath
	}

	snap := Snapshot{Contacts: make([]Entry, 0, b.Len())}
	for _, r := range b.Records() {
		e := Entry{Name: r.Name().Value(), Phones: make([]string, 0)}
		for _, p := range r.Phones() {
			e.Phones = append(e.Phones, p.Value())
		}
		if bday, ok := r.Birthday(); ok {
			e.Birthday = bday.String()
		}
		snap.Contacts = append(snap.Contacts, e)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("state: creating directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("state: marshaling: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("state: writing %s: %w", s.path, err)
	}
	return nil
}

// Load adds the snapshot's records to b.
// Returns (true, nil) if the file was read, (false, nil) if it does not exist.
// Every entry is re-validated; the first invalid entry aborts with ErrCorrupt
// and leaves b untouched.
func (s *FileStore) Load(b *book.AddressBook) (bool, error) {
	if s.path == "" {
		return false, ErrInvalidPath
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("state: reading %s: %w", s.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return false, fmt.Errorf("state: parsing %s: %w", s.path, err)
	}

	records := make([]*contact.Record, 0, len(snap.Contacts))
	seen := make(map[string]bool, len(snap.Contacts))
	for i, e := range snap.Contacts {
		r, err := e.record()
		if err != nil {
			return false, fmt.Errorf("%w: %s entry %d: %w", ErrCorrupt, s.path, i, err)
		}
		if seen[e.Name] {
			return false, fmt.Errorf("%w: %s entry %d: duplicate name %q", ErrCorrupt, s.path, i, e.Name)
		}
		seen[e.Name] = true
		records = append(records, r)
	}
	for _, r := range records {
		b.AddRecord(r)
	}
	return true, nil
}

func (e Entry) record() (*contact.Record, error) {
	name, err := contact.NewName(e.Name)
	if err != nil {
		return nil, err
	}
	phones := make([]contact.Phone, 0, len(e.Phones))
	for _, v := range e.Phones {
		p, err := contact.NewPhone(v)
		if err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	r := contact.NewRecord(name, phones...)
	if e.Birthday != "" {
		if _, err := contact.ParseBirthday(e.Birthday); err != nil {
			return nil, err
		}
		r.AddBirthday(e.Birthday)
	}
	return r, nil
}
