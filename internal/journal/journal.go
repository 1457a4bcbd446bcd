// Package journal stores the refactor recovery journals as JSON files in the
// notes directory.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aidanlsb/axon/internal/atomicfile"
	"github.com/aidanlsb/axon/internal/refactor"
)

// File names, relative to the notes directory.
const (
	RollbackFile = ".axon-rollback.json"
	RetryFile    = ".axon-retry.json"
	LockFile     = ".axon.lock"
)

// Record is the on-disk journal document.
type Record struct {
	ID        string                `json:"id,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	Renames   []refactor.RenamePlan `json:"renames"`
}

// Store implements refactor.JournalStore on top of files in Dir.
type Store struct {
	Dir string

	// Now stamps new records; nil uses time.Now.
	Now func() time.Time
}

var _ refactor.JournalStore = (*Store)(nil)

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the file backing a journal kind.
func (s *Store) Path(kind refactor.JournalKind) string {
	if kind == refactor.JournalRetry {
		return filepath.Join(s.Dir, RetryFile)
	}
	return filepath.Join(s.Dir, RollbackFile)
}

func (s *Store) lockPath() string {
	return filepath.Join(s.Dir, LockFile)
}

// Read returns the full record for kind.
func (s *Store) Read(kind refactor.JournalKind) (*Record, error) {
	path := s.Path(kind)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), refactor.ErrJournalNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return rec, nil
}

// diskRecord tells missing fields apart from empty ones.
type diskRecord struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Renames   *[]diskPlan `json:"renames"`
}

type diskPlan struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

func decodeRecord(data []byte) (*Record, error) {
	var raw diskRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Renames == nil {
		return nil, errors.New(`missing "renames"`)
	}

	rec := &Record{ID: raw.ID, CreatedAt: raw.CreatedAt, Renames: make([]refactor.RenamePlan, 0, len(*raw.Renames))}
	for i, p := range *raw.Renames {
		if p.From == nil || p.To == nil {
			return nil, fmt.Errorf(`rename %d: missing "from" or "to"`, i+1)
		}
		for _, name := range []string{*p.From, *p.To} {
			if err := checkName(name); err != nil {
				return nil, fmt.Errorf("rename %d: %w", i+1, err)
			}
		}
		rec.Renames = append(rec.Renames, refactor.RenamePlan{From: *p.From, To: *p.To})
	}
	return rec, nil
}

// checkName accepts only plain file names inside the notes directory.
func checkName(name string) error {
	switch {
	case name == "":
		return errors.New("empty file name")
	case name == "." || name == ".." || strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%q is not a file name in the notes directory", name)
	}
	return nil
}

// Load implements refactor.JournalStore.
func (s *Store) Load(kind refactor.JournalKind) ([]refactor.RenamePlan, error) {
	rec, err := s.Read(kind)
	if err != nil {
		return nil, err
	}
	return rec.Renames, nil
}

// Save implements refactor.JournalStore. Each save gets a fresh batch id.
func (s *Store) Save(kind refactor.JournalKind, plans []refactor.RenamePlan) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	rec := Record{
		ID:        uuid.NewString(),
		CreatedAt: now().UTC(),
		Renames:   plans,
	}
	if rec.Renames == nil {
		rec.Renames = []refactor.RenamePlan{}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s journal: %w", kind, err)
	}
	data = append(data, '\n')
	return atomicfile.WriteFileLocked(s.lockPath(), s.Path(kind), data, 0o644)
}

// Clear implements refactor.JournalStore. Clearing a missing journal succeeds.
func (s *Store) Clear(kind refactor.JournalKind) error {
	return atomicfile.RemoveLocked(s.lockPath(), s.Path(kind))
}
