package memory

import (
	"context"
	"sync"
	"time"

	"skypolls/contexts/audit/audit-trail/domain/entities"

	"github.com/google/uuid"
)

// Store is the in-memory audit log used by tests and local wiring. Entries
// are kept in append order and never mutated through the repository surface.
type Store struct {
	mu      sync.RWMutex
	entries []entities.Entry
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, entry entities.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	return nil
}

func (s *Store) ListEntries(_ context.Context) ([]entities.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Entry, len(s.entries))
	copy(items, s.entries)
	return items, nil
}

// Tamper mutates a stored entry in place, bypassing the append-only port.
// It exists so verification tests can simulate out-of-band edits.
func (s *Store) Tamper(entryID string, mutate func(*entities.Entry)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == entryID {
			mutate(&s.entries[i])
			return true
		}
	}
	return false
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
