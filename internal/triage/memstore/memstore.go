// Package memstore provides an in-memory implementation of triage.Store.
package memstore

import (
	"context"
	"sync"

	"github.com/linnemanlabs/docket/internal/triage"
)

// Store holds cases in memory. Suitable for dev/testing and demo runs.
type Store struct {
	mu    sync.RWMutex
	cases map[string]*triage.Case // case ID -> case
	seen  map[string]string       // complaint fingerprint -> case ID (dedup)
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{
		cases: make(map[string]*triage.Case),
		seen:  make(map[string]string),
	}
}

// Get retrieves a case by its ID. Returns a copy.
func (s *Store) Get(_ context.Context, id string) (*triage.Case, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[id]
	if !ok {
		return nil, false, nil
	}
	cp := *c
	return &cp, true, nil
}

// GetByFingerprint retrieves a case by complaint fingerprint, for
// deduplication. Returns a copy.
func (s *Store) GetByFingerprint(_ context.Context, fp string) (*triage.Case, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.seen[fp]
	if !ok {
		return nil, false, nil
	}
	c := s.cases[id]
	cp := *c
	return &cp, true, nil
}

// Put stores a copy of the case.
func (s *Store) Put(_ context.Context, c *triage.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.cases[c.ID] = &cp
	s.seen[c.Fingerprint] = c.ID
	return nil
}

// List returns copies of every stored case in unspecified order.
func (s *Store) List(_ context.Context) ([]*triage.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*triage.Case, 0, len(s.cases))
	for _, c := range s.cases {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

// Clear removes every case.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases = make(map[string]*triage.Case)
	s.seen = make(map[string]string)
	return nil
}
