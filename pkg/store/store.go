// Package store holds the current attendance session: the records from the
// most recent import. The session is process-local by design — a new upload
// replaces it wholesale and nothing is persisted.
package store

import (
	"sync"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/models"
)

// RecordStore is a concurrency-safe holder for the imported records.
type RecordStore struct {
	mu      sync.RWMutex
	records []models.StudentRecord
}

// NewRecordStore returns an empty session.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Replace swaps in a freshly imported session.
func (s *RecordStore) Replace(records []models.StudentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}

// Snapshot returns a copy of the current session, safe to aggregate over
// while a concurrent import replaces the original.
func (s *RecordStore) Snapshot() []models.StudentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.StudentRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the current session size.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
