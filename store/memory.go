package store

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is the volatile tier: records live in process memory and do
// not survive restart. It is the store of last resort and the only tier
// used in sandboxed environments.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore returns an empty volatile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Create inserts a new record.
func (s *MemoryStore) Create(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; ok {
		return fmt.Errorf("%w: %s", ErrRecordExists, rec.ID)
	}
	s.records[rec.ID] = rec
	return nil
}

// Get returns the record with the given ID.
func (s *MemoryStore) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return rec, nil
}

// List returns all records ordered by creation time.
func (s *MemoryStore) List() ([]Record, error) {
	return s.list(func(Record) bool { return true }), nil
}

// ListRange returns records created in [from, to).
func (s *MemoryStore) ListRange(from, to time.Time) ([]Record, error) {
	return s.list(func(rec Record) bool {
		return !rec.CreatedAt.Before(from) && rec.CreatedAt.Before(to)
	}), nil
}

// ListValid returns finalized records that meet the validity floor.
func (s *MemoryStore) ListValid() ([]Record, error) {
	return s.list(func(rec Record) bool {
		return rec.Valid && !rec.InProgress()
	}), nil
}

// Active returns the in-progress record, if one exists.
func (s *MemoryStore) Active() (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.InProgress() {
			return rec, true, nil
		}
	}
	return Record{}, false, nil
}

// Update replaces the record with the same ID.
func (s *MemoryStore) Update(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, rec.ID)
	}
	s.records[rec.ID] = rec
	return nil
}

// Delete removes the record with the given ID.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	delete(s.records, id)
	return nil
}

// Close is a no-op for the volatile tier.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) list(keep func(Record) bool) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		if keep(rec) {
			results = append(results, rec)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].ID < results[j].ID
		}
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})
	return results
}
