package inmemory

import (
	"context"
	"errors"
	"sync"

	"github.com/strandhq/strand/pkg/record"
	"github.com/strandhq/strand/pkg/storage"
)

// Driver implements storage.Driver using an in-memory map.
type Driver struct {
	// mu is a read write sync mutex for locking the record map
	mu sync.RWMutex

	// records maps content-addressed ids to records
	records map[string]*record.Record

	// order holds ids in insertion order so List is stable
	order []string
}

// NewDriver creates a new in-memory storer.
func NewDriver() *Driver {
	return &Driver{
		records: make(map[string]*record.Record),
	}
}

// Put inserts a record. The existence check and the insert happen under one
// write lock, so two simultaneous puts of the same value yield exactly one
// success and one ConflictError.
func (s *Driver) Put(_ context.Context, rec *record.Record) error {
	if rec == nil {
		return errors.New("cannot store nil record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; ok {
		return storage.ConflictError{ID: rec.ID}
	}

	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return nil
}

// Get retrieves a record by its id.
func (s *Driver) Get(_ context.Context, id string) (*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, storage.NotFoundError{ID: id}
	}

	return rec, nil
}

// Has checks whether a record exists by its id.
func (s *Driver) Has(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[id]
	return ok, nil
}

// List returns all records in insertion order.
func (s *Driver) List(_ context.Context) ([]*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*record.Record, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.records[id])
	}

	return records, nil
}

// Delete removes a record by its id.
func (s *Driver) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return storage.NotFoundError{ID: id}
	}

	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

// Count returns the number of records in the in-memory store.
func (s *Driver) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Close is a no-op for the in-memory storer.
func (s *Driver) Close() error {
	return nil
}
