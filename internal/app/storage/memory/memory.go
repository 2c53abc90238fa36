// Package memory provides an in-memory implementation of the storage
// interfaces. It is safe for concurrent use and is primarily intended for
// tests and local development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/appydave/appydaveapp/internal/app/domain/service"
	"github.com/appydave/appydaveapp/internal/app/storage"
)

// Store keeps records in a map guarded by a read-write mutex. Identifiers are
// assigned from a monotonically increasing counter, mirroring the database
// sequence used by the Postgres store.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	services map[int64]service.Record
}

var _ storage.ServiceStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:   1,
		services: make(map[int64]service.Record),
	}
}

func (s *Store) nextIDLocked() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) CreateService(_ context.Context, rec service.Record) (service.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID != 0 {
		return service.Record{}, fmt.Errorf("service id is store-assigned, got %d", rec.ID)
	}
	rec.ID = s.nextIDLocked()

	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.services[rec.ID] = rec
	return rec, nil
}

func (s *Store) GetService(_ context.Context, id int64) (service.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.services[id]
	if !ok {
		return service.Record{}, fmt.Errorf("service %d: %w", id, storage.ErrNotFound)
	}
	return rec, nil
}

func (s *Store) ListServices(_ context.Context) ([]service.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]service.Record, 0, len(s.services))
	for _, rec := range s.services {
		result = append(result, rec)
	}
	// Creation order: ids are assigned monotonically.
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) CountServices(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.services)), nil
}
