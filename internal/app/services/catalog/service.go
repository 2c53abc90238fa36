// Package catalog manages the service records exposed by the public API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/appydave/appydaveapp/internal/app/domain/service"
	"github.com/appydave/appydaveapp/internal/app/storage"
	"github.com/appydave/appydaveapp/pkg/logger"
)

// ErrValidation marks a create attempt with missing required fields.
var ErrValidation = errors.New("validation failed")

// Service mediates reads and writes against the service store.
type Service struct {
	store storage.ServiceStore
	log   *logger.Logger
}

// New constructs a catalog service.
func New(store storage.ServiceStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("catalog")
	}
	return &Service{store: store, log: log}
}

// Create validates and persists a record, returning it with its assigned id.
func (s *Service) Create(ctx context.Context, name, description string) (service.Record, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return service.Record{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if description == "" {
		return service.Record{}, fmt.Errorf("%w: description is required", ErrValidation)
	}

	created, err := s.store.CreateService(ctx, service.Record{Name: name, Description: description})
	if err != nil {
		return service.Record{}, err
	}
	s.log.WithField("service_id", created.ID).
		WithField("name", created.Name).
		Info("service created")
	return created, nil
}

// Get returns a single record by id.
func (s *Service) Get(ctx context.Context, id int64) (service.Record, error) {
	return s.store.GetService(ctx, id)
}

// List returns all records in creation order.
func (s *Service) List(ctx context.Context) ([]service.Record, error) {
	return s.store.ListServices(ctx)
}

var seedRecords = []struct {
	name        string
	description string
}{
	{"API Service", "Provides API functionality"},
	{"Billing Service", "Handles billing"},
}

// Seed inserts the default records. It is a no-op when the store already
// holds data, so it is safe to run on every startup.
func (s *Service) Seed(ctx context.Context) error {
	count, err := s.store.CountServices(ctx)
	if err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	if count > 0 {
		s.log.WithField("count", count).Debug("store already populated; skipping seed")
		return nil
	}

	for _, seed := range seedRecords {
		if _, err := s.Create(ctx, seed.name, seed.description); err != nil {
			return fmt.Errorf("seed %q: %w", seed.name, err)
		}
	}
	s.log.WithField("count", len(seedRecords)).Info("seeded service records")
	return nil
}
