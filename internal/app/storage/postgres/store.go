// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/appydave/appydaveapp/internal/app/domain/service"
	"github.com/appydave/appydaveapp/internal/app/storage"
)

// Store implements storage.ServiceStore over a shared database handle.
type Store struct {
	db *sqlx.DB
}

var _ storage.ServiceStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateService(ctx context.Context, rec service.Record) (service.Record, error) {
	if rec.ID != 0 {
		return service.Record{}, fmt.Errorf("service id is store-assigned, got %d", rec.ID)
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO services (name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, rec.Name, rec.Description, rec.CreatedAt, rec.UpdatedAt).Scan(&rec.ID)
	if err != nil {
		return service.Record{}, fmt.Errorf("insert service: %w", err)
	}
	return rec, nil
}

func (s *Store) GetService(ctx context.Context, id int64) (service.Record, error) {
	var rec service.Record
	err := s.db.GetContext(ctx, &rec, `
		SELECT id, name, description, created_at, updated_at
		FROM services
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return service.Record{}, fmt.Errorf("service %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return service.Record{}, fmt.Errorf("select service: %w", err)
	}
	return rec, nil
}

func (s *Store) ListServices(ctx context.Context) ([]service.Record, error) {
	var result []service.Record
	err := s.db.SelectContext(ctx, &result, `
		SELECT id, name, description, created_at, updated_at
		FROM services
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return result, nil
}

func (s *Store) CountServices(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM services`); err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return count, nil
}
