package storage

import (
	"context"
	"errors"

	"github.com/appydave/appydaveapp/internal/app/domain/service"
)

// ErrNotFound is returned when a record does not exist in the store.
var ErrNotFound = errors.New("record not found")

// ServiceStore persists catalog records. A record returned by ListServices
// must have been durably persisted before it becomes observable.
type ServiceStore interface {
	CreateService(ctx context.Context, rec service.Record) (service.Record, error)
	GetService(ctx context.Context, id int64) (service.Record, error)
	ListServices(ctx context.Context) ([]service.Record, error)
	CountServices(ctx context.Context) (int64, error)
}
