// Package service defines the catalog's core record type. It is intentionally
// storage-agnostic and shared across the repository and HTTP layers.
package service

import "time"

// Record is a single persisted catalog entry. The identifier is assigned by
// the store on creation and never changes; records carry no update or delete
// path and are effectively append-only.
type Record struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
