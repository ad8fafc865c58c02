// Package repository defines remote record store interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/fitconsult/fitfunnel/internal/model"
)

// UserRecords provides access to the remote users table. Operations are
// independently failable and never retried internally; retry policy is owned
// by the caller.
type UserRecords interface {
	// ListAll returns the full roster.
	ListAll(ctx context.Context) ([]model.User, error)
	// GetByEmail performs a point lookup on the unique key.
	// Returns errs.ErrNotFound when no row matches.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Upsert inserts or overwrites the row keyed by email (idempotent under retry).
	Upsert(ctx context.Context, u *model.User) error
}
