package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/repository"
)

// SettingsRepo implements repository.SettingsRecords using PostgreSQL.
// The entire settings tree lives in one jsonb column of a single fixed row.
type SettingsRepo struct{ db *DB }

var _ repository.SettingsRecords = (*SettingsRepo)(nil)

// NewSettingsRepo constructs a settings records repository.
func NewSettingsRepo(db *DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Fetch returns the raw stored settings value.
func (r *SettingsRepo) Fetch(ctx context.Context) ([]byte, error) {
	const q = `SELECT data FROM settings WHERE id=$1`
	var data []byte
	if err := r.db.Pool.QueryRow(ctx, q, repository.SettingsRowID).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, remoteErr("fetch settings", err)
	}
	return data, nil
}

// Upsert overwrites the settings row.
func (r *SettingsRepo) Upsert(ctx context.Context, s *model.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	const q = `
INSERT INTO settings (id, data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data, updated_at=now()`
	if _, err := r.db.Pool.Exec(ctx, q, repository.SettingsRowID, data); err != nil {
		return remoteErr("upsert settings", err)
	}
	return nil
}
