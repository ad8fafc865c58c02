package repository

import (
	"context"

	"github.com/fitconsult/fitfunnel/internal/model"
)

// SettingsRowID keys the single settings record system-wide.
const SettingsRowID = 1

// SettingsRecords provides access to the remote settings row.
type SettingsRecords interface {
	// Fetch returns the raw stored settings value, or errs.ErrNotFound
	// when the row has never been written.
	Fetch(ctx context.Context) ([]byte, error)
	// Upsert overwrites the settings row.
	Upsert(ctx context.Context, s *model.Settings) error
}
