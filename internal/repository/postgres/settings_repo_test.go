package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/repository"
)

func TestSettingsRepo_Fetch(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSettingsRepo(db)
	ctx := context.Background()

	stored := []byte(`{"freeAccessDays":14}`)
	mock.ExpectQuery(`SELECT data FROM settings WHERE id=\$1`).
		WithArgs(repository.SettingsRowID).
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(stored))

	data, err := r.Fetch(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"freeAccessDays":14}`, string(data))

	mock.ExpectQuery(`SELECT data FROM settings WHERE id=\$1`).
		WithArgs(repository.SettingsRowID).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Fetch(ctx)
	require.ErrorIs(t, err, errs.ErrNotFound)

	mock.ExpectQuery(`SELECT data FROM settings WHERE id=\$1`).
		WithArgs(repository.SettingsRowID).
		WillReturnError(errors.New("connection refused"))
	_, err = r.Fetch(ctx)
	require.ErrorIs(t, err, errs.ErrRemoteUnavailable)
}

func TestSettingsRepo_Upsert(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSettingsRepo(db)
	ctx := context.Background()

	s := &model.Settings{FreeAccessDays: 7, OfferCountdownHours: 24}
	data, err := json.Marshal(s)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO settings \(id, data, updated_at\) VALUES \(\$1, \$2, now\(\)\) ON CONFLICT \(id\) DO UPDATE SET`).
		WithArgs(repository.SettingsRowID, data).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Upsert(ctx, s))

	mock.ExpectExec(`INSERT INTO settings`).
		WithArgs(repository.SettingsRowID, data).
		WillReturnError(errors.New("connection refused"))
	require.ErrorIs(t, r.Upsert(ctx, s), errs.ErrRemoteUnavailable)
}
