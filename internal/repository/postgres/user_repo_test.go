package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

var userCols = []string{
	"id", "name", "email", "whatsapp", "registration_date", "progress",
	"assessment_age", "assessment_height", "assessment_weight", "assessment_activity_level",
	"assessment_goal", "assessment_sleep_quality", "assessment_food_quality",
	"assessment_training_location", "assessment_imc", "assessment_ideal_weight",
}

func sampleAssessment() *model.AssessmentData {
	return &model.AssessmentData{
		Age:              34,
		Height:           165,
		Weight:           72,
		ActivityLevel:    model.ActivitySedentary,
		Goal:             model.GoalLoseWeight,
		SleepQuality:     3,
		FoodQuality:      2,
		TrainingLocation: model.LocationHome,
		BMI:              26.4,
		IdealWeight:      "50.4kg - 67.8kg",
	}
}

func assessmentRowValues(a *model.AssessmentData) []any {
	if a == nil {
		return []any{nil, nil, nil, nil, nil, nil, nil, nil, nil, nil}
	}
	return []any{
		&a.Age, &a.Height, &a.Weight, &a.ActivityLevel, &a.Goal,
		&a.SleepQuality, &a.FoodQuality, &a.TrainingLocation, &a.BMI, &a.IdealWeight,
	}
}

func TestUserRepo_ListAll(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()

	id1 := uuid.Must(uuid.NewV4())
	id2 := uuid.Must(uuid.NewV4())
	reg := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	a := sampleAssessment()

	rows := pgxmock.NewRows(userCols).
		AddRow(append([]any{id1, "Maria", "maria@example.com", "+5511999999999", reg, []int64{1, 2}}, assessmentRowValues(a)...)...).
		AddRow(append([]any{id2, "Carla", "carla@example.com", "+5511888888888", reg.Add(time.Hour), []int64{}}, assessmentRowValues(nil)...)...)

	mock.ExpectQuery(`SELECT .* FROM users ORDER BY registration_date`).WillReturnRows(rows)

	users, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	require.Equal(t, "maria@example.com", users[0].Email)
	require.Equal(t, []int{1, 2}, users[0].Progress)
	require.NotNil(t, users[0].Assessment)
	require.Equal(t, *a, *users[0].Assessment)

	require.Nil(t, users[1].Assessment)
	require.Empty(t, users[1].Progress)
}

func TestUserRepo_ListAll_RemoteUnavailable(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	mock.ExpectQuery(`SELECT .* FROM users ORDER BY registration_date`).
		WillReturnError(errors.New("connection refused"))

	_, err := r.ListAll(context.Background())
	require.ErrorIs(t, err, errs.ErrRemoteUnavailable)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()

	id := uuid.Must(uuid.NewV4())
	reg := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM users WHERE email=\$1`).
		WithArgs("maria@example.com").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(append([]any{id, "Maria", "maria@example.com", "+5511999999999", reg, []int64{1}}, assessmentRowValues(nil)...)...))

	u, err := r.GetByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	require.Equal(t, "maria@example.com", u.Email)
	require.Equal(t, id, u.ID)

	mock.ExpectQuery(`SELECT .* FROM users WHERE email=\$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err = r.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_Upsert(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()

	u := &model.User{
		ID:               uuid.Must(uuid.NewV4()),
		Name:             "Maria",
		Email:            "maria@example.com",
		WhatsApp:         "+5511999999999",
		RegistrationDate: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Progress:         []int{1, 2},
		Assessment:       sampleAssessment(),
	}

	// Insert and overwrite go through the same statement; the upsert is
	// idempotent under retry.
	for i := 0; i < 2; i++ {
		mock.ExpectExec(`INSERT INTO users .* ON CONFLICT \(email\) DO UPDATE SET`).
			WithArgs(
				u.ID, u.Name, u.Email, u.WhatsApp, u.RegistrationDate, []int64{1, 2},
				&u.Assessment.Age, &u.Assessment.Height, &u.Assessment.Weight,
				&u.Assessment.ActivityLevel, &u.Assessment.Goal,
				&u.Assessment.SleepQuality, &u.Assessment.FoodQuality,
				&u.Assessment.TrainingLocation, &u.Assessment.BMI, &u.Assessment.IdealWeight,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		require.NoError(t, r.Upsert(ctx, u))
	}

	mock.ExpectExec(`INSERT INTO users .* ON CONFLICT \(email\) DO UPDATE SET`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(errors.New("connection refused"))
	require.ErrorIs(t, r.Upsert(ctx, u), errs.ErrRemoteUnavailable)
}

func TestUserRepo_Upsert_UniqueViolationOnID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	u := &model.User{
		ID:               uuid.Must(uuid.NewV4()),
		Name:             "Maria",
		Email:            "maria@example.com",
		WhatsApp:         "+5511999999999",
		RegistrationDate: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec(`INSERT INTO users .* ON CONFLICT \(email\) DO UPDATE SET`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})

	require.ErrorIs(t, r.Upsert(context.Background(), u), errs.ErrAlreadyExists)
}
