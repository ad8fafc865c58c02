package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/repository"
)

// UserRepo implements repository.UserRecords using PostgreSQL.
// Assessment fields are flattened into individually nullable columns.
type UserRepo struct{ db *DB }

var _ repository.UserRecords = (*UserRepo)(nil)

// NewUserRepo constructs a user records repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `
id, name, email, whatsapp, registration_date, progress,
assessment_age, assessment_height, assessment_weight, assessment_activity_level,
assessment_goal, assessment_sleep_quality, assessment_food_quality,
assessment_training_location, assessment_imc, assessment_ideal_weight`

// ListAll returns the full roster ordered by registration date.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	const q = `SELECT` + userColumns + `
FROM users ORDER BY registration_date`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, remoteErr("list users", err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, remoteErr("scan user", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, remoteErr("list users", err)
	}
	return out, nil
}

// GetByEmail performs a point lookup on the unique email key.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT` + userColumns + `
FROM users WHERE email=$1`
	u, err := scanUser(r.db.Pool.QueryRow(ctx, q, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, remoteErr("get user", err)
	}
	return u, nil
}

// Upsert inserts or overwrites the row keyed by email. A second upsert for
// the same email overwrites rather than duplicates.
func (r *UserRepo) Upsert(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (` + userColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
ON CONFLICT (email) DO UPDATE SET
  name=EXCLUDED.name,
  whatsapp=EXCLUDED.whatsapp,
  registration_date=EXCLUDED.registration_date,
  progress=EXCLUDED.progress,
  assessment_age=EXCLUDED.assessment_age,
  assessment_height=EXCLUDED.assessment_height,
  assessment_weight=EXCLUDED.assessment_weight,
  assessment_activity_level=EXCLUDED.assessment_activity_level,
  assessment_goal=EXCLUDED.assessment_goal,
  assessment_sleep_quality=EXCLUDED.assessment_sleep_quality,
  assessment_food_quality=EXCLUDED.assessment_food_quality,
  assessment_training_location=EXCLUDED.assessment_training_location,
  assessment_imc=EXCLUDED.assessment_imc,
  assessment_ideal_weight=EXCLUDED.assessment_ideal_weight`

	var (
		age, sleep, food                *int
		height, weight, bmi             *float64
		activity, goal, location, ideal *string
	)
	if a := u.Assessment; a != nil {
		age, sleep, food = &a.Age, &a.SleepQuality, &a.FoodQuality
		height, weight, bmi = &a.Height, &a.Weight, &a.BMI
		activity, goal, location, ideal = &a.ActivityLevel, &a.Goal, &a.TrainingLocation, &a.IdealWeight
	}
	_, err := r.db.Pool.Exec(ctx, q,
		u.ID, u.Name, u.Email, u.WhatsApp, u.RegistrationDate, progressToDB(u.Progress),
		age, height, weight, activity, goal, sleep, food, location, bmi, ideal,
	)
	if err != nil {
		// ON CONFLICT covers the email key; the id key can still collide.
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return remoteErr("upsert user", err)
	}
	return nil
}

// scanUser reads one row of userColumns and normalizes the flattened
// assessment columns back into a nested object.
func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u        model.User
		id       uuid.UUID
		progress []int64

		age, sleep, food                *int
		height, weight, bmi             *float64
		activity, goal, location, ideal *string
	)
	if err := row.Scan(
		&id, &u.Name, &u.Email, &u.WhatsApp, &u.RegistrationDate, &progress,
		&age, &height, &weight, &activity, &goal, &sleep, &food, &location, &bmi, &ideal,
	); err != nil {
		return nil, err
	}
	u.ID = id
	u.Progress = progressFromDB(progress)
	if age != nil {
		u.Assessment = &model.AssessmentData{
			Age:              *age,
			Height:           deref(height),
			Weight:           deref(weight),
			ActivityLevel:    derefS(activity),
			Goal:             derefS(goal),
			SleepQuality:     derefI(sleep),
			FoodQuality:      derefI(food),
			TrainingLocation: derefS(location),
			BMI:              deref(bmi),
			IdealWeight:      derefS(ideal),
		}
	}
	return &u, nil
}

func progressToDB(p []int) []int64 {
	out := make([]int64, len(p))
	for i, v := range p {
		out[i] = int64(v)
	}
	return out
}

func progressFromDB(p []int64) []int {
	out := make([]int, len(p))
	for i, v := range p {
		out[i] = int(v)
	}
	return out
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefI(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func derefS(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
