package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/repository"
)

// userRow is the wire shape of one users row. The writer always emits the
// flattened assessment columns; the reader additionally tolerates an older
// nested assessment object, normalizing both to the same model.User.
type userRow struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	WhatsApp         string    `json:"whatsapp"`
	RegistrationDate time.Time `json:"registrationDate"`
	Progress         []int     `json:"progress"`

	Assessment *model.AssessmentData `json:"assessment,omitempty"`

	AssessmentAge              *int     `json:"assessment_age,omitempty"`
	AssessmentHeight           *float64 `json:"assessment_height,omitempty"`
	AssessmentWeight           *float64 `json:"assessment_weight,omitempty"`
	AssessmentActivityLevel    *string  `json:"assessment_activity_level,omitempty"`
	AssessmentGoal             *string  `json:"assessment_goal,omitempty"`
	AssessmentSleepQuality     *int     `json:"assessment_sleep_quality,omitempty"`
	AssessmentFoodQuality      *int     `json:"assessment_food_quality,omitempty"`
	AssessmentTrainingLocation *string  `json:"assessment_training_location,omitempty"`
	AssessmentBMI              *float64 `json:"assessment_imc,omitempty"`
	AssessmentIdealWeight      *string  `json:"assessment_ideal_weight,omitempty"`
}

func rowFromUser(u *model.User) userRow {
	row := userRow{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		WhatsApp:         u.WhatsApp,
		RegistrationDate: u.RegistrationDate,
		Progress:         u.Progress,
	}
	if row.Progress == nil {
		row.Progress = []int{}
	}
	if a := u.Assessment; a != nil {
		row.AssessmentAge = &a.Age
		row.AssessmentHeight = &a.Height
		row.AssessmentWeight = &a.Weight
		row.AssessmentActivityLevel = &a.ActivityLevel
		row.AssessmentGoal = &a.Goal
		row.AssessmentSleepQuality = &a.SleepQuality
		row.AssessmentFoodQuality = &a.FoodQuality
		row.AssessmentTrainingLocation = &a.TrainingLocation
		row.AssessmentBMI = &a.BMI
		row.AssessmentIdealWeight = &a.IdealWeight
	}
	return row
}

func (r *userRow) toUser() model.User {
	u := model.User{
		ID:               r.ID,
		Name:             r.Name,
		Email:            r.Email,
		WhatsApp:         r.WhatsApp,
		RegistrationDate: r.RegistrationDate,
		Progress:         r.Progress,
	}
	if u.Progress == nil {
		u.Progress = []int{}
	}
	switch {
	case r.Assessment != nil:
		a := *r.Assessment
		u.Assessment = &a
	case r.AssessmentAge != nil:
		u.Assessment = &model.AssessmentData{
			Age:              *r.AssessmentAge,
			Height:           derefF(r.AssessmentHeight),
			Weight:           derefF(r.AssessmentWeight),
			ActivityLevel:    derefS(r.AssessmentActivityLevel),
			Goal:             derefS(r.AssessmentGoal),
			SleepQuality:     derefI(r.AssessmentSleepQuality),
			FoodQuality:      derefI(r.AssessmentFoodQuality),
			TrainingLocation: derefS(r.AssessmentTrainingLocation),
			BMI:              derefF(r.AssessmentBMI),
			IdealWeight:      derefS(r.AssessmentIdealWeight),
		}
	}
	return u
}

func derefF(f *float64) float64 {
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

// UserRepo implements repository.UserRecords over the row API.
type UserRepo struct{ c *Client }

var _ repository.UserRecords = (*UserRepo)(nil)

// NewUserRepo constructs a user records repository.
func NewUserRepo(c *Client) *UserRepo { return &UserRepo{c: c} }

// ListAll returns the full roster ordered by registration date.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	data, err := r.c.request(ctx, "GET", "users", "select=*&order=registrationDate.asc", nil, "")
	if err != nil {
		return nil, err
	}
	var rows []userRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal users: %w", err)
	}
	out := make([]model.User, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toUser())
	}
	return out, nil
}

// GetByEmail performs a point lookup on the unique email key.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	q := "email=eq." + url.QueryEscape(email) + "&limit=1"
	data, err := r.c.request(ctx, "GET", "users", q, nil, "")
	if err != nil {
		return nil, err
	}
	var rows []userRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal users: %w", err)
	}
	if len(rows) == 0 {
		return nil, errs.ErrNotFound
	}
	u := rows[0].toUser()
	return &u, nil
}

// Upsert inserts or overwrites the row keyed by email.
func (r *UserRepo) Upsert(ctx context.Context, u *model.User) error {
	row := rowFromUser(u)
	_, err := r.c.request(ctx, "POST", "users", "on_conflict=email",
		[]userRow{row}, "resolution=merge-duplicates,return=minimal")
	return err
}

// settingsRow is the wire shape of the single settings row.
type settingsRow struct {
	ID   int             `json:"id"`
	Data json.RawMessage `json:"data"`
}

// SettingsRepo implements repository.SettingsRecords over the row API.
type SettingsRepo struct{ c *Client }

var _ repository.SettingsRecords = (*SettingsRepo)(nil)

// NewSettingsRepo constructs a settings records repository.
func NewSettingsRepo(c *Client) *SettingsRepo { return &SettingsRepo{c: c} }

// Fetch returns the raw stored settings value.
func (r *SettingsRepo) Fetch(ctx context.Context) ([]byte, error) {
	q := fmt.Sprintf("id=eq.%d&limit=1", repository.SettingsRowID)
	data, err := r.c.request(ctx, "GET", "settings", q, nil, "")
	if err != nil {
		return nil, err
	}
	var rows []settingsRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	if len(rows) == 0 {
		return nil, errs.ErrNotFound
	}
	return rows[0].Data, nil
}

// Upsert overwrites the settings row.
func (r *SettingsRepo) Upsert(ctx context.Context, s *model.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	row := settingsRow{ID: repository.SettingsRowID, Data: data}
	_, err = r.c.request(ctx, "POST", "settings", "on_conflict=id",
		[]settingsRow{row}, "resolution=merge-duplicates,return=minimal")
	return err
}
