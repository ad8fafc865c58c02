package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/feedback"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/store"
)

// AssessmentInput is the intake form payload. Height is in centimeters,
// weight in kilograms.
type AssessmentInput struct {
	Age              int
	Height           float64
	Weight           float64
	ActivityLevel    string
	Goal             string
	SleepQuality     int
	FoodQuality      int
	TrainingLocation string
}

// Assessment computes the derived facts at submission time and requests the
// personalized coach message.
type Assessment struct {
	store *store.Store
	gen   *feedback.Generator
	log   *zap.Logger
}

// NewAssessment constructs the assessment service. gen may be nil, in which
// case every submission gets the fallback message.
func NewAssessment(st *store.Store, gen *feedback.Generator, log *zap.Logger) *Assessment {
	return &Assessment{store: st, gen: gen, log: log}
}

// Submit validates the intake answers, derives BMI and the ideal-weight range,
// records the assessment and returns the coach message. The message never
// fails: any generation problem substitutes the configured fallback.
func (s *Assessment) Submit(ctx context.Context, in AssessmentInput) (model.AssessmentData, string, error) {
	snap := s.store.Snapshot()
	if snap.User == nil {
		return model.AssessmentData{}, "", errs.ErrUnauthorized
	}
	if err := validateAssessment(in); err != nil {
		return model.AssessmentData{}, "", err
	}

	data := model.AssessmentData{
		Age:              in.Age,
		Height:           in.Height,
		Weight:           in.Weight,
		ActivityLevel:    in.ActivityLevel,
		Goal:             in.Goal,
		SleepQuality:     in.SleepQuality,
		FoodQuality:      in.FoodQuality,
		TrainingLocation: in.TrainingLocation,
		BMI:              CalculateBMI(in.Weight, in.Height),
		IdealWeight:      IdealWeightRange(in.Height),
	}
	s.store.Dispatch(store.UpdateAssessment{Data: data})

	return data, s.coachMessage(ctx, snap.User.Name, snap.Settings, data), nil
}

func (s *Assessment) coachMessage(ctx context.Context, name string, set model.Settings, data model.AssessmentData) string {
	fb := feedback.Fallback(set.AI.AssessmentFeedbackFallback, name)
	if s.gen == nil {
		return fb
	}
	text, err := s.gen.Generate(ctx, feedback.Request{
		Name:             name,
		Goal:             data.Goal,
		TrainingLocation: data.TrainingLocation,
		ActivityLevel:    data.ActivityLevel,
		SleepQuality:     data.SleepQuality,
		FoodQuality:      data.FoodQuality,
		BMI:              data.BMI,
	})
	if err != nil {
		s.log.Warn("assessment feedback generation failed", zap.Error(err))
		return fb
	}
	return text
}

func validateAssessment(in AssessmentInput) error {
	switch {
	case in.Age <= 0:
		return fmt.Errorf("%w: age must be positive", errs.ErrValidation)
	case in.Height <= 0:
		return fmt.Errorf("%w: height must be positive", errs.ErrValidation)
	case in.Weight <= 0:
		return fmt.Errorf("%w: weight must be positive", errs.ErrValidation)
	case in.SleepQuality < 1 || in.SleepQuality > 5:
		return fmt.Errorf("%w: sleep quality must be 1..5", errs.ErrValidation)
	case in.FoodQuality < 1 || in.FoodQuality > 5:
		return fmt.Errorf("%w: food quality must be 1..5", errs.ErrValidation)
	}
	return nil
}

// CalculateBMI returns weight / height², one decimal, height in centimeters.
func CalculateBMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*10) / 10
}

// IdealWeightRange returns the 18.5–24.9 BMI band for the given height.
func IdealWeightRange(heightCm float64) string {
	m := heightCm / 100
	return fmt.Sprintf("%.1fkg - %.1fkg", 18.5*m*m, 24.9*m*m)
}
