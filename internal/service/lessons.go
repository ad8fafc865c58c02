package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/gate"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/store"
)

// Lessons records lesson completions and re-evaluates the access gate.
type Lessons struct {
	store *store.Store
	log   *zap.Logger
}

// NewLessons constructs the lessons service.
func NewLessons(st *store.Store, log *zap.Logger) *Lessons {
	return &Lessons{store: st, log: log}
}

// Complete marks a catalog lesson as completed for the current session and
// returns the gate verdict for the state that results. Completing the last
// free lesson flips the verdict to the upsell redirect.
func (s *Lessons) Complete(lessonID int) (gate.Decision, error) {
	snap := s.store.Snapshot()
	if snap.User == nil {
		return gate.Decision{}, errs.ErrUnauthorized
	}
	if !inCatalog(snap.Settings.Lessons, lessonID) {
		return gate.Decision{}, errs.ErrNotFound
	}

	next := s.store.Dispatch(store.CompleteLesson{LessonID: lessonID})
	s.log.Info("lesson completed",
		zap.String("email", snap.User.Email),
		zap.Int("lesson", lessonID))
	return gate.Evaluate(next.User, next.Settings, time.Now()), nil
}

// Evaluate reports the gate verdict for the current session without mutating
// anything. Page guards call this on every navigation.
func (s *Lessons) Evaluate() gate.Decision {
	snap := s.store.Snapshot()
	return gate.Evaluate(snap.User, snap.Settings, time.Now())
}

func inCatalog(lessons []model.Lesson, id int) bool {
	for i := range lessons {
		if lessons[i].ID == id {
			return true
		}
	}
	return false
}
