// Package gate decides whether a session may reach gated content. Decisions
// are pure functions of the state snapshot and the clock; callers own the
// redirect.
package gate

import (
	"time"

	"github.com/fitconsult/fitfunnel/internal/model"
)

// Route is where a denied session is redirected.
type Route string

const (
	RouteNone       Route = ""
	RouteLanding    Route = "landing"
	RouteUpsell     Route = "upsell"
	RouteAdminLogin Route = "admin-login"
)

// Reason classifies a denial for logging and messaging.
type Reason string

const (
	ReasonAnonymous    Reason = "anonymous"
	ReasonTrialExpired Reason = "trial_expired"
	ReasonExhausted    Reason = "lessons_exhausted"
	ReasonUnauthorized Reason = "unauthorized"
)

// Decision is the gate verdict. Route and Reason are set only on denial.
type Decision struct {
	Allowed bool
	Route   Route
	Reason  Reason
}

var allowed = Decision{Allowed: true}

// Evaluate applies both member-area policies. Anonymous sessions are denied
// unconditionally; authenticated sessions are denied when the time-boxed trial
// has elapsed or when every non-premium lesson has been completed.
func Evaluate(u *model.User, s model.Settings, now time.Time) Decision {
	if u == nil {
		return Decision{Route: RouteLanding, Reason: ReasonAnonymous}
	}

	// freeAccessDays == 0 means unlimited.
	if s.FreeAccessDays > 0 {
		deadline := u.RegistrationDate.Add(time.Duration(s.FreeAccessDays) * 24 * time.Hour)
		if now.After(deadline) {
			return Decision{Route: RouteUpsell, Reason: ReasonTrialExpired}
		}
	}

	if free := s.FreeLessonCount(); free > 0 && len(u.Progress) >= free {
		return Decision{Route: RouteUpsell, Reason: ReasonExhausted}
	}

	return allowed
}

// Admin gates the admin console on a binary authenticated state. Token
// validation happens upstream; this only maps the outcome to a decision.
func Admin(authenticated bool) Decision {
	if !authenticated {
		return Decision{Route: RouteAdminLogin, Reason: ReasonUnauthorized}
	}
	return allowed
}
