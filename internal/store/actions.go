package store

import "github.com/fitconsult/fitfunnel/internal/model"

// Action is the closed set of state mutations. All mutation of the app state
// goes through Dispatch with one of these; nothing mutates AppState directly.
type Action interface{ isAction() }

// SetUser replaces the current session user (nil means logout). The roster is
// not touched.
type SetUser struct{ User *model.User }

// AddUser appends to the roster unless an entry with the same email already
// exists (idempotent).
type AddUser struct{ User model.User }

// UpdateAssessment replaces the current user's assessment wholesale, keeping
// the matching roster entry in lockstep. No-op when anonymous.
type UpdateAssessment struct{ Data model.AssessmentData }

// CompleteLesson appends the lesson to the current user's progress set, in
// lockstep with the matching roster entry. No-op when anonymous or already
// completed.
type CompleteLesson struct{ LessonID int }

// UpdateSettings replaces settings wholesale (pre-merged by the caller).
type UpdateSettings struct{ Settings model.Settings }

// SetSyncStatus replaces the sync status only.
type SetSyncStatus struct{ Status model.SyncStatus }

// SetState bulk-replaces the state at boot completion. An in-flight sync
// status is preserved rather than reset, and a ready phase never reverts.
type SetState struct{ State AppState }

func (SetUser) isAction()          {}
func (AddUser) isAction()          {}
func (UpdateAssessment) isAction() {}
func (CompleteLesson) isAction()   {}
func (UpdateSettings) isAction()   {}
func (SetSyncStatus) isAction()    {}
func (SetState) isAction()         {}
