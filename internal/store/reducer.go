package store

import "github.com/fitconsult/fitfunnel/internal/model"

// AppState is the complete application state snapshot.
type AppState struct {
	// User is the current session user; nil means anonymous.
	User *model.User
	// Users is the full roster of known users. The roster entry matching the
	// current user's email always mirrors the current-user object's mutable
	// fields; the reducer updates both in one step.
	Users      []model.User
	Settings   model.Settings
	Phase      model.Phase
	SyncStatus model.SyncStatus
}

// reduce is a pure total function of (state, action). It never fails; invalid
// transitions are no-ops. Returned state never aliases mutable parts of the
// input.
func reduce(state AppState, action Action) AppState {
	switch a := action.(type) {

	case SetUser:
		state.User = a.User.Clone()
		return state

	case AddUser:
		for i := range state.Users {
			if state.Users[i].Email == a.User.Email {
				return state
			}
		}
		users := make([]model.User, 0, len(state.Users)+1)
		users = append(users, state.Users...)
		users = append(users, *a.User.Clone())
		state.Users = users
		return state

	case UpdateAssessment:
		if state.User == nil {
			return state
		}
		updated := state.User.Clone()
		data := a.Data
		updated.Assessment = &data
		return withUser(state, updated)

	case CompleteLesson:
		if state.User == nil || state.User.CompletedLesson(a.LessonID) {
			return state
		}
		updated := state.User.Clone()
		updated.Progress = append(updated.Progress, a.LessonID)
		return withUser(state, updated)

	case UpdateSettings:
		state.Settings = a.Settings
		return state

	case SetSyncStatus:
		state.SyncStatus = a.Status
		return state

	case SetState:
		next := a.State
		next.User = next.User.Clone()
		users := make([]model.User, len(a.State.Users))
		for i := range a.State.Users {
			users[i] = *a.State.Users[i].Clone()
		}
		next.Users = users
		// Preserve whatever sync status was in flight so a concurrent sync's
		// status report is not clobbered.
		if state.SyncStatus != "" {
			next.SyncStatus = state.SyncStatus
		} else if next.SyncStatus == "" {
			next.SyncStatus = model.SyncIdle
		}
		// The readiness phase transitions loading->ready once and never reverts.
		if state.Phase == model.PhaseReady {
			next.Phase = model.PhaseReady
		}
		return next

	default:
		return state
	}
}

// withUser installs the updated current user and mirrors it into the matching
// roster entry in the same step, keeping the two copies in lockstep.
func withUser(state AppState, updated *model.User) AppState {
	state.User = updated
	users := make([]model.User, len(state.Users))
	for i := range state.Users {
		if state.Users[i].Email == updated.Email {
			users[i] = *updated.Clone()
		} else {
			users[i] = state.Users[i]
		}
	}
	state.Users = users
	return state
}
