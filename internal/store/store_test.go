package store

import (
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/fitconsult/fitfunnel/internal/model"
)

func newUser(email string) *model.User {
	return &model.User{
		ID:               uuid.Must(uuid.NewV4()),
		Name:             "Maria",
		Email:            email,
		WhatsApp:         "+5511999999999",
		RegistrationDate: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Progress:         []int{},
	}
}

func newReadyStore(t *testing.T, u *model.User) *Store {
	t.Helper()
	s := New(model.Settings{})
	s.Dispatch(SetState{State: AppState{
		User:  u,
		Users: []model.User{*u},
		Phase: model.PhaseReady,
	}})
	return s
}

func TestAddUser_IdempotentOnEmail(t *testing.T) {
	s := New(model.Settings{})
	u := newUser("maria@example.com")

	s.Dispatch(AddUser{User: *u})
	state := s.Dispatch(AddUser{User: *u})
	require.Len(t, state.Users, 1)

	other := *newUser("maria@example.com")
	other.Name = "Someone Else"
	state = s.Dispatch(AddUser{User: other})
	require.Len(t, state.Users, 1)
	require.Equal(t, "Maria", state.Users[0].Name)
}

func TestCompleteLesson_IdempotentAndLockstep(t *testing.T) {
	u := newUser("maria@example.com")
	s := newReadyStore(t, u)

	s.Dispatch(CompleteLesson{LessonID: 1})
	s.Dispatch(CompleteLesson{LessonID: 1})
	state := s.Dispatch(CompleteLesson{LessonID: 2})

	require.Equal(t, []int{1, 2}, state.User.Progress)
	require.Equal(t, state.User.Progress, state.Users[0].Progress)
}

func TestCompleteLesson_NoUserIsNoop(t *testing.T) {
	s := New(model.Settings{})
	state := s.Dispatch(CompleteLesson{LessonID: 1})
	require.Nil(t, state.User)
	require.Empty(t, state.Users)
}

func TestUpdateAssessment_LockstepWithRoster(t *testing.T) {
	u := newUser("maria@example.com")
	other := newUser("carla@example.com")
	s := New(model.Settings{})
	s.Dispatch(SetState{State: AppState{
		User:  u,
		Users: []model.User{*u, *other},
		Phase: model.PhaseReady,
	}})

	data := model.AssessmentData{Age: 34, Height: 165, Weight: 72, BMI: 26.4}
	state := s.Dispatch(UpdateAssessment{Data: data})

	require.NotNil(t, state.User.Assessment)
	require.Equal(t, data, *state.User.Assessment)
	require.Equal(t, state.User.Assessment, state.Users[0].Assessment)
	require.Nil(t, state.Users[1].Assessment, "other roster entries untouched")
}

func TestRosterMirrorsCurrentUserAfterAnySequence(t *testing.T) {
	u := newUser("maria@example.com")
	s := newReadyStore(t, u)

	s.Dispatch(CompleteLesson{LessonID: 1})
	s.Dispatch(UpdateAssessment{Data: model.AssessmentData{Age: 30}})
	s.Dispatch(CompleteLesson{LessonID: 3})
	state := s.Dispatch(UpdateAssessment{Data: model.AssessmentData{Age: 31}})

	require.Equal(t, *state.User, state.Users[0])
}

func TestUpdateAssessment_NoUserIsNoop(t *testing.T) {
	s := New(model.Settings{})
	state := s.Dispatch(UpdateAssessment{Data: model.AssessmentData{Age: 30}})
	require.Nil(t, state.User)
}

func TestSetState_PreservesInFlightSyncStatus(t *testing.T) {
	s := New(model.Settings{})
	s.Dispatch(SetSyncStatus{Status: model.SyncSyncing})

	state := s.Dispatch(SetState{State: AppState{Phase: model.PhaseReady, SyncStatus: model.SyncIdle}})
	require.Equal(t, model.SyncSyncing, state.SyncStatus)
}

func TestSetState_PhaseNeverReverts(t *testing.T) {
	s := New(model.Settings{})
	state := s.Dispatch(SetState{State: AppState{Phase: model.PhaseReady}})
	require.Equal(t, model.PhaseReady, state.Phase)

	state = s.Dispatch(SetState{State: AppState{Phase: model.PhaseLoading}})
	require.Equal(t, model.PhaseReady, state.Phase)
}

func TestWatch_NotifiesOnContentChangeOnly(t *testing.T) {
	u := newUser("maria@example.com")
	s := newReadyStore(t, u)
	ch := s.Watch()

	// Status-only changes do not requalify the user.
	s.Dispatch(SetSyncStatus{Status: model.SyncSyncing})
	select {
	case <-ch:
		t.Fatal("unexpected notification for status-only change")
	default:
	}

	s.Dispatch(CompleteLesson{LessonID: 1})
	select {
	case got := <-ch:
		require.Equal(t, []int{1}, got.Progress)
	case <-time.After(time.Second):
		t.Fatal("expected notification")
	}

	// Completing the same lesson again leaves the serialized user unchanged.
	s.Dispatch(CompleteLesson{LessonID: 1})
	select {
	case <-ch:
		t.Fatal("unexpected notification for no-op")
	default:
	}
}

func TestWatch_LatestWins(t *testing.T) {
	u := newUser("maria@example.com")
	s := newReadyStore(t, u)
	ch := s.Watch()

	s.Dispatch(CompleteLesson{LessonID: 1})
	s.Dispatch(CompleteLesson{LessonID: 2})
	s.Dispatch(CompleteLesson{LessonID: 3})

	got := <-ch
	require.Equal(t, []int{1, 2, 3}, got.Progress)
	select {
	case <-ch:
		t.Fatal("expected a single pending notification")
	default:
	}
}

func TestWatch_ConcurrentDispatchLeavesNewestPending(t *testing.T) {
	u := newUser("maria@example.com")
	s := newReadyStore(t, u)
	ch := s.Watch()

	var wg sync.WaitGroup
	for i := 1; i <= 40; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			s.Dispatch(CompleteLesson{LessonID: id})
		}(i)
	}
	wg.Wait()

	// Offers are ordered by the store lock: whatever dispatch committed last
	// also owns the pending mailbox value.
	final := s.Snapshot()
	got := <-ch
	require.Equal(t, marshalUser(final.User), marshalUser(got))
	select {
	case <-ch:
		t.Fatal("expected a single pending notification")
	default:
	}
}

func TestWatch_LogoutNotifiesNil(t *testing.T) {
	u := newUser("maria@example.com")
	s := newReadyStore(t, u)
	ch := s.Watch()

	s.Dispatch(SetUser{User: nil})
	got := <-ch
	require.Nil(t, got)
}

func TestSnapshotDoesNotAliasState(t *testing.T) {
	u := newUser("maria@example.com")
	s := newReadyStore(t, u)

	snap := s.Snapshot()
	snap.User.Progress = append(snap.User.Progress, 99)
	snap.Users[0].Name = "mutated"

	state := s.Snapshot()
	require.Empty(t, state.User.Progress)
	require.Equal(t, "Maria", state.Users[0].Name)
}
