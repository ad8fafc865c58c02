package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/limiter"
	"github.com/fitconsult/fitfunnel/internal/localstore"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/repository"
	"github.com/fitconsult/fitfunnel/internal/settings"
	"github.com/fitconsult/fitfunnel/internal/store"
	"go.uber.org/zap"
)

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*model.User
	getErr  error
}

var _ repository.UserRecords = (*fakeUsers)(nil)

func (f *fakeUsers) ListAll(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.User, 0, len(f.byEmail))
	for _, u := range f.byEmail {
		out = append(out, *u.Clone())
	}
	return out, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u.Clone(), nil
}

func (f *fakeUsers) Upsert(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byEmail == nil {
		f.byEmail = map[string]*model.User{}
	}
	f.byEmail[u.Email] = u.Clone()
	return nil
}

type fakeSettingsRecords struct {
	upserted *model.Settings
	err      error
}

var _ repository.SettingsRecords = (*fakeSettingsRecords)(nil)

func (f *fakeSettingsRecords) Fetch(_ context.Context) ([]byte, error) {
	return nil, errs.ErrNotFound
}

func (f *fakeSettingsRecords) Upsert(_ context.Context, s *model.Settings) error {
	if f.err != nil {
		return f.err
	}
	cpy := *s
	f.upserted = &cpy
	return nil
}

func readyStore() *store.Store {
	st := store.New(settings.Defaults())
	st.Dispatch(store.SetState{State: store.AppState{
		Settings: settings.Defaults(),
		Phase:    model.PhaseReady,
	}})
	return st
}

func loggedIn(st *store.Store, email string) *model.User {
	u := &model.User{
		Name:             "Maria",
		Email:            email,
		WhatsApp:         "11999990000",
		RegistrationDate: time.Now().UTC(),
		Progress:         []int{},
	}
	st.Dispatch(store.AddUser{User: *u})
	st.Dispatch(store.SetUser{User: u})
	return u
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(_ context.Context, _ string, _ []byte) (bool, time.Duration, error) {
	return true, 0, nil
}
func (allowAllLimiter) Success(_ context.Context, _ string, _ []byte) error { return nil }
func (allowAllLimiter) Failure(_ context.Context, _ string, _ []byte) (bool, time.Duration, error) {
	return false, 0, nil
}

type blockingLimiter struct{ blockOnFailure bool }

func (l *blockingLimiter) Allow(_ context.Context, _ string, _ []byte) (bool, time.Duration, error) {
	if !l.blockOnFailure {
		return false, time.Minute, nil
	}
	return true, 0, nil
}
func (l *blockingLimiter) Success(_ context.Context, _ string, _ []byte) error { return nil }
func (l *blockingLimiter) Failure(_ context.Context, _ string, _ []byte) (bool, time.Duration, error) {
	return l.blockOnFailure, time.Minute, nil
}

func newAdmin(creds AdminCredentials, lim limiter.Limiter, records *fakeSettingsRecords, st *store.Store) *Admin {
	resolver := settings.NewResolver(records, localstore.NewMemory(), zap.NewNop())
	return NewAdmin(creds, []byte("test-sign-key"), time.Hour, lim, records, st, resolver, zap.NewNop())
}

var errRemote = errors.New("connection refused")
