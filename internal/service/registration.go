// Package service contains the application services for registration,
// assessment, lessons and the admin console.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/fitconsult/fitfunnel/internal/errs"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/repository"
	"github.com/fitconsult/fitfunnel/internal/store"
)

// RegistrationInput is the sign-up form payload.
type RegistrationInput struct {
	Name     string
	Email    string
	WhatsApp string
}

// Registration creates accounts and restores returning sessions.
type Registration struct {
	users repository.UserRecords
	store *store.Store
	log   *zap.Logger
}

// NewRegistration constructs the registration service.
func NewRegistration(users repository.UserRecords, st *store.Store, log *zap.Logger) *Registration {
	return &Registration{users: users, store: st, log: log}
}

// Register creates a new user and makes it the current session. A remote row
// with the same email means an existing account (errs.ErrAlreadyExists);
// persistence itself happens through the background sync.
func (s *Registration) Register(ctx context.Context, in RegistrationInput) (*model.User, error) {
	email := normalizeEmail(in.Email)
	if in.Name == "" || email == "" || in.WhatsApp == "" {
		return nil, fmt.Errorf("%w: name, email and whatsapp are required", errs.ErrValidation)
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, errs.ErrAlreadyExists
	case errors.Is(err, errs.ErrNotFound):
		// free to register
	default:
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:               uid,
		Name:             in.Name,
		Email:            email,
		WhatsApp:         in.WhatsApp,
		RegistrationDate: time.Now().UTC(),
		Progress:         []int{},
	}

	s.store.Dispatch(store.AddUser{User: *u})
	s.store.Dispatch(store.SetUser{User: u})
	s.log.Info("user registered", zap.String("email", email))
	return u, nil
}

// Login restores a session for an existing account by email. The roster is
// consulted first; a miss falls through to the remote store.
func (s *Registration) Login(ctx context.Context, email string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", errs.ErrValidation)
	}

	if u := s.findInRoster(email); u != nil {
		s.store.Dispatch(store.SetUser{User: u})
		return u, nil
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	s.store.Dispatch(store.AddUser{User: *u})
	s.store.Dispatch(store.SetUser{User: u})
	return u, nil
}

// Logout drops the current session. The sync controller removes the
// persisted identifier.
func (s *Registration) Logout() {
	s.store.Dispatch(store.SetUser{User: nil})
}

func (s *Registration) findInRoster(email string) *model.User {
	snap := s.store.Snapshot()
	for i := range snap.Users {
		if snap.Users[i].Email == email {
			return snap.Users[i].Clone()
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
