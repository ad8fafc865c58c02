// Package identity persists the identifiers that survive a session: the
// current user's email (session tier) and the admin console token (durable
// tier). Presence of the email key is the sole signal that there is a prior
// session to restore.
package identity

import "github.com/fitconsult/fitfunnel/internal/localstore"

const (
	sessionKey = "currentUserEmail"
	adminKey   = "adminToken"
)

// Store maps a session to its durable identifiers over two storage tiers.
type Store struct {
	session localstore.Store
	durable localstore.Store
}

// New constructs an identity store over the given tiers.
func New(session, durable localstore.Store) *Store {
	return &Store{session: session, durable: durable}
}

// CurrentUserEmail returns the restorable session identifier, if any.
func (s *Store) CurrentUserEmail() (string, bool) {
	v, ok := s.session.Get(sessionKey)
	if !ok || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

// SetCurrentUserEmail records the session identifier.
func (s *Store) SetCurrentUserEmail(email string) error {
	return s.session.Set(sessionKey, []byte(email))
}

// ClearCurrentUserEmail removes the session identifier (logout).
func (s *Store) ClearCurrentUserEmail() error {
	return s.session.Delete(sessionKey)
}

// AdminToken returns the stored admin console token, if any.
func (s *Store) AdminToken() (string, bool) {
	v, ok := s.durable.Get(adminKey)
	if !ok || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

// SetAdminToken records the admin console token.
func (s *Store) SetAdminToken(token string) error {
	return s.durable.Set(adminKey, []byte(token))
}

// ClearAdminToken removes the admin console token.
func (s *Store) ClearAdminToken() error {
	return s.durable.Delete(adminKey)
}
