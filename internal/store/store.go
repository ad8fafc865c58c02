// Package store holds the single mutable application state behind a mutex,
// mutated exclusively through a closed action set and a pure reducer.
package store

import (
	"encoding/json"
	"sync"

	"github.com/fitconsult/fitfunnel/internal/model"
)

// Store is the application state container. All mutation goes through
// Dispatch; readers get snapshots that do not alias the live state.
type Store struct {
	mu       sync.RWMutex
	state    AppState
	userJSON string // serialization of the current user, for change detection
	watchers []chan *model.User
}

// New creates a store in the loading phase with idle sync status.
func New(settings model.Settings) *Store {
	return &Store{
		state: AppState{
			Settings:   settings,
			Phase:      model.PhaseLoading,
			SyncStatus: model.SyncIdle,
		},
		userJSON: marshalUser(nil),
	}
}

// Dispatch applies the action through the reducer. When the resulting
// serialized current user differs from the previously observed serialization,
// watchers are notified with a snapshot (nil on logout). Notification runs
// under the lock so offers land in dispatch order, and the capacity-one
// mailbox is latest-wins: a slow watcher only ever sees the newest change.
func (s *Store) Dispatch(action Action) AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = reduce(s.state, action)
	next := s.state
	serialized := marshalUser(next.User)
	if serialized != s.userJSON {
		s.userJSON = serialized
		for _, ch := range s.watchers {
			offer(ch, next.User.Clone())
		}
	}
	return next
}

// Snapshot returns a copy of the current state. The current user and the
// roster are deep-copied; callers can hold snapshots without racing Dispatch.
func (s *Store) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.state
	snap.User = snap.User.Clone()
	users := make([]model.User, len(s.state.Users))
	for i := range s.state.Users {
		users[i] = *s.state.Users[i].Clone()
	}
	snap.Users = users
	return snap
}

// Watch registers a user-change watcher. The channel has capacity one and is
// overwritten rather than blocked on, so the receiver observes the latest
// pending user state.
func (s *Store) Watch() <-chan *model.User {
	ch := make(chan *model.User, 1)
	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()
	return ch
}

// offer replaces the pending value on a capacity-one channel. Callers hold
// the store lock, so the retry loop only races the receiver and terminates
// after at most one drain.
func offer(ch chan *model.User, u *model.User) {
	for {
		select {
		case ch <- u:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func marshalUser(u *model.User) string {
	if u == nil {
		return "null"
	}
	b, err := json.Marshal(u)
	if err != nil {
		return "null"
	}
	return string(b)
}
