// Package syncer mirrors current-user changes to the remote record store.
// A single run loop drains the store's latest-wins user watcher, so uploads
// never overlap: a burst of mutations collapses into one upsert carrying the
// newest state.
package syncer

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fitconsult/fitfunnel/internal/identity"
	"github.com/fitconsult/fitfunnel/internal/model"
	"github.com/fitconsult/fitfunnel/internal/repository"
	"github.com/fitconsult/fitfunnel/internal/store"
)

const defaultIdleDelay = 2 * time.Second

// Controller uploads the current user to the remote record store whenever its
// serialized form changes, and reports progress through the store's sync
// status.
type Controller struct {
	store    *store.Store
	users    repository.UserRecords
	identity *identity.Store
	log      *zap.Logger

	idleDelay time.Duration
	ch        <-chan *model.User

	mu  sync.Mutex
	gen int // incremented per successful upload, guards the idle reset
}

// Option configures a Controller.
type Option func(*Controller)

// WithIdleDelay overrides how long the success status is shown before the
// controller settles back to idle.
func WithIdleDelay(d time.Duration) Option {
	return func(c *Controller) { c.idleDelay = d }
}

// New constructs a sync controller over the given store and record gateway.
func New(st *store.Store, users repository.UserRecords, ids *identity.Store, log *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:     st,
		users:     users,
		identity:  ids,
		log:       log,
		idleDelay: defaultIdleDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	// Register the watcher up front so changes dispatched before Run starts
	// are not lost; the latest-wins channel holds the newest one.
	c.ch = st.Watch()
	return c
}

// Run consumes user-change notifications until the context is cancelled.
// Failed uploads leave the status in error until the next qualifying change;
// there is no automatic retry.
func (c *Controller) Run(ctx context.Context) {
	last := "" // serialization of the last uploaded user, "" forces a first sync
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-c.ch:
			c.handle(ctx, u, &last)
		}
	}
}

func (c *Controller) handle(ctx context.Context, u *model.User, last *string) {
	if c.store.Snapshot().Phase != model.PhaseReady {
		return
	}

	if u == nil {
		if err := c.identity.ClearCurrentUserEmail(); err != nil {
			c.log.Warn("clear session identifier", zap.Error(err))
		}
		*last = "null"
		return
	}

	serialized := marshal(u)
	if serialized == *last {
		return
	}

	if err := c.identity.SetCurrentUserEmail(u.Email); err != nil {
		c.log.Warn("persist session identifier", zap.Error(err))
	}

	c.store.Dispatch(store.SetSyncStatus{Status: model.SyncSyncing})
	if err := c.users.Upsert(ctx, u); err != nil {
		c.log.Error("upload user record", zap.String("email", u.Email), zap.Error(err))
		c.store.Dispatch(store.SetSyncStatus{Status: model.SyncError})
		return
	}
	*last = serialized

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	c.store.Dispatch(store.SetSyncStatus{Status: model.SyncSuccess})
	time.AfterFunc(c.idleDelay, func() { c.settle(gen) })
}

// settle resets a lingering success status to idle, unless a newer upload has
// taken over in the meantime.
func (c *Controller) settle(gen int) {
	c.mu.Lock()
	current := c.gen
	c.mu.Unlock()
	if current != gen {
		return
	}
	if c.store.Snapshot().SyncStatus == model.SyncSuccess {
		c.store.Dispatch(store.SetSyncStatus{Status: model.SyncIdle})
	}
}

func marshal(u *model.User) string {
	b, err := json.Marshal(u)
	if err != nil {
		return "null"
	}
	return string(b)
}
