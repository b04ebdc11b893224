package sync

import (
	"context"
	"log/slog"
	stdsync "sync"

	"github.com/google/uuid"

	"github.com/weight-tracker/backend/internal/application/adapter"
	"github.com/weight-tracker/backend/internal/domain/entity"
	domainerror "github.com/weight-tracker/backend/internal/domain/error"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// EntryController owns the live, date-ordered list of weight entries for the
// active user. Snapshots are replaced wholesale; an empty result sourced from
// cache only is suppressed because it cannot be told apart from "not yet
// synced".
type EntryController struct {
	store adapter.DocumentStore

	mu          stdsync.Mutex
	gen         uint64
	userID      uuid.UUID
	hasUser     bool
	entries     []entity.WeightEntry
	loading     bool
	lastErr     error
	sub         adapter.Subscription
	cancel      context.CancelFunc
	readyCh     chan struct{}
	readyClosed bool
}

// NewEntryController creates an entry controller over the given store.
func NewEntryController(store adapter.DocumentStore) *EntryController {
	return &EntryController{store: store}
}

// Activate starts a subscription cycle for the given user id, cancelling any
// previous cycle first. A nil user id settles to an empty list with
// loading=false and opens nothing. Otherwise a best-effort legacy migration
// runs in the background; its failures are logged, never surfaced.
func (c *EntryController) Activate(userID uuid.UUID) {
	c.mu.Lock()
	c.teardownLocked()
	c.gen++
	gen := c.gen

	if userID == uuid.Nil {
		c.hasUser = false
		c.userID = uuid.Nil
		c.entries = nil
		c.loading = false
		c.lastErr = nil
		c.readyCh = nil
		c.readyClosed = false
		c.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.hasUser = true
	c.userID = userID
	c.loading = true
	c.lastErr = nil
	c.readyCh = make(chan struct{})
	c.readyClosed = false
	c.mu.Unlock()

	go func() {
		if err := c.store.MigrateLegacyEntries(ctx, userID); err != nil {
			slog.Warn("Legacy entry migration failed", "user_id", userID, "error", err)
		}
	}()

	sub, err := c.store.SubscribeEntries(ctx, userID, func(snap adapter.EntriesSnapshot) {
		c.onSnapshot(gen, snap)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		if sub != nil {
			sub.Unsubscribe()
		}
		return
	}
	c.sub = sub
	if err != nil {
		slog.Error("Entry subscription failed", "user_id", userID, "error", err)
		c.lastErr = domainerror.NewSyncError(
			domainerror.ErrCodeSubscriptionFailed,
			"entry subscription failed",
			err,
		)
		c.loading = false
		c.closeReadyLocked()
	}
}

// Close cancels the outstanding subscription.
func (c *EntryController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	c.gen++
	c.hasUser = false
	c.userID = uuid.Nil
	c.entries = nil
	c.loading = false
	c.lastErr = nil
	c.readyCh = nil
	c.readyClosed = false
}

// Entries returns the current snapshot, ordered by date ascending.
func (c *EntryController) Entries() []entity.WeightEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries
}

// Loading reports whether a definitive snapshot has not yet arrived.
func (c *EntryController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the most recent surfaced error, nil when healthy.
func (c *EntryController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// WaitReady blocks until the first definitive snapshot arrives or the
// context is done. It returns immediately when no user is active.
func (c *EntryController) WaitReady(ctx context.Context) error {
	c.mu.Lock()
	ch := c.readyCh
	c.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddEntry writes (create-or-replace) the entry keyed by its date. Local
// state is not mutated optimistically; the subscription delivers the
// authoritative update. Failures are recorded and returned to the caller.
func (c *EntryController) AddEntry(ctx context.Context, entry entity.WeightEntry) error {
	c.mu.Lock()
	if !c.hasUser {
		c.mu.Unlock()
		return domainerror.NewSyncError(
			domainerror.ErrCodeUnauthenticated,
			"cannot add an entry without an active user",
			domainerror.ErrUnauthenticated,
		)
	}
	userID := c.userID
	gen := c.gen
	c.mu.Unlock()

	if err := c.store.WriteEntry(ctx, userID, entry); err != nil {
		slog.Error("Failed to write entry", "user_id", userID, "date", entry.Date, "error", err)
		wrapped := domainerror.NewSyncError(
			domainerror.ErrCodeWriteFailed,
			"failed to save entry",
			err,
		)
		c.recordErr(gen, wrapped)
		return wrapped
	}
	c.clearErr(gen)
	return nil
}

// RemoveEntry deletes the entry keyed by date, with the same error-surfacing
// contract as AddEntry.
func (c *EntryController) RemoveEntry(ctx context.Context, date valueobject.CivilDate) error {
	c.mu.Lock()
	if !c.hasUser {
		c.mu.Unlock()
		return domainerror.NewSyncError(
			domainerror.ErrCodeUnauthenticated,
			"cannot remove an entry without an active user",
			domainerror.ErrUnauthenticated,
		)
	}
	userID := c.userID
	gen := c.gen
	c.mu.Unlock()

	if err := c.store.DeleteEntry(ctx, userID, date); err != nil {
		slog.Error("Failed to delete entry", "user_id", userID, "date", date, "error", err)
		wrapped := domainerror.NewSyncError(
			domainerror.ErrCodeWriteFailed,
			"failed to delete entry",
			err,
		)
		c.recordErr(gen, wrapped)
		return wrapped
	}
	c.clearErr(gen)
	return nil
}

// onSnapshot applies one subscription delivery.
func (c *EntryController) onSnapshot(gen uint64, snap adapter.EntriesSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}

	// An empty cache-only snapshot is indistinguishable from "no entries
	// yet" vs "cache is cold"; hold out for the server-confirmed result.
	if len(snap.Entries) == 0 && snap.FromCache {
		return
	}

	c.entries = snap.Entries
	c.loading = false
	c.lastErr = nil
	c.closeReadyLocked()
}

func (c *EntryController) recordErr(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.lastErr = err
}

func (c *EntryController) clearErr(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.lastErr = nil
}

func (c *EntryController) closeReadyLocked() {
	if c.readyCh != nil && !c.readyClosed {
		close(c.readyCh)
		c.readyClosed = true
	}
}

func (c *EntryController) teardownLocked() {
	if c.sub != nil {
		c.sub.Unsubscribe()
		c.sub = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
