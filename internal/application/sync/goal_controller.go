package sync

import (
	"context"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/weight-tracker/backend/internal/application/adapter"
	"github.com/weight-tracker/backend/internal/domain/entity"
	domainerror "github.com/weight-tracker/backend/internal/domain/error"
)

// DefaultSafetyNetDelay bounds how long the goal controller waits for the
// subscription before forcing a server read.
const DefaultSafetyNetDelay = 3 * time.Second

// GoalController owns the single current goal record for the active user.
//
// A present document is unambiguous, so cache-sourced values are trusted
// immediately. An absent document is ambiguous between "never created" and
// "locally uncached", so unconfirmed absence triggers a forced server read;
// a safety-net timer forces the same read if the subscription never fires.
// The first resolution wins: late fallback results and timer firings against
// an already-resolved controller are no-ops.
type GoalController struct {
	store          adapter.DocumentStore
	safetyNetDelay time.Duration

	mu               stdsync.Mutex
	gen              uint64
	userID           uuid.UUID
	hasUser          bool
	state            State
	goals            *entity.UserGoals
	lastErr          error
	absenceConfirmed bool
	fallbackInFlight bool
	sub              adapter.Subscription
	timer            *time.Timer
	cancel           context.CancelFunc
	readyCh          chan struct{}
	readyClosed      bool
}

// NewGoalController creates a goal controller over the given store. A zero
// safetyNetDelay selects DefaultSafetyNetDelay.
func NewGoalController(store adapter.DocumentStore, safetyNetDelay time.Duration) *GoalController {
	if safetyNetDelay <= 0 {
		safetyNetDelay = DefaultSafetyNetDelay
	}
	return &GoalController{
		store:          store,
		safetyNetDelay: safetyNetDelay,
		state:          StateNoUser,
	}
}

// Activate starts a reconciliation cycle for the given user id, cancelling
// any previous cycle first. A nil user id settles into the terminal NoUser
// state without opening a subscription.
func (c *GoalController) Activate(userID uuid.UUID) {
	c.mu.Lock()
	c.teardownLocked()
	c.gen++
	gen := c.gen

	if userID == uuid.Nil {
		c.hasUser = false
		c.userID = uuid.Nil
		c.goals = nil
		c.lastErr = nil
		c.state = StateNoUser
		c.readyCh = nil
		c.readyClosed = false
		c.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.hasUser = true
	c.userID = userID
	c.goals = nil
	c.lastErr = nil
	c.state = StateLoading
	c.absenceConfirmed = false
	c.fallbackInFlight = false
	c.readyCh = make(chan struct{})
	c.readyClosed = false
	c.timer = time.AfterFunc(c.safetyNetDelay, func() {
		c.onSafetyNet(ctx, gen)
	})
	c.mu.Unlock()

	sub, err := c.store.SubscribeGoal(ctx, userID,
		func(snap adapter.GoalSnapshot) { c.onSnapshot(ctx, gen, snap) },
		func(subErr error) { c.onSubscriptionError(ctx, gen, subErr) },
	)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		if sub != nil {
			sub.Unsubscribe()
		}
		return
	}
	c.sub = sub
	c.mu.Unlock()

	if err != nil {
		c.onSubscriptionError(ctx, gen, err)
	}
}

// Close cancels the outstanding subscription and any pending timer.
func (c *GoalController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	c.gen++
	c.hasUser = false
	c.userID = uuid.Nil
	c.goals = nil
	c.lastErr = nil
	c.state = StateNoUser
	c.readyCh = nil
	c.readyClosed = false
}

// Goals returns the current goal snapshot, nil when absent or unresolved.
func (c *GoalController) Goals() *entity.UserGoals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goals
}

// State returns the controller's current reconciliation state.
func (c *GoalController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loading reports whether the controller is still reconciling.
func (c *GoalController) Loading() bool {
	return c.State() == StateLoading
}

// Err returns the error that moved the controller into the Error state.
func (c *GoalController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// WaitReady blocks until the controller leaves the Loading state or the
// context is done. It returns immediately in the NoUser state.
func (c *GoalController) WaitReady(ctx context.Context) error {
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

// SaveGoals writes the goal document wholesale and immediately trusts the
// written value locally, without waiting for the subscription round trip.
// On write failure the prior state is left untouched and the error is
// returned to the caller.
func (c *GoalController) SaveGoals(ctx context.Context, goals entity.UserGoals) error {
	c.mu.Lock()
	if !c.hasUser {
		c.mu.Unlock()
		return domainerror.NewSyncError(
			domainerror.ErrCodeUnauthenticated,
			"cannot save goals without an active user",
			domainerror.ErrUnauthenticated,
		)
	}
	userID := c.userID
	gen := c.gen
	c.mu.Unlock()

	if err := c.store.WriteGoal(ctx, userID, goals); err != nil {
		slog.Error("Failed to write goal document", "user_id", userID, "error", err)
		return domainerror.NewSyncError(
			domainerror.ErrCodeWriteFailed,
			"failed to save goals",
			err,
		)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	saved := goals
	c.goals = &saved
	c.lastErr = nil
	c.state = StateResolved
	c.closeReadyLocked()
	return nil
}

// onSnapshot applies one subscription delivery.
func (c *GoalController) onSnapshot(ctx context.Context, gen uint64, snap adapter.GoalSnapshot) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}

	if snap.Goals != nil {
		// A present document is unambiguous regardless of source.
		c.goals = snap.Goals
		c.lastErr = nil
		c.state = StateResolved
		c.stopTimerLocked()
		c.closeReadyLocked()
		c.mu.Unlock()
		return
	}

	if !snap.FromCache || c.absenceConfirmed {
		// Server-confirmed absence, now or earlier in this session.
		c.absenceConfirmed = true
		c.goals = nil
		c.lastErr = nil
		c.state = StateResolved
		c.stopTimerLocked()
		c.closeReadyLocked()
		c.mu.Unlock()
		return
	}

	// Unconfirmed absence: ambiguous, verify against the server once.
	if c.state != StateLoading || c.fallbackInFlight {
		c.mu.Unlock()
		return
	}
	c.fallbackInFlight = true
	c.mu.Unlock()

	go c.fallbackRead(ctx, gen, nil)
}

// onSubscriptionError handles a failed subscription by falling back to a
// forced server read before surfacing anything.
func (c *GoalController) onSubscriptionError(ctx context.Context, gen uint64, err error) {
	c.mu.Lock()
	if gen != c.gen || c.state != StateLoading || c.fallbackInFlight {
		c.mu.Unlock()
		return
	}
	c.fallbackInFlight = true
	c.mu.Unlock()

	slog.Warn("Goal subscription failed, falling back to server read", "error", err)
	go c.fallbackRead(ctx, gen, err)
}

// onSafetyNet fires when neither the subscription nor a fallback has
// resolved within the safety-net delay.
func (c *GoalController) onSafetyNet(ctx context.Context, gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state != StateLoading || c.fallbackInFlight {
		c.mu.Unlock()
		return
	}
	c.fallbackInFlight = true
	c.mu.Unlock()

	slog.Warn("Goal subscription did not resolve in time, forcing server read")
	c.fallbackRead(ctx, gen, nil)
}

// fallbackRead performs the forced server read. subErr carries the original
// subscription error when this read is the error-path fallback; only its
// failure moves the controller to the Error state.
func (c *GoalController) fallbackRead(ctx context.Context, gen uint64, subErr error) {
	c.mu.Lock()
	userID := c.userID
	c.mu.Unlock()

	goals, err := c.store.ReadGoalFromServer(ctx, userID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.fallbackInFlight = false
	if c.state != StateLoading {
		// A real resolution arrived first; this result is discarded.
		return
	}

	switch {
	case err == nil:
		if goals == nil {
			c.absenceConfirmed = true
		}
		c.goals = goals
		c.lastErr = nil
		c.state = StateResolved
	case subErr != nil:
		slog.Error("Fallback read after subscription failure also failed", "error", err)
		c.lastErr = domainerror.NewSyncError(
			domainerror.ErrCodeSubscriptionFailed,
			"goal subscription failed",
			subErr,
		)
		c.state = StateError
	default:
		// Offline best effort: accept null rather than block indefinitely.
		slog.Warn("Forced goal read failed, accepting absent", "error", err)
		c.goals = nil
		c.state = StateResolved
	}
	c.stopTimerLocked()
	c.closeReadyLocked()
}

func (c *GoalController) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *GoalController) closeReadyLocked() {
	if c.readyCh != nil && !c.readyClosed {
		close(c.readyCh)
		c.readyClosed = true
	}
}

func (c *GoalController) teardownLocked() {
	if c.sub != nil {
		c.sub.Unsubscribe()
		c.sub = nil
	}
	c.stopTimerLocked()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
