package sync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/application/adapter"
	"github.com/weight-tracker/backend/internal/application/sync"
	"github.com/weight-tracker/backend/internal/domain/entity"
	domainerror "github.com/weight-tracker/backend/internal/domain/error"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// testDelay keeps safety-net waits short in tests.
const testDelay = 40 * time.Millisecond

func testGoals() *entity.UserGoals {
	return &entity.UserGoals{
		StartWeight:  decimal.NewFromInt(100),
		TargetWeight: decimal.NewFromInt(80),
		StartDate:    valueobject.NewCivilDate(2025, time.January, 1),
		TargetDate:   valueobject.NewCivilDate(2025, time.June, 1),
	}
}

func waitReady(t *testing.T, c *sync.GoalController) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.WaitReady(ctx); err != nil {
		t.Fatalf("controller did not settle: %v", err)
	}
}

func TestGoalController_NoUser(t *testing.T) {
	c := sync.NewGoalController(newFakeStore(), testDelay)
	c.Activate(uuid.Nil)

	if c.State() != sync.StateNoUser {
		t.Fatalf("expected NoUser state, got %s", c.State())
	}
	if c.Goals() != nil {
		t.Error("expected nil goals")
	}
	if c.Loading() {
		t.Error("expected loading=false")
	}
}

func TestGoalController_CacheValueTrustedImmediately(t *testing.T) {
	store := newFakeStore()
	c := sync.NewGoalController(store, testDelay)
	c.Activate(uuid.New())

	store.goalListener(0).onData(adapter.GoalSnapshot{Goals: testGoals(), FromCache: true})

	if c.State() != sync.StateResolved {
		t.Fatalf("expected Resolved, got %s", c.State())
	}
	if c.Goals() == nil {
		t.Fatal("expected goals to be set")
	}
	if n := store.readCalls.Load(); n != 0 {
		t.Errorf("expected no forced reads for a present value, got %d", n)
	}
}

func TestGoalController_UnconfirmedAbsenceForcesOneServerRead(t *testing.T) {
	store := newFakeStore()
	store.serverGoal = testGoals()
	c := sync.NewGoalController(store, testDelay)
	c.Activate(uuid.New())

	store.goalListener(0).onData(adapter.GoalSnapshot{Goals: nil, FromCache: true})
	waitReady(t, c)

	if c.State() != sync.StateResolved {
		t.Fatalf("expected Resolved, got %s", c.State())
	}
	if c.Goals() == nil || !c.Goals().StartWeight.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected server goals, got %+v", c.Goals())
	}
	if n := store.readCalls.Load(); n != 1 {
		t.Fatalf("expected exactly one forced read, got %d", n)
	}

	// The safety-net timer must not trigger a second read.
	time.Sleep(2 * testDelay)
	if n := store.readCalls.Load(); n != 1 {
		t.Errorf("timer fired a redundant read, total %d", n)
	}
	if c.State() != sync.StateResolved {
		t.Errorf("late timer altered state to %s", c.State())
	}
}

func TestGoalController_ConfirmedAbsenceAccepted(t *testing.T) {
	store := newFakeStore()
	c := sync.NewGoalController(store, testDelay)
	c.Activate(uuid.New())

	store.goalListener(0).onData(adapter.GoalSnapshot{Goals: nil, FromCache: false})

	if c.State() != sync.StateResolved {
		t.Fatalf("expected Resolved, got %s", c.State())
	}
	if c.Goals() != nil {
		t.Error("expected confirmed-null goals")
	}

	// A later cache-sourced absence is accepted without another read,
	// because absence was already confirmed this session.
	store.goalListener(0).onData(adapter.GoalSnapshot{Goals: nil, FromCache: true})
	if n := store.readCalls.Load(); n != 0 {
		t.Errorf("expected no forced reads, got %d", n)
	}
	if c.State() != sync.StateResolved {
		t.Errorf("expected Resolved, got %s", c.State())
	}
}

func TestGoalController_ForcedReadFailureAcceptsNull(t *testing.T) {
	store := newFakeStore()
	store.serverReadErr = errors.New("offline")
	c := sync.NewGoalController(store, testDelay)
	c.Activate(uuid.New())

	store.goalListener(0).onData(adapter.GoalSnapshot{Goals: nil, FromCache: true})
	waitReady(t, c)

	if c.State() != sync.StateResolved {
		t.Fatalf("expected Resolved best-effort, got %s", c.State())
	}
	if c.Goals() != nil {
		t.Error("expected nil goals")
	}
	if c.Err() != nil {
		t.Errorf("best-effort fallback should not surface an error, got %v", c.Err())
	}
}

func TestGoalController_SubscriptionErrorFallsBackToRead(t *testing.T) {
	store := newFakeStore()
	store.serverGoal = testGoals()
	c := sync.NewGoalController(store, testDelay)
	c.Activate(uuid.New())

	store.goalListener(0).onError(errors.New("permission denied"))
	waitReady(t, c)

	if c.State() != sync.StateResolved {
		t.Fatalf("expected Resolved via fallback, got %s", c.State())
	}
	if c.Goals() == nil {
		t.Fatal("expected goals from the fallback read")
	}
}

func TestGoalController_ErrorWhenSubscriptionAndFallbackFail(t *testing.T) {
	store := newFakeStore()
	subErr := errors.New("permission denied")
	store.serverReadErr = errors.New("also failed")
	c := sync.NewGoalController(store, testDelay)
	c.Activate(uuid.New())

	store.goalListener(0).onError(subErr)
	waitReady(t, c)

	if c.State() != sync.StateError {
		t.Fatalf("expected Error state, got %s", c.State())
	}
	if !errors.Is(c.Err(), subErr) {
		t.Errorf("expected the original subscription error to be carried, got %v", c.Err())
	}
	var syncErr *domainerror.SyncError
	if !errors.As(c.Err(), &syncErr) || syncErr.Code != domainerror.ErrCodeSubscriptionFailed {
		t.Errorf("expected a subscription-failed error code, got %v", c.Err())
	}
}

func TestGoalController_SafetyNetResolvesSilentSubscription(t *testing.T) {
	store := newFakeStore()
	store.serverGoal = testGoals()
	c := sync.NewGoalController(store, testDelay)

	start := time.Now()
	c.Activate(uuid.New())

	// Before the safety-net delay the controller must still be loading.
	time.Sleep(testDelay / 4)
	if c.State() != sync.StateLoading {
		t.Fatalf("resolved before the safety-net delay, state %s", c.State())
	}

	waitReady(t, c)
	if elapsed := time.Since(start); elapsed < testDelay {
		t.Errorf("settled after %v, before the %v safety-net delay", elapsed, testDelay)
	}
	if c.State() != sync.StateResolved {
		t.Fatalf("expected Resolved, got %s", c.State())
	}
	if n := store.readCalls.Load(); n != 1 {
		t.Errorf("expected one forced read, got %d", n)
	}
}

func TestGoalController_TimerNoOpAfterResolution(t *testing.T) {
	store := newFakeStore()
	c := sync.NewGoalController(store, testDelay)
	c.Activate(uuid.New())

	store.goalListener(0).onData(adapter.GoalSnapshot{Goals: testGoals(), FromCache: false})

	time.Sleep(2 * testDelay)
	if n := store.readCalls.Load(); n != 0 {
		t.Errorf("timer invoked the fallback read after resolution, %d calls", n)
	}
	if c.State() != sync.StateResolved || c.Goals() == nil {
		t.Errorf("timer altered resolved state: %s", c.State())
	}
}

func TestGoalController_UserSwitchCancelsPriorCycle(t *testing.T) {
	store := newFakeStore()
	c := sync.NewGoalController(store, testDelay)
	c.Activate(uuid.New())
	first := store.goalListener(0)

	c.Activate(uuid.New())
	if !first.sub.unsubscribed.Load() {
		t.Fatal("previous subscription was not cancelled on user switch")
	}
	if store.goalSubscriptionCount() != 2 {
		t.Fatalf("expected a fresh subscription, have %d", store.goalSubscriptionCount())
	}

	// A late delivery from the stale cycle must not leak into the new one.
	first.onData(adapter.GoalSnapshot{Goals: testGoals(), FromCache: false})
	if c.Goals() != nil {
		t.Error("stale snapshot leaked across user switch")
	}
	if c.State() != sync.StateLoading {
		t.Errorf("expected new cycle to still be loading, got %s", c.State())
	}
}

func TestGoalController_SaveGoalsUnauthenticated(t *testing.T) {
	c := sync.NewGoalController(newFakeStore(), testDelay)
	c.Activate(uuid.Nil)

	err := c.SaveGoals(context.Background(), *testGoals())
	if !errors.Is(err, domainerror.ErrUnauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestGoalController_SaveGoalsTrustsLocalWrite(t *testing.T) {
	store := newFakeStore()
	c := sync.NewGoalController(store, testDelay)
	c.Activate(uuid.New())

	goals := *testGoals()
	if err := c.SaveGoals(context.Background(), goals); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Local state reflects the save without waiting for the subscription.
	if c.State() != sync.StateResolved {
		t.Fatalf("expected Resolved after save, got %s", c.State())
	}
	if c.Goals() == nil || !c.Goals().TargetWeight.Equal(goals.TargetWeight) {
		t.Fatalf("expected saved goals locally, got %+v", c.Goals())
	}
	if c.Err() != nil {
		t.Errorf("expected error cleared after save, got %v", c.Err())
	}
}

func TestGoalController_SaveGoalsWriteFailureLeavesStateUntouched(t *testing.T) {
	store := newFakeStore()
	c := sync.NewGoalController(store, testDelay)
	c.Activate(uuid.New())
	store.goalListener(0).onData(adapter.GoalSnapshot{Goals: testGoals(), FromCache: false})

	store.writeGoalErr = errors.New("write refused")
	updated := *testGoals()
	updated.TargetWeight = decimal.NewFromInt(75)

	err := c.SaveGoals(context.Background(), updated)
	if !errors.Is(err, store.writeGoalErr) {
		t.Fatalf("expected a surfaced write failure, got %v", err)
	}
	if !c.Goals().TargetWeight.Equal(decimal.NewFromInt(80)) {
		t.Errorf("write failure mutated local state: %+v", c.Goals())
	}
}
