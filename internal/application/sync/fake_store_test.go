package sync_test

import (
	"context"
	stdsync "sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/weight-tracker/backend/internal/application/adapter"
	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// fakeSub records whether Unsubscribe was called.
type fakeSub struct {
	unsubscribed atomic.Bool
}

func (s *fakeSub) Unsubscribe() {
	s.unsubscribed.Store(true)
}

// goalListener captures the callbacks of one goal subscription.
type goalListener struct {
	sub     *fakeSub
	onData  func(adapter.GoalSnapshot)
	onError func(error)
}

// entriesListener captures the callback of one entries subscription.
type entriesListener struct {
	sub    *fakeSub
	onData func(adapter.EntriesSnapshot)
}

// fakeStore is a scriptable in-memory DocumentStore. Tests drive the
// controllers by invoking the captured subscription callbacks directly.
type fakeStore struct {
	mu stdsync.Mutex

	goalListeners    []*goalListener
	entriesListeners []*entriesListener

	subscribeGoalErr    error
	subscribeEntriesErr error

	serverGoal    *entity.UserGoals
	serverReadErr error
	readCalls     atomic.Int32

	writeGoalErr   error
	writtenGoals   []entity.UserGoals
	writeEntryErr  error
	writtenEntries []entity.WeightEntry
	deleteEntryErr error
	deletedDates   []valueobject.CivilDate

	migrateErr   error
	migrateCalls atomic.Int32
	migrated     chan uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{migrated: make(chan uuid.UUID, 4)}
}

func (f *fakeStore) SubscribeEntries(_ context.Context, _ uuid.UUID, onData func(adapter.EntriesSnapshot)) (adapter.Subscription, error) {
	if f.subscribeEntriesErr != nil {
		return nil, f.subscribeEntriesErr
	}
	l := &entriesListener{sub: &fakeSub{}, onData: onData}
	f.mu.Lock()
	f.entriesListeners = append(f.entriesListeners, l)
	f.mu.Unlock()
	return l.sub, nil
}

func (f *fakeStore) SubscribeGoal(_ context.Context, _ uuid.UUID, onData func(adapter.GoalSnapshot), onError func(error)) (adapter.Subscription, error) {
	if f.subscribeGoalErr != nil {
		return nil, f.subscribeGoalErr
	}
	l := &goalListener{sub: &fakeSub{}, onData: onData, onError: onError}
	f.mu.Lock()
	f.goalListeners = append(f.goalListeners, l)
	f.mu.Unlock()
	return l.sub, nil
}

func (f *fakeStore) ReadGoalFromServer(_ context.Context, _ uuid.UUID) (*entity.UserGoals, error) {
	f.readCalls.Add(1)
	if f.serverReadErr != nil {
		return nil, f.serverReadErr
	}
	return f.serverGoal, nil
}

func (f *fakeStore) WriteGoal(_ context.Context, _ uuid.UUID, goals entity.UserGoals) error {
	if f.writeGoalErr != nil {
		return f.writeGoalErr
	}
	f.mu.Lock()
	f.writtenGoals = append(f.writtenGoals, goals)
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) WriteEntry(_ context.Context, _ uuid.UUID, entry entity.WeightEntry) error {
	if f.writeEntryErr != nil {
		return f.writeEntryErr
	}
	f.mu.Lock()
	f.writtenEntries = append(f.writtenEntries, entry)
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) DeleteEntry(_ context.Context, _ uuid.UUID, date valueobject.CivilDate) error {
	if f.deleteEntryErr != nil {
		return f.deleteEntryErr
	}
	f.mu.Lock()
	f.deletedDates = append(f.deletedDates, date)
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) MigrateLegacyEntries(_ context.Context, userID uuid.UUID) error {
	f.migrateCalls.Add(1)
	select {
	case f.migrated <- userID:
	default:
	}
	return f.migrateErr
}

// goalListener returns the i-th goal subscription, which must exist.
func (f *fakeStore) goalListener(i int) *goalListener {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.goalListeners[i]
}

func (f *fakeStore) entriesListener(i int) *entriesListener {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entriesListeners[i]
}

func (f *fakeStore) goalSubscriptionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.goalListeners)
}
