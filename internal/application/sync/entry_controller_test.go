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

func testEntries() []entity.WeightEntry {
	return []entity.WeightEntry{
		entity.NewWeightEntry(valueobject.NewCivilDate(2025, time.January, 1), decimal.NewFromInt(100)),
		entity.NewWeightEntry(valueobject.NewCivilDate(2025, time.January, 15), decimal.NewFromInt(98)),
	}
}

func TestEntryController_NoUser(t *testing.T) {
	store := newFakeStore()
	c := sync.NewEntryController(store)
	c.Activate(uuid.Nil)

	if c.Loading() {
		t.Error("expected loading=false")
	}
	if len(c.Entries()) != 0 {
		t.Error("expected empty entries")
	}
	if store.migrateCalls.Load() != 0 {
		t.Error("migration must not run without a user")
	}
}

func TestEntryController_EmptyCacheSnapshotSuppressed(t *testing.T) {
	store := newFakeStore()
	c := sync.NewEntryController(store)
	c.Activate(uuid.New())

	// Empty and cache-only: indistinguishable from a cold cache, skip it.
	store.entriesListener(0).onData(adapter.EntriesSnapshot{Entries: nil, FromCache: true})
	if !c.Loading() {
		t.Fatal("empty cache snapshot must not clear loading")
	}

	// The server-confirmed empty result is definitive.
	store.entriesListener(0).onData(adapter.EntriesSnapshot{Entries: []entity.WeightEntry{}, FromCache: false})
	if c.Loading() {
		t.Fatal("server-confirmed snapshot should clear loading")
	}
	if len(c.Entries()) != 0 {
		t.Errorf("expected empty entries, got %d", len(c.Entries()))
	}
}

func TestEntryController_NonEmptyCacheSnapshotAccepted(t *testing.T) {
	store := newFakeStore()
	c := sync.NewEntryController(store)
	c.Activate(uuid.New())

	store.entriesListener(0).onData(adapter.EntriesSnapshot{Entries: testEntries(), FromCache: true})

	if c.Loading() {
		t.Fatal("non-empty snapshot should clear loading")
	}
	if len(c.Entries()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(c.Entries()))
	}
}

func TestEntryController_MigrationRunsOnceInBackground(t *testing.T) {
	store := newFakeStore()
	c := sync.NewEntryController(store)
	userID := uuid.New()
	c.Activate(userID)

	select {
	case migrated := <-store.migrated:
		if migrated != userID {
			t.Errorf("migrated wrong user: %s", migrated)
		}
	case <-time.After(time.Second):
		t.Fatal("migration was not triggered")
	}
}

func TestEntryController_MigrationFailureNotSurfaced(t *testing.T) {
	store := newFakeStore()
	store.migrateErr = errors.New("legacy data unreadable")
	c := sync.NewEntryController(store)
	c.Activate(uuid.New())

	select {
	case <-store.migrated:
	case <-time.After(time.Second):
		t.Fatal("migration was not triggered")
	}
	if c.Err() != nil {
		t.Errorf("migration failure must not surface, got %v", c.Err())
	}
}

func TestEntryController_AddEntryUnauthenticated(t *testing.T) {
	c := sync.NewEntryController(newFakeStore())
	c.Activate(uuid.Nil)

	err := c.AddEntry(context.Background(), testEntries()[0])
	if !errors.Is(err, domainerror.ErrUnauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestEntryController_RemoveEntryUnauthenticated(t *testing.T) {
	c := sync.NewEntryController(newFakeStore())
	c.Activate(uuid.Nil)

	err := c.RemoveEntry(context.Background(), valueobject.NewCivilDate(2025, time.January, 1))
	if !errors.Is(err, domainerror.ErrUnauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestEntryController_AddEntryDoesNotMutateLocally(t *testing.T) {
	store := newFakeStore()
	c := sync.NewEntryController(store)
	c.Activate(uuid.New())
	store.entriesListener(0).onData(adapter.EntriesSnapshot{Entries: testEntries(), FromCache: false})

	newEntry := entity.NewWeightEntry(valueobject.NewCivilDate(2025, time.February, 1), decimal.NewFromInt(97))
	if err := c.AddEntry(context.Background(), newEntry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The subscription delivers the authoritative update; no optimistic add.
	if len(c.Entries()) != 2 {
		t.Errorf("expected snapshot unchanged until delivery, got %d entries", len(c.Entries()))
	}
	if len(store.writtenEntries) != 1 {
		t.Fatalf("expected one store write, got %d", len(store.writtenEntries))
	}
}

func TestEntryController_WriteFailureSurfacedAndRethrown(t *testing.T) {
	store := newFakeStore()
	store.writeEntryErr = errors.New("quota exceeded")
	c := sync.NewEntryController(store)
	c.Activate(uuid.New())
	store.entriesListener(0).onData(adapter.EntriesSnapshot{Entries: testEntries(), FromCache: false})

	err := c.AddEntry(context.Background(), testEntries()[0])
	if !errors.Is(err, store.writeEntryErr) {
		t.Fatalf("expected the store error rethrown, got %v", err)
	}
	if c.Err() == nil {
		t.Error("expected the failure recorded in controller state")
	}
	if len(c.Entries()) != 2 {
		t.Error("failed write must leave prior entries untouched")
	}
}

func TestEntryController_RecoversAfterFailedWrite(t *testing.T) {
	store := newFakeStore()
	c := sync.NewEntryController(store)
	c.Activate(uuid.New())
	store.entriesListener(0).onData(adapter.EntriesSnapshot{Entries: testEntries(), FromCache: false})

	store.writeEntryErr = errors.New("store unavailable")
	if err := c.AddEntry(context.Background(), testEntries()[0]); err == nil {
		t.Fatal("expected the write to fail")
	}
	if c.Err() == nil {
		t.Fatal("expected the failure recorded")
	}

	// Store recovers; the next successful write must clear the recorded error.
	store.writeEntryErr = nil
	if err := c.AddEntry(context.Background(), testEntries()[1]); err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if c.Err() != nil {
		t.Errorf("successful write must clear the recorded error, got %v", c.Err())
	}
}

func TestEntryController_FreshSnapshotClearsRecordedError(t *testing.T) {
	store := newFakeStore()
	c := sync.NewEntryController(store)
	c.Activate(uuid.New())
	store.entriesListener(0).onData(adapter.EntriesSnapshot{Entries: testEntries(), FromCache: false})

	store.writeEntryErr = errors.New("store unavailable")
	if err := c.AddEntry(context.Background(), testEntries()[0]); err == nil {
		t.Fatal("expected the write to fail")
	}

	store.entriesListener(0).onData(adapter.EntriesSnapshot{Entries: testEntries(), FromCache: false})
	if c.Err() != nil {
		t.Errorf("healthy snapshot must clear the recorded error, got %v", c.Err())
	}
	if len(c.Entries()) != 2 {
		t.Errorf("expected 2 entries, got %d", len(c.Entries()))
	}
}

func TestEntryController_UserSwitchCancelsPriorCycle(t *testing.T) {
	store := newFakeStore()
	c := sync.NewEntryController(store)
	c.Activate(uuid.New())
	first := store.entriesListener(0)

	c.Activate(uuid.New())
	if !first.sub.unsubscribed.Load() {
		t.Fatal("previous subscription was not cancelled on user switch")
	}

	// Stale deliveries must not leak across users.
	first.onData(adapter.EntriesSnapshot{Entries: testEntries(), FromCache: false})
	if len(c.Entries()) != 0 {
		t.Error("stale snapshot leaked across user switch")
	}
	if !c.Loading() {
		t.Error("expected the new cycle to still be loading")
	}
}
