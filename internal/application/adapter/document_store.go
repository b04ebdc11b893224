// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// GoalSnapshot is one delivery from a goal subscription. A nil Goals means the
// document is absent. FromCache marks a purely local view that has not been
// confirmed against the remote server.
type GoalSnapshot struct {
	Goals     *entity.UserGoals
	FromCache bool
}

// EntriesSnapshot is one delivery from an entries subscription, ordered by
// date ascending. FromCache marks a purely local, unconfirmed view.
type EntriesSnapshot struct {
	Entries   []entity.WeightEntry
	FromCache bool
}

// Subscription is the cancellation token for a live store subscription.
type Subscription interface {
	// Unsubscribe stops delivery. It is safe to call more than once.
	Unsubscribe()
}

// DocumentStore is the narrow interface to the cache-then-server document
// store holding per-user goal and entry documents. Subscriptions deliver the
// local cache view first, then server-confirmed results, then live updates.
type DocumentStore interface {
	// SubscribeEntries opens a live subscription to the user's entry
	// collection, ordered by date ascending.
	SubscribeEntries(ctx context.Context, userID uuid.UUID, onData func(EntriesSnapshot)) (Subscription, error)

	// SubscribeGoal opens a live subscription to the user's goal document.
	// onError may be invoked instead of onData when the subscription fails.
	SubscribeGoal(ctx context.Context, userID uuid.UUID, onData func(GoalSnapshot), onError func(error)) (Subscription, error)

	// ReadGoalFromServer performs a forced read that bypasses the cache.
	// A nil result with nil error means the server confirmed absence.
	ReadGoalFromServer(ctx context.Context, userID uuid.UUID) (*entity.UserGoals, error)

	// WriteGoal replaces the user's goal document wholesale.
	WriteGoal(ctx context.Context, userID uuid.UUID, goals entity.UserGoals) error

	// WriteEntry creates or replaces the entry keyed by its date.
	WriteEntry(ctx context.Context, userID uuid.UUID, entry entity.WeightEntry) error

	// DeleteEntry removes the entry keyed by date.
	DeleteEntry(ctx context.Context, userID uuid.UUID, date valueobject.CivilDate) error

	// MigrateLegacyEntries imports any pre-existing legacy local entries into
	// the store. One-shot, best-effort, idempotent.
	MigrateLegacyEntries(ctx context.Context, userID uuid.UUID) error
}
