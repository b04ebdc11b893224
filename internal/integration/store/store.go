package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/weight-tracker/backend/internal/application/adapter"
	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// Store is the cache-then-server document store. Reads hit the Redis cache
// first and fall back to PostgreSQL; writes go to PostgreSQL and refresh or
// invalidate the cache. Subscriptions deliver the cache view, then the
// server-confirmed view, then live updates driven by pub/sub notifications.
type Store struct {
	entries adapter.EntryRepository
	goals   adapter.GoalsRepository
	legacy  adapter.LegacyEntryStore
	cache   *documentCache
	logger  *slog.Logger
}

// NewStore wires the persistence tier, the Redis cache tier and the legacy
// on-disk store into one adapter.DocumentStore.
func NewStore(
	entries adapter.EntryRepository,
	goals adapter.GoalsRepository,
	legacy adapter.LegacyEntryStore,
	rdb *redis.Client,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *Store {
	return &Store{
		entries: entries,
		goals:   goals,
		legacy:  legacy,
		cache:   newDocumentCache(rdb, cacheTTL),
		logger:  logger,
	}
}

var _ adapter.DocumentStore = (*Store)(nil)

// subscription cancels the pub/sub loop behind a live subscription.
type subscription struct {
	cancel context.CancelFunc
	pubsub *redis.PubSub
	once   sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		_ = s.pubsub.Close()
	})
}

// SubscribeGoal opens a live subscription to the user's goal document. The
// cache view is delivered first (when the cache holds one), then the
// server-confirmed view, then a fresh server read for every change
// notification. onError is invoked only when the pub/sub channel itself fails.
func (s *Store) SubscribeGoal(ctx context.Context, userID uuid.UUID, onData func(adapter.GoalSnapshot), onError func(error)) (adapter.Subscription, error) {
	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	pubsub := s.cache.Listen(subCtx, userID)
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, err
	}
	sub := &subscription{cancel: cancel, pubsub: pubsub}

	go func() {
		if goals, found, err := s.cache.GetGoal(subCtx, userID); err == nil && found {
			onData(adapter.GoalSnapshot{Goals: goals, FromCache: true})
		} else if err != nil {
			s.logger.Warn("goal cache read failed, skipping cache snapshot",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()))
		}

		s.deliverGoalFromServer(subCtx, userID, onData)

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					if subCtx.Err() == nil {
						onError(redis.ErrClosed)
					}
					return
				}
				if msg.Payload != docGoal {
					continue
				}
				s.deliverGoalFromServer(subCtx, userID, onData)
			}
		}
	}()

	return sub, nil
}

// deliverGoalFromServer reads the goal from the database, refreshes the cache
// and pushes a server-confirmed snapshot. Read failures are logged and the
// snapshot skipped; the controller's safety net covers a silent start.
func (s *Store) deliverGoalFromServer(ctx context.Context, userID uuid.UUID, onData func(adapter.GoalSnapshot)) {
	goals, err := s.ReadGoalFromServer(ctx, userID)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("goal server read failed, skipping snapshot",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()))
		}
		return
	}
	onData(adapter.GoalSnapshot{Goals: goals, FromCache: false})
}

// SubscribeEntries opens a live subscription to the user's entry collection,
// ordered by date ascending.
func (s *Store) SubscribeEntries(ctx context.Context, userID uuid.UUID, onData func(adapter.EntriesSnapshot)) (adapter.Subscription, error) {
	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	pubsub := s.cache.Listen(subCtx, userID)
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, err
	}
	sub := &subscription{cancel: cancel, pubsub: pubsub}

	go func() {
		if entries, found, err := s.cache.GetEntries(subCtx, userID); err == nil && found {
			onData(adapter.EntriesSnapshot{Entries: entries, FromCache: true})
		} else if err != nil {
			s.logger.Warn("entries cache read failed, skipping cache snapshot",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()))
		}

		s.deliverEntriesFromServer(subCtx, userID, onData)

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if msg.Payload != docEntries {
					continue
				}
				s.deliverEntriesFromServer(subCtx, userID, onData)
			}
		}
	}()

	return sub, nil
}

func (s *Store) deliverEntriesFromServer(ctx context.Context, userID uuid.UUID, onData func(adapter.EntriesSnapshot)) {
	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("entries server read failed, skipping snapshot",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()))
		}
		return
	}
	if err := s.cache.SetEntries(ctx, userID, entries); err != nil && ctx.Err() == nil {
		s.logger.Warn("entries cache refresh failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
	onData(adapter.EntriesSnapshot{Entries: entries, FromCache: false})
}

// ReadGoalFromServer performs a forced read against the database, bypassing
// the cache, and refreshes the cache with the result. A nil result with nil
// error means the server confirmed absence.
func (s *Store) ReadGoalFromServer(ctx context.Context, userID uuid.UUID) (*entity.UserGoals, error) {
	goals, err := s.goals.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetGoal(ctx, userID, goals); err != nil && ctx.Err() == nil {
		s.logger.Warn("goal cache refresh failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
	return goals, nil
}

// WriteGoal replaces the goal document in the database, refreshes the cache
// and notifies subscribers.
func (s *Store) WriteGoal(ctx context.Context, userID uuid.UUID, goals entity.UserGoals) error {
	if err := s.goals.Save(ctx, userID, goals); err != nil {
		return err
	}
	if err := s.cache.SetGoal(ctx, userID, &goals); err != nil {
		s.logger.Warn("goal cache refresh failed after write",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
	if err := s.cache.Publish(ctx, userID, docGoal); err != nil {
		s.logger.Warn("goal change notification failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
	return nil
}

// WriteEntry creates or replaces the entry keyed by its date, then
// invalidates the cached list and notifies subscribers.
func (s *Store) WriteEntry(ctx context.Context, userID uuid.UUID, entry entity.WeightEntry) error {
	if err := s.entries.Upsert(ctx, userID, entry); err != nil {
		return err
	}
	s.invalidateAndNotifyEntries(ctx, userID)
	return nil
}

// DeleteEntry removes the entry keyed by date, then invalidates the cached
// list and notifies subscribers.
func (s *Store) DeleteEntry(ctx context.Context, userID uuid.UUID, date valueobject.CivilDate) error {
	if err := s.entries.Delete(ctx, userID, date); err != nil {
		return err
	}
	s.invalidateAndNotifyEntries(ctx, userID)
	return nil
}

func (s *Store) invalidateAndNotifyEntries(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.InvalidateEntries(ctx, userID); err != nil {
		s.logger.Warn("entries cache invalidation failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
	if err := s.cache.Publish(ctx, userID, docEntries); err != nil {
		s.logger.Warn("entries change notification failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
}

// MigrateLegacyEntries imports any pre-existing legacy on-disk entries for the
// user into the database, then clears the legacy data. Idempotent: once the
// legacy store is empty the migration is a no-op.
func (s *Store) MigrateLegacyEntries(ctx context.Context, userID uuid.UUID) error {
	legacy, err := s.legacy.Load(ctx, userID)
	if err != nil {
		return err
	}
	if len(legacy) == 0 {
		return nil
	}

	if err := s.entries.UpsertBatch(ctx, userID, legacy); err != nil {
		return err
	}
	s.invalidateAndNotifyEntries(ctx, userID)

	if err := s.legacy.Clear(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("migrated legacy entries",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(legacy)))
	return nil
}
