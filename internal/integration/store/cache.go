// Package store implements the cache-then-server document store over Redis
// and PostgreSQL, with Redis pub/sub driving live subscription updates.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/weight-tracker/backend/internal/domain/entity"
)

const (
	// absentMarker is cached after a server read confirms a document does
	// not exist, so the cache can answer "absent" without another round trip.
	absentMarker = "__absent__"

	// docGoal and docEntries name the documents on the invalidation channel.
	docGoal    = "goal"
	docEntries = "entries"
)

// goalDoc is the cached JSON form of a goal document.
type goalDoc struct {
	StartWeight  string `json:"start_weight"`
	TargetWeight string `json:"target_weight"`
	StartDate    string `json:"start_date"`
	TargetDate   string `json:"target_date"`
}

// entryDoc is the cached JSON form of one weight entry.
type entryDoc struct {
	Date   string `json:"date"`
	Weight string `json:"weight"`
}

// documentCache is the Redis cache tier in front of the database.
type documentCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func newDocumentCache(rdb *redis.Client, ttl time.Duration) *documentCache {
	return &documentCache{rdb: rdb, ttl: ttl}
}

func goalKey(userID uuid.UUID) string {
	return "wtr:user:" + userID.String() + ":goal"
}

func entriesKey(userID uuid.UUID) string {
	return "wtr:user:" + userID.String() + ":entries"
}

func syncChannel(userID uuid.UUID) string {
	return "wtr:sync:" + userID.String()
}

// GetGoal returns the cached goal view. found=false means the cache holds no
// opinion; found=true with a nil goal means the cache remembers a confirmed
// absence.
func (c *documentCache) GetGoal(ctx context.Context, userID uuid.UUID) (goals *entity.UserGoals, found bool, err error) {
	raw, err := c.rdb.Get(ctx, goalKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if raw == absentMarker {
		return nil, true, nil
	}

	var doc goalDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false, fmt.Errorf("corrupt cached goal for user %s: %w", userID, err)
	}
	decoded, err := doc.toEntity()
	if err != nil {
		return nil, false, err
	}
	return decoded, true, nil
}

// SetGoal caches the goal document, or the absence marker when goals is nil.
func (c *documentCache) SetGoal(ctx context.Context, userID uuid.UUID, goals *entity.UserGoals) error {
	if goals == nil {
		return c.rdb.Set(ctx, goalKey(userID), absentMarker, c.ttl).Err()
	}
	raw, err := json.Marshal(goalDocFromEntity(*goals))
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, goalKey(userID), raw, c.ttl).Err()
}

// GetEntries returns the cached entry list. found=false means a cold cache.
func (c *documentCache) GetEntries(ctx context.Context, userID uuid.UUID) (entries []entity.WeightEntry, found bool, err error) {
	raw, err := c.rdb.Get(ctx, entriesKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var docs []entryDoc
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, false, fmt.Errorf("corrupt cached entries for user %s: %w", userID, err)
	}
	entries = make([]entity.WeightEntry, 0, len(docs))
	for _, d := range docs {
		e, err := d.toEntity()
		if err != nil {
			return nil, false, err
		}
		entries = append(entries, e)
	}
	return entries, true, nil
}

// SetEntries caches the full entry list for a user.
func (c *documentCache) SetEntries(ctx context.Context, userID uuid.UUID, entries []entity.WeightEntry) error {
	docs := make([]entryDoc, len(entries))
	for i, e := range entries {
		docs[i] = entryDocFromEntity(e)
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, entriesKey(userID), raw, c.ttl).Err()
}

// InvalidateEntries drops the cached entry list.
func (c *documentCache) InvalidateEntries(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, entriesKey(userID)).Err()
}

// Publish notifies subscribers that the named document changed.
func (c *documentCache) Publish(ctx context.Context, userID uuid.UUID, doc string) error {
	return c.rdb.Publish(ctx, syncChannel(userID), doc).Err()
}

// Listen opens a pub/sub listener on the user's invalidation channel.
func (c *documentCache) Listen(ctx context.Context, userID uuid.UUID) *redis.PubSub {
	return c.rdb.Subscribe(ctx, syncChannel(userID))
}
