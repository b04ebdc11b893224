package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/weight-tracker/backend/internal/application/adapter"
	"github.com/weight-tracker/backend/internal/domain/entity"
)

// LegacyDiskStore reads entries recorded by the pre-sync on-disk format:
// one JSON document per entry, keyed "<user-id>-<date>".
type LegacyDiskStore struct {
	d *diskv.Diskv
}

// NewLegacyDiskStore opens the legacy store rooted at dir.
func NewLegacyDiskStore(dir string) *LegacyDiskStore {
	return &LegacyDiskStore{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}
}

var _ adapter.LegacyEntryStore = (*LegacyDiskStore)(nil)

// Load returns all legacy entries for the user, or an empty slice when there
// is nothing to migrate.
func (s *LegacyDiskStore) Load(ctx context.Context, userID uuid.UUID) ([]entity.WeightEntry, error) {
	prefix := userID.String() + "-"

	var entries []entity.WeightEntry
	for key := range s.d.KeysPrefix(prefix, ctx.Done()) {
		raw, err := s.d.Read(key)
		if err != nil {
			return nil, fmt.Errorf("failed to read legacy entry %s: %w", key, err)
		}
		var doc entryDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("corrupt legacy entry %s: %w", key, err)
		}
		e, err := doc.toEntity()
		if err != nil {
			return nil, fmt.Errorf("corrupt legacy entry %s: %w", key, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Clear removes the user's legacy data after a successful migration.
func (s *LegacyDiskStore) Clear(ctx context.Context, userID uuid.UUID) error {
	prefix := userID.String() + "-"

	var keys []string
	for key := range s.d.KeysPrefix(prefix, ctx.Done()) {
		keys = append(keys, key)
	}
	for _, key := range keys {
		if err := s.d.Erase(key); err != nil {
			return fmt.Errorf("failed to erase legacy entry %s: %w", key, err)
		}
	}
	return nil
}

// WriteEntry stores one legacy-format entry. Used by migration tests and by
// the import tooling; the application itself only reads and clears.
func (s *LegacyDiskStore) WriteEntry(userID uuid.UUID, e entity.WeightEntry) error {
	raw, err := json.Marshal(entryDocFromEntity(e))
	if err != nil {
		return err
	}
	key := userID.String() + "-" + e.Date.String()
	return s.d.Write(key, raw)
}
