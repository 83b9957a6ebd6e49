// ABOUTME: EntryTracker remembers which entries have been seen across cycles
// ABOUTME: Backed by any Cache so seen state can live in memory, Redis or SQLite

package feed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"newsreader-app/core/domain"
	coreerrors "newsreader-app/core/errors"
	"newsreader-app/core/interfaces"
)

const seenKeyPrefix = "newsreader:seen:"

// EntryTracker filters out entries already reported within the TTL
type EntryTracker struct {
	cache  interfaces.Cache
	ttl    time.Duration
	logger interfaces.Logger
}

// NewEntryTracker creates a tracker over deps.Cache. A zero ttl keeps entries forever.
func NewEntryTracker(deps interfaces.Dependencies, ttl time.Duration) (*EntryTracker, error) {
	if deps.Cache == nil {
		return nil, &coreerrors.ValidationError{Field: "cache", Message: "entry tracker requires a cache"}
	}
	return &EntryTracker{cache: deps.Cache, ttl: ttl, logger: deps.LoggerOrNop()}, nil
}

// Fresh returns the entries not seen before, in input order, and marks them seen.
// Cache write failures are logged and the entry is still reported.
func (t *EntryTracker) Fresh(ctx context.Context, entries []domain.Entry) []domain.Entry {
	fresh := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		key := seenKey(e)
		if _, err := t.cache.Get(ctx, key); err == nil {
			continue
		}

		if err := t.cache.Set(ctx, key, []byte(e.ID), t.ttl); err != nil {
			t.logger.Warn("Failed to record seen entry", map[string]interface{}{
				"id":    e.ID,
				"error": err.Error(),
			})
		}
		fresh = append(fresh, e)
	}
	return fresh
}

// Forget clears the seen marker of an entry
func (t *EntryTracker) Forget(ctx context.Context, e domain.Entry) error {
	return t.cache.Delete(ctx, seenKey(e))
}

// seenKey identifies an entry. Entries without an id fall back to link and title.
func seenKey(e domain.Entry) string {
	identity := e.ID
	if identity == domain.DefaultID {
		identity = e.Link + "\x00" + e.Title
	}
	sum := sha256.Sum256([]byte(identity))
	return seenKeyPrefix + hex.EncodeToString(sum[:16])
}
