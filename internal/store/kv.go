// Package store provides the persistent key-value storage the providers
// share: settings, caches, quota counters, rotation state and history lists.
// Values are JSON documents keyed by string.
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrInternalServer = errors.New("internal server error")
)

// Well-known keys. Kept in one place so cache invalidation and day-rollover
// resets touch the same names the providers read.
const (
	KeySettings           = "settings"
	KeyCachedDailyVerse   = "cached_daily_verse"
	KeyCachedDailyImage   = "cached_daily_image"
	KeyApiUsage           = "api_usage"
	KeyVerseRotation      = "verse_rotation"
	KeyImageHistory       = "image_history"
	KeyCustomImageHistory = "custom_image_history"
	KeyFavorites          = "favorite_verses"
	KeyStreak             = "streak"
	KeyBackendURL         = "backend_url_override"
)

// KeyVerseHistory returns the per-translation verse history key.
func KeyVerseHistory(translation string) string {
	return "verse_history_" + translation
}

// KV is an asynchronous string-to-JSON mapping. Get unmarshals into dest and
// reports whether the key was present; absence is not an error, so callers
// fall back to defaults instead of failing.
type KV interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
