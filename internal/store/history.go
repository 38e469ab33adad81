package store

import (
	"context"
	"log"
	"slices"
)

// History list caps. History only biases random selection away from recent
// repeats, so overflow drops the oldest entries.
const (
	VerseHistoryLimit       = 20
	ImageHistoryLimit       = 5
	CustomImageHistoryLimit = 5
)

// GetHistory loads a bounded most-recent-first ID list. Storage failures are
// logged and reported as an empty list; history is best-effort.
func GetHistory(ctx context.Context, kv KV, key string) []string {
	var ids []string
	if _, err := kv.Get(ctx, key, &ids); err != nil {
		log.Printf("failed to read history %s: %v", key, err)
		return nil
	}
	return ids
}

// PushHistory prepends id to the list under key, de-duplicating and trimming
// to limit.
func PushHistory(ctx context.Context, kv KV, key, id string, limit int) {
	ids := GetHistory(ctx, kv, key)
	ids = slices.DeleteFunc(ids, func(s string) bool { return s == id })
	ids = append([]string{id}, ids...)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	if err := kv.Set(ctx, key, ids); err != nil {
		log.Printf("failed to save history %s: %v", key, err)
	}
}
