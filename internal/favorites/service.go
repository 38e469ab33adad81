// Package favorites keeps the user's saved verses, bounded and
// most-recent-first, in the key-value store.
package favorites

import (
	"context"
	"log"
	"slices"
	"time"

	"github.com/versetab/verse-tab-api/internal/store"
	"github.com/versetab/verse-tab-api/internal/verse"
)

// Limit caps the favorites list; the oldest entry is dropped on overflow.
const Limit = 20

type FavoriteVerse struct {
	Verse   verse.Verse `json:"verse"`
	AddedAt time.Time   `json:"added_at"`
}

type Service struct {
	kv store.KV
}

func NewService(kv store.KV) Service {
	return Service{kv: kv}
}

// Toggle adds the verse to favorites, or removes it when already present.
// Returns whether the verse is favorited afterwards.
func (s *Service) Toggle(ctx context.Context, v verse.Verse) (bool, error) {
	favs, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	before := len(favs)
	favs = slices.DeleteFunc(favs, func(f FavoriteVerse) bool {
		return f.Verse.Reference == v.Reference && f.Verse.Translation == v.Translation
	})
	if len(favs) < before {
		return false, s.kv.Set(ctx, store.KeyFavorites, favs)
	}

	favs = append([]FavoriteVerse{{Verse: v, AddedAt: time.Now()}}, favs...)
	if len(favs) > Limit {
		favs = favs[:Limit]
	}
	return true, s.kv.Set(ctx, store.KeyFavorites, favs)
}

func (s *Service) List(ctx context.Context) ([]FavoriteVerse, error) {
	var favs []FavoriteVerse
	if _, err := s.kv.Get(ctx, store.KeyFavorites, &favs); err != nil {
		log.Printf("failed to read favorites: %v", err)
		return nil, err
	}
	return favs, nil
}
