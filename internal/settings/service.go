package settings

import (
	"context"
	"log"
	"maps"
	"sync"

	"dario.cat/mergo"

	"github.com/versetab/verse-tab-api/internal/store"
)

// Top-level settings keys reported to subscribers when their value changes.
const (
	KeyTranslation       = "translation"
	KeyVerseMode         = "verse_mode"
	KeyBackgroundMode    = "background_mode"
	KeyBackgroundSource  = "background_source"
	KeyEnabledCategories = "enabled_categories"
	KeyBackendURL        = "backend_url"
)

// SubscribeFunc receives the full new settings and just the keys that
// actually changed.
type SubscribeFunc func(s Settings, changed []string)

// Service reads and writes the settings blob and fans out change
// notifications. Saving a background-affecting key invalidates the cached
// daily image so the next background read recomputes.
type Service struct {
	kv store.KV

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]SubscribeFunc
}

func NewService(kv store.KV) *Service {
	return &Service{
		kv:          kv,
		subscribers: make(map[int]SubscribeFunc),
	}
}

// Get returns the stored settings deep-merged over the defaults. Fields and
// categories introduced after the user last saved are backfilled; explicit
// user choices are never overwritten. Storage failures degrade to defaults.
func (s *Service) Get(ctx context.Context) Settings {
	defaults := Defaults()

	var stored Settings
	found, err := s.kv.Get(ctx, store.KeySettings, &stored)
	if err != nil {
		log.Printf("failed to read settings, using defaults: %v", err)
		return defaults
	}
	if !found {
		return defaults
	}

	// mergo fills zero-valued fields from the defaults. The category map is
	// merged by hand: a stored false is an explicit user choice, not a zero
	// value to backfill.
	storedCategories := stored.EnabledCategories
	if err := mergo.Merge(&stored, defaults); err != nil {
		log.Printf("failed to merge settings over defaults: %v", err)
		return defaults
	}
	if storedCategories == nil {
		stored.EnabledCategories = maps.Clone(defaults.EnabledCategories)
	} else {
		stored.EnabledCategories = maps.Clone(storedCategories)
		for name, enabled := range defaults.EnabledCategories {
			if _, ok := stored.EnabledCategories[name]; !ok {
				stored.EnabledCategories[name] = enabled
			}
		}
	}
	return stored
}

// Save persists the new settings and notifies subscribers with the keys
// whose values truly changed.
func (s *Service) Save(ctx context.Context, next Settings) error {
	prev := s.Get(ctx)

	if err := s.kv.Set(ctx, store.KeySettings, next); err != nil {
		return err
	}

	changed := diff(prev, next)
	if len(changed) == 0 {
		return nil
	}

	if backgroundAffecting(changed) {
		if err := s.kv.Delete(ctx, store.KeyCachedDailyImage); err != nil {
			log.Printf("failed to invalidate cached daily image: %v", err)
		}
	}

	s.mu.Lock()
	subs := make([]SubscribeFunc, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next, changed)
	}
	return nil
}

// Subscribe registers fn for settings-change notifications and returns an
// unsubscribe handle.
func (s *Service) Subscribe(fn SubscribeFunc) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func diff(prev, next Settings) []string {
	var changed []string
	if prev.Translation != next.Translation {
		changed = append(changed, KeyTranslation)
	}
	if prev.VerseMode != next.VerseMode {
		changed = append(changed, KeyVerseMode)
	}
	if prev.BackgroundMode != next.BackgroundMode {
		changed = append(changed, KeyBackgroundMode)
	}
	if prev.BackgroundSource != next.BackgroundSource {
		changed = append(changed, KeyBackgroundSource)
	}
	if !maps.Equal(prev.EnabledCategories, next.EnabledCategories) {
		changed = append(changed, KeyEnabledCategories)
	}
	if prev.BackendURL != next.BackendURL {
		changed = append(changed, KeyBackendURL)
	}
	return changed
}

func backgroundAffecting(changed []string) bool {
	for _, key := range changed {
		switch key {
		case KeyBackgroundMode, KeyBackgroundSource, KeyEnabledCategories:
			return true
		}
	}
	return false
}
