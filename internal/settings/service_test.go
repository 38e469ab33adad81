package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versetab/verse-tab-api/internal/store"
)

func TestGet_DefaultsWhenEmpty(t *testing.T) {
	svc := NewService(store.NewMemory())

	got := svc.Get(context.Background())
	assert.Equal(t, Defaults(), got)
}

func TestGet_BackfillsNewFieldsAndCategories(t *testing.T) {
	kv := store.NewMemory()
	svc := NewService(kv)
	ctx := context.Background()

	// A settings blob saved by an older client: translation only, and a
	// category map missing "underwater" with an explicit false for galaxy.
	old := map[string]any{
		"translation": TranslationNKJV,
		"enabled_categories": map[string]bool{
			"nature":    true,
			"galaxy":    false,
			"oceans":    true,
			"mountains": true,
		},
	}
	require.NoError(t, kv.Set(ctx, store.KeySettings, old))

	got := svc.Get(ctx)

	// Explicit choices survive.
	assert.Equal(t, TranslationNKJV, got.Translation)
	assert.False(t, got.EnabledCategories["galaxy"])

	// Missing fields and categories are backfilled from defaults.
	assert.Equal(t, ModeDaily, got.VerseMode)
	assert.Equal(t, SourceUnsplash, got.BackgroundSource)
	assert.True(t, got.EnabledCategories["underwater"])
}

func TestSave_NotifiesOnlyChangedKeys(t *testing.T) {
	kv := store.NewMemory()
	svc := NewService(kv)
	ctx := context.Background()

	var gotChanged []string
	var gotSettings Settings
	unsubscribe := svc.Subscribe(func(s Settings, changed []string) {
		gotSettings = s
		gotChanged = changed
	})
	defer unsubscribe()

	next := Defaults()
	next.Translation = TranslationNKJV
	require.NoError(t, svc.Save(ctx, next))

	assert.Equal(t, []string{KeyTranslation}, gotChanged)
	assert.Equal(t, TranslationNKJV, gotSettings.Translation)
}

func TestSave_NoChangeNoNotification(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	called := false
	defer svc.Subscribe(func(Settings, []string) { called = true })()

	require.NoError(t, svc.Save(ctx, Defaults()))
	assert.False(t, called)
}

func TestSave_BackgroundChangeInvalidatesCachedImage(t *testing.T) {
	kv := store.NewMemory()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, store.KeyCachedDailyImage, map[string]string{"date": "2024-01-15"}))

	next := Defaults()
	next.BackgroundSource = SourceCustom
	require.NoError(t, svc.Save(ctx, next))

	var out map[string]string
	found, err := kv.Get(ctx, store.KeyCachedDailyImage, &out)
	require.NoError(t, err)
	assert.False(t, found, "cached daily image should be invalidated")
}

func TestSave_TranslationChangeKeepsCachedImage(t *testing.T) {
	kv := store.NewMemory()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, store.KeyCachedDailyImage, map[string]string{"date": "2024-01-15"}))

	next := Defaults()
	next.Translation = TranslationNKJV
	require.NoError(t, svc.Save(ctx, next))

	var out map[string]string
	found, err := kv.Get(ctx, store.KeyCachedDailyImage, &out)
	require.NoError(t, err)
	assert.True(t, found, "translation is not background-affecting")
}

func TestSubscribe_UnsubscribeStops(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	calls := 0
	unsubscribe := svc.Subscribe(func(Settings, []string) { calls++ })

	next := Defaults()
	next.VerseMode = ModeRandom
	require.NoError(t, svc.Save(ctx, next))
	assert.Equal(t, 1, calls)

	unsubscribe()

	next.VerseMode = ModeDaily
	require.NoError(t, svc.Save(ctx, next))
	assert.Equal(t, 1, calls)
}

func TestEnabledCategoryList_SortedAndFiltered(t *testing.T) {
	s := Settings{EnabledCategories: map[string]bool{
		"oceans": true, "galaxy": true, "nature": false,
	}}
	assert.Equal(t, []string{"galaxy", "oceans"}, s.EnabledCategoryList())
}
