package background

import (
	"context"
	"log"
	"math/rand"
	"slices"
	"time"

	"github.com/versetab/verse-tab-api/internal/customimage"
	"github.com/versetab/verse-tab-api/internal/selector"
	"github.com/versetab/verse-tab-api/internal/settings"
	"github.com/versetab/verse-tab-api/internal/store"
)

const sourceBlendSeed = "source-blend"

// PhotoSearcher is the remote photo API surface the provider needs.
type PhotoSearcher interface {
	Search(ctx context.Context, keyword, date string) ([]UnsplashPhoto, error)
	VerifyLoads(ctx context.Context, imageURL string) bool
	TrackDownload(downloadLocation string)
}

// Provider resolves today's or the next background image across three
// sources: remote search, user uploads and the bundled local set. Every
// remote or storage failure falls through to the next source; the bundled
// set is terminal and cannot fail.
type Provider struct {
	kv       store.KV
	settings *settings.Service
	remote   PhotoSearcher
	custom   customimage.Store
	display  *customimage.DisplayURLService
	now      func() time.Time
}

func NewProvider(kv store.KV, st *settings.Service, remote PhotoSearcher, custom customimage.Store, display *customimage.DisplayURLService) *Provider {
	return &Provider{
		kv:       kv,
		settings: st,
		remote:   remote,
		custom:   custom,
		display:  display,
		now:      time.Now,
	}
}

// GetBackground resolves a background image for the given mode. forceNew
// bypasses the daily cache.
func (p *Provider) GetBackground(ctx context.Context, mode string, forceNew bool) Image {
	prefs := p.settings.Get(ctx)
	today := p.today()

	if mode == settings.ModeDaily && !forceNew {
		if cached, ok := p.cachedDaily(ctx, today, prefs); ok {
			return cached
		}
	}

	img := p.resolve(ctx, mode, today, prefs)

	if mode == settings.ModeDaily {
		cached := CachedDailyImage{Date: today, Image: img}
		if err := p.kv.Set(ctx, store.KeyCachedDailyImage, cached); err != nil {
			log.Printf("failed to cache daily image: %v", err)
		}
	}
	return img
}

func (p *Provider) resolve(ctx context.Context, mode, today string, prefs settings.Settings) Image {
	switch prefs.BackgroundSource {
	case settings.SourceCustom:
		if img, ok := p.customPick(ctx, mode, today); ok {
			return img
		}
	case settings.SourceBoth:
		if p.hasCustomImages(ctx) && p.pickCustomBranch(mode, today) {
			if img, ok := p.customPick(ctx, mode, today); ok {
				return img
			}
		} else if img, ok := p.remotePick(ctx, mode, today, prefs); ok {
			return img
		}
	default:
		if img, ok := p.remotePick(ctx, mode, today, prefs); ok {
			return img
		}
	}
	return p.localPick(ctx, mode, today, prefs)
}

func (p *Provider) today() string {
	return p.now().UTC().Format("2006-01-02")
}

// cachedDaily accepts a hit only when the cached image's source kind, and
// category for non-custom images, still satisfy the current settings.
func (p *Provider) cachedDaily(ctx context.Context, today string, prefs settings.Settings) (Image, bool) {
	var cached CachedDailyImage
	found, err := p.kv.Get(ctx, store.KeyCachedDailyImage, &cached)
	if err != nil {
		log.Printf("failed to read cached daily image: %v", err)
		return Image{}, false
	}
	if !found || cached.Date != today {
		return Image{}, false
	}

	img := cached.Image
	if img.IsCustom {
		if prefs.BackgroundSource == settings.SourceUnsplash {
			return Image{}, false
		}
	} else {
		if prefs.BackgroundSource == settings.SourceCustom {
			return Image{}, false
		}
		if !prefs.EnabledCategories[img.Category] {
			return Image{}, false
		}
	}
	return img, true
}

// pickCustomBranch decides custom vs remote for source=both. Daily mode
// derives the choice from the date so two loads on the same day agree even
// before the cache is populated.
func (p *Provider) pickCustomBranch(mode, today string) bool {
	if mode == settings.ModeDaily {
		idx, err := selector.DailyIndex(sourceBlendSeed, today, 2)
		if err != nil {
			return false
		}
		return idx == 0
	}
	return rand.Intn(2) == 0
}

func (p *Provider) hasCustomImages(ctx context.Context) bool {
	count, err := p.custom.Count(ctx)
	if err != nil {
		log.Printf("failed to count custom images: %v", err)
		return false
	}
	return count > 0
}

func (p *Provider) category(ctx context.Context, mode string, prefs settings.Settings) (string, bool) {
	enabled := prefs.EnabledCategoryList()
	if len(enabled) == 0 {
		return "", false
	}
	if mode == settings.ModeRandom {
		return enabled[rand.Intn(len(enabled))], true
	}
	cat, err := selector.DailyCategory(p.now(), enabled)
	if err != nil {
		return "", false
	}
	return cat, true
}

// GetCategoryImage resolves an image for an explicit category, the contract
// behind the background-image endpoint. Remote failure falls back to the
// bundled set for the same category.
func (p *Provider) GetCategoryImage(ctx context.Context, mode, category string) Image {
	today := p.today()
	if img, ok := p.remoteForCategory(ctx, mode, today, category); ok {
		return img
	}
	prefs := settings.Settings{EnabledCategories: map[string]bool{category: true}}
	return p.localPick(ctx, mode, today, prefs)
}

func (p *Provider) remotePick(ctx context.Context, mode, today string, prefs settings.Settings) (Image, bool) {
	category, ok := p.category(ctx, mode, prefs)
	if !ok {
		return Image{}, false
	}
	return p.remoteForCategory(ctx, mode, today, category)
}

func (p *Provider) remoteForCategory(ctx context.Context, mode, today, category string) (Image, bool) {
	photos, err := p.remote.Search(ctx, category, today)
	if err != nil {
		log.Printf("remote photo search failed for %q: %v", category, err)
		return Image{}, false
	}

	var idx int
	if mode == settings.ModeRandom {
		history := store.GetHistory(ctx, p.kv, store.KeyImageHistory)
		idx = selector.RandomIndexAvoidingHistory(len(photos), func(i int) bool {
			return slices.Contains(history, photos[i].ID)
		})
	} else {
		idx, err = selector.DailyIndex(category, today, len(photos))
		if err != nil {
			return Image{}, false
		}
	}

	photo := photos[idx]
	if !p.remote.VerifyLoads(ctx, photo.URLs.Regular) {
		log.Printf("chosen remote image failed to load, falling back: %s", photo.ID)
		return Image{}, false
	}

	p.remote.TrackDownload(photo.Links.DownloadLocation)
	store.PushHistory(ctx, p.kv, store.KeyImageHistory, photo.ID, store.ImageHistoryLimit)

	return Image{
		ID:              photo.ID,
		Path:            photo.URLs.Regular,
		FullURL:         photo.URLs.Full,
		ThumbURL:        photo.URLs.Thumb,
		Alt:             photo.AltDescription,
		Category:        category,
		IsUnsplash:      true,
		Photographer:    photo.User.Name,
		PhotographerURL: photo.User.Links.HTML,
	}, true
}

func (p *Provider) customPick(ctx context.Context, mode, today string) (Image, bool) {
	var picked *customimage.Image

	if mode == settings.ModeDaily {
		images, err := p.custom.List(ctx)
		if err != nil || len(images) == 0 {
			return Image{}, false
		}
		idx, err := selector.DailyIndex(settings.SourceCustom, today, len(images))
		if err != nil {
			return Image{}, false
		}
		picked = &images[idx]
	} else {
		history := store.GetHistory(ctx, p.kv, store.KeyCustomImageHistory)
		var err error
		picked, err = p.custom.PickRandom(ctx, history)
		if err != nil || picked == nil {
			return Image{}, false
		}
	}

	store.PushHistory(ctx, p.kv, store.KeyCustomImageHistory, picked.ID, store.CustomImageHistoryLimit)

	return Image{
		ID:       picked.ID,
		Path:     p.display.URL(picked.ID),
		Alt:      picked.Name,
		IsCustom: true,
	}, true
}

// localPick selects from the bundled catalog, preferring enabled categories
// but using the full set when the filter leaves nothing.
func (p *Provider) localPick(ctx context.Context, mode, today string, prefs settings.Settings) Image {
	all := Catalog()

	filtered := make([]CatalogImage, 0, len(all))
	for _, img := range all {
		if prefs.EnabledCategories[img.Category] {
			filtered = append(filtered, img)
		}
	}
	if len(filtered) == 0 {
		filtered = all
	}

	var idx int
	if mode == settings.ModeRandom {
		history := store.GetHistory(ctx, p.kv, store.KeyImageHistory)
		idx = selector.RandomIndexAvoidingHistory(len(filtered), func(i int) bool {
			return slices.Contains(history, filtered[i].ID)
		})
	} else {
		var err error
		idx, err = selector.DailyIndex("local", today, len(filtered))
		if err != nil {
			idx = 0
		}
	}
	if idx < 0 {
		// Catalog is embedded and verified non-empty at parse time.
		return Image{}
	}

	img := filtered[idx]
	store.PushHistory(ctx, p.kv, store.KeyImageHistory, img.ID, store.ImageHistoryLimit)

	return Image{
		ID:       img.ID,
		Path:     img.Filename,
		Alt:      img.Alt,
		Category: img.Category,
	}
}
