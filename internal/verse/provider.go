package verse

import (
	"context"
	"log"
	"math/rand"
	"slices"
	"time"

	"github.com/versetab/verse-tab-api/internal/selector"
	"github.com/versetab/verse-tab-api/internal/settings"
	"github.com/versetab/verse-tab-api/internal/store"
)

const dailySeed = "verse"

// PassageFetcher fetches passage text from a remote Bible API.
type PassageFetcher interface {
	FetchPassage(ctx context.Context, reference string) (*Verse, error)
}

// Provider resolves today's or the next verse. Remote fetches are bounded by
// a per-day quota; once it is spent the provider rotates through verses
// already fetched today, and the embedded offline bundle is the terminal
// fallback. Resolution never fails: the worst case is bundled content.
type Provider struct {
	kv       store.KV
	settings *settings.Service
	remote   PassageFetcher
	maxCalls int
	now      func() time.Time
}

func NewProvider(kv store.KV, st *settings.Service, remote PassageFetcher, maxCalls int) *Provider {
	return &Provider{
		kv:       kv,
		settings: st,
		remote:   remote,
		maxCalls: maxCalls,
		now:      time.Now,
	}
}

// GetVerse resolves a verse for the given mode. forceNew bypasses the daily
// cache and attempts a fresh pick through the same quota/fallback chain.
func (p *Provider) GetVerse(ctx context.Context, mode string, forceNew bool) Verse {
	prefs := p.settings.Get(ctx)
	today := p.today()

	if mode == settings.ModeDaily && !forceNew {
		if cached, ok := p.cachedDaily(ctx, today, prefs.Translation); ok {
			return cached
		}
	}

	// The offline translation never touches the network.
	if prefs.Translation == settings.OfflineTranslation {
		v := p.offlineVerse(ctx, mode, today)
		p.finish(ctx, mode, today, v)
		return v
	}

	if p.CanMakeAPICall(ctx) {
		ref := p.pickReference(mode)
		remote, err := p.remote.FetchPassage(ctx, ref)
		if err == nil {
			p.recordFetch(ctx, today, *remote)
			p.finish(ctx, mode, today, *remote)
			return *remote
		}
		log.Printf("remote verse fetch failed for %q: %v", ref, err)
	}

	if rotated, ok := p.rotateCached(ctx, today); ok {
		p.finish(ctx, mode, today, rotated)
		return rotated
	}

	v := p.offlineVerse(ctx, mode, today)
	p.finish(ctx, mode, today, v)
	return v
}

// CanMakeAPICall reports whether today's remote-fetch quota has room left.
func (p *Provider) CanMakeAPICall(ctx context.Context) bool {
	usage := p.loadUsage(ctx)
	return usage.CallCount < p.maxCalls
}

func (p *Provider) today() string {
	return p.now().UTC().Format("2006-01-02")
}

func (p *Provider) cachedDaily(ctx context.Context, today, translation string) (Verse, bool) {
	var cached CachedDailyVerse
	found, err := p.kv.Get(ctx, store.KeyCachedDailyVerse, &cached)
	if err != nil {
		log.Printf("failed to read cached daily verse: %v", err)
		return Verse{}, false
	}
	if !found || cached.Date != today || cached.Verse.Translation != translation {
		return Verse{}, false
	}
	return cached.Verse, true
}

// loadUsage returns today's usage record, resetting it when the stored date
// has rolled over.
func (p *Provider) loadUsage(ctx context.Context) APIUsage {
	var usage APIUsage
	if _, err := p.kv.Get(ctx, store.KeyApiUsage, &usage); err != nil {
		log.Printf("failed to read api usage: %v", err)
	}
	if usage.Date != p.today() {
		usage = APIUsage{Date: p.today()}
	}
	return usage
}

func (p *Provider) recordFetch(ctx context.Context, today string, v Verse) {
	usage := p.loadUsage(ctx)
	usage.CallCount++
	already := slices.ContainsFunc(usage.FetchedVerses, func(f Verse) bool {
		return f.Reference == v.Reference
	})
	if !already {
		usage.FetchedVerses = append(usage.FetchedVerses, v)
	}
	if err := p.kv.Set(ctx, store.KeyApiUsage, usage); err != nil {
		log.Printf("failed to save api usage: %v", err)
	}
}

// rotateCached advances the rotation index and returns the next of today's
// already-fetched verses, if any.
func (p *Provider) rotateCached(ctx context.Context, today string) (Verse, bool) {
	usage := p.loadUsage(ctx)
	if len(usage.FetchedVerses) == 0 {
		return Verse{}, false
	}

	var st RotationState
	if _, err := p.kv.Get(ctx, store.KeyVerseRotation, &st); err != nil {
		log.Printf("failed to read rotation state: %v", err)
	}
	st.Index = (st.Index + 1) % len(usage.FetchedVerses)
	if err := p.kv.Set(ctx, store.KeyVerseRotation, st); err != nil {
		log.Printf("failed to save rotation state: %v", err)
	}
	return usage.FetchedVerses[st.Index], true
}

// pickReference chooses which canonical reference to ask the remote API for.
// Daily mode indexes the 365-entry list by day of year, so every caller asks
// for the same passage on the same day.
func (p *Provider) pickReference(mode string) string {
	refs := References()
	if mode == settings.ModeRandom {
		return refs[rand.Intn(len(refs))]
	}
	return refs[selector.DayOfYear(p.now())%len(refs)]
}

func (p *Provider) offlineVerse(ctx context.Context, mode, today string) Verse {
	translation, verses := OfflineBundle()

	var idx int
	if mode == settings.ModeRandom {
		history := store.GetHistory(ctx, p.kv, store.KeyVerseHistory(translation))
		idx = selector.RandomIndexAvoidingHistory(len(verses), func(i int) bool {
			return slices.Contains(history, verses[i].ID)
		})
	} else {
		var err error
		idx, err = selector.DailyIndex(dailySeed, today, len(verses))
		if err != nil {
			idx = 0
		}
	}

	bv := verses[idx]
	store.PushHistory(ctx, p.kv, store.KeyVerseHistory(translation), bv.ID, store.VerseHistoryLimit)
	return Verse{
		Reference:   bv.Reference,
		Text:        bv.Text,
		Translation: translation,
		IsOffline:   true,
	}
}

// finish caches daily results and records random-mode history.
func (p *Provider) finish(ctx context.Context, mode, today string, v Verse) {
	if mode != settings.ModeDaily {
		if !v.IsOffline {
			store.PushHistory(ctx, p.kv, store.KeyVerseHistory(v.Translation), v.Reference, store.VerseHistoryLimit)
		}
		return
	}
	cached := CachedDailyVerse{Date: today, Verse: v}
	if err := p.kv.Set(ctx, store.KeyCachedDailyVerse, cached); err != nil {
		log.Printf("failed to cache daily verse: %v", err)
	}
}
