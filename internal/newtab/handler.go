// Package newtab serves the combined payload a fresh tab needs in one
// request.
package newtab

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/versetab/verse-tab-api/internal/background"
	"github.com/versetab/verse-tab-api/internal/settings"
	"github.com/versetab/verse-tab-api/internal/streak"
	"github.com/versetab/verse-tab-api/internal/verse"
	"github.com/versetab/verse-tab-api/pkg/response"
)

type Handler struct {
	verses      *verse.Provider
	backgrounds *background.Provider
	settings    *settings.Service
	streaks     *streak.Service
}

func NewHandler(v *verse.Provider, b *background.Provider, st *settings.Service, sk *streak.Service) Handler {
	return Handler{verses: v, backgrounds: b, settings: st, streaks: sk}
}

type payload struct {
	Verse      verse.Verse      `json:"verse"`
	Background background.Image `json:"background"`
	Streak     streak.Record    `json:"streak"`
}

// NewTabHandler resolves the verse and the background concurrently; the two
// chains are independent so their latency overlaps instead of stacking.
// Neither can fail hard thanks to the providers' offline fallbacks.
func (h *Handler) NewTabHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	prefs := h.settings.Get(ctx)

	var out payload
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Verse = h.verses.GetVerse(gctx, prefs.VerseMode, false)
		return nil
	})
	g.Go(func() error {
		out.Background = h.backgrounds.GetBackground(gctx, prefs.BackgroundMode, false)
		return nil
	})
	_ = g.Wait()

	out.Streak = h.streaks.RecordVisit(ctx)

	response.Success(w, out, "successfully")
}
