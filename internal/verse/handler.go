package verse

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/versetab/verse-tab-api/internal/settings"
	"github.com/versetab/verse-tab-api/pkg/response"
)

type Handler struct {
	provider *Provider
}

func NewHandler(provider *Provider) Handler {
	return Handler{provider: provider}
}

// DailyVerseHandler serves the extension's fixed daily-verse contract:
// {reference, text, translation, date}. The provider's fallback chain means
// this cannot fail short of a panic.
func (h *Handler) DailyVerseHandler(w http.ResponseWriter, r *http.Request) {
	v := h.provider.GetVerse(r.Context(), settings.ModeDaily, false)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"reference":   v.Reference,
		"text":        v.Text,
		"translation": v.Translation,
		"date":        time.Now().UTC().Format("2006-01-02"),
	})
}

// GetVerseHandler exposes the full provider surface: ?mode=daily|random and
// ?force=true to bypass the daily cache.
func (h *Handler) GetVerseHandler(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode != settings.ModeRandom {
		mode = settings.ModeDaily
	}
	forceNew := r.URL.Query().Get("force") == "true"

	v := h.provider.GetVerse(r.Context(), mode, forceNew)
	response.Success(w, v, "successfully")
}
