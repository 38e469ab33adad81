package background

import (
	"encoding/json"
	"net/http"

	"github.com/versetab/verse-tab-api/internal/settings"
	"github.com/versetab/verse-tab-api/pkg/response"
)

// Categories the background-image endpoint accepts.
var knownCategories = map[string]bool{
	"nature":     true,
	"galaxy":     true,
	"oceans":     true,
	"mountains":  true,
	"underwater": true,
}

type Handler struct {
	provider *Provider
}

func NewHandler(provider *Provider) Handler {
	return Handler{provider: provider}
}

// BackgroundImageHandler serves the extension's fixed contract:
// ?category=&mode= returning {id, url, fullUrl, thumbUrl, alt, photographer,
// photographerUrl, category}.
func (h *Handler) BackgroundImageHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if !knownCategories[category] {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "invalid_category",
			"message": "category must be one of nature, galaxy, oceans, mountains, underwater",
		})
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode != settings.ModeRandom {
		mode = settings.ModeDaily
	}

	img := h.provider.GetCategoryImage(r.Context(), mode, category)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"id":              img.ID,
		"url":             img.Path,
		"fullUrl":         img.FullURL,
		"thumbUrl":        img.ThumbURL,
		"alt":             img.Alt,
		"photographer":    img.Photographer,
		"photographerUrl": img.PhotographerURL,
		"category":        img.Category,
	})
}

// GetBackgroundHandler exposes the settings-driven provider surface:
// ?mode=daily|random and ?force=true.
func (h *Handler) GetBackgroundHandler(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode != settings.ModeRandom {
		mode = settings.ModeDaily
	}
	forceNew := r.URL.Query().Get("force") == "true"

	img := h.provider.GetBackground(r.Context(), mode, forceNew)
	response.Success(w, img, "successfully")
}
