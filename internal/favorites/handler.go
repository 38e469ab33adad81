package favorites

import (
	"encoding/json"
	"net/http"

	"github.com/versetab/verse-tab-api/internal/verse"
	"github.com/versetab/verse-tab-api/pkg/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return Handler{service: service}
}

type toggleRequest struct {
	Verse verse.Verse `json:"verse"`
}

func (h *Handler) ToggleFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if req.Verse.Reference == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"verse.reference": "verse reference is required",
		})
		return
	}

	saved, err := h.service.Toggle(r.Context(), req.Verse)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save favourite", err.Error())
		return
	}

	response.Success(w, map[string]bool{
		"is_saved": saved,
	}, "successfully")
}

func (h *Handler) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	favs, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to get favourite verses", err.Error())
		return
	}
	if favs == nil {
		favs = []FavoriteVerse{}
	}

	response.Success(w, favs, "successfully")
}
