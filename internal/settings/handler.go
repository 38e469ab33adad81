package settings

import (
	"encoding/json"
	"net/http"

	"github.com/versetab/verse-tab-api/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) Handler {
	return Handler{service: service}
}

func (h *Handler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.Get(r.Context()), "successfully")
}

func (h *Handler) SaveSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var next Settings
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if err := h.service.Save(r.Context(), next); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save settings", err.Error())
		return
	}

	response.Success(w, h.service.Get(r.Context()), "successfully")
}
