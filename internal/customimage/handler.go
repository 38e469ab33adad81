package customimage

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/versetab/verse-tab-api/pkg/response"
)

type Handler struct {
	store   Store
	display *DisplayURLService
}

func NewHandler(store Store, display *DisplayURLService) Handler {
	return Handler{store: store, display: display}
}

// UploadHandler accepts a multipart upload under the "image" field.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxSizeBytes + 1024); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"image": "image file is required",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxSizeBytes+1))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to read upload", err.Error())
		return
	}

	mimeType := header.Header.Get("Content-Type")
	img, err := h.store.Add(r.Context(), header.Filename, mimeType, data)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrTooLarge):
			status = http.StatusRequestEntityTooLarge
		case errors.Is(err, ErrInvalidType):
			status = http.StatusUnsupportedMediaType
		}
		response.Error(w, status, "Failed to save image", err.Error())
		return
	}

	response.Created(w, img, "successfully")
}

func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	images, err := h.store.List(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to list images", err.Error())
		return
	}
	if images == nil {
		images = []Image{}
	}

	type listItem struct {
		Image
		DisplayURL string `json:"display_url"`
	}
	items := make([]listItem, 0, len(images))
	for _, img := range images {
		items = append(items, listItem{Image: img, DisplayURL: h.display.URL(img.ID)})
	}

	response.Success(w, items, "successfully")
}

func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	img, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Image not found", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to get image", err.Error())
		return
	}

	w.Header().Set("Content-Type", img.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(img.SizeBytes, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}

// BlobHandler serves bytes behind a transient display token.
func (h *Handler) BlobHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	id, ok := h.display.Resolve(token)
	if !ok {
		response.Error(w, http.StatusNotFound, "Unknown or expired token", nil)
		return
	}

	img, err := h.store.Get(r.Context(), id)
	if err != nil {
		response.Error(w, http.StatusNotFound, "Image not found", err.Error())
		return
	}

	w.Header().Set("Content-Type", img.MimeType)
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}

func (h *Handler) ThumbnailHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	maxDim := DefaultThumbnailSize
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxDim = n
		}
	}

	img, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Image not found", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to get image", err.Error())
		return
	}

	dataURI, err := Thumbnail(img.Data, maxDim)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, "Failed to build thumbnail", err.Error())
		return
	}

	response.Success(w, map[string]string{"thumbnail": dataURI}, "successfully")
}

func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Image not found", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to delete image", err.Error())
		return
	}

	response.Success(w, "Ok", "successfully")
}

func (h *Handler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to clear images", err.Error())
		return
	}
	response.Success(w, "Ok", "successfully")
}
