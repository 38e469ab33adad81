package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/versetab/verse-tab-api/internal/background"
	"github.com/versetab/verse-tab-api/internal/customimage"
	"github.com/versetab/verse-tab-api/internal/favorites"
	"github.com/versetab/verse-tab-api/internal/newtab"
	"github.com/versetab/verse-tab-api/internal/settings"
	"github.com/versetab/verse-tab-api/internal/streak"
	"github.com/versetab/verse-tab-api/internal/verse"
	"github.com/versetab/verse-tab-api/pkg/response"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Get home route
	r.Get("/", s.ServerIsWorking)
	r.Get("/health", s.HealthHandler)

	r.Route("/api", func(r chi.Router) {
		s.loadVerseRoutes(r)
		s.loadBackgroundRoutes(r)
		s.loadCustomImageRoutes(r)
		s.loadSettingsRoutes(r)
		s.loadNewTabRoutes(r)
	})

	return r
}

func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "Welcome to Verse Tab api"
	response.Success(w, resp, "Success")
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.db.Health(), "Success")
}

func (s *Server) loadVerseRoutes(router chi.Router) {
	verseHandler := verse.NewHandler(s.verses)
	favService := favorites.NewService(s.kv)
	favHandler := favorites.NewHandler(favService)

	router.Get("/daily-verse", verseHandler.DailyVerseHandler)
	router.Get("/verse", verseHandler.GetVerseHandler)

	router.Get("/favorites", favHandler.ListFavoritesHandler)
	router.Post("/favorites/toggle", favHandler.ToggleFavoriteHandler)
}

func (s *Server) loadBackgroundRoutes(router chi.Router) {
	backgroundHandler := background.NewHandler(s.backgrounds)

	router.Get("/background-image", backgroundHandler.BackgroundImageHandler)
	router.Get("/background", backgroundHandler.GetBackgroundHandler)
}

func (s *Server) loadCustomImageRoutes(router chi.Router) {
	customHandler := customimage.NewHandler(s.customStore, s.display)

	router.Route("/custom-images", func(r chi.Router) {
		r.Post("/", customHandler.UploadHandler)
		r.Get("/", customHandler.ListHandler)
		r.Delete("/", customHandler.ClearHandler)
		r.Get("/blob/{token}", customHandler.BlobHandler)
		r.Get("/{id}", customHandler.GetHandler)
		r.Get("/{id}/thumbnail", customHandler.ThumbnailHandler)
		r.Delete("/{id}", customHandler.DeleteHandler)
	})
}

func (s *Server) loadSettingsRoutes(router chi.Router) {
	settingsHandler := settings.NewHandler(s.settings)

	router.Get("/settings", settingsHandler.GetSettingsHandler)
	router.Put("/settings", settingsHandler.SaveSettingsHandler)
}

func (s *Server) loadNewTabRoutes(router chi.Router) {
	streakHandler := streak.NewHandler(s.streaks)
	newTabHandler := newtab.NewHandler(s.verses, s.backgrounds, s.settings, s.streaks)

	router.Get("/new-tab", newTabHandler.NewTabHandler)
	router.Get("/streak", streakHandler.GetStreakHandler)
}
