package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/versetab/verse-tab-api/internal/background"
	"github.com/versetab/verse-tab-api/internal/customimage"
	"github.com/versetab/verse-tab-api/internal/database"
	"github.com/versetab/verse-tab-api/internal/settings"
	"github.com/versetab/verse-tab-api/internal/store"
	"github.com/versetab/verse-tab-api/internal/streak"
	"github.com/versetab/verse-tab-api/internal/verse"
	"github.com/versetab/verse-tab-api/pkg/config"
)

type Server struct {
	port    string
	db      database.Service
	handler http.Handler
	cfg     *config.Config

	kv          store.KV
	settings    *settings.Service
	customStore customimage.Store
	display     *customimage.DisplayURLService
	verses      *verse.Provider
	backgrounds *background.Provider
	streaks     *streak.Service
}

// NewServer constructs the app server with all dependencies injected.
func NewServer(db database.Service, cfg *config.Config) *Server {
	stats := db.Health()
	fmt.Println("Database Health:", stats)

	if stats["status"] != "up" {
		log.Fatal("Database connection failed")
		return &Server{}
	}
	log.Println("Database connection successful")

	if err := database.Migrate(context.Background(), db.DB()); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	kv := store.NewPostgres(db)
	settingsService := settings.NewService(kv)
	customStore := customimage.NewPostgresStore(db)
	display := customimage.NewDisplayURLService()

	esv := verse.NewESVClient(cfg.EsvApiKey, cfg.RemoteTimeout)
	unsplash := background.NewUnsplashClient(cfg.UnsplashAccessKey, cfg.RemoteTimeout)

	s := &Server{
		port:        cfg.Port,
		db:          db,
		cfg:         cfg,
		kv:          kv,
		settings:    settingsService,
		customStore: customStore,
		display:     display,
		verses:      verse.NewProvider(kv, settingsService, esv, cfg.MaxDailyApiCalls),
		backgrounds: background.NewProvider(kv, settingsService, unsplash, customStore, display),
		streaks:     streak.NewService(kv),
	}

	s.handler = s.RegisterRoutes()
	return s
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
