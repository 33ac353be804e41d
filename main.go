package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"linkedinsights/api"
	"linkedinsights/browser"
	"linkedinsights/cache"
	"linkedinsights/config"
	"linkedinsights/scraper"
	"linkedinsights/store"
	"linkedinsights/summary"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	h := &api.Handlers{
		Store: db,
		Scraper: scraper.New(browser.Options{
			Headless: cfg.Scraper.Headless,
			Timeout:  time.Duration(cfg.Scraper.TimeoutSec) * time.Second,
		}, nil),
		Summaries: summary.NewGenerator(cfg.GroqAPIKey),
		Cache:     cache.New(cfg.RedisAddr),
	}

	router := mux.NewRouter()
	h.Register(router)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	slog.Info("LinkedIn insights server started", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, cors(router)); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
