package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/a28956325-cpu/trip-budget/internal/api"
	"github.com/a28956325-cpu/trip-budget/internal/config"
	"github.com/a28956325-cpu/trip-budget/internal/service"
	"github.com/a28956325-cpu/trip-budget/internal/storage/sqlite"
	"github.com/a28956325-cpu/trip-budget/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.SQLiteDBPath)

	svc := service.NewTripService(store)
	handler := api.New(svc).Router()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(handler)

	// h2c allows HTTP/2 without TLS for clients that want it; plain
	// HTTP/1.1 still works.
	h2cHandler := h2c.NewHandler(corsHandler, &http2.Server{})

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
