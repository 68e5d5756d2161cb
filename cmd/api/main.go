package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"skypad/internal/config"
	"skypad/internal/http"
	"skypad/internal/notes"
	"skypad/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath, storage.WithMaxSize(cfg.DBMaxSizeBytes))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	noteRepo := storage.NewNoteRepo(db, storage.WithErrorSink(storage.ReportingSink{Logger: logger}))
	controller := notes.NewController(noteRepo)

	// Create the notes table and log the initial listing
	snapshot := &notes.Snapshot{}
	if _, err := controller.Init(context.Background(), snapshot, notes.Session{}); err != nil {
		log.Fatalf("Failed to initialize notes: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath, "notes", len(snapshot.Listing), "max_size_bytes", cfg.DBMaxSizeBytes)

	// Create router with dependencies
	deps := &http.Deps{
		Controller: controller,
		Store:      noteRepo,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
