package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"skypad/internal/config"
	"skypad/internal/notes"
	"skypad/internal/storage"
)

// app holds what every subcommand needs once the database is open.
type app struct {
	dbPath  string
	verbose bool

	db         *sql.DB
	repo       *storage.NoteRepo
	controller *notes.Controller
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "skypad",
		Short: "Small persistent notes in a local SQLite file",
		Long: `SkyPad keeps titled notes in a single SQLite table.
Notes can be listed, searched, written, removed and exported from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "database file (overrides DB_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newListCmd(a),
		newSearchCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newShowCmd(a),
		newRmCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newDropCmd(a),
	)
	return rootCmd
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	logger := cfg.NewLogger(cmd.ErrOrStderr())
	slog.SetDefault(logger)

	db, err := storage.New(cfg.DBPath, storage.WithMaxSize(cfg.DBMaxSizeBytes))
	if err != nil {
		return err
	}
	a.db = db
	a.repo = storage.NewNoteRepo(db, storage.WithErrorSink(storage.ReportingSink{Logger: logger}))
	a.controller = notes.NewController(a.repo)
	slog.Debug("database opened", "path", cfg.DBPath)
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// ready creates the notes table if it does not exist yet.
func (a *app) ready(ctx context.Context) error {
	return a.repo.Initialize(ctx)
}
