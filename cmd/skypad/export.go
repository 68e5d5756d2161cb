package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"skypad/internal/notes"
	"skypad/internal/storage"
)

// exportNote is the serialized form of a note.
type exportNote struct {
	ID        int64      `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Body      string     `json:"body" yaml:"body"`
	CreatedAt time.Time  `json:"created_at" yaml:"created"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated,omitempty"`
}

type exportData struct {
	ExportedAt time.Time    `json:"exported_at" yaml:"exported_at"`
	Version    string       `json:"version" yaml:"version"`
	Notes      []exportNote `json:"notes" yaml:"notes"`
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
		search string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes",
		Long:  `Export notes to JSON or YAML, on stdout or atomically into a file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ready(ctx); err != nil {
				return err
			}

			snapshot := &notes.Snapshot{}
			if _, err := a.controller.Search(ctx, snapshot, notes.Session{}, search); err != nil {
				return err
			}

			data, err := encodeExport(newExportData(snapshot.Listing, time.Now()), format)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := atomic.WriteFile(output, bytes.NewReader(data)); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), success(fmt.Sprintf("Exported %d notes to %s", len(snapshot.Listing), output)))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout`)
	cmd.Flags().StringVarP(&search, "search", "s", "", "only export notes containing this keyword")
	return cmd
}

func newExportData(listing []storage.NoteRecord, now time.Time) exportData {
	export := exportData{
		ExportedAt: now.UTC(),
		Version:    "1.0",
		Notes:      make([]exportNote, 0, len(listing)),
	}
	for _, n := range listing {
		en := exportNote{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			CreatedAt: time.UnixMilli(n.CreatedAt).UTC(),
		}
		if n.UpdatedAt != 0 {
			updated := time.UnixMilli(n.UpdatedAt).UTC()
			en.UpdatedAt = &updated
		}
		export.Notes = append(export.Notes, en)
	}
	return export
}

func encodeExport(export exportData, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(export)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
