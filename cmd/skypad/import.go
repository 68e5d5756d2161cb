package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"skypad/internal/importer"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Import markdown files as notes",
		Long: `Create one note per markdown file found below dir. The title is the first heading,
or the file name when there is none. Empty files are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ready(ctx); err != nil {
				return err
			}

			files, err := importer.Scan(ctx, args[0])
			if err != nil {
				return err
			}

			parser := importer.NewParser()
			view := newTerminalView(io.Discard, cmd.ErrOrStderr())
			imported := 0
			for _, f := range files {
				content, err := os.ReadFile(f.AbsPath)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", f.RelPath, err)
				}
				title, body := parser.Parse(content, f.RelPath)
				if body == "" {
					fmt.Fprintln(cmd.OutOrStdout(), faint("skipped empty "+f.RelPath))
					continue
				}

				session := a.controller.New(view)
				if _, err := a.controller.Save(ctx, view, session, title, body); err != nil {
					return fmt.Errorf("failed to import %s: %w", f.RelPath, err)
				}
				imported++
			}

			fmt.Fprintln(cmd.OutOrStdout(), success(fmt.Sprintf("Imported %d notes from %s", imported, args[0])))
			return nil
		},
	}
}
