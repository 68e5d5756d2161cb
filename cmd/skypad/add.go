package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		body string
		file string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new note",
		Long:  `Create a new note with the given title. The body comes from --body, or from --file ("-" reads stdin).`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ready(ctx); err != nil {
				return err
			}

			content, err := readBody(cmd, body, file)
			if err != nil {
				return err
			}

			view := newTerminalView(io.Discard, cmd.ErrOrStderr())
			session := a.controller.New(view)
			session, err = a.controller.Save(ctx, view, session, args[0], content)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success(fmt.Sprintf("Created note #%d", session.Note.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&body, "body", "b", "", "note body (inline)")
	cmd.Flags().StringVarP(&file, "file", "f", "", `read body from file, "-" for stdin`)
	return cmd
}

// readBody returns the inline body, or the contents of file when set.
func readBody(cmd *cobra.Command, body, file string) (string, error) {
	switch file {
	case "":
		return body, nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(file) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}
}
