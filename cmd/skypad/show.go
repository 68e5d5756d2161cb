package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"skypad/internal/notes"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a note",
		Long:  `Display a note's full content with rendered markdown.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.ready(ctx); err != nil {
				return err
			}

			view := newTerminalView(io.Discard, cmd.ErrOrStderr())
			session, err := a.controller.SelectByID(ctx, view, notes.Session{}, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatNote(session.Note))
			return nil
		},
	}
}
