package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"skypad/internal/notes"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		title string
		body  string
		file  string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note",
		Long:  `Replace the title and/or body of a note. Fields that are not given keep their stored value.`,
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
			session = a.controller.ToggleEdit(view, session)

			newTitle := session.Note.Title
			if cmd.Flags().Changed("title") {
				newTitle = title
			}
			newBody := session.Note.Body
			if cmd.Flags().Changed("body") || file != "" {
				if newBody, err = readBody(cmd, body, file); err != nil {
					return err
				}
			}

			if newTitle == session.Note.Title && newBody == session.Note.Body {
				a.controller.CancelEdit(view, session)
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to change.")
				return nil
			}

			if _, err := a.controller.Save(ctx, view, session, newTitle, newBody); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success(fmt.Sprintf("Updated note #%d", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "new body (inline)")
	cmd.Flags().StringVarP(&file, "file", "f", "", `read new body from file, "-" for stdin`)
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", raw)
	}
	return id, nil
}
