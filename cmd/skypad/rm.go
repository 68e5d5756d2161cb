package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"skypad/internal/notes"
)

func newRmCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a note",
		Long:  `Delete a note. Removing a note that does not exist is not an error.`,
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

			view := newTerminalView(cmd.OutOrStdout(), cmd.ErrOrStderr())
			session := notes.Session{}
			if !force {
				quiet := newTerminalView(io.Discard, cmd.ErrOrStderr())
				if session, err = a.controller.SelectByID(ctx, quiet, session, id); err != nil {
					return err
				}
				if !confirm(cmd, fmt.Sprintf("Delete note %q (#%d)? [y/N] ", session.Note.Title, id)) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			session.Note.ID = id

			// Prints the result line followed by the remaining notes.
			_, err = a.controller.Delete(ctx, view, session)
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
