package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skypad/internal/notes"
	"skypad/internal/storage"
)

func newListCmd(a *app) *cobra.Command {
	var (
		search     string
		order      string
		descending bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Long:  `List all notes ordered by id, optionally filtered by a keyword found in the title or body.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			view := newTerminalView(cmd.OutOrStdout(), cmd.ErrOrStderr())

			session := notes.Session{OrderBy: storage.Field(order), Descending: descending}
			if !session.OrderBy.Valid() {
				return fmt.Errorf("unknown order field %q", order)
			}

			if search == "" && session.OrderBy == storage.FieldID && !descending {
				_, err := a.controller.Init(ctx, view, session)
				return err
			}
			if err := a.ready(ctx); err != nil {
				return err
			}
			_, err := a.controller.Search(ctx, view, session, search)
			return err
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "keyword to search for")
	cmd.Flags().StringVar(&order, "order", string(storage.FieldID), "order by id, title, body, created_at or updated_at")
	cmd.Flags().BoolVar(&descending, "desc", false, "descending order")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search notes",
		Long:  `List notes whose title or body contains the keyword.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ready(ctx); err != nil {
				return err
			}
			view := newTerminalView(cmd.OutOrStdout(), cmd.ErrOrStderr())
			_, err := a.controller.Search(ctx, view, notes.Session{}, args[0])
			return err
		},
	}
}
