package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skypad/internal/storage"
)

func newDropCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop the notes table",
		Long:  `Remove the notes table and every note in it. The table is created again by the next command.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd, "Drop every note? [y/N] ") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if err := a.repo.DropNotesTable(cmd.Context(), storage.FatalSink{}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success("Dropped notes table"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}
