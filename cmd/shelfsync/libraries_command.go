package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newLibrariesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "libraries",
		Short: "List libraries on the Audiobookshelf server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := client.Authenticate(runCtx); err != nil {
				return err
			}
			libraries, err := client.Libraries(runCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(libraries) == 0 {
				fmt.Fprintln(out, "No libraries found")
				return nil
			}

			rows := make([][]string, 0, len(libraries))
			for _, library := range libraries {
				rows = append(rows, []string{library.ID, library.Name, library.MediaType})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Media Type"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
