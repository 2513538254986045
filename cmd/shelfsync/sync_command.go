package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"shelfsync/internal/config"
	"shelfsync/internal/watch"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one synchronization pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode config.SyncMode
			if trimmed := strings.TrimSpace(modeFlag); trimmed != "" {
				parsed, err := config.ParseSyncMode(trimmed)
				if err != nil {
					return err
				}
				mode = parsed
			}

			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			orch, cleanup, err := ctx.newOrchestrator(logger)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			// Refuse to interleave with a running watcher.
			release, err := watch.Acquire(cfg)
			if err != nil {
				return err
			}
			defer release()

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			run, err := orch.Run(runCtx, mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := shouldColorize(out)
			summary := fmt.Sprintf("Synced %d items across %d libraries: %d created, %d updated, %d skipped, %d failed in %s",
				run.Items, run.Libraries, run.Created, run.Updated, run.Skipped, run.Failed,
				run.Duration().Round(time.Millisecond))
			if run.Failed > 0 {
				fmt.Fprintln(out, colorize(summary, ansiRed, color))
			} else {
				fmt.Fprintln(out, colorize(summary, ansiGreen, color))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "Sync mode for this run (create-only, update-metadata, full-overwrite)")
	return cmd
}
