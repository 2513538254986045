package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"shelfsync/internal/logging"
	"shelfsync/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Sync on an interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
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

			watcher, err := watch.New(cfg, orch, logging.WithComponent(logger, "watch"))
			if err != nil {
				return err
			}

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return watcher.Run(runCtx)
		},
	}
}
