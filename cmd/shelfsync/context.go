package main

import (
	"log/slog"
	"strings"
	stdsync "sync"

	"github.com/spf13/cobra"

	"shelfsync/internal/config"
	"shelfsync/internal/history"
	"shelfsync/internal/logging"
	"shelfsync/internal/notifications"
	"shelfsync/internal/reconcile"
	"shelfsync/internal/render"
	"shelfsync/internal/services/audiobookshelf"
	"shelfsync/internal/sync"
	"shelfsync/internal/vault"
)

type commandContext struct {
	configFlag *string

	configOnce stdsync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg), nil
}

func (c *commandContext) newClient() (*audiobookshelf.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return audiobookshelf.New(cfg.Server.URL, audiobookshelf.Credentials{
		Username: cfg.Server.Username,
		Password: cfg.Server.Password,
		Token:    cfg.Server.Token,
	})
}

// newOrchestrator assembles the full sync pipeline. The returned cleanup
// closes the history store and must be called once the run finishes.
func (c *commandContext) newOrchestrator(logger *slog.Logger) (*sync.Orchestrator, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := c.newClient()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var recorder sync.Recorder
	if cfg.History.Enabled {
		store, err := history.Open(cfg.HistoryPath())
		if err != nil {
			logger.Warn("run history disabled", "error", err)
		} else {
			recorder = store
			cleanup = func() { _ = store.Close() }
		}
	}

	notes := vault.NewStore(cfg)
	reconciler := reconcile.New(cfg, notes, render.New(cfg), logging.WithComponent(logger, "reconcile"))
	notifier := notifications.NewService(cfg)
	orch := sync.New(cfg, client, reconciler, notifier, recorder, logging.WithComponent(logger, "sync"))
	return orch, cleanup, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
