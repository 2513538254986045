package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeServer(); err != nil {
		return err
	}
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeSync()
	c.normalizeFormat()
	c.normalizeCovers()
	c.normalizeNotifications()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeServer() error {
	c.Server.URL = strings.TrimRight(strings.TrimSpace(c.Server.URL), "/")
	c.Server.Username = strings.TrimSpace(c.Server.Username)
	if c.Server.Password == "" {
		if value, ok := os.LookupEnv("SHELFSYNC_PASSWORD"); ok {
			c.Server.Password = value
		}
	}
	if c.Server.Token == "" {
		if value, ok := os.LookupEnv("SHELFSYNC_TOKEN"); ok {
			c.Server.Token = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizeOutput() error {
	var err error
	if strings.TrimSpace(c.Output.VaultDir) == "" {
		c.Output.VaultDir = defaultVaultDir
	}
	if c.Output.VaultDir, err = expandPath(c.Output.VaultDir); err != nil {
		return fmt.Errorf("output.vault_dir: %w", err)
	}
	c.Output.Folder = strings.Trim(strings.TrimSpace(c.Output.Folder), "/")
	if c.Output.Folder == "" {
		c.Output.Folder = defaultOutputFolder
	}
	c.Output.TemplateFile = strings.TrimSpace(c.Output.TemplateFile)
	return nil
}

func (c *Config) normalizeSync() {
	c.Sync.Mode = strings.ToLower(strings.TrimSpace(c.Sync.Mode))
	if c.Sync.Mode == "" {
		c.Sync.Mode = defaultSyncMode
	}
	c.Sync.SortBy = strings.TrimSpace(c.Sync.SortBy)
	if c.Sync.SortBy == "" {
		c.Sync.SortBy = defaultSortBy
	}
	if c.Sync.WatchIntervalMin <= 0 {
		c.Sync.WatchIntervalMin = defaultWatchIntervalMin
	}
}

func (c *Config) normalizeFormat() {
	c.Format.DateFormat = strings.TrimSpace(c.Format.DateFormat)
	if c.Format.DateFormat == "" {
		c.Format.DateFormat = defaultDateFormat
	}
	c.Format.TagFormat = strings.ToLower(strings.TrimSpace(c.Format.TagFormat))
	if c.Format.TagFormat == "" {
		c.Format.TagFormat = defaultTagFormat
	}
	c.Format.ParentTagName = strings.TrimSpace(c.Format.ParentTagName)
	c.Format.DefaultTagName = strings.TrimSpace(c.Format.DefaultTagName)
	c.Format.FilenameFormat = strings.ToLower(strings.TrimSpace(c.Format.FilenameFormat))
	if c.Format.FilenameFormat == "" {
		c.Format.FilenameFormat = defaultFilenameFormat
	}
}

func (c *Config) normalizeCovers() {
	c.Covers.Folder = strings.Trim(strings.TrimSpace(c.Covers.Folder), "/")
	if c.Covers.Folder == "" {
		c.Covers.Folder = defaultCoversFolder
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	expanded, err := expandPath(c.History.Path)
	if err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	c.History.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
