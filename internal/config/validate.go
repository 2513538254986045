package config

import (
	"errors"
	"fmt"
	"net/url"
)

var validDateFormats = map[string]struct{}{
	"YYYY-MM-DD": {},
	"DD/MM/YYYY": {},
	"MM/DD/YYYY": {},
	"ISO":        {},
}

var validTagFormats = map[string]struct{}{
	"dash":       {},
	"underscore": {},
	"camelcase":  {},
}

var validFilenameFormats = map[string]struct{}{
	"dash":       {},
	"underscore": {},
	"camelcase":  {},
	"original":   {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateFormat(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.URL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/shelfsync/config.toml"
		}
		return fmt.Errorf("server.url is required. Edit %s (create with 'shelfsync config init')", defaultPath)
	}
	parsed, err := url.Parse(c.Server.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("server.url %q must be an absolute http(s) URL", c.Server.URL)
	}
	if c.Server.Token == "" {
		if c.Server.Username == "" {
			return errors.New("server.username is required when server.token is not set")
		}
		if c.Server.Password == "" {
			return errors.New("server.password is required when server.token is not set (or export SHELFSYNC_PASSWORD)")
		}
	}
	return nil
}

func (c *Config) validateSync() error {
	if _, err := ParseSyncMode(c.Sync.Mode); err != nil {
		return fmt.Errorf("sync.mode: %w", err)
	}
	return nil
}

func (c *Config) validateFormat() error {
	if _, ok := validDateFormats[c.Format.DateFormat]; !ok {
		return fmt.Errorf("format.date_format %q must be one of YYYY-MM-DD, DD/MM/YYYY, MM/DD/YYYY, ISO", c.Format.DateFormat)
	}
	if _, ok := validTagFormats[c.Format.TagFormat]; !ok {
		return fmt.Errorf("format.tag_format %q must be one of dash, underscore, camelcase", c.Format.TagFormat)
	}
	if _, ok := validFilenameFormats[c.Format.FilenameFormat]; !ok {
		return fmt.Errorf("format.filename_format %q must be one of dash, underscore, camelcase, original", c.Format.FilenameFormat)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
