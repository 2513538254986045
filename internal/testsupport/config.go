package testsupport

import (
	"path/filepath"
	"testing"

	"shelfsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Server.URL = "http://127.0.0.1:0"
	cfg.Server.Token = "test-token"
	cfg.Output.VaultDir = filepath.Join(base, "vault")
	cfg.History.Path = filepath.Join(base, "state", "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfg,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithSyncMode sets the configured sync mode.
func WithSyncMode(mode config.SyncMode) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync.Mode = string(mode)
	}
}

// WithTemplateFile points the config at a template file.
func WithTemplateFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.TemplateFile = name
	}
}

// WithServer overrides the Audiobookshelf server URL, typically with an
// httptest server address.
func WithServer(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Server.URL = url
	}
}
