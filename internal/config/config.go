package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// SyncMode selects how existing notes are treated during a sync run.
type SyncMode string

const (
	// SyncCreateOnly never touches an existing note.
	SyncCreateOnly SyncMode = "create-only"
	// SyncUpdateMetadata refreshes the frontmatter block and preserves the body.
	SyncUpdateMetadata SyncMode = "update-metadata"
	// SyncFullOverwrite replaces the whole note with freshly rendered content.
	SyncFullOverwrite SyncMode = "full-overwrite"
)

// ParseSyncMode converts a user-supplied mode string into a SyncMode.
func ParseSyncMode(value string) (SyncMode, error) {
	switch SyncMode(strings.ToLower(strings.TrimSpace(value))) {
	case SyncCreateOnly:
		return SyncCreateOnly, nil
	case SyncUpdateMetadata:
		return SyncUpdateMetadata, nil
	case SyncFullOverwrite:
		return SyncFullOverwrite, nil
	case "":
		return "", errors.New("sync mode must not be empty")
	default:
		return "", fmt.Errorf("unknown sync mode %q (expected create-only, update-metadata, or full-overwrite)", value)
	}
}

// Server contains Audiobookshelf connection settings.
type Server struct {
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	// Token bypasses the username/password login when set.
	Token string `toml:"token"`
}

// Output contains vault location settings.
type Output struct {
	VaultDir     string `toml:"vault_dir"`
	Folder       string `toml:"folder"`
	TemplateFile string `toml:"template_file"`
}

// Sync contains synchronization policy settings.
type Sync struct {
	Mode             string `toml:"mode"`
	SortBy           string `toml:"sort_by"`
	SortDesc         bool   `toml:"sort_desc"`
	WatchIntervalMin int    `toml:"watch_interval_minutes"`
}

// Format contains note formatting rules.
type Format struct {
	DateFormat          string `toml:"date_format"`
	TagFormat           string `toml:"tag_format"`
	UseParentTag        bool   `toml:"use_parent_tag"`
	ParentTagName       string `toml:"parent_tag_name"`
	UseDefaultTag       bool   `toml:"use_default_tag"`
	DefaultTagName      string `toml:"default_tag_name"`
	FilenameFormat      string `toml:"filename_format"`
	FilenameLowercase   bool   `toml:"filename_lowercase"`
	UseTagsAsCategory   bool   `toml:"use_tags_as_category"`
	IncludeDescription  bool   `toml:"include_description"`
	CreateNotesSection  bool   `toml:"create_notes_section"`
	CreateQuotesSection bool   `toml:"create_quotes_section"`
}

// Covers contains cover image settings.
type Covers struct {
	Download bool   `toml:"download"`
	Folder   string `toml:"folder"`
}

// Notifications contains ntfy push notification settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// History contains run-history store settings.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for shelfsync.
//
// Configuration sections by subsystem:
//   - Server: Audiobookshelf connection and credentials
//   - Output: vault root, note folder, optional template file
//   - Sync: sync mode, item sort order, watch interval
//   - Format: date/tag/filename formatting and note section toggles
//   - Covers: cover URL probing
//   - Notifications: ntfy push notification settings
//   - History: sqlite run-history store
//   - Logging: log format and level
type Config struct {
	Server        Server        `toml:"server"`
	Output        Output        `toml:"output"`
	Sync          Sync          `toml:"sync"`
	Format        Format        `toml:"format"`
	Covers        Covers        `toml:"covers"`
	Notifications Notifications `toml:"notifications"`
	History       History       `toml:"history"`
	Logging       Logging       `toml:"logging"`
}

// Mode returns the configured sync mode.
func (c *Config) Mode() SyncMode {
	mode, err := ParseSyncMode(c.Sync.Mode)
	if err != nil {
		return SyncCreateOnly
	}
	return mode
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/shelfsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("shelfsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// NotesDir returns the absolute directory notes are written into.
func (c *Config) NotesDir() string {
	return filepath.Join(c.Output.VaultDir, filepath.FromSlash(c.Output.Folder))
}

// HistoryPath returns the absolute run-history database path.
func (c *Config) HistoryPath() string {
	return c.History.Path
}

// EnsureDirectories creates the directories a sync run writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.NotesDir()}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
