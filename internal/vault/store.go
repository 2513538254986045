package vault

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"shelfsync/internal/config"
	"shelfsync/internal/textutil"
)

// Store reads and writes notes under the configured vault directory.
type Store struct {
	cfg *config.Config
}

// NewStore creates a Store over the configured vault.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// NotePath derives the note path for a title: the configured notes folder
// plus the sanitized filename with a ".md" extension.
func (s *Store) NotePath(title string) string {
	name := textutil.FileName(title, textutil.FileNameOptions{
		Format:    s.cfg.Format.FilenameFormat,
		Lowercase: s.cfg.Format.FilenameLowercase,
	})
	return filepath.Join(s.cfg.NotesDir(), name+".md")
}

// Exists reports whether a note is already present at path.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Read returns the note content at path.
func (s *Store) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write stores content at path, creating parent directories as needed.
func (s *Store) Write(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// Template loads the configured template file. Resolution tries the
// configured path as given (absolute, or relative to the vault), then the
// bare filename at the vault root, then a recursive search of the vault for
// a matching basename. An empty configuration or an unresolvable file yields
// ("", false, nil); the caller falls back to the built-in layout.
func (s *Store) Template() (string, bool, error) {
	name := strings.TrimSpace(s.cfg.Output.TemplateFile)
	if name == "" {
		return "", false, nil
	}
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}

	candidates := []string{name}
	if !filepath.IsAbs(name) {
		candidates = append(candidates, filepath.Join(s.cfg.Output.VaultDir, name))
	}
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err == nil {
			return string(data), true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", false, err
		}
	}

	found, err := s.findTemplate(filepath.Base(name))
	if err != nil || found == "" {
		return "", false, err
	}
	data, err := os.ReadFile(found)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (s *Store) findTemplate(base string) (string, error) {
	var match string
	err := filepath.WalkDir(s.cfg.Output.VaultDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == base {
			match = path
			return fs.SkipAll
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	return match, err
}
