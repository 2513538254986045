package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shelfsync/internal/config"
	"shelfsync/internal/testsupport"
)

func testStore(t *testing.T) (*Store, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Output.Folder = "Books"
	if err := os.MkdirAll(cfg.Output.VaultDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return NewStore(cfg), cfg
}

func TestNotePathSanitizesTitle(t *testing.T) {
	store, cfg := testStore(t)
	got := store.NotePath("The Iliad: A New Translation")
	want := filepath.Join(cfg.NotesDir(), "the-iliad-a-new-translation.md")
	if got != want {
		t.Fatalf("NotePath = %q, want %q", got, want)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	store, _ := testStore(t)
	path := store.NotePath("Dune")
	if store.Exists(path) {
		t.Fatal("note should not exist before Write")
	}
	if err := store.Write(path, "---\ntitle: \"Dune\"\n---\n# Dune\n"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !store.Exists(path) {
		t.Fatal("note should exist after Write")
	}
	content, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !strings.Contains(content, "# Dune") {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestTemplateResolutionFallbackChain(t *testing.T) {
	store, cfg := testStore(t)

	content, found, err := store.Template()
	if err != nil || found {
		t.Fatalf("empty template config: found=%v err=%v", found, err)
	}
	if content != "" {
		t.Fatalf("content = %q, want empty", content)
	}

	// Bare filename resolved against the vault root.
	cfg.Output.TemplateFile = "book-template"
	if err := os.WriteFile(filepath.Join(cfg.Output.VaultDir, "book-template.md"), []byte("{{title}}"), 0o644); err != nil {
		t.Fatal(err)
	}
	content, found, err = store.Template()
	if err != nil || !found {
		t.Fatalf("vault-root template: found=%v err=%v", found, err)
	}
	if content != "{{title}}" {
		t.Fatalf("content = %q", content)
	}

	// Recursive search under the vault when the direct paths miss.
	cfg.Output.TemplateFile = "nested-template.md"
	nested := filepath.Join(cfg.Output.VaultDir, "Templates", "reading")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "nested-template.md"), []byte("{{author}}"), 0o644); err != nil {
		t.Fatal(err)
	}
	content, found, err = store.Template()
	if err != nil || !found {
		t.Fatalf("nested template: found=%v err=%v", found, err)
	}
	if content != "{{author}}" {
		t.Fatalf("content = %q", content)
	}

	// Missing files are not an error.
	cfg.Output.TemplateFile = "does-not-exist.md"
	_, found, err = store.Template()
	if err != nil || found {
		t.Fatalf("missing template: found=%v err=%v", found, err)
	}
}

func TestSplitFrontmatter(t *testing.T) {
	fm, body, ok := SplitFrontmatter("---\ntitle: \"Dune\"\nstatus: reading\n---\n# Dune\n\nNotes here.\n")
	if !ok {
		t.Fatal("expected frontmatter match")
	}
	if fm != "title: \"Dune\"\nstatus: reading" {
		t.Fatalf("frontmatter = %q", fm)
	}
	if !strings.HasPrefix(body, "# Dune") {
		t.Fatalf("body = %q", body)
	}

	fm, body, ok = SplitFrontmatter("# No frontmatter\n")
	if ok || fm != "" {
		t.Fatalf("unexpected match: fm=%q ok=%v", fm, ok)
	}
	if body != "# No frontmatter\n" {
		t.Fatalf("body = %q", body)
	}
}

func TestJoinFrontmatterInverse(t *testing.T) {
	original := "---\na: 1\n---\nbody"
	fm, body, ok := SplitFrontmatter(original)
	if !ok {
		t.Fatal("expected frontmatter match")
	}
	if got := JoinFrontmatter(fm, body); got != original {
		t.Fatalf("JoinFrontmatter = %q, want %q", got, original)
	}
}
