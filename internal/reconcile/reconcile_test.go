package reconcile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shelfsync/internal/catalog"
	"shelfsync/internal/config"
	"shelfsync/internal/logging"
	"shelfsync/internal/render"
	"shelfsync/internal/testsupport"
	"shelfsync/internal/vault"
)

func testReconciler(t *testing.T) (*Reconciler, *config.Config, *vault.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Output.Folder = "Books"
	if err := os.MkdirAll(cfg.Output.VaultDir, 0o755); err != nil {
		t.Fatal(err)
	}
	store := vault.NewStore(cfg)
	return New(cfg, store, render.New(cfg), logging.NewNop()), cfg, store
}

func testItem() *catalog.Item {
	item := &catalog.Item{ID: "item1", AddedAt: 1700000000000, LibraryName: "Audiobooks"}
	item.Media.Metadata.Title = "The Odyssey"
	item.Media.Metadata.AuthorName = "Homer"
	item.Media.Metadata.Genres = []string{"Epic Poetry"}
	item.Media.Duration = 39600
	return item
}

func TestApplyCreatesMissingNote(t *testing.T) {
	rec, _, store := testReconciler(t)
	item := testItem()

	outcome, err := rec.Apply(item, config.SyncCreateOnly)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if outcome != OutcomeCreated {
		t.Fatalf("outcome = %v, want created", outcome)
	}

	content, err := store.Read(store.NotePath(item.Title()))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !strings.Contains(content, "# The Odyssey") {
		t.Fatalf("note missing heading: %q", content)
	}
	if !strings.Contains(content, `source: "Audiobookshelf"`) {
		t.Fatalf("note missing source marker: %q", content)
	}
}

func TestApplyCreateOnlySkipsExisting(t *testing.T) {
	rec, _, store := testReconciler(t)
	item := testItem()
	path := store.NotePath(item.Title())
	if err := store.Write(path, "user content"); err != nil {
		t.Fatal(err)
	}

	outcome, err := rec.Apply(item, config.SyncCreateOnly)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if outcome != OutcomeSkipped {
		t.Fatalf("outcome = %v, want skipped", outcome)
	}
	content, _ := store.Read(path)
	if content != "user content" {
		t.Fatalf("existing note was modified: %q", content)
	}
}

func TestApplyFullOverwriteReplacesExisting(t *testing.T) {
	rec, _, store := testReconciler(t)
	item := testItem()
	path := store.NotePath(item.Title())
	if err := store.Write(path, "stale content"); err != nil {
		t.Fatal(err)
	}

	outcome, err := rec.Apply(item, config.SyncFullOverwrite)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if outcome != OutcomeUpdated {
		t.Fatalf("outcome = %v, want updated", outcome)
	}
	content, _ := store.Read(path)
	if strings.Contains(content, "stale content") {
		t.Fatal("full overwrite kept stale content")
	}
	if !strings.Contains(content, "# The Odyssey") {
		t.Fatalf("note missing heading: %q", content)
	}
}

func TestUpdateMetadataPreservesBodyAndUserFields(t *testing.T) {
	rec, _, store := testReconciler(t)
	item := testItem()
	path := store.NotePath(item.Title())
	existing := "---\n" +
		"title: \"Old Title\"\n" +
		"rating: 5\n" +
		"shelf: favorites\n" +
		"---\n" +
		"# My reading log\n\nDo not touch this.\n"
	if err := store.Write(path, existing); err != nil {
		t.Fatal(err)
	}

	outcome, err := rec.Apply(item, config.SyncUpdateMetadata)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if outcome != OutcomeUpdated {
		t.Fatalf("outcome = %v, want updated", outcome)
	}

	content, _ := store.Read(path)
	fm, body, ok := vault.SplitFrontmatter(content)
	if !ok {
		t.Fatalf("updated note lost its frontmatter: %q", content)
	}
	if !strings.Contains(fm, `title: "The Odyssey"`) {
		t.Fatalf("frontmatter not refreshed: %q", fm)
	}
	if !strings.Contains(fm, "rating: 5") {
		t.Fatalf("preserved field dropped: %q", fm)
	}
	if !strings.Contains(fm, "shelf: favorites") {
		t.Fatalf("unknown user key dropped: %q", fm)
	}
	if !strings.Contains(body, "Do not touch this.") {
		t.Fatalf("body was modified: %q", body)
	}
}

func TestUpdateMetadataSynthesizesMissingFrontmatter(t *testing.T) {
	rec, _, store := testReconciler(t)
	item := testItem()
	path := store.NotePath(item.Title())
	if err := store.Write(path, "# Plain note\n"); err != nil {
		t.Fatal(err)
	}

	if _, err := rec.Apply(item, config.SyncUpdateMetadata); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	content, _ := store.Read(path)
	if !strings.HasPrefix(content, "---\n") {
		t.Fatalf("frontmatter not added: %q", content)
	}
	if !strings.Contains(content, "# Plain note") {
		t.Fatalf("original content dropped: %q", content)
	}
}

func TestApplyFallsBackToDefaultLayoutWhenTemplateUnreadable(t *testing.T) {
	rec, cfg, store := testReconciler(t)
	cfg.Output.TemplateFile = "book-template"
	// A directory at the template path makes the read fail without the
	// file being absent.
	if err := os.MkdirAll(filepath.Join(cfg.Output.VaultDir, "book-template.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	item := testItem()
	outcome, err := rec.Apply(item, config.SyncCreateOnly)
	if err != nil {
		t.Fatalf("unreadable template must not fail the item: %v", err)
	}
	if outcome != OutcomeCreated {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeCreated)
	}

	content, err := store.Read(store.NotePath(item.Title()))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !strings.Contains(content, "# The Odyssey") {
		t.Fatalf("expected default layout content:\n%s", content)
	}
}

func TestUpdateMetadataResolvesTemplateTokensInPlace(t *testing.T) {
	rec, cfg, store := testReconciler(t)
	cfg.Output.TemplateFile = "book-template"
	templatePath := filepath.Join(cfg.Output.VaultDir, "book-template.md")
	if err := os.WriteFile(templatePath, []byte("---\ntitle: \"{{title}}\"\n---\nBy {{author}}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	item := testItem()
	path := store.NotePath(item.Title())
	// A note written from the template with tokens still unresolved.
	if err := store.Write(path, "---\ntitle: \"{{title}}\"\n---\nBy {{author}}\n"); err != nil {
		t.Fatal(err)
	}

	if _, err := rec.Apply(item, config.SyncUpdateMetadata); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	content, _ := store.Read(path)
	if strings.Contains(content, "{{") {
		t.Fatalf("tokens left unresolved: %q", content)
	}
	if !strings.Contains(content, "By Homer") {
		t.Fatalf("substitution missed the body: %q", content)
	}
}
