package render_test

import (
	"testing"

	"gopkg.in/yaml.v3"

	"shelfsync/internal/render"
)

// The frontmatter block is hand-assembled; re-parsing it as YAML guards the
// quoting and list syntax against regressions.
func TestFrontmatterRoundTripsThroughYAML(t *testing.T) {
	cfg := testConfig()
	cfg.Format.UseTagsAsCategory = false
	cfg.Format.UseParentTag = false

	item := sampleItem()
	item.Media.Metadata.Genres = []string{"Epic", "Poetry"}
	item.Media.Tags = []string{"Classics", "Read Again"}

	fm := render.New(cfg).Frontmatter(item)

	var parsed struct {
		Title  string   `yaml:"title"`
		Author string   `yaml:"author"`
		Genres []string `yaml:"genres"`
		Tags   []string `yaml:"tags"`
		ItemID string   `yaml:"audiobookshelf_id"`
		Source string   `yaml:"source"`
	}
	if err := yaml.Unmarshal([]byte(fm), &parsed); err != nil {
		t.Fatalf("frontmatter is not parsable YAML: %v\n%s", err, fm)
	}

	if parsed.Title != "The Odyssey" || parsed.Author != "Homer" {
		t.Fatalf("title/author did not round-trip: %+v", parsed)
	}
	if len(parsed.Genres) != 2 || parsed.Genres[0] != "Epic" {
		t.Fatalf("genres did not round-trip: %v", parsed.Genres)
	}
	if len(parsed.Tags) != 2 || parsed.Tags[0] != "classics" || parsed.Tags[1] != "read-again" {
		t.Fatalf("tags did not round-trip: %v", parsed.Tags)
	}
	if parsed.ItemID != "42" || parsed.Source != "Audiobookshelf" {
		t.Fatalf("identity fields did not round-trip: %+v", parsed)
	}
}

func TestFrontmatterQuotedValuesSurviveYAML(t *testing.T) {
	item := sampleItem()
	item.Media.Metadata.Title = `Say "Hi" \ Wave`

	fm := render.New(testConfig()).Frontmatter(item)

	var parsed struct {
		Title string `yaml:"title"`
	}
	if err := yaml.Unmarshal([]byte(fm), &parsed); err != nil {
		t.Fatalf("frontmatter is not parsable YAML: %v\n%s", err, fm)
	}
	if parsed.Title != `Say "Hi" \ Wave` {
		t.Fatalf("escaped title did not round-trip: %q", parsed.Title)
	}
}
