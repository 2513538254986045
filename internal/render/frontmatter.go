package render

import (
	"fmt"
	"strings"

	"shelfsync/internal/catalog"
	"shelfsync/internal/textutil"
)

// sourceMarker identifies notes produced by this tool.
const sourceMarker = `source: "Audiobookshelf"`

// Frontmatter produces the metadata block for an item, without the
// three-dash delimiters. Key order is stable so metadata-only updates can
// diff old and new blocks line by line.
func (r *Renderer) Frontmatter(item *catalog.Item) string {
	meta := item.Media.Metadata
	rec := item.Progress
	lines := make([]string, 0, 20)

	lines = append(lines, "title: "+textutil.Quote(textutil.StripHTML(orUnknown(meta.Title))))
	lines = append(lines, "author: "+textutil.Quote(textutil.StripHTML(orUnknown(meta.AuthorName))))

	if meta.NarratorName != "" {
		lines = append(lines, "narrator: "+textutil.Quote(textutil.StripHTML(meta.NarratorName)))
	}
	if len(meta.Genres) > 0 {
		lines = append(lines, "genres:")
		for _, genre := range meta.Genres {
			lines = append(lines, "  - "+textutil.Quote(textutil.StripHTML(genre)))
		}
	}
	if meta.PublishedYear != "" {
		lines = append(lines, "published: "+meta.PublishedYear)
	}
	if meta.Publisher != "" {
		lines = append(lines, "publisher: "+textutil.Quote(textutil.StripHTML(meta.Publisher)))
	}
	if item.Media.Duration > 0 {
		lines = append(lines, fmt.Sprintf("duration: %s hours", durationHours(item.Media.Duration)))
	}

	lines = append(lines, r.tagLines(item.Media.Tags)...)

	lines = append(lines, "audiobookshelf_id: "+textutil.Quote(item.ID))
	lines = append(lines, "added_at: "+textutil.Quote(r.date(item.AddedAt)))

	lines = append(lines, "reading_status: "+textutil.Quote(string(catalog.DeriveStatus(rec))))
	lines = append(lines, "progress: "+textutil.Quote(progressPercentage(rec)))
	if rec != nil {
		if rec.LastUpdate != 0 {
			lines = append(lines, "last_listened: "+textutil.Quote(r.date(rec.LastUpdate)))
		}
		if rec.StartedAt != 0 {
			lines = append(lines, "started_at: "+textutil.Quote(r.date(rec.StartedAt)))
		}
		if rec.IsFinished && rec.FinishedAt != 0 {
			lines = append(lines, "finished_at: "+textutil.Quote(r.date(rec.FinishedAt)))
		}
	}

	if item.LibraryName != "" {
		lines = append(lines, "library: "+textutil.Quote(item.LibraryName))
	}
	if cover := r.coverURL(item); cover != "" {
		lines = append(lines, "coverImg: "+textutil.Quote(cover))
	}
	lines = append(lines, sourceMarker)

	return strings.Join(lines, "\n")
}

// tagLines emits either a category block or an Obsidian tag list depending on
// the tags-as-category option. A single category renders as a scalar, several
// as a list; the configured default fills in when the item carries no tags.
func (r *Renderer) tagLines(tags []string) []string {
	if r.cfg.Format.UseTagsAsCategory {
		categories := make([]string, 0, len(tags))
		for _, tag := range tags {
			if strings.TrimSpace(tag) == "" {
				continue
			}
			categories = append(categories, textutil.Quote(textutil.StripHTML(tag)))
		}
		switch {
		case len(categories) == 1:
			return []string{"category: " + categories[0]}
		case len(categories) > 1:
			lines := []string{"category:"}
			for _, category := range categories {
				lines = append(lines, "  - "+category)
			}
			return lines
		case r.cfg.Format.UseDefaultTag && r.cfg.Format.DefaultTagName != "":
			return []string{"category: " + textutil.Quote(textutil.StripHTML(r.cfg.Format.DefaultTagName))}
		default:
			return nil
		}
	}

	sanitized := make([]string, 0, len(tags))
	for _, tag := range tags {
		if formatted := r.obsidianTag(textutil.StripHTML(tag)); formatted != "" {
			sanitized = append(sanitized, formatted)
		}
	}
	if len(sanitized) == 0 && r.cfg.Format.UseDefaultTag && r.cfg.Format.DefaultTagName != "" {
		if formatted := r.obsidianTag(textutil.StripHTML(r.cfg.Format.DefaultTagName)); formatted != "" {
			sanitized = append(sanitized, formatted)
		}
	}
	if len(sanitized) == 0 {
		return nil
	}
	lines := []string{"tags:"}
	for _, tag := range sanitized {
		lines = append(lines, "  - \""+tag+"\"")
	}
	return lines
}
