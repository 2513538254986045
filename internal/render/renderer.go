package render

import (
	"fmt"
	"math"
	"strings"

	"shelfsync/internal/catalog"
	"shelfsync/internal/config"
	"shelfsync/internal/textutil"
)

// Renderer turns catalog items into note content according to the active
// formatting configuration.
type Renderer struct {
	cfg *config.Config
}

// New constructs a renderer bound to a configuration snapshot.
func New(cfg *config.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// FromTemplate substitutes the token table into user-supplied template text.
// Every occurrence of every token is replaced.
func (r *Renderer) FromTemplate(templateText string, item *catalog.Item) string {
	meta := item.Media.Metadata
	rec := item.Progress

	pairs := []string{
		"{{title}}", textutil.EscapeValue(textutil.StripHTML(orUnknown(meta.Title))),
		"{{author}}", textutil.EscapeValue(textutil.StripHTML(orUnknown(meta.AuthorName))),
		"{{narrator}}", textutil.EscapeValue(textutil.StripHTML(meta.NarratorName)),
		"{{description}}", textutil.EscapeValue(textutil.StripHTML(meta.Description)),
		"{{publisher}}", textutil.EscapeValue(textutil.StripHTML(meta.Publisher)),
		"{{publishedYear}}", meta.PublishedYear,
		"{{language}}", textutil.EscapeValue(textutil.StripHTML(meta.Language)),
		"{{duration}}", durationHours(item.Media.Duration),
		"{{size}}", fmt.Sprintf("%d", item.Size),
		"{{addedAt}}", r.date(item.AddedAt),
		"{{audiobookshelfId}}", item.ID,
		"{{library}}", textutil.EscapeValue(orDefault(item.LibraryName, "Unknown Library")),
		"{{genres}}", r.arrayBlock(meta.Genres, false),
		"{{tags}}", r.arrayBlock(item.Media.Tags, true),
		"{{category}}", r.arrayBlock(item.Media.Tags, true),
		"{{coverImg}}", r.coverURL(item),
		"{{readingStatus}}", string(catalog.DeriveStatus(rec)),
		"{{progressPercentage}}", progressPercentage(rec),
		"{{currentTime}}", currentListenTime(rec),
		"{{timeRemaining}}", timeRemaining(item),
		"{{isFinished}}", isFinished(rec),
		"{{lastListened}}", r.date(lastUpdate(rec)),
		"{{startedAt}}", r.date(startedAt(rec)),
		"{{finishedAt}}", r.date(finishedAt(rec)),
		"{{lastUpdate}}", FormatDate(lastUpdate(rec), DateFormatISO),
	}
	return strings.NewReplacer(pairs...).Replace(templateText)
}

// DefaultContent produces the built-in note layout: frontmatter, title
// heading, author/narrator lines, and the configured optional sections.
func (r *Renderer) DefaultContent(item *catalog.Item) string {
	meta := item.Media.Metadata

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString(r.Frontmatter(item))
	b.WriteString("\n---\n\n")

	fmt.Fprintf(&b, "# %s\n\n", textutil.StripHTML(meta.Title))
	if meta.AuthorName != "" {
		fmt.Fprintf(&b, "**Author:** %s\n\n", textutil.StripHTML(meta.AuthorName))
	}
	if meta.NarratorName != "" {
		fmt.Fprintf(&b, "**Narrator:** %s\n\n", textutil.StripHTML(meta.NarratorName))
	}
	if r.cfg.Format.IncludeDescription && meta.Description != "" {
		fmt.Fprintf(&b, "## Description\n\n%s\n\n", textutil.StripHTML(meta.Description))
	}
	if r.cfg.Format.CreateNotesSection {
		b.WriteString("## Notes\n\n\n\n")
	}
	if r.cfg.Format.CreateQuotesSection {
		b.WriteString("## Quotes\n\n")
	}
	return b.String()
}

func (r *Renderer) date(millis int64) string {
	return FormatDate(millis, r.cfg.Format.DateFormat)
}

// arrayBlock renders an array token as an indented list prefixed by a
// newline, or an empty string when nothing remains after sanitization.
// Genres fall back to a single "Uncategorized" entry.
func (r *Renderer) arrayBlock(values []string, isTag bool) string {
	var items []string
	if isTag && r.cfg.Format.UseTagsAsCategory {
		for _, value := range values {
			if strings.TrimSpace(value) == "" {
				continue
			}
			items = append(items, textutil.Quote(textutil.StripHTML(value)))
		}
	} else if isTag {
		for _, value := range values {
			if tag := r.obsidianTag(textutil.StripHTML(value)); tag != "" {
				items = append(items, "\""+tag+"\"")
			}
		}
	} else {
		for _, value := range values {
			items = append(items, textutil.Quote(textutil.StripHTML(value)))
		}
	}

	if isTag && len(items) == 0 && r.cfg.Format.UseDefaultTag && r.cfg.Format.DefaultTagName != "" {
		if r.cfg.Format.UseTagsAsCategory {
			items = append(items, textutil.Quote(r.cfg.Format.DefaultTagName))
		} else if tag := r.obsidianTag(r.cfg.Format.DefaultTagName); tag != "" {
			items = append(items, "\""+tag+"\"")
		}
	}
	if !isTag && len(items) == 0 {
		items = append(items, "\"Uncategorized\"")
	}
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteString("\n  - ")
		b.WriteString(item)
	}
	return b.String()
}

func (r *Renderer) obsidianTag(value string) string {
	opts := textutil.TagOptions{Format: r.cfg.Format.TagFormat}
	if r.cfg.Format.UseParentTag {
		opts.ParentTag = r.cfg.Format.ParentTagName
	}
	return textutil.Tag(value, opts)
}

func (r *Renderer) coverURL(item *catalog.Item) string {
	base := r.cfg.Server.URL
	if r.cfg.Covers.Download && item.CoverProbed {
		return base + "/audiobookshelf/api/items/" + item.ID + "/cover"
	}
	if item.Media.CoverPath != "" {
		return base + item.Media.CoverPath
	}
	return ""
}

func orUnknown(value string) string {
	return orDefault(value, "Unknown")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func durationHours(seconds float64) string {
	if seconds <= 0 {
		return "0"
	}
	return fmt.Sprintf("%d", int(math.Round(seconds/3600)))
}

func progressPercentage(rec *catalog.ProgressRecord) string {
	return fmt.Sprintf("%.1f%%", rec.Percent())
}

func isFinished(rec *catalog.ProgressRecord) string {
	if rec != nil && rec.IsFinished {
		return "true"
	}
	return "false"
}

// formatListenTime renders seconds as "2h 15m", or "45m" under one hour.
func formatListenTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func currentListenTime(rec *catalog.ProgressRecord) string {
	if rec == nil {
		return "0m"
	}
	return formatListenTime(rec.CurrentTime)
}

func timeRemaining(item *catalog.Item) string {
	rec := item.Progress
	if rec != nil && rec.Duration > 0 {
		return formatListenTime(rec.Duration - rec.CurrentTime)
	}
	if item.Media.Duration > 0 {
		return formatListenTime(item.Media.Duration)
	}
	return "0m"
}

func lastUpdate(rec *catalog.ProgressRecord) int64 {
	if rec == nil {
		return 0
	}
	return rec.LastUpdate
}

func startedAt(rec *catalog.ProgressRecord) int64 {
	if rec == nil {
		return 0
	}
	return rec.StartedAt
}

func finishedAt(rec *catalog.ProgressRecord) int64 {
	if rec == nil {
		return 0
	}
	return rec.FinishedAt
}
