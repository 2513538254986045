package textutil

import (
	"regexp"
	"strings"
)

var (
	htmlTagPattern     = regexp.MustCompile(`<[^>]*>`)
	controlPattern     = regexp.MustCompile("[\x00-\x1f\x7f]")
	whitespacePattern  = regexp.MustCompile(`\s+`)
	nonWordTagPattern  = regexp.MustCompile(`[^\w\s]`)
	nonWordOnlyPattern = regexp.MustCompile(`\W`)
)

var htmlEntityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", "\"",
	"&#39;", "'",
)

// StripHTML removes HTML tags and common entities while preserving text
// content, and normalizes runs of whitespace to single spaces.
func StripHTML(value string) string {
	if value == "" {
		return ""
	}
	value = htmlTagPattern.ReplaceAllString(value, "")
	value = htmlEntityReplacer.Replace(value)
	value = whitespacePattern.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// EscapeValue makes a string safe for use inside a double-quoted frontmatter
// value: backslashes and quotes are escaped, newlines and tabs become spaces,
// and remaining control characters are removed.
func EscapeValue(value string) string {
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", "")
	value = strings.ReplaceAll(value, "\t", " ")
	value = controlPattern.ReplaceAllString(value, "")
	return strings.TrimSpace(value)
}

// Quote escapes a string and wraps it in double quotes. Empty input yields
// an empty quoted string.
func Quote(value string) string {
	return "\"" + EscapeValue(value) + "\""
}

// TagOptions controls Obsidian tag formatting.
type TagOptions struct {
	// Format is dash, underscore, or camelcase.
	Format string
	// ParentTag, when non-empty, is prefixed as "parent/tag".
	ParentTag string
}

// Tag converts free-form text into an Obsidian-safe tag. Special characters
// are removed, whitespace collapses, and the configured case/separator style
// applies. Returns an empty string when nothing usable remains.
func Tag(value string, opts TagOptions) string {
	cleaned := nonWordTagPattern.ReplaceAllString(value, "")
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return ""
	}

	var formatted string
	switch strings.ToLower(opts.Format) {
	case "underscore":
		formatted = strings.ToLower(strings.ReplaceAll(cleaned, " ", "_"))
	case "camelcase":
		formatted = camelCase(strings.Fields(cleaned))
	default:
		formatted = strings.ToLower(strings.ReplaceAll(cleaned, " ", "-"))
	}

	if parent := nonWordOnlyPattern.ReplaceAllString(opts.ParentTag, ""); parent != "" {
		return strings.ToLower(parent) + "/" + formatted
	}
	return formatted
}
