package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	fallbackFileName  = "untitled"
	maxFileNameLength = 100
)

var (
	unsafeCharPattern     = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\x7f]`)
	ampersandPattern      = regexp.MustCompile(`[&+]`)
	dashUnsafePattern     = regexp.MustCompile(`[^\w\s.-]`)
	underscoreUnsafe      = regexp.MustCompile(`[^\w\s._]`)
	camelUnsafePattern    = regexp.MustCompile(`[^\w\s.]`)
	repeatedDashPattern   = regexp.MustCompile(`-+`)
	repeatedUnderPattern  = regexp.MustCompile(`_+`)
	edgeDashPattern       = regexp.MustCompile(`^-+|-+$`)
	edgeUnderscorePattern = regexp.MustCompile(`^_+|_+$`)
)

var wordCaser = cases.Title(language.Und)

// FileNameOptions controls filename sanitization.
type FileNameOptions struct {
	// Format is dash, underscore, camelcase, or original.
	Format string
	// Lowercase forces the result to lower case (ignored for camelcase).
	Lowercase bool
}

// FileName produces a deterministic filesystem-safe name from a note title.
// Unsafe characters are stripped first, then the configured style applies.
// The result is never empty and never longer than 100 characters; overlong
// names break at a word boundary when one exists past the midpoint.
func FileName(name string, opts FileNameOptions) string {
	sanitized := unsafeCharPattern.ReplaceAllString(name, "")
	sanitized = strings.TrimSuffix(sanitized, ".")
	sanitized = strings.TrimSpace(sanitized)
	if sanitized == "" {
		return fallbackFileName
	}

	format := strings.ToLower(opts.Format)
	switch format {
	case "dash":
		sanitized = ampersandPattern.ReplaceAllString(sanitized, " and ")
		sanitized = dashUnsafePattern.ReplaceAllString(sanitized, "")
		sanitized = whitespacePattern.ReplaceAllString(sanitized, "-")
		sanitized = repeatedDashPattern.ReplaceAllString(sanitized, "-")
		sanitized = edgeDashPattern.ReplaceAllString(sanitized, "")
	case "underscore":
		sanitized = ampersandPattern.ReplaceAllString(sanitized, " and ")
		sanitized = underscoreUnsafe.ReplaceAllString(sanitized, "")
		sanitized = whitespacePattern.ReplaceAllString(sanitized, "_")
		sanitized = repeatedUnderPattern.ReplaceAllString(sanitized, "_")
		sanitized = edgeUnderscorePattern.ReplaceAllString(sanitized, "")
	case "camelcase":
		sanitized = ampersandPattern.ReplaceAllString(sanitized, " and ")
		sanitized = camelUnsafePattern.ReplaceAllString(sanitized, "")
		sanitized = camelCase(strings.Fields(sanitized))
	default:
		sanitized = dashUnsafePattern.ReplaceAllString(sanitized, "")
	}

	if opts.Lowercase && format != "camelcase" {
		sanitized = strings.ToLower(sanitized)
	}
	if sanitized == "" {
		return fallbackFileName
	}

	return truncateAtBoundary(sanitized)
}

func truncateAtBoundary(name string) string {
	if len(name) <= maxFileNameLength {
		return name
	}
	truncated := name[:maxFileNameLength]
	breakPoint := -1
	for _, sep := range []string{" ", "-", "_"} {
		if idx := strings.LastIndex(truncated, sep); idx > breakPoint {
			breakPoint = idx
		}
	}
	if breakPoint > maxFileNameLength/2 {
		return truncated[:breakPoint]
	}
	return truncated
}

func camelCase(words []string) string {
	var b strings.Builder
	for i, word := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(word))
			continue
		}
		b.WriteString(wordCaser.String(strings.ToLower(word)))
	}
	return b.String()
}
