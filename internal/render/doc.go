// Package render produces note content for catalog items.
//
// Two entry points share the string-safety helpers from textutil:
// FromTemplate substitutes a fixed token table into user-supplied template
// text, and DefaultContent produces the built-in layout. Frontmatter is
// exposed separately so metadata-only updates can regenerate just the header
// block.
package render
