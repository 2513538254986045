// Package textutil provides the string-safety helpers shared by the renderer
// and the vault store.
//
// The primary use cases are:
//   - Escaping strings for frontmatter values (quotes, backslashes, control characters)
//   - Stripping HTML tags and entities from server-supplied metadata
//   - Sanitizing Obsidian tags (dash/underscore/camelCase styles, parent prefix)
//   - Sanitizing note filenames with configurable formatting
package textutil
