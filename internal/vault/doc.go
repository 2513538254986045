// Package vault stores rendered notes as Markdown files inside the user's
// vault directory. It owns path derivation (configured folder plus sanitized
// filename), note IO, template file resolution, and the frontmatter
// split/join helpers the reconciler builds on.
package vault
