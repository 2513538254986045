// Package reconcile decides what happens when a catalog item meets the note
// that may already exist for it. Existing notes are skipped, have their
// frontmatter refreshed, or are rewritten wholesale depending on the
// configured sync mode; user-authored frontmatter fields survive metadata
// refreshes.
package reconcile
