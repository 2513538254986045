// Package history persists sync run summaries to a local SQLite database so
// past runs can be inspected from the CLI.
package history
