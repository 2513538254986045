// Package logging assembles the structured slog loggers used across shelfsync.
//
// It centralizes level and format plumbing so the CLI, the watch loop, and the
// sync orchestrator emit log lines with the same shape. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
