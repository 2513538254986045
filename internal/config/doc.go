// Package config loads, normalizes, and validates shelfsync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SHELFSYNC_PASSWORD. The Config type centralizes every knob the CLI and the
// watch loop need, from server credentials to tag and filename formatting
// rules.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical sync modes, and clear validation errors.
package config
