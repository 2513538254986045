// Package watch reruns the sync on a fixed interval until the context is
// cancelled. A file lock enforces a single watcher per machine so overlapping
// schedules never race on the vault.
package watch
