// Package sync orchestrates a full synchronization run: authenticate against
// the Audiobookshelf server, aggregate listening progress from its two
// sources, walk every library, and reconcile each item into the vault.
// Authentication failures abort the run; everything else degrades and is
// tallied in the run summary.
package sync
