// Package catalog defines the Audiobookshelf data model shared by the client,
// the progress aggregator, the renderer, and the reconciler.
//
// Items mirror the server's library-item payload. ProgressRecord normalizes
// the two remote progress sources into one shape with the progress value
// always stored as a fraction in [0, 1]; DeriveStatus is the single
// reading-status rule every consumer must agree on.
package catalog
