// Package audiobookshelf provides the HTTP client for the Audiobookshelf
// server API.
//
// The client covers login, library and item listing (with best-effort
// per-item progress enrichment), the two listening-progress sources, and the
// exploratory cover probe. Errors carry the services sentinel markers so the
// orchestrator can distinguish fatal authentication failures from degradable
// transport failures.
package audiobookshelf
