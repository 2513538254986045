// Package progress merges the two remote listening-progress sources into one
// record per catalog item.
//
// Listening sessions are the authoritative source: the freshest session per
// item wins. Direct media-progress records only fill in items the session
// history never mentioned. Either source may be absent; the aggregate simply
// shrinks instead of failing.
package progress
