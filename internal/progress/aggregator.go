package progress

import (
	"shelfsync/internal/catalog"
)

// Aggregate merges listening sessions and direct media-progress records into
// a map keyed by library item ID. Sessions always take precedence; for each
// item only the session with the greatest UpdatedAt contributes. Direct
// records are inserted only for items the session history does not cover.
func Aggregate(sessions []catalog.Session, direct []catalog.ProgressRecord) map[string]*catalog.ProgressRecord {
	out := make(map[string]*catalog.ProgressRecord)

	latest := make(map[string]catalog.Session)
	for _, session := range sessions {
		if session.LibraryItemID == "" {
			continue
		}
		current, ok := latest[session.LibraryItemID]
		if !ok || session.UpdatedAt > current.UpdatedAt {
			latest[session.LibraryItemID] = session
		}
	}
	for itemID, session := range latest {
		out[itemID] = fromSession(session)
	}

	for i := range direct {
		record := direct[i]
		if record.LibraryItemID == "" {
			continue
		}
		if _, ok := out[record.LibraryItemID]; ok {
			continue
		}
		copied := record
		out[record.LibraryItemID] = &copied
	}

	return out
}

func fromSession(session catalog.Session) *catalog.ProgressRecord {
	var fraction float64
	if session.Duration > 0 {
		fraction = session.CurrentTime / session.Duration
	}
	record := &catalog.ProgressRecord{
		LibraryItemID: session.LibraryItemID,
		Progress:      fraction,
		CurrentTime:   session.CurrentTime,
		Duration:      session.Duration,
		TimeListening: session.TimeListening,
		StartedAt:     session.StartedAt,
		LastUpdate:    session.UpdatedAt,
	}
	record.IsFinished = record.Percent() >= 98
	return record
}
