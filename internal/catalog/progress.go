package catalog

// Status describes how far the user is through an item.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusStarted    Status = "Started"
	StatusInProgress Status = "In Progress"
	StatusFinished   Status = "Finished"
)

// finishedPercent is the listening percentage at which an item counts as
// finished even when the server never set the finished flag.
const finishedPercent = 98.0

// ProgressRecord is the unified listening-progress shape. Progress is a
// fraction in [0, 1] regardless of which remote source produced the record.
type ProgressRecord struct {
	LibraryItemID string  `json:"libraryItemId"`
	Progress      float64 `json:"progress"`
	CurrentTime   float64 `json:"currentTime"`
	Duration      float64 `json:"duration"`
	IsFinished    bool    `json:"isFinished"`

	// Millisecond epoch timestamps, zero when absent.
	StartedAt  int64 `json:"startedAt"`
	FinishedAt int64 `json:"finishedAt"`
	LastUpdate int64 `json:"lastUpdate"`

	// TimeListening is total listening seconds from session payloads.
	TimeListening float64 `json:"timeListening"`
}

// Percent returns the listening progress on the 0-100 scale.
func (p *ProgressRecord) Percent() float64 {
	if p == nil {
		return 0
	}
	return p.Progress * 100
}

// DeriveStatus applies the shared reading-status rule. Exactly 98 percent is
// finished; anything at or above 1 percent is in progress; a recorded start
// or nonzero listening time counts as started.
func DeriveStatus(p *ProgressRecord) Status {
	if p == nil {
		return StatusNotStarted
	}
	percent := p.Percent()
	switch {
	case p.IsFinished || percent >= finishedPercent:
		return StatusFinished
	case percent >= 1:
		return StatusInProgress
	case p.StartedAt != 0 || p.TimeListening > 0:
		return StatusStarted
	default:
		return StatusNotStarted
	}
}

// MergeProgress combines a stale record already attached to an item with a
// freshly aggregated record. Fresh fields win; fields the fresh record does
// not carry (zero-valued) retain the stale values. Returns fresh when there is
// nothing to merge with.
func MergeProgress(stale, fresh *ProgressRecord) *ProgressRecord {
	if fresh == nil {
		return stale
	}
	if stale == nil {
		out := *fresh
		return &out
	}
	merged := *fresh
	if merged.FinishedAt == 0 {
		merged.FinishedAt = stale.FinishedAt
	}
	if merged.TimeListening == 0 {
		merged.TimeListening = stale.TimeListening
	}
	if merged.StartedAt == 0 {
		merged.StartedAt = stale.StartedAt
	}
	if merged.LibraryItemID == "" {
		merged.LibraryItemID = stale.LibraryItemID
	}
	return &merged
}
