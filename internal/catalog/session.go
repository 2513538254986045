package catalog

// Session is one listening session from the server's session history.
type Session struct {
	ID            string  `json:"id"`
	LibraryItemID string  `json:"libraryItemId"`
	CurrentTime   float64 `json:"currentTime"`
	Duration      float64 `json:"duration"`
	TimeListening float64 `json:"timeListening"`
	StartedAt     int64   `json:"startedAt"`
	UpdatedAt     int64   `json:"updatedAt"`
}
