package catalog

// Library identifies one Audiobookshelf library.
type Library struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MediaType string `json:"mediaType"`
}

// Metadata carries the descriptive fields of a library item.
type Metadata struct {
	Title         string   `json:"title"`
	AuthorName    string   `json:"authorName"`
	NarratorName  string   `json:"narratorName"`
	Genres        []string `json:"genres"`
	PublishedYear string   `json:"publishedYear"`
	Publisher     string   `json:"publisher"`
	Description   string   `json:"description"`
	Language      string   `json:"language"`
}

// Media wraps metadata with playback attributes.
type Media struct {
	CoverPath string   `json:"coverPath"`
	Metadata  Metadata `json:"metadata"`
	Duration  float64  `json:"duration"`
	Tags      []string `json:"tags"`
}

// Item is one catalog entry from the remote server. Immutable within a sync
// run except for progress enrichment and the library-name annotation.
type Item struct {
	ID      string `json:"id"`
	Media   Media  `json:"media"`
	AddedAt int64  `json:"addedAt"`
	Size    int64  `json:"size"`

	// Progress is merged from the bulk item payload, the per-item progress
	// endpoint, and the aggregated session data. Nil when the user never
	// touched the item.
	Progress *ProgressRecord `json:"userMediaProgress"`

	// LibraryName is set by the orchestrator for frontmatter rendering.
	LibraryName string `json:"-"`
	// CoverProbed records whether a cover probe succeeded for this item.
	CoverProbed bool `json:"-"`
}

// Title returns the item title, falling back to the item ID for nameless
// payloads so downstream paths stay non-empty.
func (i *Item) Title() string {
	if i.Media.Metadata.Title != "" {
		return i.Media.Metadata.Title
	}
	return i.ID
}
