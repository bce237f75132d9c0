package models

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	UserID   string `validate:"required"`
	Password string `validate:"required"`
}

// Review is a single free-text review of a song.
// SongName is a loose textual link to a catalog track title and UserID is
// whatever the submitting form claimed; neither is validated against the
// catalog or the user table, matching the original system.
type Review struct {
	SongName   string `json:"song_name"`
	UserID     string `json:"user_id"`
	ReviewText string `json:"review_text"`
}

// CatalogTrack is a single search result from the iTunes Search API.
// Only the fields the application and its UI consume are decoded.
type CatalogTrack struct {
	WrapperType      string  `json:"wrapperType,omitempty"`
	Kind             string  `json:"kind,omitempty"`
	ArtistID         int64   `json:"artistId,omitempty"`
	CollectionID     int64   `json:"collectionId,omitempty"`
	TrackID          int64   `json:"trackId,omitempty"`
	ArtistName       string  `json:"artistName"`
	CollectionName   string  `json:"collectionName,omitempty"`
	TrackName        string  `json:"trackName"`
	PreviewURL       string  `json:"previewUrl,omitempty"`
	ArtworkURL100    string  `json:"artworkUrl100,omitempty"`
	TrackPrice       float64 `json:"trackPrice,omitempty"`
	Currency         string  `json:"currency,omitempty"`
	PrimaryGenreName string  `json:"primaryGenreName,omitempty"`
	TrackTimeMillis  int64   `json:"trackTimeMillis,omitempty"`
}

// CatalogSearchResponse mirrors the iTunes Search API response envelope.
type CatalogSearchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []CatalogTrack `json:"results"`
}

// MessageResponse is the JSON body used for user-facing messages on the
// /music endpoint, e.g. when the title query parameter is empty.
type MessageResponse struct {
	Message string `json:"message"`
}

// Storage backend kinds selected from configuration.
const (
	StorageTypeUnknown = iota
	StorageTypePostgresql
	StorageTypeFile
	StorageTypeMemory
)
