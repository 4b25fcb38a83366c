// Package recommend produces normalized study playlists for a selected mood,
// workload, or focus level, masking provider instability behind an ordered
// fallback chain so callers always receive a usable result.
package recommend

// Track is the normalized track shape served to the frontend.
type Track struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Image      string `json:"image"`
	DurationMs int    `json:"durationMs"`
	PreviewURL string `json:"previewUrl"`
	URI        string `json:"uri"`
}

// Playlist is the normalized playlist shape served to the frontend. The same
// shape is used whether the source was a provider playlist, an album, or a
// virtual playlist synthesized from raw search results.
type Playlist struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Tracks      []Track `json:"tracks"`
}
