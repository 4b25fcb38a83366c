package spotify

// Response payloads from the Spotify Web API. These are decoded exactly once
// at this package boundary; nothing outside it touches raw provider JSON.

// Profile is the authenticated user's Spotify profile.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// Image is a cover image in one of several sizes.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist identifies a performing artist.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Album is a full or simplified album object.
type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []Artist `json:"artists"`
	Images      []Image  `json:"images"`
	TotalTracks int      `json:"total_tracks"`
}

// Track is a full or simplified track object. Album and PreviewURL are
// optional in several contexts and may be absent.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      *Album   `json:"album"`
	DurationMs int      `json:"duration_ms"`
	PreviewURL string   `json:"preview_url"`
	URI        string   `json:"uri"`
}

// Owner is the display attribution of a playlist.
type Owner struct {
	DisplayName string `json:"display_name"`
}

// Playlist is a simplified playlist object as returned by search.
type Playlist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Images      []Image `json:"images"`
	Owner       Owner   `json:"owner"`
	Tracks      struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

// TrackPage is one page of track results with a cursor to the next page.
type TrackPage struct {
	Items  []Track `json:"items"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Next   string  `json:"next"`
}

// Search result sets can contain null entries, so pages of playlists use
// pointers and callers skip nils.
type playlistPage struct {
	Items []*Playlist `json:"items"`
}

type searchResponse struct {
	Playlists *playlistPage `json:"playlists"`
	Tracks    *TrackPage    `json:"tracks"`
}

type playlistTrackItem struct {
	Track *Track `json:"track"`
}

type playlistTracksPage struct {
	Items  []playlistTrackItem `json:"items"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
	Next   string              `json:"next"`
}

type savedAlbumItem struct {
	Album Album `json:"album"`
}

type savedAlbumsPage struct {
	Items []savedAlbumItem `json:"items"`
}

type playHistoryItem struct {
	Track Track `json:"track"`
}

type recentlyPlayedPage struct {
	Items []playHistoryItem `json:"items"`
}

type recommendationsResponse struct {
	Tracks []Track `json:"tracks"`
}
