package recommend

import (
	"strings"

	"studybeats/internal/spotify"
)

// defaultAttribution replaces a missing artist or owner name.
const defaultAttribution = "Spotify"

// FormatTrack maps a provider track to the normalized shape. Missing optional
// fields get defaults instead of failing.
func FormatTrack(t spotify.Track) Track {
	image := ""
	if t.Album != nil {
		image = firstImage(t.Album.Images)
	}
	return Track{
		ID:         t.ID,
		Title:      t.Name,
		Artist:     joinArtists(t.Artists),
		Image:      image,
		DurationMs: t.DurationMs,
		PreviewURL: t.PreviewURL,
		URI:        t.URI,
	}
}

// FormatTracks maps a slice of provider tracks, preserving order.
func FormatTracks(tracks []spotify.Track) []Track {
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = FormatTrack(t)
	}
	return out
}

// FormatPlaylist maps a provider playlist plus its hydrated tracks to the
// normalized shape. The owner display name stands in for the artist.
func FormatPlaylist(p spotify.Playlist, tracks []spotify.Track) Playlist {
	artist := strings.TrimSpace(p.Owner.DisplayName)
	if artist == "" {
		artist = defaultAttribution
	}
	return Playlist{
		ID:          p.ID,
		Title:       p.Name,
		Artist:      artist,
		Image:       firstImage(p.Images),
		Description: p.Description,
		Tracks:      FormatTracks(tracks),
	}
}

// FormatAlbum maps a provider album plus its tracks to the playlist shape.
func FormatAlbum(a spotify.Album, tracks []spotify.Track) Playlist {
	return Playlist{
		ID:     a.ID,
		Title:  a.Name,
		Artist: joinArtists(a.Artists),
		Image:  firstImage(a.Images),
		Tracks: FormatTracks(tracks),
	}
}

// VirtualPlaylist synthesizes a playlist from a flat track list, used when
// playlist search fails but track search succeeds. The cover comes from the
// first track carrying one.
func VirtualPlaylist(id, title string, tracks []spotify.Track) Playlist {
	image := ""
	for _, t := range tracks {
		if t.Album != nil {
			if url := firstImage(t.Album.Images); url != "" {
				image = url
				break
			}
		}
	}
	return Playlist{
		ID:     id,
		Title:  title,
		Artist: defaultAttribution,
		Image:  image,
		Tracks: FormatTracks(tracks),
	}
}

// TrackCard presents a single track in the playlist card shape used by the
// frontend's horizontal shelves (recently played, personalized picks).
func TrackCard(t spotify.Track) Playlist {
	tr := FormatTrack(t)
	return Playlist{
		ID:     tr.ID,
		Title:  tr.Title,
		Artist: tr.Artist,
		Image:  tr.Image,
		Tracks: []Track{tr},
	}
}

// TrackCards maps a slice of provider tracks to playlist cards in order.
func TrackCards(tracks []spotify.Track) []Playlist {
	out := make([]Playlist, len(tracks))
	for i, t := range tracks {
		out[i] = TrackCard(t)
	}
	return out
}

func joinArtists(artists []spotify.Artist) string {
	if len(artists) == 0 {
		return defaultAttribution
	}
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	if len(names) == 0 {
		return defaultAttribution
	}
	return strings.Join(names, ", ")
}

func firstImage(images []spotify.Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
