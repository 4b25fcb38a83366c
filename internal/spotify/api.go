package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Me returns the authenticated user's profile. It doubles as the lightweight
// probe the token manager uses to check access-token validity.
func (c *Client) Me(ctx context.Context, accessToken string) (Profile, error) {
	var profile Profile
	if err := c.get(ctx, accessToken, "me", nil, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// RecentlyPlayed returns the user's most recently played tracks.
func (c *Client) RecentlyPlayed(ctx context.Context, accessToken string, limit int) ([]Track, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var page recentlyPlayedPage
	if err := c.get(ctx, accessToken, "me/player/recently-played", params, &page); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(page.Items))
	for _, item := range page.Items {
		tracks = append(tracks, item.Track)
	}
	return tracks, nil
}

// SavedAlbums returns albums the user has saved to their library.
func (c *Client) SavedAlbums(ctx context.Context, accessToken string, limit int) ([]Album, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var page savedAlbumsPage
	if err := c.get(ctx, accessToken, "me/albums", params, &page); err != nil {
		return nil, err
	}

	albums := make([]Album, 0, len(page.Items))
	for _, item := range page.Items {
		albums = append(albums, item.Album)
	}
	return albums, nil
}

// TopTracks returns the user's top tracks, used as recommendation seeds.
func (c *Client) TopTracks(ctx context.Context, accessToken string, limit int) ([]Track, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var page TrackPage
	if err := c.get(ctx, accessToken, "me/top/tracks", params, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Seeds parameterizes a recommendation request. Genres and TrackIDs may not
// both be empty.
type Seeds struct {
	Genres        []string
	TrackIDs      []string
	TargetEnergy  float64
	TargetValence float64
}

// Recommendations returns tracks recommended for the given seeds.
func (c *Client) Recommendations(ctx context.Context, accessToken string, seeds Seeds, limit int) ([]Track, error) {
	if len(seeds.Genres) == 0 && len(seeds.TrackIDs) == 0 {
		return nil, fmt.Errorf("at least one seed is required")
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if len(seeds.Genres) > 0 {
		params.Set("seed_genres", strings.Join(seeds.Genres, ","))
	}
	if len(seeds.TrackIDs) > 0 {
		params.Set("seed_tracks", strings.Join(seeds.TrackIDs, ","))
	}
	params.Set("target_energy", formatFloat(seeds.TargetEnergy))
	params.Set("target_valence", formatFloat(seeds.TargetValence))

	var resp recommendationsResponse
	if err := c.get(ctx, accessToken, "recommendations", params, &resp); err != nil {
		return nil, err
	}
	return resp.Tracks, nil
}

// SearchPlaylists searches the catalog for playlists matching the query.
// Null entries in the result set are skipped.
func (c *Client) SearchPlaylists(ctx context.Context, accessToken, query string, limit int) ([]Playlist, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "playlist")
	params.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.get(ctx, accessToken, "search", params, &resp); err != nil {
		return nil, err
	}
	if resp.Playlists == nil {
		return []Playlist{}, nil
	}

	playlists := make([]Playlist, 0, len(resp.Playlists.Items))
	for _, p := range resp.Playlists.Items {
		if p == nil {
			continue
		}
		playlists = append(playlists, *p)
	}
	return playlists, nil
}

// SearchTracks searches the catalog for tracks matching the query.
func (c *Client) SearchTracks(ctx context.Context, accessToken, query string, limit int) ([]Track, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.get(ctx, accessToken, "search", params, &resp); err != nil {
		return nil, err
	}
	if resp.Tracks == nil {
		return []Track{}, nil
	}
	return resp.Tracks.Items, nil
}

// PlaylistTracks fetches up to limit tracks of a playlist starting at offset,
// following `next` cursors across pages. The fetch is capped at maxTrackFetch
// items regardless of the requested limit. The returned total is the
// playlist's full track count.
func (c *Client) PlaylistTracks(ctx context.Context, accessToken, playlistID string, limit, offset int) ([]Track, int, error) {
	if limit <= 0 || limit > maxTrackFetch {
		limit = maxTrackFetch
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(min(limit, 50)))
	params.Set("offset", strconv.Itoa(offset))

	endpoint := "playlists/" + url.PathEscape(playlistID) + "/tracks"
	var tracks []Track
	total := 0

	for {
		var page playlistTracksPage
		if err := c.get(ctx, accessToken, endpoint, params, &page); err != nil {
			return nil, 0, err
		}
		total = page.Total

		for _, item := range page.Items {
			if item.Track == nil {
				continue
			}
			tracks = append(tracks, *item.Track)
			if len(tracks) >= limit {
				return tracks, total, nil
			}
		}

		if page.Next == "" {
			return tracks, total, nil
		}
		endpoint = page.Next
		params = nil
	}
}

// AlbumTracks fetches up to limit tracks of an album, following `next`
// cursors, capped at maxTrackFetch items.
func (c *Client) AlbumTracks(ctx context.Context, accessToken, albumID string, limit int) ([]Track, error) {
	if limit <= 0 || limit > maxTrackFetch {
		limit = maxTrackFetch
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(min(limit, 50)))

	endpoint := "albums/" + url.PathEscape(albumID) + "/tracks"
	var tracks []Track

	for {
		var page TrackPage
		if err := c.get(ctx, accessToken, endpoint, params, &page); err != nil {
			return nil, err
		}

		tracks = append(tracks, page.Items...)
		if len(tracks) >= limit {
			return tracks[:limit], nil
		}
		if page.Next == "" {
			return tracks, nil
		}
		endpoint = page.Next
		params = nil
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
