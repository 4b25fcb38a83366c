package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"studybeats/internal/spotify"
)

type stubProviderAPI struct {
	topTracks    []spotify.Track
	topTracksErr error

	recommendations    []spotify.Track
	recommendationsErr error
	lastSeeds          spotify.Seeds

	playlists    []spotify.Playlist
	playlistsErr error

	searchTracks    []spotify.Track
	searchTracksErr error

	playlistTracks    map[string][]spotify.Track
	playlistTracksErr error
}

func (s *stubProviderAPI) TopTracks(context.Context, string, int) ([]spotify.Track, error) {
	return s.topTracks, s.topTracksErr
}

func (s *stubProviderAPI) Recommendations(_ context.Context, _ string, seeds spotify.Seeds, _ int) ([]spotify.Track, error) {
	s.lastSeeds = seeds
	return s.recommendations, s.recommendationsErr
}

func (s *stubProviderAPI) SearchPlaylists(context.Context, string, string, int) ([]spotify.Playlist, error) {
	return s.playlists, s.playlistsErr
}

func (s *stubProviderAPI) SearchTracks(context.Context, string, string, int) ([]spotify.Track, error) {
	return s.searchTracks, s.searchTracksErr
}

func (s *stubProviderAPI) PlaylistTracks(_ context.Context, _ string, playlistID string, _, _ int) ([]spotify.Track, int, error) {
	if s.playlistTracksErr != nil {
		return nil, 0, s.playlistTracksErr
	}
	tracks := s.playlistTracks[playlistID]
	return tracks, len(tracks), nil
}

func makeTracks(n int) []spotify.Track {
	tracks := make([]spotify.Track, n)
	for i := range tracks {
		tracks[i] = spotify.Track{ID: fmt.Sprintf("t%d", i+1), Name: fmt.Sprintf("Track %d", i+1)}
	}
	return tracks
}

func TestResolveUsesSeedRecommendationsFirst(t *testing.T) {
	api := &stubProviderAPI{recommendations: makeTracks(10)}
	r := NewResolver(api, zerolog.Nop())

	cfg := MoodConfig("joy")
	playlists := r.Resolve(context.Background(), "token", cfg, 4)

	if len(playlists) != 2 {
		t.Fatalf("len(playlists) = %d, want 2", len(playlists))
	}
	if playlists[0].Title != "Pure Joy Vol. 1" || playlists[1].Title != "Pure Joy Vol. 2" {
		t.Fatalf("unexpected titles: %q, %q", playlists[0].Title, playlists[1].Title)
	}
	if playlists[0].ID != "virtual-pure-joy-1" {
		t.Fatalf("ID = %q, want virtual-pure-joy-1", playlists[0].ID)
	}
	if len(playlists[0].Tracks) != 5 || len(playlists[1].Tracks) != 5 {
		t.Fatalf("track counts = %d, %d, want 5 and 5", len(playlists[0].Tracks), len(playlists[1].Tracks))
	}
	if !reflect.DeepEqual(api.lastSeeds.Genres, cfg.Genres) {
		t.Fatalf("seed genres = %v, want %v", api.lastSeeds.Genres, cfg.Genres)
	}
}

func TestResolveFallsThroughToPlaylistSearch(t *testing.T) {
	api := &stubProviderAPI{
		recommendationsErr: errors.New("recommendations down"),
		playlists: []spotify.Playlist{
			{ID: "pl-1", Name: "Chill One", Owner: spotify.Owner{DisplayName: "Curator"}},
			{ID: "pl-2", Name: "Chill Two"},
		},
		playlistTracks: map[string][]spotify.Track{
			"pl-1": makeTracks(3),
		},
	}
	r := NewResolver(api, zerolog.Nop())

	playlists := r.Resolve(context.Background(), "token", WorkloadConfig("light"), 4)

	if len(playlists) != 2 {
		t.Fatalf("len(playlists) = %d, want 2", len(playlists))
	}
	if playlists[0].ID != "pl-1" || playlists[1].ID != "pl-2" {
		t.Fatalf("order not preserved: %q, %q", playlists[0].ID, playlists[1].ID)
	}
	if len(playlists[0].Tracks) != 3 {
		t.Fatalf("hydrated tracks = %d, want 3", len(playlists[0].Tracks))
	}
	// No hydration result for pl-2, but the playlist still shows up.
	if len(playlists[1].Tracks) != 0 {
		t.Fatalf("unhydrated playlist has %d tracks, want 0", len(playlists[1].Tracks))
	}
}

func TestResolveFallsThroughToTrackSearch(t *testing.T) {
	api := &stubProviderAPI{
		recommendationsErr: errors.New("recommendations down"),
		playlistsErr:       errors.New("search down"),
		searchTracks:       makeTracks(7),
	}
	r := NewResolver(api, zerolog.Nop())

	playlists := r.Resolve(context.Background(), "token", MoodConfig("sad"), 4)

	if len(playlists) != 2 {
		t.Fatalf("len(playlists) = %d, want 2", len(playlists))
	}
	if got := len(playlists[0].Tracks) + len(playlists[1].Tracks); got != 7 {
		t.Fatalf("total tracks = %d, want 7", got)
	}
	if playlists[0].Artist != "Spotify" {
		t.Fatalf("virtual playlist attribution = %q, want Spotify", playlists[0].Artist)
	}
}

func TestResolveServesCatalogWhenEverythingFails(t *testing.T) {
	api := &stubProviderAPI{
		recommendationsErr: errors.New("down"),
		playlistsErr:       errors.New("down"),
		searchTracksErr:    errors.New("down"),
	}
	r := NewResolver(api, zerolog.Nop())

	playlists := r.Resolve(context.Background(), "token", DefaultConfig(), 4)

	if !reflect.DeepEqual(playlists, Catalog(4)) {
		t.Fatalf("expected static catalog, got %+v", playlists)
	}
	if len(playlists) == 0 {
		t.Fatal("resolver returned an empty list")
	}
}

func TestResolveTreatsEmptyResultsAsFailure(t *testing.T) {
	// Every strategy answers without error but yields nothing.
	api := &stubProviderAPI{}
	r := NewResolver(api, zerolog.Nop())

	playlists := r.Resolve(context.Background(), "token", DefaultConfig(), 0)

	if !reflect.DeepEqual(playlists, Catalog(DefaultLimit)) {
		t.Fatalf("expected static catalog, got %+v", playlists)
	}
}

func TestResolvePersonalizedSeedsFromTopTracks(t *testing.T) {
	api := &stubProviderAPI{
		topTracks:       makeTracks(5),
		recommendations: makeTracks(5),
	}
	r := NewResolver(api, zerolog.Nop())

	playlists := r.ResolvePersonalized(context.Background(), "token", 4)

	if len(playlists) != 1 {
		t.Fatalf("len(playlists) = %d, want 1", len(playlists))
	}
	if playlists[0].Title != "Your Mix" {
		t.Fatalf("Title = %q, want Your Mix", playlists[0].Title)
	}
	if !reflect.DeepEqual(api.lastSeeds.TrackIDs, []string{"t1", "t2"}) {
		t.Fatalf("seed track IDs = %v, want [t1 t2]", api.lastSeeds.TrackIDs)
	}
}

func TestResolvePersonalizedFallsBackToGenericChain(t *testing.T) {
	api := &stubProviderAPI{
		topTracksErr:       errors.New("top tracks down"),
		recommendationsErr: errors.New("recommendations down"),
		playlists: []spotify.Playlist{
			{ID: "pl-1", Name: "Study Vibes"},
		},
	}
	r := NewResolver(api, zerolog.Nop())

	playlists := r.ResolvePersonalized(context.Background(), "token", 4)

	if len(playlists) != 1 || playlists[0].ID != "pl-1" {
		t.Fatalf("unexpected playlists: %+v", playlists)
	}
}
