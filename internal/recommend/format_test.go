package recommend

import (
	"testing"

	"studybeats/internal/spotify"
)

func TestFormatTrack(t *testing.T) {
	track := spotify.Track{
		ID:   "t1",
		Name: "Window Rain",
		Artists: []spotify.Artist{
			{Name: "Artist A"},
			{Name: "Artist B"},
		},
		Album: &spotify.Album{
			Images: []spotify.Image{{URL: "https://img.example/cover.jpg"}},
		},
		DurationMs: 152000,
		PreviewURL: "https://preview.example/t1",
		URI:        "spotify:track:t1",
	}

	got := FormatTrack(track)
	if got.Artist != "Artist A, Artist B" {
		t.Fatalf("Artist = %q, want joined names", got.Artist)
	}
	if got.Image != "https://img.example/cover.jpg" {
		t.Fatalf("Image = %q, want album cover", got.Image)
	}
	if got.DurationMs != 152000 || got.URI != "spotify:track:t1" {
		t.Fatalf("unexpected track: %+v", got)
	}
}

func TestFormatTrackDefaults(t *testing.T) {
	got := FormatTrack(spotify.Track{ID: "t1", Name: "Bare"})
	if got.Artist != "Spotify" {
		t.Fatalf("Artist = %q, want Spotify", got.Artist)
	}
	if got.Image != "" {
		t.Fatalf("Image = %q, want empty", got.Image)
	}
}

func TestFormatPlaylistOwnerFallback(t *testing.T) {
	withOwner := FormatPlaylist(spotify.Playlist{
		ID:    "pl-1",
		Name:  "Focus",
		Owner: spotify.Owner{DisplayName: "Curator"},
	}, nil)
	if withOwner.Artist != "Curator" {
		t.Fatalf("Artist = %q, want Curator", withOwner.Artist)
	}

	anonymous := FormatPlaylist(spotify.Playlist{ID: "pl-2", Name: "Focus"}, nil)
	if anonymous.Artist != "Spotify" {
		t.Fatalf("Artist = %q, want Spotify", anonymous.Artist)
	}
}

func TestVirtualPlaylistCoverFromFirstTrack(t *testing.T) {
	tracks := []spotify.Track{
		{ID: "t1", Name: "No Cover"},
		{ID: "t2", Name: "Has Cover", Album: &spotify.Album{Images: []spotify.Image{{URL: "https://img.example/t2.jpg"}}}},
	}

	got := VirtualPlaylist("virtual-x-1", "X Vol. 1", tracks)
	if got.Image != "https://img.example/t2.jpg" {
		t.Fatalf("Image = %q, want first available cover", got.Image)
	}
	if len(got.Tracks) != 2 {
		t.Fatalf("len(Tracks) = %d, want 2", len(got.Tracks))
	}
}

func TestTrackCards(t *testing.T) {
	cards := TrackCards([]spotify.Track{
		{ID: "t1", Name: "One", Artists: []spotify.Artist{{Name: "A"}}},
		{ID: "t2", Name: "Two", Artists: []spotify.Artist{{Name: "B"}}},
	})
	if len(cards) != 2 {
		t.Fatalf("len(cards) = %d, want 2", len(cards))
	}
	if cards[0].ID != "t1" || cards[0].Title != "One" {
		t.Fatalf("unexpected card: %+v", cards[0])
	}
	if len(cards[0].Tracks) != 1 || cards[0].Tracks[0].ID != "t1" {
		t.Fatalf("card should wrap its single track: %+v", cards[0])
	}
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	first := Catalog(0)
	first[0].Tracks[0].Title = "mutated"

	second := Catalog(0)
	if second[0].Tracks[0].Title == "mutated" {
		t.Fatal("Catalog shares track slices between calls")
	}
}
