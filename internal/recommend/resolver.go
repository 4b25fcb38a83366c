package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"studybeats/internal/spotify"
)

const (
	// DefaultLimit is the number of playlists returned when the caller does
	// not specify one.
	DefaultLimit = 4

	// hydrateTrackCap bounds how many preview tracks are fetched per
	// playlist found by search.
	hydrateTrackCap = 6

	// tracksPerVirtual is the rough size of a synthesized virtual playlist.
	tracksPerVirtual = 5

	topTrackSeedCount = 2
)

// ProviderAPI is the slice of the Spotify client the resolver depends on.
type ProviderAPI interface {
	TopTracks(ctx context.Context, accessToken string, limit int) ([]spotify.Track, error)
	Recommendations(ctx context.Context, accessToken string, seeds spotify.Seeds, limit int) ([]spotify.Track, error)
	SearchPlaylists(ctx context.Context, accessToken, query string, limit int) ([]spotify.Playlist, error)
	SearchTracks(ctx context.Context, accessToken, query string, limit int) ([]spotify.Track, error)
	PlaylistTracks(ctx context.Context, accessToken, playlistID string, limit, offset int) ([]spotify.Track, int, error)
}

// Resolver walks an ordered chain of strategies until one yields results:
// seed-based recommendations, then playlist search, then track search
// partitioned into virtual playlists, and finally the static catalog. It
// never returns an error and never returns an empty list.
type Resolver struct {
	api ProviderAPI
	log zerolog.Logger
}

// NewResolver wires a Resolver to the provider client.
func NewResolver(api ProviderAPI, log zerolog.Logger) *Resolver {
	return &Resolver{api: api, log: log}
}

// Resolve produces up to limit normalized playlists for the selector
// configuration. Provider-side failures are absorbed: each strategy's error
// or empty result falls through to the next, and the static catalog closes
// the chain.
func (r *Resolver) Resolve(ctx context.Context, accessToken string, cfg Config, limit int) []Playlist {
	if limit <= 0 {
		limit = DefaultLimit
	}

	strategies := []struct {
		name string
		fn   func(context.Context, string, Config, int) ([]Playlist, error)
	}{
		{"seed-recommendations", r.seedRecommendations},
		{"playlist-search", r.playlistSearch},
		{"track-search", r.trackSearch},
	}

	for _, strategy := range strategies {
		playlists, err := strategy.fn(ctx, accessToken, cfg, limit)
		if err != nil {
			r.log.Warn().Err(err).Str("strategy", strategy.name).Str("selector", cfg.Label).
				Msg("recommendation strategy failed, falling through")
			continue
		}
		if len(playlists) == 0 {
			r.log.Debug().Str("strategy", strategy.name).Str("selector", cfg.Label).
				Msg("recommendation strategy returned nothing, falling through")
			continue
		}
		return playlists
	}

	r.log.Info().Str("selector", cfg.Label).Msg("serving static fallback catalog")
	return Catalog(limit)
}

// ResolvePersonalized seeds recommendations from the user's top tracks, then
// falls back to the generic chain under the neutral configuration.
func (r *Resolver) ResolvePersonalized(ctx context.Context, accessToken string, limit int) []Playlist {
	if limit <= 0 {
		limit = DefaultLimit
	}

	playlists, err := r.topTrackRecommendations(ctx, accessToken, limit)
	if err != nil {
		r.log.Warn().Err(err).Msg("personalized seeds failed, falling through")
	} else if len(playlists) > 0 {
		return playlists
	}

	return r.Resolve(ctx, accessToken, DefaultConfig(), limit)
}

func (r *Resolver) topTrackRecommendations(ctx context.Context, accessToken string, limit int) ([]Playlist, error) {
	top, err := r.api.TopTracks(ctx, accessToken, 5)
	if err != nil {
		return nil, fmt.Errorf("top tracks: %w", err)
	}
	if len(top) == 0 {
		return nil, nil
	}

	seedIDs := make([]string, 0, topTrackSeedCount)
	for _, t := range top {
		seedIDs = append(seedIDs, t.ID)
		if len(seedIDs) == topTrackSeedCount {
			break
		}
	}

	seeds := spotify.Seeds{TrackIDs: seedIDs, TargetEnergy: 0.5, TargetValence: 0.5}
	tracks, err := r.api.Recommendations(ctx, accessToken, seeds, limit*tracksPerVirtual)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	return partitionTracks(tracks, "Your Mix", limit), nil
}

func (r *Resolver) seedRecommendations(ctx context.Context, accessToken string, cfg Config, limit int) ([]Playlist, error) {
	seeds := spotify.Seeds{
		Genres:        cfg.Genres,
		TargetEnergy:  cfg.TargetEnergy,
		TargetValence: cfg.TargetValence,
	}
	tracks, err := r.api.Recommendations(ctx, accessToken, seeds, limit*tracksPerVirtual)
	if err != nil {
		return nil, err
	}
	return partitionTracks(tracks, cfg.Label, limit), nil
}

// playlistSearch finds real provider playlists for the selector query and
// hydrates a bounded number of preview tracks per playlist concurrently.
// Hydration failures leave the playlist without tracks rather than failing
// the strategy; input order is preserved.
func (r *Resolver) playlistSearch(ctx context.Context, accessToken string, cfg Config, limit int) ([]Playlist, error) {
	found, err := r.api.SearchPlaylists(ctx, accessToken, cfg.Query, limit)
	if err != nil {
		return nil, err
	}
	if len(found) > limit {
		found = found[:limit]
	}
	if len(found) == 0 {
		return nil, nil
	}

	hydrated := make([][]spotify.Track, len(found))
	var g errgroup.Group
	g.SetLimit(4)
	for i, p := range found {
		g.Go(func() error {
			tracks, _, err := r.api.PlaylistTracks(ctx, accessToken, p.ID, hydrateTrackCap, 0)
			if err != nil {
				r.log.Debug().Err(err).Str("playlist_id", p.ID).Msg("track hydration failed")
				return nil
			}
			hydrated[i] = tracks
			return nil
		})
	}
	_ = g.Wait()

	playlists := make([]Playlist, len(found))
	for i, p := range found {
		playlists[i] = FormatPlaylist(p, hydrated[i])
	}
	return playlists, nil
}

func (r *Resolver) trackSearch(ctx context.Context, accessToken string, cfg Config, limit int) ([]Playlist, error) {
	tracks, err := r.api.SearchTracks(ctx, accessToken, cfg.Query, limit*tracksPerVirtual)
	if err != nil {
		return nil, err
	}
	return partitionTracks(tracks, cfg.Label, limit), nil
}

// partitionTracks splits a flat track list into at most count virtual
// playlists of roughly equal size, preserving provider order.
func partitionTracks(tracks []spotify.Track, label string, count int) []Playlist {
	if len(tracks) == 0 {
		return nil
	}

	groups := (len(tracks) + tracksPerVirtual - 1) / tracksPerVirtual
	if groups > count {
		groups = count
	}
	size := (len(tracks) + groups - 1) / groups

	slug := strings.ReplaceAll(strings.ToLower(label), " ", "-")
	playlists := make([]Playlist, 0, groups)
	for i := 0; i < groups; i++ {
		start := i * size
		end := start + size
		if end > len(tracks) {
			end = len(tracks)
		}
		if start >= end {
			break
		}
		title := label
		if groups > 1 {
			title = fmt.Sprintf("%s Vol. %d", label, i+1)
		}
		id := fmt.Sprintf("virtual-%s-%d", slug, i+1)
		playlists = append(playlists, VirtualPlaylist(id, title, tracks[start:end]))
	}
	return playlists
}
