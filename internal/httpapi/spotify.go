package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"studybeats/internal/recommend"
	"studybeats/internal/spotify"
	"studybeats/internal/store"
)

// oauthState is sent on the authorize URL and echoed back by the provider.
// The frontend completes the flow via POST with the code, so the state is a
// fixed marker rather than a per-session secret.
const oauthState = "studybeats"

const (
	shelfLimit = 4

	// albumTrackCap bounds how many preview tracks are fetched per liked album.
	albumTrackCap = 6
)

type codeRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleAuthURL(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		AuthURL string `json:"authUrl"`
	}{AuthURL: s.oauth.AuthURL(oauthState)})
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no authorization code provided"})
		return
	}

	creds, profile, ok := s.exchangeAndProbe(w, r, req.Code)
	if !ok {
		return
	}

	user, err := s.users.UserBySpotifyID(r.Context(), profile.ID)
	switch {
	case err == nil:
		if err := s.users.LinkSpotify(r.Context(), user.ID, profile.ID, creds.AccessToken, creds.RefreshToken); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to store spotify credentials"})
			return
		}
	case errors.Is(err, store.ErrUserNotFound):
		user, err = s.createSpotifyUser(r, profile, creds)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create account"})
			return
		}
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to look up account"})
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to issue token"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Token        string `json:"token"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}{Token: token, AccessToken: creds.AccessToken, RefreshToken: creds.RefreshToken})
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req codeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no authorization code provided"})
		return
	}

	creds, profile, ok := s.exchangeAndProbe(w, r, req.Code)
	if !ok {
		return
	}

	if err := s.users.LinkSpotify(r.Context(), user.ID, profile.ID, creds.AccessToken, creds.RefreshToken); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "spotify account already linked to another user"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to connect spotify account"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message     string `json:"message"`
		SpotifyUser struct {
			ID          string `json:"id"`
			DisplayName string `json:"display_name"`
		} `json:"spotifyUser"`
	}{
		Message: "Spotify connected successfully",
		SpotifyUser: struct {
			ID          string `json:"id"`
			DisplayName string `json:"display_name"`
		}{ID: profile.ID, DisplayName: profile.DisplayName},
	})
}

// exchangeAndProbe trades the authorization code for tokens and fetches the
// provider profile they belong to. On failure a response is written.
func (s *Server) exchangeAndProbe(w http.ResponseWriter, r *http.Request, code string) (spotify.Credentials, spotify.Profile, bool) {
	creds, err := s.oauth.Exchange(r.Context(), code)
	if err != nil {
		if errors.Is(err, spotify.ErrReauthRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid authorization code"})
		} else {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "spotify unavailable"})
		}
		return spotify.Credentials{}, spotify.Profile{}, false
	}

	profile, err := s.provider.Me(r.Context(), creds.AccessToken)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to fetch spotify profile"})
		return spotify.Credentials{}, spotify.Profile{}, false
	}
	return creds, profile, true
}

// createSpotifyUser registers an account for a first-time Spotify login. The
// display name is preferred as username; collisions fall back to identifiers
// derived from the Spotify account ID.
func (s *Server) createSpotifyUser(r *http.Request, profile spotify.Profile, creds spotify.Credentials) (store.User, error) {
	candidates := []string{strings.TrimSpace(profile.DisplayName), profile.ID, "spotify-" + profile.ID}
	var lastErr error
	for _, username := range candidates {
		if len(username) < minUsernameLen {
			continue
		}
		user, err := s.users.CreateSpotifyUser(r.Context(), username, profile.ID, creds.AccessToken, creds.RefreshToken)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, store.ErrUserExists) {
			return store.User{}, err
		}
		lastErr = err
	}
	return store.User{}, lastErr
}

func (s *Server) handleRecentlyPlayed(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireSpotify(w, r)
	if !ok {
		return
	}
	token, err := s.access.Valid(r.Context(), user)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	tracks, err := s.provider.RecentlyPlayed(r.Context(), token, shelfLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to fetch recently played tracks"})
		return
	}
	writeJSON(w, http.StatusOK, recommend.TrackCards(tracks))
}

func (s *Server) handleLikedAlbums(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireSpotify(w, r)
	if !ok {
		return
	}
	token, err := s.access.Valid(r.Context(), user)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	albums, err := s.provider.SavedAlbums(r.Context(), token, shelfLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to fetch liked albums"})
		return
	}

	// Hydrate a few preview tracks per album. A failed hydration leaves the
	// album without tracks rather than failing the whole shelf.
	hydrated := make([][]spotify.Track, len(albums))
	var g errgroup.Group
	g.SetLimit(4)
	for i, album := range albums {
		g.Go(func() error {
			tracks, err := s.provider.AlbumTracks(r.Context(), token, album.ID, albumTrackCap)
			if err != nil {
				return nil
			}
			hydrated[i] = tracks
			return nil
		})
	}
	_ = g.Wait()

	playlists := make([]recommend.Playlist, len(albums))
	for i, album := range albums {
		playlists[i] = recommend.FormatAlbum(album, hydrated[i])
	}
	writeJSON(w, http.StatusOK, playlists)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	token, ok := s.resolverAccess(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.resolver.ResolvePersonalized(r.Context(), token, recommend.DefaultLimit))
}

func (s *Server) handleMoodPlaylists(w http.ResponseWriter, r *http.Request) {
	token, ok := s.resolverAccess(w, r)
	if !ok {
		return
	}

	var req struct {
		Mood string `json:"mood"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	cfg := recommend.MoodConfig(req.Mood)
	writeJSON(w, http.StatusOK, s.resolver.Resolve(r.Context(), token, cfg, recommend.DefaultLimit))
}

func (s *Server) handleWorkloadPlaylists(w http.ResponseWriter, r *http.Request) {
	token, ok := s.resolverAccess(w, r)
	if !ok {
		return
	}

	var req struct {
		Workload string `json:"workload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	cfg := recommend.WorkloadConfig(req.Workload)
	writeJSON(w, http.StatusOK, s.resolver.Resolve(r.Context(), token, cfg, recommend.DefaultLimit))
}

func (s *Server) handleFocusPlaylists(w http.ResponseWriter, r *http.Request) {
	token, ok := s.resolverAccess(w, r)
	if !ok {
		return
	}

	var req struct {
		FocusLevel string `json:"focusLevel"`
		StudyHours int    `json:"studyHours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	cfg := recommend.FocusConfig(req.FocusLevel, req.StudyHours)
	writeJSON(w, http.StatusOK, s.resolver.Resolve(r.Context(), token, cfg, recommend.DefaultLimit))
}

// resolverAccess is the token acquisition path for recommendation endpoints.
// When the provider probe itself is unreachable, the static catalog is served
// directly so these endpoints keep their always-succeed contract.
func (s *Server) resolverAccess(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := s.requireSpotify(w, r)
	if !ok {
		return "", false
	}

	token, err := s.access.Valid(r.Context(), user)
	if err != nil {
		if errors.Is(err, spotify.ErrProviderUnavailable) {
			writeJSON(w, http.StatusOK, recommend.Catalog(recommend.DefaultLimit))
			return "", false
		}
		writeAccessError(w, err)
		return "", false
	}
	return token, true
}

func (s *Server) handlePlaylistTracks(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireSpotify(w, r)
	if !ok {
		return
	}
	token, err := s.access.Valid(r.Context(), user)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	playlistID := r.PathValue("id")
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	tracks, total, err := s.provider.PlaylistTracks(r.Context(), token, playlistID, limit, offset)
	if err != nil {
		var apiErr *spotify.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "playlist not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to fetch playlist tracks"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Tracks []recommend.Track `json:"tracks"`
		Total  int               `json:"total"`
		Limit  int               `json:"limit"`
		Offset int               `json:"offset"`
	}{
		Tracks: recommend.FormatTracks(tracks),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
