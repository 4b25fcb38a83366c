// Package httpapi wires the HTTP surface to the underlying services: local
// authentication, the Spotify link, and the recommendation resolver.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"studybeats/internal/recommend"
	"studybeats/internal/spotify"
	"studybeats/internal/store"
)

// UserStore captures the persistence operations needed by the handlers.
type UserStore interface {
	CreateUser(ctx context.Context, username, password string) (int64, error)
	CreateSpotifyUser(ctx context.Context, username, spotifyID, accessToken, refreshToken string) (store.User, error)
	Authenticate(ctx context.Context, username, password string) (store.User, error)
	UserByID(ctx context.Context, id int64) (store.User, error)
	UserBySpotifyID(ctx context.Context, spotifyID string) (store.User, error)
	LinkSpotify(ctx context.Context, userID int64, spotifyID, accessToken, refreshToken string) error
	AddFeedback(ctx context.Context, userID int64, playlistID string, rating int, contextText string) (store.Feedback, error)
	FeedbackByUser(ctx context.Context, userID int64, limit int) ([]store.Feedback, error)
}

// TokenIssuer signs and verifies the application's bearer tokens.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
	Verify(raw string) (int64, error)
}

// OAuthFlow is the provider's authorization-code flow.
type OAuthFlow interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (spotify.Credentials, error)
}

// ProviderClient is the slice of the Spotify client used directly by the
// passthrough endpoints.
type ProviderClient interface {
	Me(ctx context.Context, accessToken string) (spotify.Profile, error)
	RecentlyPlayed(ctx context.Context, accessToken string, limit int) ([]spotify.Track, error)
	SavedAlbums(ctx context.Context, accessToken string, limit int) ([]spotify.Album, error)
	AlbumTracks(ctx context.Context, accessToken, albumID string, limit int) ([]spotify.Track, error)
	PlaylistTracks(ctx context.Context, accessToken, playlistID string, limit, offset int) ([]spotify.Track, int, error)
}

// AccessTokens guarantees a working provider access token per call.
type AccessTokens interface {
	Valid(ctx context.Context, user store.User) (string, error)
}

// PlaylistResolver produces playlists for a selector configuration.
type PlaylistResolver interface {
	Resolve(ctx context.Context, accessToken string, cfg recommend.Config, limit int) []recommend.Playlist
	ResolvePersonalized(ctx context.Context, accessToken string, limit int) []recommend.Playlist
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users    UserStore
	tokens   TokenIssuer
	oauth    OAuthFlow
	provider ProviderClient
	access   AccessTokens
	resolver PlaylistResolver
}

// New configures a Server with the given collaborators.
func New(users UserStore, tokens TokenIssuer, oauth OAuthFlow, provider ProviderClient, access AccessTokens, resolver PlaylistResolver) *Server {
	return &Server{
		users:    users,
		tokens:   tokens,
		oauth:    oauth,
		provider: provider,
		access:   access,
		resolver: resolver,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/spotify/auth-url", s.handleAuthURL)
	mux.HandleFunc("POST /api/spotify/callback", s.handleCallback)
	mux.HandleFunc("POST /api/spotify/connect", s.handleConnect)
	mux.HandleFunc("GET /api/spotify/recently-played", s.handleRecentlyPlayed)
	mux.HandleFunc("GET /api/spotify/liked-albums", s.handleLikedAlbums)
	mux.HandleFunc("GET /api/spotify/recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /api/spotify/mood-playlists", s.handleMoodPlaylists)
	mux.HandleFunc("POST /api/spotify/workload-playlists", s.handleWorkloadPlaylists)
	mux.HandleFunc("POST /api/spotify/focus-playlists", s.handleFocusPlaylists)
	mux.HandleFunc("GET /api/spotify/playlist/{id}/tracks", s.handlePlaylistTracks)

	mux.HandleFunc("POST /api/feedback", s.handleAddFeedback)
	mux.HandleFunc("GET /api/feedback/mine", s.handleMyFeedback)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// currentUser authenticates the request from its bearer token. On failure a
// 401 is written and ok is false.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (store.User, bool) {
	raw := parseBearerToken(r.Header.Get("Authorization"))
	if raw == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return store.User{}, false
	}

	userID, err := s.tokens.Verify(raw)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
		return store.User{}, false
	}

	user, err := s.users.UserByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
		return store.User{}, false
	}
	return user, true
}

// requireSpotify authenticates the request and rejects users without a
// linked Spotify account before any provider call is attempted.
func (s *Server) requireSpotify(w http.ResponseWriter, r *http.Request) (store.User, bool) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return store.User{}, false
	}
	if !user.HasSpotify {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "spotify not connected"})
		return store.User{}, false
	}
	return user, true
}

// writeAccessError maps token-manager failures onto the error taxonomy.
func writeAccessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, spotify.ErrNotConnected):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "spotify not connected"})
	case errors.Is(err, spotify.ErrReauthRequired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "spotify authorization expired, please reconnect"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "spotify unavailable"})
	}
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
