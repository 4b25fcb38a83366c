package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"studybeats/internal/store"
)

// Prober checks whether an access token currently works.
type Prober interface {
	Me(ctx context.Context, accessToken string) (Profile, error)
}

// Refresher trades a refresh token for new credentials.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (Credentials, error)
}

// CredentialStore persists refreshed tokens.
type CredentialStore interface {
	UpdateSpotifyTokens(ctx context.Context, userID int64, accessToken, refreshToken string) error
}

// TokenManager guarantees that callers get an access token Spotify currently
// accepts, refreshing and persisting transparently when the stored one has
// expired. Concurrent refreshes for the same user are not serialized; the
// provider tolerates redundant refresh calls and the last write wins.
type TokenManager struct {
	api   Prober
	oauth Refresher
	creds CredentialStore
	log   zerolog.Logger
}

// NewTokenManager wires the manager to the probe client, the OAuth refresher,
// and the credential store.
func NewTokenManager(api Prober, oauth Refresher, creds CredentialStore, log zerolog.Logger) *TokenManager {
	return &TokenManager{api: api, oauth: oauth, creds: creds, log: log}
}

// Valid returns an access token for the user that the provider currently
// accepts. The stored token is probed against the identity endpoint; a 401
// triggers exactly one refresh attempt, whose result is persisted before it
// is returned. Any non-authorization probe failure is reported as
// ErrProviderUnavailable without attempting a refresh.
func (m *TokenManager) Valid(ctx context.Context, user store.User) (string, error) {
	if !user.HasSpotify || user.AccessToken == "" {
		return "", ErrNotConnected
	}

	_, err := m.api.Me(ctx, user.AccessToken)
	if err == nil {
		return user.AccessToken, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	m.log.Debug().Int64("user_id", user.ID).Msg("spotify access token expired, refreshing")
	return m.refresh(ctx, user)
}

func (m *TokenManager) refresh(ctx context.Context, user store.User) (string, error) {
	if user.RefreshToken == "" {
		return "", ErrReauthRequired
	}

	creds, err := m.oauth.Refresh(ctx, user.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrReauthRequired) {
			m.log.Warn().Int64("user_id", user.ID).Msg("spotify refresh token rejected")
		}
		return "", err
	}

	// Persist only a rotated refresh token; an empty value keeps the stored one.
	rotated := ""
	if creds.RefreshToken != "" && creds.RefreshToken != user.RefreshToken {
		rotated = creds.RefreshToken
	}
	if err := m.creds.UpdateSpotifyTokens(ctx, user.ID, creds.AccessToken, rotated); err != nil {
		return "", fmt.Errorf("persist refreshed tokens: %w", err)
	}

	return creds.AccessToken, nil
}
