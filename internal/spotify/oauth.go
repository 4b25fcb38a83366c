package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Scopes requested during the authorization-code flow.
var Scopes = []string{
	"user-read-private",
	"user-read-email",
	"user-read-recently-played",
	"user-library-read",
	"user-top-read",
	"playlist-read-private",
}

// Credentials are the tokens issued by the provider's token endpoint.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// OAuth handles the authorization-code flow against Spotify's account
// service: building the authorize URL, exchanging codes, and refreshing
// access tokens.
type OAuth struct {
	cfg *oauth2.Config
}

// NewOAuth builds the flow configuration from the registered application
// credentials and redirect URI.
func NewOAuth(clientID, clientSecret, redirectURL string) *OAuth {
	return &OAuth{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       Scopes,
			Endpoint:     endpoints.Spotify,
		},
	}
}

// AuthURL returns the provider authorize URL the frontend redirects to.
func (o *OAuth) AuthURL(state string) string {
	return o.cfg.AuthCodeURL(state)
}

// Exchange trades an authorization code for access and refresh tokens.
func (o *OAuth) Exchange(ctx context.Context, code string) (Credentials, error) {
	token, err := o.cfg.Exchange(ctx, code)
	if err != nil {
		return Credentials{}, mapTokenEndpointError(err)
	}
	return Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}

// Refresh obtains a new access token from a refresh token. The returned
// refresh token equals the input unless the provider rotated it.
func (o *OAuth) Refresh(ctx context.Context, refreshToken string) (Credentials, error) {
	if refreshToken == "" {
		return Credentials{}, ErrReauthRequired
	}

	src := o.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return Credentials{}, mapTokenEndpointError(err)
	}
	return Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}

// mapTokenEndpointError distinguishes a rejected grant, which requires the
// user to reauthorize, from the token endpoint being unreachable or broken.
func mapTokenEndpointError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		switch retrieveErr.Response.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrReauthRequired, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}
