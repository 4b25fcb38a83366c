package spotify

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected indicates the user has no linked Spotify account.
	ErrNotConnected = errors.New("spotify not connected")
	// ErrReauthRequired indicates the refresh token was rejected and the
	// user must redo the authorization flow.
	ErrReauthRequired = errors.New("spotify reauthorization required")
	// ErrProviderUnavailable indicates a network failure or server error
	// from Spotify that is not an authorization problem.
	ErrProviderUnavailable = errors.New("spotify unavailable")
)

// APIError is a non-2xx response from the Spotify Web API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spotify: status %d", e.Status)
	}
	return fmt.Sprintf("spotify: status %d: %s", e.Status, e.Message)
}
