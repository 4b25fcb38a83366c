package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// User is a persisted account record. AccessToken and RefreshToken hold the
// user's Spotify credentials; HasSpotify implies AccessToken is non-empty.
type User struct {
	ID           int64
	Username     string
	SpotifyID    string
	AccessToken  string
	RefreshToken string
	HasSpotify   bool
}

// CreateUser registers a new local-credential user and returns its ID.
func (s *Store) CreateUser(ctx context.Context, username, password string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, fmt.Errorf("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	var userID int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, username, hash).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUserExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	return userID, nil
}

// CreateSpotifyUser registers an account created from a Spotify login. The
// record has no local password, so it cannot authenticate with credentials.
func (s *Store) CreateSpotifyUser(ctx context.Context, username, spotifyID, accessToken, refreshToken string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || spotifyID == "" {
		return User{}, fmt.Errorf("username and spotify id are required")
	}

	var userID int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, spotify_id, spotify_access_token, spotify_refresh_token, has_spotify)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id
	`, username, spotifyID, accessToken, refreshToken).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrUserExists
		}
		return User{}, fmt.Errorf("insert spotify user: %w", err)
	}

	return User{
		ID:           userID,
		Username:     username,
		SpotifyID:    spotifyID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		HasSpotify:   true,
	}, nil
}

// Authenticate validates credentials and returns the matching user.
func (s *Store) Authenticate(ctx context.Context, username, password string) (User, error) {
	var (
		user User
		hash []byte
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, COALESCE(spotify_id, ''), spotify_access_token, spotify_refresh_token, has_spotify
		FROM users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &hash, &user.SpotifyID, &user.AccessToken, &user.RefreshToken, &user.HasSpotify)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	// Spotify-only accounts carry no password hash.
	if len(hash) == 0 {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// UserByID fetches a user record by primary key.
func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, COALESCE(spotify_id, ''), spotify_access_token, spotify_refresh_token, has_spotify
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.SpotifyID, &user.AccessToken, &user.RefreshToken, &user.HasSpotify)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// UserBySpotifyID fetches a user record by its linked Spotify account.
func (s *Store) UserBySpotifyID(ctx context.Context, spotifyID string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, COALESCE(spotify_id, ''), spotify_access_token, spotify_refresh_token, has_spotify
		FROM users
		WHERE spotify_id = $1
	`, spotifyID).Scan(&user.ID, &user.Username, &user.SpotifyID, &user.AccessToken, &user.RefreshToken, &user.HasSpotify)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("lookup user by spotify id: %w", err)
	}
	return user, nil
}

// LinkSpotify attaches a Spotify account and its tokens to an existing user.
func (s *Store) LinkSpotify(ctx context.Context, userID int64, spotifyID, accessToken, refreshToken string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET spotify_id = $2,
		    spotify_access_token = $3,
		    spotify_refresh_token = $4,
		    has_spotify = TRUE,
		    updated_at = NOW()
		WHERE id = $1
	`, userID, spotifyID, accessToken, refreshToken)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("link spotify: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("link spotify: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateSpotifyTokens persists a refreshed access token. The refresh token is
// only replaced when the provider rotated it; an empty value keeps the
// current one. Concurrent refreshes are last-writer-wins.
func (s *Store) UpdateSpotifyTokens(ctx context.Context, userID int64, accessToken, refreshToken string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET spotify_access_token = $2,
		    spotify_refresh_token = CASE WHEN $3 = '' THEN spotify_refresh_token ELSE $3 END,
		    updated_at = NOW()
		WHERE id = $1
	`, userID, accessToken, refreshToken)
	if err != nil {
		return fmt.Errorf("update spotify tokens: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update spotify tokens: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
