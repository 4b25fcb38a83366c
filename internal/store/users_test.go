package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`)).
		WithArgs("newuser", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	got, err := s.CreateUser(context.Background(), " newuser ", "secret123")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if got != 7 {
		t.Fatalf("CreateUser id = %d, want 7", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = s.CreateUser(context.Background(), "taken", "secret123")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("CreateUser error = %v, want ErrUserExists", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "   ", password: "secret123"},
		{name: "empty password", username: "user", password: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.CreateUser(context.Background(), tc.username, tc.password); err == nil {
				t.Fatalf("expected error but got nil")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	userQuery := regexp.QuoteMeta(`
		SELECT id, username, password_hash, COALESCE(spotify_id, ''), spotify_access_token, spotify_refresh_token, has_spotify
		FROM users
		WHERE username = $1
	`)
	columns := []string{"id", "username", "password_hash", "spotify_id", "spotify_access_token", "spotify_refresh_token", "has_spotify"}

	t.Run("valid credentials", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectQuery(userQuery).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(1), "alice", hash, "sp-alice", "access", "refresh", true))

		user, err := New(db).Authenticate(context.Background(), "alice", "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate error: %v", err)
		}
		if user.ID != 1 || user.Username != "alice" || !user.HasSpotify {
			t.Fatalf("unexpected user: %+v", user)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectQuery(userQuery).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(1), "alice", hash, "", "", "", false))

		_, err = New(db).Authenticate(context.Background(), "alice", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Authenticate error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectQuery(userQuery).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err = New(db).Authenticate(context.Background(), "ghost", "whatever")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Authenticate error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("spotify only account has no password", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectQuery(userQuery).
			WithArgs("spotifyonly").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(2), "spotifyonly", []byte(nil), "sp-2", "access", "refresh", true))

		_, err = New(db).Authenticate(context.Background(), "spotifyonly", "anything")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Authenticate error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestLinkSpotify(t *testing.T) {
	linkQuery := regexp.QuoteMeta(`
		UPDATE users
		SET spotify_id = $2,
		    spotify_access_token = $3,
		    spotify_refresh_token = $4,
		    has_spotify = TRUE,
		    updated_at = NOW()
		WHERE id = $1
	`)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectExec(linkQuery).
			WithArgs(int64(5), "sp-5", "access", "refresh").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := New(db).LinkSpotify(context.Background(), 5, "sp-5", "access", "refresh"); err != nil {
			t.Fatalf("LinkSpotify error: %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectExec(linkQuery).
			WithArgs(int64(404), "sp-x", "access", "refresh").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = New(db).LinkSpotify(context.Background(), 404, "sp-x", "access", "refresh")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("LinkSpotify error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("spotify account already linked", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectExec(linkQuery).
			WithArgs(int64(5), "sp-dup", "access", "refresh").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err = New(db).LinkSpotify(context.Background(), 5, "sp-dup", "access", "refresh")
		if !errors.Is(err, ErrUserExists) {
			t.Fatalf("LinkSpotify error = %v, want ErrUserExists", err)
		}
	})
}

func TestUpdateSpotifyTokens(t *testing.T) {
	updateQuery := regexp.QuoteMeta(`
		UPDATE users
		SET spotify_access_token = $2,
		    spotify_refresh_token = CASE WHEN $3 = '' THEN spotify_refresh_token ELSE $3 END,
		    updated_at = NOW()
		WHERE id = $1
	`)

	t.Run("keeps refresh token when not rotated", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectExec(updateQuery).
			WithArgs(int64(3), "new-access", "").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := New(db).UpdateSpotifyTokens(context.Background(), 3, "new-access", ""); err != nil {
			t.Fatalf("UpdateSpotifyTokens error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("stores rotated refresh token", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectExec(updateQuery).
			WithArgs(int64(3), "new-access", "new-refresh").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := New(db).UpdateSpotifyTokens(context.Background(), 3, "new-access", "new-refresh"); err != nil {
			t.Fatalf("UpdateSpotifyTokens error: %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectExec(updateQuery).
			WithArgs(int64(404), "new-access", "").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = New(db).UpdateSpotifyTokens(context.Background(), 404, "new-access", "")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("UpdateSpotifyTokens error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestUserByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, username, COALESCE(spotify_id, ''), spotify_access_token, spotify_refresh_token, has_spotify
		FROM users
		WHERE id = $1
	`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "spotify_id", "spotify_access_token", "spotify_refresh_token", "has_spotify"}))

	_, err = New(db).UserByID(context.Background(), 99)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("UserByID error = %v, want ErrUserNotFound", err)
	}
}
