package store

import (
	"context"
	"fmt"
	"time"
)

// Feedback is an append-only rating a user left for a playlist.
type Feedback struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	PlaylistID string    `json:"playlistId"`
	Rating     int       `json:"rating"`
	Context    string    `json:"context"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AddFeedback records a playlist rating for the given user.
func (s *Store) AddFeedback(ctx context.Context, userID int64, playlistID string, rating int, contextText string) (Feedback, error) {
	if playlistID == "" {
		return Feedback{}, fmt.Errorf("playlist id is required")
	}

	fb := Feedback{
		UserID:     userID,
		PlaylistID: playlistID,
		Rating:     rating,
		Context:    contextText,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO feedback (user_id, playlist_id, rating, context)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, userID, playlistID, rating, contextText).Scan(&fb.ID, &fb.CreatedAt)
	if err != nil {
		return Feedback{}, fmt.Errorf("insert feedback: %w", err)
	}

	return fb, nil
}

// FeedbackByUser returns the user's most recent feedback, newest first.
func (s *Store) FeedbackByUser(ctx context.Context, userID int64, limit int) ([]Feedback, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, playlist_id, rating, context, created_at
		FROM feedback
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("select feedback: %w", err)
	}
	defer rows.Close()

	var items []Feedback
	for rows.Next() {
		var fb Feedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.PlaylistID, &fb.Rating, &fb.Context, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		items = append(items, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}

	return items, nil
}
