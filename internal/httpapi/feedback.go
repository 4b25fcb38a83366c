package httpapi

import (
	"encoding/json"
	"net/http"

	"studybeats/internal/store"
)

const feedbackHistoryLimit = 10

type feedbackRequest struct {
	PlaylistID string `json:"playlistId"`
	Rating     int    `json:"rating"`
	Context    string `json:"context"`
}

func (s *Server) handleAddFeedback(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.PlaylistID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "playlistId is required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "rating must be between 1 and 5"})
		return
	}

	feedback, err := s.users.AddFeedback(r.Context(), user.ID, req.PlaylistID, req.Rating, req.Context)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save feedback"})
		return
	}

	writeJSON(w, http.StatusCreated, feedback)
}

func (s *Server) handleMyFeedback(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	items, err := s.users.FeedbackByUser(r.Context(), user.ID, feedbackHistoryLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to fetch feedback"})
		return
	}
	if items == nil {
		items = []store.Feedback{}
	}
	writeJSON(w, http.StatusOK, items)
}
