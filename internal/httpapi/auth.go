package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"studybeats/internal/store"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < minUsernameLen {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username must be at least 3 characters"})
		return
	}
	if len(req.Password) < minPasswordLen {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "password must be at least 6 characters"})
		return
	}

	userID, err := s.users.CreateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username already taken"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "signup failed"})
		return
	}

	token, err := s.tokens.Issue(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "signup failed"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	user, err := s.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid username or password"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "login failed"})
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "login failed"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
