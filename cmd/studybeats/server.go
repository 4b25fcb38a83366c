package main

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"studybeats/internal/auth"
	"studybeats/internal/httpapi"
	"studybeats/internal/middleware"
	"studybeats/internal/recommend"
	"studybeats/internal/spotify"
	"studybeats/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store, log zerolog.Logger) http.Handler {
	tokens := auth.New(cfg.JWTSecret)
	client := spotify.NewClient(nil, "")
	oauth := spotify.NewOAuth(cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.SpotifyRedirectURI)
	access := spotify.NewTokenManager(client, oauth, dataStore, log)
	resolver := recommend.NewResolver(client, log)

	api := httpapi.New(dataStore, tokens, oauth, client, access, resolver)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", api.Routes())

	handler := middleware.Metrics()(mux)
	handler = middleware.RequestLogging(log)(handler)
	handler = middleware.Recovery(log)(handler)

	return withCORS(cfg.AllowedOrigins, handler)
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
