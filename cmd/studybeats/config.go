package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL         string
	Addr                string
	JWTSecret           string
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURI  string
	AllowedOrigins      []string
	LogLevel            string
	LogFormat           string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	cfg := Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyRedirectURI:  os.Getenv("SPOTIFY_REDIRECT_URI"),
		LogLevel:            envOrDefault("LOG_LEVEL", "info"),
		LogFormat:           envOrDefault("LOG_FORMAT", "json"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET env var is required")
	}
	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		return Config{}, errors.New("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET env vars are required")
	}
	if cfg.SpotifyRedirectURI == "" {
		return Config{}, errors.New("SPOTIFY_REDIRECT_URI env var is required")
	}

	cfg.Addr = fmt.Sprintf(":%s", envOrDefault("PORT", "8080"))
	cfg.AllowedOrigins = parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
