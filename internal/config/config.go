// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process configuration.
type Config struct {
	// ProjectID is the GCP project hosting Firestore, Vision and Gemini.
	ProjectID string
	// Port is the HTTP listen port.
	Port string
	// GeminiModel overrides the default classification model when set.
	GeminiModel string
	// GCSBucket is the bucket receipt images may be fetched from. Optional;
	// without it gs:// sources are rejected.
	GCSBucket string
	// LogLevel is the zerolog level name (debug, info, warn, error).
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		ProjectID:   os.Getenv("GCP_PROJECT_ID"),
		Port:        envOr("PORT", "8080"),
		GeminiModel: os.Getenv("GEMINI_MODEL"),
		GCSBucket:   os.Getenv("GCS_BUCKET"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
	}

	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("config: GCP_PROJECT_ID is required")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
