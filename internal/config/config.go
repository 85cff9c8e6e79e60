package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// DataDir holds decks.json, the per-deck exports and the optional index.
	DataDir string

	// Auth. Empty means the API is open, matching the original deployment.
	APIKey string

	// Gemini ranking. The key is checked per-request on the AI path, not at
	// startup: local search must keep working without it.
	GeminiAPIKey string
	GeminiModel  string
}

func Load() Config {
	return Config{
		Port:    envOr("PORT", "8090"),
		DataDir: envOr("DATA_DIR", "data"),

		APIKey: os.Getenv("SLIDESEARCH_API_KEY"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %q", c.Port)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
