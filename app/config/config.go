package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the service configuration, loaded from environment
// variables with local-development defaults.
type Config struct {
	Addr           string
	DataDir        string
	AllowedOrigins []string
	PostTTL        time.Duration
	RateWindow     time.Duration
	RateMax        int
	GeminiAPIKey   string
	GeminiModel    string
}

// Load reads the configuration from the environment. An empty
// TEXTIFY_DATA_DIR selects an in-memory store.
func Load() Config {
	dataDir, ok := os.LookupEnv("TEXTIFY_DATA_DIR")
	if !ok {
		dataDir = "data/badger"
	}

	return Config{
		Addr:           getEnv("TEXTIFY_ADDR", ":5001"),
		DataDir:        dataDir,
		AllowedOrigins: splitOrigins(getEnv("TEXTIFY_ALLOWED_ORIGINS", "http://localhost:3000")),
		PostTTL:        getEnvDuration("TEXTIFY_POST_TTL", 240*time.Hour),
		RateWindow:     getEnvDuration("TEXTIFY_RATE_WINDOW", 15*time.Minute),
		RateMax:        getEnvInt("TEXTIFY_RATE_MAX", 5),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
