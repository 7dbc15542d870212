// ABOUTME: Configuration loader for the profile session backend
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)

	// Session
	SessionFile string // persisted session slot, one JSON file per profile
	SessionTTL  int    // inactivity expiry window in seconds (default 600)
	AccessRoute string // SPA route unauthorized navigations are rewritten to

	// Remote user directory
	DirectoryAPIURL string

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitAuth    int  // Requests per minute for auth endpoints (default: 5)
	RateLimitWrite   int  // Requests per minute for write endpoints (default: 10)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)
}

func Load() (*Config, error) {
	// .env is optional; real env vars win over file values.
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),
		SessionTTL:  getEnvInt("SESSION_TTL", 600),
		AccessRoute: getEnv("ACCESS_ROUTE", "/access"),

		DirectoryAPIURL: ensureScheme(os.Getenv("DIRECTORY_API_URL")),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitAuth:    getEnvInt("RATE_LIMIT_AUTH", 5),
		RateLimitWrite:   getEnvInt("RATE_LIMIT_WRITE", 10),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),
	}

	if cfg.DirectoryAPIURL == "" {
		return nil, fmt.Errorf("DIRECTORY_API_URL is required")
	}

	if cfg.SessionTTL < 1 || cfg.SessionTTL > 86400 {
		return nil, fmt.Errorf("SESSION_TTL must be between 1 and 86400 seconds, got %d", cfg.SessionTTL)
	}

	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_AUTH", cfg.RateLimitAuth},
		{"RATE_LIMIT_WRITE", cfg.RateLimitWrite},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	return cfg, nil
}

// defaultSessionFile places the session slot under the user's home directory,
// falling back to the working directory when home cannot be resolved.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".userportal", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
