// Package config handles configuration loading for the posts API.
package config

import (
	"os"
	"strings"
	"time"
)

// Config holds all configuration, read once at startup.
type Config struct {
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	// SearchCacheTTL bounds how long a cached search result may be
	// reused. Mutations do not invalidate entries.
	SearchCacheTTL time.Duration

	// ListIncludeOwnDrafts controls whether GET /posts includes the
	// authenticated caller's own drafts alongside published posts.
	// Off by default.
	ListIncludeOwnDrafts bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DBUser:               strings.TrimSpace(os.Getenv("user")),
		DBPassword:           strings.TrimSpace(os.Getenv("password")),
		DBHost:               strings.TrimSpace(os.Getenv("host")),
		DBPort:               strings.TrimSpace(os.Getenv("port")),
		DBName:               strings.TrimSpace(os.Getenv("dbname")),
		DBSSLMode:            getEnv("sslmode", "require"),
		SearchCacheTTL:       parseDuration(getEnv("SEARCH_CACHE_TTL", "1h"), time.Hour),
		ListIncludeOwnDrafts: getEnv("LIST_INCLUDE_OWN_DRAFTS", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
