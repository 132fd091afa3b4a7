package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is built once in main and passed by reference to the components that
// need it. Nothing reads the environment after Load returns.
type Config struct {
	AppName  string
	HTTPPort string

	DBPath string

	JWTSecret string

	// Librarian account seeded at startup when absent.
	LibrarianUsername string
	LibrarianPassword string

	FrontendURL    string
	CatalogBaseURL string

	LogLevel  string
	LogFormat string
}

const defaultCatalogBaseURL = "https://www.googleapis.com/books/v1/volumes"

// Load reads the process environment into a Config. Defaults are suitable for
// local development; JWT_SECRET should always be set in production.
func Load() *Config {
	return &Config{
		AppName:           getEnvOrDefault("APP_NAME", "Alexandria"),
		HTTPPort:          getEnvOrDefault("API_PORT", "8080"),
		DBPath:            getEnvOrDefault("DB_PATH", "./data/alexandria.db"),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", ""),
		LibrarianUsername: getEnvOrDefault("LIBRARIAN_USERNAME", "admin"),
		LibrarianPassword: getEnvOrDefault("LIBRARIAN_PASSWORD", "alexandria"),
		FrontendURL:       getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		CatalogBaseURL:    getEnvOrDefault("CATALOG_BASE_URL", defaultCatalogBaseURL),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "INFO"),
		LogFormat:         getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("http port is required")
	}
	if _, err := strconv.Atoi(c.HTTPPort); err != nil {
		return fmt.Errorf("invalid http port %q: %w", c.HTTPPort, err)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path is required")
	}
	if c.LibrarianUsername == "" {
		return fmt.Errorf("librarian username is required")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
