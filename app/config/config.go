package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the auth service
type Config struct {
	// Server
	Port     string
	Host     string
	LogLevel string

	// PublicHost is the externally visible host string used as both the
	// issuer and audience of session credentials.
	PublicHost string

	// Database
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseSSLMode  string

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string

	// Signing
	JWTSecret string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnvOrDefault("PORT", "9500"),
		Host:     getEnvOrDefault("HOST", "0.0.0.0"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),

		DatabaseHost:    getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:    getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:    getEnvOrDefault("DB_NAME", "tandain"),
		DatabaseUser:    getEnvOrDefault("DB_USER", "tandain"),
		DatabaseSSLMode: getEnvOrDefault("DB_SSL_MODE", "require"),
	}

	required := map[string]*string{
		"PUBLIC_HOST":          &cfg.PublicHost,
		"DB_PASSWORD":          &cfg.DatabasePassword,
		"GOOGLE_CLIENT_ID":     &cfg.GoogleClientID,
		"GOOGLE_CLIENT_SECRET": &cfg.GoogleClientSecret,
		"JWT_SECRET":           &cfg.JWTSecret,
	}
	for key, dst := range required {
		value := os.Getenv(key)
		if value == "" {
			return nil, fmt.Errorf("%s is required", key)
		}
		*dst = value
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if u, err := url.Parse(c.PublicHost); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("PUBLIC_HOST must be an absolute URL: %s", c.PublicHost)
	}

	// HS256 with a short key is not meaningfully signed
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 bytes, got: %d", len(c.JWTSecret))
	}

	return nil
}

// DatabaseDSN builds the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
