package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port            string
	BackendAPIURL   string
	CookieSecrets   []string
	RedisAddr       string
	OpenAPISpecPath string
	Environment     string // development, staging, production
}

// Load loads configuration from environment variables and validates for production
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		BackendAPIURL:   getEnv("BACKEND_API_URL", "http://localhost:3000"),
		CookieSecrets:   splitSecrets(getEnv("COOKIE_SECRET_KEYS", "")),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		OpenAPISpecPath: getEnv("OPENAPI_SPEC_PATH", "artifacts/openapi.yaml"),
		Environment:     getEnv("ENVIRONMENT", "development"),
	}

	// Validate production configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	return cfg
}

// Validate checks configuration for security and correctness
func (c *Config) Validate() error {
	if c.BackendAPIURL == "" {
		return fmt.Errorf("BACKEND_API_URL must be set")
	}

	// Production environment requires strong cookie secrets. The first secret
	// signs new cookies, the rest are kept so rotated-out cookies still decode.
	if c.IsProduction() {
		if len(c.CookieSecrets) == 0 {
			return fmt.Errorf("COOKIE_SECRET_KEYS must be set to strong random values in production")
		}

		for i, secret := range c.CookieSecrets {
			if len(secret) < 32 {
				return fmt.Errorf("cookie secret %d must be at least 32 characters in production (got %d)", i, len(secret))
			}
		}
	} else if len(c.CookieSecrets) == 0 {
		// Development/staging: provide default if not set
		c.CookieSecrets = []string{"dev-secret-not-for-production"}
		log.Println("Using default COOKIE_SECRET_KEYS for development")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev" || c.Environment == ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitSecrets parses a comma-separated secret list, newest first
func splitSecrets(raw string) []string {
	if raw == "" {
		return nil
	}

	var secrets []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}
