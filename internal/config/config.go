package config

import (
	"fmt"

	"gallery-backend/internal/utils"
)

// Config holds all application configuration, loaded once at startup.
// Services receive what they need from it explicitly; nothing reads the
// environment after Load returns.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	UploadDir   string
	BaseURL     string
}

// Load reads configuration from environment variables (a .env file is
// honored if present) and applies defaults. It fails if no JWT secret is
// configured.
func Load() (*Config, error) {
	if err := utils.LoadEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        utils.GetEnv("PORT", "5000"),
		DatabaseURL: utils.GetEnv("DATABASE_URL", ""),
		JWTSecret:   utils.GetEnv("JWT_SECRET", ""),
		UploadDir:   utils.GetEnv("UPLOAD_DIR", "uploads"),
		BaseURL:     utils.GetEnv("BASE_URL", ""),
	}

	if cfg.DatabaseURL == "" {
		// Fallback to individual vars
		cfg.DatabaseURL = "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
			utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
			utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
			utils.GetEnv("POSTGRES_DB", "gallery") + "?sslmode=disable"
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return cfg, nil
}

// String returns the config with the secret masked, safe for logging.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, DB: %s, UploadDir: %s, JWTSecret: ***}", c.Port, c.DatabaseURL, c.UploadDir)
}
