package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL      string
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string

	// Redis
	RedisURL      string
	RedisPassword string

	// Server
	Port           string
	AllowedOrigins []string

	// Access gate
	GatePasscodeHash string
	JWTSecret        string

	// Object storage (player photos)
	SpacesKey    string
	SpacesSecret string
	SpacesRegion string
	SpacesBucket string
}

func Load() *Config {
	return &Config{
		// Environment
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// Database
		DatabaseURL:      getEnvOrDefault("DATABASE_URL", ""),
		PostgresDB:       getEnvOrDefault("POSTGRES_DB", "pokerboard"),
		PostgresUser:     getEnvOrDefault("POSTGRES_USER", "pokerboard"),
		PostgresPassword: getEnvOrDefault("POSTGRES_PASSWORD", "pokerboard"),
		PostgresHost:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvOrDefault("POSTGRES_PORT", "5432"),

		// Redis
		RedisURL:      getEnvOrDefault("REDIS_URL", "redis://localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		// Server
		Port:           getEnvOrDefault("PORT", "8080"),
		AllowedOrigins: splitList(getEnvOrDefault("ALLOWED_ORIGINS", "*")),

		// Access gate. GatePasscodeHash is a bcrypt hash of the shared
		// table passcode; empty disables the gate entirely.
		GatePasscodeHash: getEnvOrDefault("GATE_PASSCODE_HASH", ""),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", "pokerboard-secret-change-in-production"),

		// Object storage
		SpacesKey:    getEnvOrDefault("SPACES_KEY", ""),
		SpacesSecret: getEnvOrDefault("SPACES_SECRET", ""),
		SpacesRegion: getEnvOrDefault("SPACES_REGION", "nyc3"),
		SpacesBucket: getEnvOrDefault("SPACES_BUCKET", "player-photos"),
	}
}

func (c *Config) GetDatabaseURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
	)
}

// PhotoStorageEnabled reports whether object storage credentials are
// configured; without them players simply have no photos.
func (c *Config) PhotoStorageEnabled() bool {
	return c.SpacesKey != "" && c.SpacesSecret != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
