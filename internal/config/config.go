package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	// Storage
	StorageDriver string // "memory", "sqlite" or "postgres"
	DatabaseURL   string // postgres connection string
	SQLitePath    string // sqlite database file
	TablePrefix   string // prefix separating environments sharing a database
	// Auth
	JWKSURL string // empty disables bearer-token auth
	// HTTP
	CORSOrigins string
	// Snapshots
	SnapshotRetention int // snapshots kept per workspace
	SnapshotEvery     int // auto-capture after this many mutations
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       env,
		StorageDriver:     getEnv("STORAGE_DRIVER", "memory"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "arbor.db"),
		TablePrefix:       getTablePrefix(env),
		JWKSURL:           getEnv("AUTH_JWKS_URL", ""),
		CORSOrigins:       getEnv("CORS_ORIGINS", "http://localhost:3000"),
		SnapshotRetention: getEnvInt("SNAPSHOT_RETENTION", DefaultSnapshotRetention),
		SnapshotEvery:     getEnvInt("SNAPSHOT_EVERY", DefaultSnapshotEvery),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
