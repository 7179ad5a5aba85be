// Package config reads service configuration from environment
// variables, with local-development defaults matching the seed data.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the booking service.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWTSecret signs user access tokens.
	JWTSecret string
	JWTExpiry time.Duration

	// CRMBearerToken authenticates the facilitator CRM channel.
	CRMBearerToken string

	// SeedDemoData controls whether demo facilitators and events are
	// inserted into an empty database at startup.
	SeedDemoData bool
}

// Load reads configuration from the environment. A .env file is
// loaded first when present (development convenience, ignored in
// production containers).
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "wellnessbooking"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "super-secret-jwt-key-change-in-production"),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_SECONDS", 3600)) * time.Second,

		CRMBearerToken: getEnv("CRM_BEARER_TOKEN", "crm-secret-token-12345"),

		SeedDemoData: getEnvBool("SEED_DEMO_DATA", true),
	}
}

// DSN builds a libpq-compatible connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
