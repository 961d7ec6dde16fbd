package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	MeiliSearchHost string
	MeiliMasterKey  string

	GoogleBooksAPIKey  string
	GoogleBooksBaseURL string

	NYTAPIKey  string
	NYTBaseURL string

	JWTSecret     string
	JWTTTLMinutes int

	RateLimitGlobal time.Duration
	RateLimitReview time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		GoogleBooksAPIKey:  os.Getenv("GOOGLE_BOOKS_API_KEY"),
		GoogleBooksBaseURL: getEnv("GOOGLE_BOOKS_BASE_URL", "https://www.googleapis.com/books/v1"),

		NYTAPIKey:  os.Getenv("NYT_API_KEY"),
		NYTBaseURL: getEnv("NYT_BASE_URL", "https://api.nytimes.com/svc/books/v3"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
	}

	ttlMinutes, ttlErr := strconv.Atoi(getEnv("JWT_TTL_MINUTES", "1440"))
	if ttlErr != nil || ttlMinutes <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES: %q", getEnv("JWT_TTL_MINUTES", "1440"))
	}
	cfg.JWTTTLMinutes = ttlMinutes

	// Parsing durations
	var err error
	cfg.RateLimitGlobal, err = parseDuration(getEnv("RATE_LIMIT_GLOBAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_GLOBAL: %w", err)
	}
	cfg.RateLimitReview, err = parseDuration(getEnv("RATE_LIMIT_REVIEW", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REVIEW: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
