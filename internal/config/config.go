package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	APIBaseURL     string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CookieSecret   string
	SessionTTL     time.Duration
	VerifyInterval time.Duration
	RequestTimeout time.Duration
	SwaggerHost    string

	// Seeder-only settings.
	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:8001"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		CookieSecret:      getEnv("COOKIE_SECRET", "change-me"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		VerifyInterval:    getEnvDuration("VERIFY_INTERVAL", 5*time.Minute),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
