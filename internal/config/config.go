package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// MongoDB backs patients, confirmations, booked slots and the doctor
	// directory. An unreachable Mongo at startup switches the service into
	// demo mode with in-memory stores instead of failing.
	MongoURI      string
	MongoDatabase string
	MongoTimeout  time.Duration

	// Redis backs the conversation session store when configured; empty
	// RedisAddr selects the in-process store.
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration

	CORSAllowedOrigins []string

	// Per-IP rate limit on the chat endpoint. Zero requests/sec disables
	// limiting.
	ChatRatePerSec int
	ChatRateBurst  int

	// Fallback working-hours window used when a date query carries no
	// doctor and no explicit window.
	DefaultWorkStart string
	DefaultWorkEnd   string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGO_DATABASE", "testDb"),
		MongoTimeout:       getEnvAsDuration("MONGO_TIMEOUT", 5*time.Second),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		SessionTTL:         getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", "*"),
		ChatRatePerSec:     getEnvAsInt("CHAT_RATE_PER_SEC", 5),
		ChatRateBurst:      getEnvAsInt("CHAT_RATE_BURST", 10),
		DefaultWorkStart:   getEnv("DEFAULT_WORK_START", "9:00 AM"),
		DefaultWorkEnd:     getEnv("DEFAULT_WORK_END", "5:00 PM"),
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
