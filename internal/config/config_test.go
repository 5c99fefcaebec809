package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Fatalf("expected default mongo uri, got %s", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "testDb" {
		t.Fatalf("expected default mongo database, got %s", cfg.MongoDatabase)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected redis disabled by default, got %s", cfg.RedisAddr)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected default session ttl, got %s", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard cors default, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.DefaultWorkStart != "9:00 AM" || cfg.DefaultWorkEnd != "5:00 PM" {
		t.Fatalf("expected default work window, got %s-%s", cfg.DefaultWorkStart, cfg.DefaultWorkEnd)
	}
	if cfg.ChatRatePerSec != 5 || cfg.ChatRateBurst != 10 {
		t.Fatalf("expected default chat rate limit, got %d/%d", cfg.ChatRatePerSec, cfg.ChatRateBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_DATABASE", "intake")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CHAT_RATE_PER_SEC", "2")
	t.Setenv("CHAT_RATE_BURST", "not-a-number")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port override, got %s", cfg.Port)
	}
	if cfg.MongoDatabase != "intake" {
		t.Fatalf("expected database override, got %s", cfg.MongoDatabase)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected redis addr override, got %s", cfg.RedisAddr)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("expected session ttl override, got %s", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected two cors origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ChatRatePerSec != 2 {
		t.Fatalf("expected chat rate override, got %d", cfg.ChatRatePerSec)
	}
	if cfg.ChatRateBurst != 10 {
		t.Fatalf("expected unparseable burst to fall back, got %d", cfg.ChatRateBurst)
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg := Load()
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected fallback session ttl, got %s", cfg.SessionTTL)
	}
}
