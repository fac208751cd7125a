package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "MAX_FILE_SIZE", "MATCH_THRESHOLD", "SESSION_BACKEND", "SESSION_TTL",
		"DB_ENABLED", "GEMINI_API_KEY", "RATE_LIMIT_MAX",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	if cfg.Server.Port != "3000" {
		t.Fatalf("port = %q", cfg.Server.Port)
	}
	if cfg.Storage.MaxFileSize != 5*1024*1024 {
		t.Fatalf("max file size = %d", cfg.Storage.MaxFileSize)
	}
	if cfg.Analysis.MatchThreshold != 80 {
		t.Fatalf("threshold = %d", cfg.Analysis.MatchThreshold)
	}
	if cfg.Session.Backend != "memory" || cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("session = %+v", cfg.Session)
	}
	if cfg.Database.Enabled {
		t.Fatal("database should be disabled by default")
	}
	if cfg.AIEnabled() {
		t.Fatal("AI should be disabled without a key")
	}
	if cfg.RateLimit.Max != 60 {
		t.Fatalf("rate limit = %d", cfg.RateLimit.Max)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("MATCH_THRESHOLD", "90")
	t.Setenv("SESSION_BACKEND", "SQLite")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("LOG_JSON", "1")

	cfg := FromEnv()

	if cfg.Storage.MaxFileSize != 1024 {
		t.Fatalf("max file size = %d", cfg.Storage.MaxFileSize)
	}
	if cfg.Analysis.MatchThreshold != 90 {
		t.Fatalf("threshold = %d", cfg.Analysis.MatchThreshold)
	}
	if cfg.Session.Backend != "sqlite" || cfg.Session.TTL != 5*time.Minute {
		t.Fatalf("session = %+v", cfg.Session)
	}
	if !cfg.Database.Enabled || !cfg.AIEnabled() || !cfg.Log.JSON {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("MATCH_THRESHOLD", "high")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("DB_ENABLED", "maybe")

	cfg := FromEnv()

	if cfg.Analysis.MatchThreshold != 80 {
		t.Fatalf("threshold = %d", cfg.Analysis.MatchThreshold)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("ttl = %v", cfg.Session.TTL)
	}
	if cfg.Database.Enabled {
		t.Fatal("invalid bool should fall back to false")
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "ats"}}
	want := "host=db port=5433 user=u password=p dbname=ats sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
