package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultMaxFileSize = 5 * 1024 * 1024

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Database  DatabaseConfig
	Gemini    GeminiConfig
	Storage   StorageConfig
	Worker    WorkerConfig
	Analysis  AnalysisConfig
	Session   SessionConfig
	RateLimit RateLimitConfig

	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded bool
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency       int
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	PollInterval      time.Duration
}

type AnalysisConfig struct {
	MatchThreshold int
	LexiconPath    string
}

type SessionConfig struct {
	Backend         string
	TTL             time.Duration
	SQLitePath      string
	JanitorInterval time.Duration
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

func Load() *Config {
	loaded := godotenv.Load() == nil

	cfg := FromEnv()
	cfg.EnvFileLoaded = loaded
	return cfg
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ats_analyzer"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", defaultMaxFileSize),
		},
		Worker: WorkerConfig{
			Concurrency:       getEnvAsInt("WORKER_CONCURRENCY", 3),
			RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
			PollInterval:      getEnvAsDuration("WORKER_POLL_INTERVAL", "10s"),
		},
		Analysis: AnalysisConfig{
			MatchThreshold: getEnvAsInt("MATCH_THRESHOLD", 80),
			LexiconPath:    getEnv("LEXICON_PATH", ""),
		},
		Session: SessionConfig{
			Backend:         strings.ToLower(getEnv("SESSION_BACKEND", "memory")),
			TTL:             getEnvAsDuration("SESSION_TTL", "30m"),
			SQLitePath:      getEnv("SESSION_SQLITE_PATH", "./data/sessions.db"),
			JanitorInterval: getEnvAsDuration("SESSION_JANITOR_INTERVAL", "1m"),
		},
		RateLimit: RateLimitConfig{
			Max:    getEnvAsInt("RATE_LIMIT_MAX", 60),
			Window: getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		},
	}
}

// AIEnabled reports whether a Gemini key is configured.
func (c *Config) AIEnabled() bool {
	return c.Gemini.APIKey != ""
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
