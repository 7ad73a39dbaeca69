package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	AppEnv      string
	CORSOrigins string
	Version     string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Store: file | postgres | sqlite
	StoreDriver string
	DataPath    string
	SQLitePath  string

	// Database (postgres driver)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// AI provider (OpenAI-compatible)
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIModel        string
	TranscriptionModel string
	AITimeout          time.Duration
	MaxAudioSizeMB     int

	// Features
	EnableAlertGeneration bool

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration
	RedisURL        string

	// Domain vocabulary override
	CatalogPath string

	SentryDSN string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		Version:     getEnv("APP_VERSION", "1.0.0"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "168h"), 7*24*time.Hour),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", "file")),
		DataPath:    getEnv("DATA_PATH", "data/db.json"),
		SQLitePath:  getEnv("SQLITE_PATH", "data/aerointel.db"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "aerointel"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com"), "/"),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		TranscriptionModel: getEnv("TRANSCRIPTION_MODEL", "whisper-1"),
		AITimeout:          parseDuration(getEnv("AI_TIMEOUT", "60s"), 60*time.Second),
		MaxAudioSizeMB:     parseInt(getEnv("MAX_AUDIO_SIZE_MB", "25"), 25),

		EnableAlertGeneration: getEnv("ENABLE_ALERT_GENERATION", "true") != "false",

		RateLimitMax:    parseInt(getEnv("RATE_LIMIT_MAX_REQUESTS", "100"), 100),
		RateLimitWindow: rateLimitWindow(),
		RedisURL:        getEnv("REDIS_URL", ""),

		CatalogPath: getEnv("CATALOG_PATH", ""),

		SentryDSN: getEnv("SENTRY_DSN", ""),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// AIConfigured reports whether an LLM provider key is set.
func (c *Config) AIConfigured() bool {
	return c.OpenAIAPIKey != ""
}

// rateLimitWindow accepts RATE_LIMIT_WINDOW as a Go duration, falling back to
// the millisecond form RATE_LIMIT_WINDOW_MS.
func rateLimitWindow() time.Duration {
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		return parseDuration(v, 15*time.Minute)
	}
	if ms := parseInt(os.Getenv("RATE_LIMIT_WINDOW_MS"), 0); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return 15 * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
