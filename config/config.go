package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Database
	DatabaseURL      string
	DBMaxConns       int
	DBSimpleProtocol bool // for poolers without prepared statement support

	// Gemini extraction
	GeminiAPIKey      string
	GeminiModel       string
	LLMMaxAttempts    int
	LLMInitialBackoff time.Duration
	LLMMaxBackoff     time.Duration
	LLMCallTimeout    time.Duration
	LLMMaxConcurrency int

	// Uploads
	IngestWorkers      int
	MaxUploadFileBytes int64
	MaxUploadFiles     int

	CORSAllowedOrigins []string

	// Redis backs the upload rate limiter; empty falls back to in-memory
	RedisURL                 string
	RedisPassword            string
	UploadRateLimitPerMinute int

	// ClamdAddress enables malware scanning of uploads when set
	ClamdAddress string
	ClamdTimeout time.Duration

	EnableDBReset bool

	LogLevel  string
	LogFormat string
}

func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DBMaxConns:       getEnvInt("DB_MAX_CONNS", 25),
		DBSimpleProtocol: getEnvBool("DB_SIMPLE_PROTOCOL", false),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMMaxAttempts:    getEnvInt("LLM_MAX_ATTEMPTS", 3),
		LLMInitialBackoff: time.Duration(getEnvInt("LLM_INITIAL_BACKOFF_MS", 500)) * time.Millisecond,
		LLMMaxBackoff:     time.Duration(getEnvInt("LLM_MAX_BACKOFF_MS", 8000)) * time.Millisecond,
		LLMCallTimeout:    time.Duration(getEnvInt("LLM_CALL_TIMEOUT_SECONDS", 60)) * time.Second,
		LLMMaxConcurrency: getEnvInt("LLM_MAX_CONCURRENCY", 4),

		IngestWorkers:      getEnvInt("INGEST_WORKERS", 8),
		MaxUploadFileBytes: int64(getEnvInt("MAX_UPLOAD_FILE_MB", 10)) << 20,
		MaxUploadFiles:     getEnvInt("MAX_UPLOAD_FILES", 50),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		RedisURL:                 getEnv("REDIS_URL", ""),
		RedisPassword:            getEnv("REDIS_PASSWORD", ""),
		UploadRateLimitPerMinute: getEnvInt("UPLOAD_RATE_LIMIT_PER_MINUTE", 30),

		ClamdAddress: getEnv("CLAMD_ADDRESS", ""),
		ClamdTimeout: time.Duration(getEnvInt("CLAMD_TIMEOUT_SECONDS", 30)) * time.Second,

		EnableDBReset: getEnvBool("ENABLE_DB_RESET", false),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Upload rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// Validate reports settings the API server cannot start without
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.GeminiAPIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is required"))
	}
	if c.LLMMaxConcurrency < 1 {
		errs = append(errs, errors.New("LLM_MAX_CONCURRENCY must be at least 1"))
	}
	if c.IngestWorkers < 1 {
		errs = append(errs, errors.New("INGEST_WORKERS must be at least 1"))
	}
	if c.MaxUploadFiles < 1 {
		errs = append(errs, errors.New("MAX_UPLOAD_FILES must be at least 1"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blank entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
