package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// Auth
	JWTSecret string
	TokenTTL  time.Duration
	// Redis
	RedisURL      string
	RedisPassword string
	// Pagination defaults: jobs use the wide default, the simplified
	// listing paths (candidates, applications) use the narrow one.
	JobPageLimit  int
	ListPageLimit int
	// Resume upload
	UploadDir     string
	UploadBaseURL string
	MaxUploadSize int64
	// Analytics cache
	AnalyticsCacheTTL time.Duration
	// Deadline sweep cron spec, e.g. "@every 1h"
	DeadlineSweepSpec string
	// Rate limiting (login endpoints)
	RateLimitWindowSeconds  int
	RateLimitLoginThreshold int
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 168)) * time.Hour, // 7 days

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		JobPageLimit:  getEnvInt("JOB_PAGE_LIMIT", 25),
		ListPageLimit: getEnvInt("LIST_PAGE_LIMIT", 10),

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads/resumes"),
		UploadBaseURL: getEnv("UPLOAD_BASE_URL", "/static/resumes"),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 5)) * 1024 * 1024,

		AnalyticsCacheTTL: time.Duration(getEnvInt("ANALYTICS_CACHE_TTL_SECONDS", 300)) * time.Second,
		DeadlineSweepSpec: getEnv("DEADLINE_SWEEP_SPEC", "@every 1h"),

		RateLimitWindowSeconds:  getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold: getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Issued tokens will not survive restarts.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Analytics caching and rate limiting fall back to in-memory.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
