package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Port        string
	DBConn      string
	DataBackend string
	LogLevel    string
	APIPrefix   string
	CORSOrigins []string

	JWTSecret      string
	AccessTokenTTL time.Duration

	UploadDir    string
	PhotoBaseURL string

	RedisURL        string
	SummaryCacheTTL time.Duration

	DigestSchedule string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SenderEmail    string
}

// NewConfig loads configuration from environment variables, reading a .env
// file first when one exists.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var problems []error

	tokenMinutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "11520"))
	if err != nil {
		problems = append(problems, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES: %w", err))
	}
	cacheTTL, err := time.ParseDuration(getEnv("SUMMARY_CACHE_TTL", "10m"))
	if err != nil {
		problems = append(problems, fmt.Errorf("SUMMARY_CACHE_TTL: %w", err))
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=finance sslmode=disable"),
		DataBackend:     strings.ToLower(getEnv("DATA_BACKEND", BackendPostgres)),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		APIPrefix:       getEnv("API_PREFIX", "/api/v1"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		AccessTokenTTL:  time.Duration(tokenMinutes) * time.Minute,
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		PhotoBaseURL:    strings.TrimRight(getEnv("PHOTO_BASE_URL", "/uploads"), "/"),
		RedisURL:        getEnv("REDIS_URL", ""),
		SummaryCacheTTL: cacheTTL,
		DigestSchedule:  getEnv("DIGEST_SCHEDULE", ""),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "25"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "noreply@finance-tracker.local"),
	}

	if err := cfg.Validate(); err != nil {
		problems = append(problems, err)
	}
	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var problems []error
	if c.Port == "" {
		problems = append(problems, errors.New("PORT is required"))
	}
	switch c.DataBackend {
	case BackendPostgres:
		if c.DBConn == "" {
			problems = append(problems, errors.New("DB_CONN is required"))
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Errorf("DATA_BACKEND must be %q or %q, got %q", BackendPostgres, BackendMemory, c.DataBackend))
	}
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}
	if c.AccessTokenTTL <= 0 {
		problems = append(problems, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if !strings.HasPrefix(c.APIPrefix, "/") {
		problems = append(problems, errors.New("API_PREFIX must start with /"))
	}
	if c.UploadDir == "" {
		problems = append(problems, errors.New("UPLOAD_DIR is required"))
	}
	if !strings.HasPrefix(c.PhotoBaseURL, "/") || strings.TrimRight(c.PhotoBaseURL, "/") == "" {
		problems = append(problems, errors.New("PHOTO_BASE_URL must be a path below /, such as /uploads"))
	}
	if c.SummaryCacheTTL < 0 {
		problems = append(problems, errors.New("SUMMARY_CACHE_TTL must not be negative"))
	}
	if c.DigestSchedule != "" && c.SenderEmail == "" {
		problems = append(problems, errors.New("SENDER_EMAIL is required when DIGEST_SCHEDULE is set"))
	}
	return errors.Join(problems...)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
