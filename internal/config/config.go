package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"go.uber.org/multierr"
)

const (
	defaultPort             = "8080"
	defaultTimeZone         = "UTC"
	defaultJWTTTL           = 7 * 24 * time.Hour
	defaultRedisAddr        = "localhost:6379"
	defaultQueueConcurrency = 10
	defaultQueueMaxRetry    = 3
	defaultQueueTaskTimeout = 30 * time.Second
	defaultMailLocale       = "pt_BR"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type QueueConfig struct {
	Concurrency int
	MaxRetry    int
	TaskTimeout time.Duration
}

type MailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
	Locale       string
}

type Config struct {
	Env         string
	Port        string
	Location    *time.Location
	DatabaseURL string
	CORSOrigins string
	JWT         JWTConfig
	Redis       RedisConfig
	Queue       QueueConfig
	Mail        MailConfig
	R2          R2Config
}

// IsDevelopment reports whether APP_ENV selects the development profile.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// LoadConfig reads the process environment. All problems are reported together.
func LoadConfig() (*Config, error) {
	var errs error

	cfg := &Config{
		Env:         getEnvOrDefault("APP_ENV", "production"),
		Port:        getEnvOrDefault("PORT", defaultPort),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CORSOrigins: getEnvOrDefault("CORS_ORIGINS", "http://localhost:3000"),
	}

	if cfg.DatabaseURL == "" {
		errs = multierr.Append(errs, errors.New("DATABASE_URL is not set"))
	}

	loc, err := time.LoadLocation(getEnvOrDefault("APP_TIMEZONE", defaultTimeZone))
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("invalid APP_TIMEZONE: %w", err))
		loc = time.UTC
	}
	cfg.Location = loc

	// JWT
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	if cfg.JWT.Secret == "" {
		errs = multierr.Append(errs, errors.New("JWT_SECRET is not set"))
	}
	cfg.JWT.TTL, err = getEnvDuration("JWT_TTL", defaultJWTTTL)
	errs = multierr.Append(errs, err)

	// Redis / queue
	cfg.Redis.Addr = getEnvOrDefault("REDIS_ADDR", defaultRedisAddr)
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB, err = getEnvInt("REDIS_DB", 0, 0, 15)
	errs = multierr.Append(errs, err)

	cfg.Queue.Concurrency, err = getEnvInt("QUEUE_CONCURRENCY", defaultQueueConcurrency, 1, 100)
	errs = multierr.Append(errs, err)
	cfg.Queue.MaxRetry, err = getEnvInt("QUEUE_MAX_RETRY", defaultQueueMaxRetry, 0, 25)
	errs = multierr.Append(errs, err)
	cfg.Queue.TaskTimeout, err = getEnvDuration("QUEUE_TASK_TIMEOUT", defaultQueueTaskTimeout)
	errs = multierr.Append(errs, err)

	// Mail
	cfg.Mail.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Mail.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Mail.FromName = getEnvOrDefault("EMAIL_FROM_NAME", "Meetapp")
	cfg.Mail.Locale = getEnvOrDefault("MAIL_LOCALE", defaultMailLocale)

	// R2 config
	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	if errs != nil {
		return nil, errs
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue, min, max int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s must be a number: %w", key, err)
	}
	if v < min || v > max {
		return defaultValue, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: invalid duration format: %w", key, err)
	}
	if d <= 0 {
		return defaultValue, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
