package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	defaultPort            = "5000"
	defaultDatabaseURL     = "video-portfolio.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTTTL          = "168h"
	defaultUploadDir       = "./uploads"
	defaultUploadURLPath   = "/uploads"
	defaultMaxUploadSize   = "500MiB"
	defaultBypassSubject   = "bootstrap-admin"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = "10s"
)

type Config struct {
	AppEnv          string
	Port            string
	DatabaseURL     string
	JWTSecret       string
	JWTTTL          time.Duration
	UploadDir       string
	UploadURLPath   string
	MaxUploadBytes  int64
	LogLevel        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	Bypass          BypassCredential
	Seed            SeedUser
}

// BypassCredential is an optional bootstrap login that skips the user store.
// It is disabled unless both Email and Password are set.
type BypassCredential struct {
	Email    string
	Password string
	Subject  string
}

func (b BypassCredential) Enabled() bool {
	return b.Email != "" && b.Password != ""
}

// SeedUser holds the portfolio owner created by cmd/seed.
type SeedUser struct {
	Username string
	Email    string
	Password string
	Name     string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))
	cfg.UploadURLPath = "/" + strings.Trim(strings.TrimSpace(getEnv("UPLOAD_URL_PATH", defaultUploadURLPath)), "/")
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	cfg.MaxUploadBytes, err = parseBytesEnv("MAX_UPLOAD_SIZE", defaultMaxUploadSize)
	if err != nil {
		return nil, err
	}

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	cfg.Bypass = BypassCredential{
		Email:    strings.ToLower(strings.TrimSpace(os.Getenv("LOGIN_BYPASS_EMAIL"))),
		Password: os.Getenv("LOGIN_BYPASS_PASSWORD"),
		Subject:  strings.TrimSpace(getEnv("LOGIN_BYPASS_SUBJECT", defaultBypassSubject)),
	}

	cfg.Seed = SeedUser{
		Username: strings.TrimSpace(os.Getenv("SEED_USERNAME")),
		Email:    strings.TrimSpace(os.Getenv("SEED_EMAIL")),
		Password: os.Getenv("SEED_PASSWORD"),
		Name:     strings.TrimSpace(os.Getenv("SEED_NAME")),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if cfg.UploadURLPath == "/" {
		return fmt.Errorf("UPLOAD_URL_PATH must not be the site root")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be > 0")
	}
	if (cfg.Bypass.Email == "") != (cfg.Bypass.Password == "") {
		return fmt.Errorf("LOGIN_BYPASS_EMAIL and LOGIN_BYPASS_PASSWORD must be set together")
	}
	if cfg.Bypass.Enabled() && cfg.Bypass.Subject == "" {
		return fmt.Errorf("LOGIN_BYPASS_SUBJECT must not be empty when the bypass login is enabled")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.Bypass.Enabled() {
			return fmt.Errorf("in prod/release the bypass login must be disabled")
		}
	} else if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBytesEnv(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	if n > uint64(1<<62) {
		return 0, fmt.Errorf("invalid %s value %q: too large", name, value)
	}
	return int64(n), nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
