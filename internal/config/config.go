package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr     = ":8080"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTAccessTTL   = "24h"
	defaultMaxImageMB     = "15"
	defaultMaxDocumentMB  = "10"
	defaultThumbWidth     = "320"
	defaultThumbHeight    = "240"
	defaultThumbQuality   = "85"
	defaultThumbKeepRatio = "true"

	defaultImageTypes    = "image/jpeg,image/png,image/gif,image/webp"
	defaultDocumentTypes = "application/pdf,application/msword,application/vnd.openxmlformats-officedocument.wordprocessingml.document,text/plain"
)

// Config is the full runtime configuration, loaded once in main.
type Config struct {
	ListenAddr   string
	DatabaseURL  string
	AppEnv       string
	JWTSecret    string
	JWTAccessTTL time.Duration
	Media        MediaPolicy
}

// MediaPolicy carries the injected size/type policy for the media subsystem.
// Nothing in internal/domain/media hard-codes limits; it all comes from here.
type MediaPolicy struct {
	MaxImageBytes        int64
	MaxDocumentBytes     int64
	AllowedImageTypes    []string
	AllowedDocumentTypes []string
	ThumbWidth           int
	ThumbHeight          int
	ThumbQuality         int
	ThumbKeepAspectRatio bool
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	maxImageMB, err := parseIntEnv("MEDIA_MAX_IMAGE_MB", defaultMaxImageMB)
	if err != nil {
		return nil, err
	}
	maxDocMB, err := parseIntEnv("MEDIA_MAX_DOCUMENT_MB", defaultMaxDocumentMB)
	if err != nil {
		return nil, err
	}
	cfg.Media.MaxImageBytes = int64(maxImageMB) * 1024 * 1024
	cfg.Media.MaxDocumentBytes = int64(maxDocMB) * 1024 * 1024

	cfg.Media.AllowedImageTypes = splitList(getEnv("MEDIA_IMAGE_TYPES", defaultImageTypes))
	cfg.Media.AllowedDocumentTypes = splitList(getEnv("MEDIA_DOCUMENT_TYPES", defaultDocumentTypes))

	cfg.Media.ThumbWidth, err = parseIntEnv("MEDIA_THUMB_WIDTH", defaultThumbWidth)
	if err != nil {
		return nil, err
	}
	cfg.Media.ThumbHeight, err = parseIntEnv("MEDIA_THUMB_HEIGHT", defaultThumbHeight)
	if err != nil {
		return nil, err
	}
	cfg.Media.ThumbQuality, err = parseIntEnv("MEDIA_THUMB_QUALITY", defaultThumbQuality)
	if err != nil {
		return nil, err
	}
	cfg.Media.ThumbKeepAspectRatio = parseBoolEnv("MEDIA_THUMB_KEEP_RATIO", defaultThumbKeepRatio)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.Media.MaxImageBytes <= 0 || cfg.Media.MaxDocumentBytes <= 0 {
		return fmt.Errorf("media size limits must be > 0")
	}
	if len(cfg.Media.AllowedImageTypes) == 0 || len(cfg.Media.AllowedDocumentTypes) == 0 {
		return fmt.Errorf("media type allow-lists must not be empty")
	}
	if cfg.Media.ThumbWidth <= 0 || cfg.Media.ThumbHeight <= 0 {
		return fmt.Errorf("thumbnail dimensions must be > 0")
	}
	if cfg.Media.ThumbQuality < 1 || cfg.Media.ThumbQuality > 100 {
		return fmt.Errorf("MEDIA_THUMB_QUALITY must be in 1..100")
	}
	if isProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(strings.ToLower(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
