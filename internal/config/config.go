// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Default endpoints of the account data API.
const (
	DefaultBaseURL  = "https://api.schwabapi.com"
	DefaultTokenURL = "https://api.schwabapi.com/v1/oauth/token"
)

// Config holds application configuration
type Config struct {
	AppKey       string // API client identifier (APP_KEY)
	AppSecret    string // API client secret (APP_SECRET)
	RefreshToken string // OAuth refresh token used to mint access tokens
	BaseURL      string
	TokenURL     string
	OutputDir    string // Directory the report files are written to (always absolute)
	LogLevel     string
	LogPretty    bool
	Schedule     string // Cron spec for the schedule command
	R2           *R2Config
}

// R2Config holds the optional Cloudflare R2 report publishing settings.
// Publishing is disabled unless every credential field is set.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Prefix          string
	RetentionDays   int // Published days older than this are deleted; 0 keeps all
}

// Enabled reports whether report publishing is configured.
func (r *R2Config) Enabled() bool {
	return r != nil && r.AccountID != "" && r.AccessKeyID != "" && r.SecretAccessKey != "" && r.Bucket != ""
}

// partial reports whether some, but not all, credential fields are set.
func (r *R2Config) partial() bool {
	if r == nil || r.Enabled() {
		return false
	}
	return r.AccountID != "" || r.AccessKeyID != "" || r.SecretAccessKey != "" || r.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	outputDir, err := filepath.Abs(getEnv("OUTPUT_DIR", "."))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory path: %w", err)
	}

	cfg := &Config{
		AppKey:       getEnv("APP_KEY", ""),
		AppSecret:    getEnv("APP_SECRET", ""),
		RefreshToken: getEnv("SCHWAB_REFRESH_TOKEN", ""),
		BaseURL:      getEnv("SCHWAB_BASE_URL", DefaultBaseURL),
		TokenURL:     getEnv("SCHWAB_TOKEN_URL", DefaultTokenURL),
		OutputDir:    outputDir,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPretty:    getEnvAsBool("LOG_PRETTY", true),
		Schedule:     getEnv("REPORT_SCHEDULE", "0 0 18 * * MON-FRI"),
		R2: &R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("R2_BUCKET", ""),
			Prefix:          getEnv("R2_PREFIX", "reports"),
			RetentionDays:   getEnvAsInt("R2_RETENTION_DAYS", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.AppKey == "" || c.AppSecret == "" {
		return fmt.Errorf("APP_KEY and APP_SECRET must both be set")
	}
	if c.R2 != nil && c.R2.RetentionDays < 0 {
		return fmt.Errorf("R2_RETENTION_DAYS must not be negative")
	}
	if c.R2.partial() {
		return fmt.Errorf("incomplete R2 configuration: R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET are all required")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
