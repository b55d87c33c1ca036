package config

import (
	"fmt"
	"net/mail"
	"os"
	"strings"
	"time"
)

const (
	defaultPort             = "8080"
	defaultDatabaseURL      = "launchquote.db"
	defaultAutoMigrate      = "true"
	defaultMailFrom         = "WeblitzStack <noreply.inquiries@weblitzstack.com>"
	defaultAdminEmail       = "josiah@weblitzstack.com"
	defaultAdminName        = "Josiah"
	defaultAdminToken       = "change-me-admin-token"
	defaultSiteURL          = "https://launch.weblitzstack.com"
	defaultWizardSessionTTL = "2h"
	defaultLogLevel         = "info"
)

// Config holds all application configuration values.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	AutoMigrate bool

	ResendAPIKey string
	MailFrom     string
	AdminEmail   string
	AdminName    string
	SiteURL      string

	AdminToken string

	PricingCatalogPath string
	WizardSessionTTL   time.Duration

	LogLevel string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables. Callers load .env
// files beforehand.
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
	cfg.AutoMigrate = parseBoolEnv("AUTO_MIGRATE", defaultAutoMigrate)

	cfg.ResendAPIKey = strings.TrimSpace(os.Getenv("RESEND_API_KEY"))
	cfg.MailFrom = strings.TrimSpace(getEnv("MAIL_FROM", defaultMailFrom))
	cfg.AdminEmail = strings.TrimSpace(getEnv("ADMIN_EMAIL", defaultAdminEmail))
	cfg.AdminName = strings.TrimSpace(getEnv("ADMIN_NAME", defaultAdminName))
	cfg.SiteURL = strings.TrimRight(strings.TrimSpace(getEnv("SITE_URL", defaultSiteURL)), "/")
	cfg.AdminToken = strings.TrimSpace(getEnv("ADMIN_TOKEN", defaultAdminToken))

	cfg.PricingCatalogPath = strings.TrimSpace(os.Getenv("PRICING_CATALOG_PATH"))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	var err error
	cfg.WizardSessionTTL, err = parseDurationEnv("WIZARD_SESSION_TTL", defaultWizardSessionTTL)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProd reports whether the config targets a production-like environment.
func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

// EmailEnabled reports whether a real email provider is configured.
func (c *Config) EmailEnabled() bool {
	return c.ResendAPIKey != ""
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.WizardSessionTTL <= 0 {
		return fmt.Errorf("WIZARD_SESSION_TTL must be > 0")
	}
	if _, err := mail.ParseAddress(cfg.MailFrom); err != nil {
		return fmt.Errorf("invalid MAIL_FROM value %q: %w", cfg.MailFrom, err)
	}
	if _, err := mail.ParseAddress(cfg.AdminEmail); err != nil {
		return fmt.Errorf("invalid ADMIN_EMAIL value %q: %w", cfg.AdminEmail, err)
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.ResendAPIKey == "" {
			return fmt.Errorf("in prod/release RESEND_API_KEY must be set")
		}
		if isEmptyOrDefault(cfg.AdminToken, defaultAdminToken) {
			return fmt.Errorf("in prod/release ADMIN_TOKEN must be set and not default")
		}
		if !strings.HasPrefix(cfg.DatabaseURL, "postgres://") && !strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
			return fmt.Errorf("in prod/release DATABASE_URL must point to PostgreSQL")
		}
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

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

// parseListEnv splits a comma separated variable, e.g.
// CORS_ALLOWED_ORIGINS=https://app.com,https://admin.app.com
func parseListEnv(name string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(name), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
