package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// Remote shop API (the single source of truth)
	APIBaseURL       string        `envconfig:"API_BASE_URL" default:"http://localhost:8000"`
	APISessionCookie string        `envconfig:"API_SESSION_COOKIE"`
	APITimeout       time.Duration `envconfig:"API_TIMEOUT" default:"30s"`

	// Local store for staff accounts and the banner flag
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"pos-dashboard.db"`

	JWTSecret         string        `envconfig:"JWT_SECRET"`
	TokenTTL          time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	AllowedOrigins    []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	AllowRegistration bool          `envconfig:"ALLOW_REGISTRATION" default:"false"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash-001"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
	LogFile   string `envconfig:"LOG_FILE"`

	ShopName        string `envconfig:"SHOP_NAME" default:"Coffee Shop"`
	Timezone        string `envconfig:"TIMEZONE" default:"Asia/Dhaka"`
	LowStockWarning int    `envconfig:"LOW_STOCK_WARNING" default:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) origin, got %q", c.APIBaseURL)
	}
	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or mysql, got %q", c.DBDriver)
	}
	if c.LowStockWarning < 0 {
		return fmt.Errorf("LOW_STOCK_WARNING must not be negative")
	}
	return nil
}

// minSecretLen keeps HS256 keys out of guessing range.
const minSecretLen = 32

// ValidateServer checks what only the dashboard server needs. posctl never
// issues tokens and skips it.
func (c *Config) ValidateServer() error {
	switch {
	case c.JWTSecret == "":
		return fmt.Errorf("JWT_SECRET is required")
	case len(c.JWTSecret) < minSecretLen:
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLen)
	}
	return nil
}

// Location resolves TIMEZONE, falling back to UTC when the zone database lacks it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
