package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DevSessionSecret signs sessions outside production when SESSION_SECRET is unset.
const DevSessionSecret = "development-session-secret-key-change-in-production"

// ErrSessionSecretMissing is returned in production without SESSION_SECRET.
var ErrSessionSecretMissing = errors.New("SESSION_SECRET must be provided in production")

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	APIBaseURL string        `envconfig:"API_BASE_URL" required:"true"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"0"`

	SessionSecret       string `envconfig:"SESSION_SECRET"`
	SessionCodec        string `envconfig:"SESSION_CODEC" default:"signed"`
	SessionAcceptLegacy bool   `envconfig:"SESSION_ACCEPT_LEGACY" default:"true"`

	CSRFSecret string `envconfig:"CSRF_SECRET"`

	RedisAddr          string `envconfig:"REDIS_ADDR"`
	RateLimitPerMinute int    `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`

	// UsedDevSecret is set when the session secret fell back to DevSessionSecret.
	UsedDevSecret bool `ignored:"true"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return nil, errors.New("API_BASE_URL must be provided")
	}
	if err := cfg.applySecrets(); err != nil {
		return nil, err
	}
	switch cfg.SessionCodec {
	case "signed", "legacy":
	default:
		return nil, fmt.Errorf("SESSION_CODEC must be signed or legacy, got %q", cfg.SessionCodec)
	}
	if cfg.RateLimitPerMinute < 0 {
		return nil, errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return &cfg, nil
}

func (c *Config) applySecrets() error {
	if c.SessionSecret == "" {
		if c.IsProduction() {
			return ErrSessionSecretMissing
		}
		c.SessionSecret = DevSessionSecret
		c.UsedDevSecret = true
	}
	if c.CSRFSecret == "" {
		if c.IsProduction() {
			return errors.New("CSRF_SECRET must be provided in production")
		}
		c.CSRFSecret = c.SessionSecret
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
