package app

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{"APP_ENV", "API_BASE_URL", "API_TIMEOUT", "SESSION_SECRET", "SESSION_CODEC", "SESSION_ACCEPT_LEGACY", "CSRF_SECRET", "REDIS_ADDR", "RATE_LIMIT_PER_MINUTE"}

// setEnv sets exactly the given variables and unsets the rest of configKeys.
func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	for _, key := range configKeys {
		if v, ok := values[key]; ok {
			t.Setenv(key, v)
			continue
		}
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDevelopmentFallbacks(t *testing.T) {
	setEnv(t, map[string]string{"API_BASE_URL": "https://api.example.com"})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DevSessionSecret, cfg.SessionSecret)
	assert.True(t, cfg.UsedDevSecret)
	assert.Equal(t, cfg.SessionSecret, cfg.CSRFSecret)
	assert.Equal(t, "signed", cfg.SessionCodec)
	assert.True(t, cfg.SessionAcceptLegacy)
	assert.Equal(t, time.Duration(0), cfg.APITimeout)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	setEnv(t, map[string]string{"APP_ENV": "production", "API_BASE_URL": "https://api.example.com"})
	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrSessionSecretMissing)

	t.Setenv("SESSION_SECRET", "s3cret")
	_, err = LoadConfig()
	assert.EqualError(t, err, "CSRF_SECRET must be provided in production")

	t.Setenv("CSRF_SECRET", "c5rf")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.UsedDevSecret)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigRejects(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing base url", map[string]string{}},
		{"blank base url", map[string]string{"API_BASE_URL": "  "}},
		{"unknown codec", map[string]string{"API_BASE_URL": "https://api.example.com", "SESSION_CODEC": "jwt"}},
		{"negative rate limit", map[string]string{"API_BASE_URL": "https://api.example.com", "RATE_LIMIT_PER_MINUTE": "-1"}},
		{"bad timeout", map[string]string{"API_BASE_URL": "https://api.example.com", "API_TIMEOUT": "soon"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setEnv(t, tc.env)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, &Config{LogFormat: "json"}).Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"service":"niyo-web"`)

	buf.Reset()
	newLogger(&buf, &Config{AppEnv: "production"}).Debug("hidden")
	assert.Empty(t, buf.String())
}
