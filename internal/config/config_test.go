package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, 5, cfg.LowStockWarning)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://shop.example.com")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.APIBaseURL)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad origin", "API_BASE_URL", "shop.example.com"},
		{"bad driver", "DB_DRIVER", "postgres"},
		{"negative warning", "LOW_STOCK_WARNING", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLocation_Fallback(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestValidateServer_JWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.JWTSecret, "no secret is built in")
	assert.ErrorContains(t, cfg.ValidateServer(), "JWT_SECRET is required")

	t.Setenv("JWT_SECRET", "short")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Error(t, cfg.ValidateServer())

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err = Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateServer())
}
