package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "$2a$12$C6UzMDM.H6dfI/f/IKcEeO7ZnTDEBNdpCN8Zsy7tLHHVt3nBCgL6y"

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("SessionTTL converts hours to duration", func(t *testing.T) {
		cfg := &Config{SessionTTLHours: 168}
		assert.Equal(t, 168*time.Hour, cfg.SessionTTL())
	})

	t.Run("SweepInterval converts minutes to duration", func(t *testing.T) {
		cfg := &Config{SweepIntervalMinutes: 30}
		assert.Equal(t, 30*time.Minute, cfg.SweepInterval())
	})

	t.Run("IsProduction matches environment", func(t *testing.T) {
		assert.True(t, (&Config{Environment: "production"}).IsProduction())
		assert.False(t, (&Config{Environment: "development"}).IsProduction())
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts bcrypt password hash", func(t *testing.T) {
		cfg := &Config{
			AdminPasswordHash: testHash,
			TokenSecret:       "dev-secret",
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects plaintext password", func(t *testing.T) {
		cfg := &Config{
			AdminPasswordHash: "hunter2",
			TokenSecret:       "dev-secret",
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("production requires a long token secret", func(t *testing.T) {
		cfg := &Config{
			Environment:       "production",
			AdminPasswordHash: testHash,
			TokenSecret:       "short",
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects known weak secrets", func(t *testing.T) {
		cfg := &Config{
			Environment:       "production",
			AdminPasswordHash: testHash,
			TokenSecret:       "change-me",
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("production accepts a strong secret", func(t *testing.T) {
		cfg := &Config{
			Environment:       "production",
			AdminPasswordHash: testHash,
			TokenSecret:       "eW91LXdvdWxkbnQtZ3Vlc3MtdGhpcy1vbmUtZWFzaWx5",
		}
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "ENVIRONMENT", "DATABASE_URL", "REDIS_URL",
		"ADMIN_USERNAME", "ADMIN_PASSWORD_HASH", "TOKEN_SECRET",
		"RESEND_API_KEY", "MAIL_FROM", "MAIL_INBOX", "ALLOWED_ORIGINS",
		"SESSION_TTL_HOURS", "SWEEP_INTERVAL_MINUTES", "LOG_LEVEL",
	}
	originalEnv := map[string]string{}
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	setRequired := func() {
		os.Setenv("DATABASE_URL", "postgres://localhost/studio")
		os.Setenv("ADMIN_USERNAME", "admin")
		os.Setenv("ADMIN_PASSWORD_HASH", testHash)
		os.Setenv("TOKEN_SECRET", "dev-secret")
	}

	t.Run("loads config with defaults", func(t *testing.T) {
		for _, k := range keys {
			os.Unsetenv(k)
		}
		setRequired()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, 168, cfg.SessionTTLHours)
		assert.Equal(t, 30, cfg.SweepIntervalMinutes)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Empty(t, cfg.AllowedOrigins)
	})

	t.Run("splits allowed origins on commas", func(t *testing.T) {
		for _, k := range keys {
			os.Unsetenv(k)
		}
		setRequired()
		os.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	})

	t.Run("fails without required values", func(t *testing.T) {
		for _, k := range keys {
			os.Unsetenv(k)
		}

		_, err := Load()
		assert.Error(t, err)
	})
}
