package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port                 int      `env:"PORT" envDefault:"8080"`
	Environment          string   `env:"ENVIRONMENT" envDefault:"development"`
	DatabaseURL          string   `env:"DATABASE_URL,required"`
	RedisURL             string   `env:"REDIS_URL"`
	AdminUsername        string   `env:"ADMIN_USERNAME,required"`
	AdminPasswordHash    string   `env:"ADMIN_PASSWORD_HASH,required"`
	TokenSecret          string   `env:"TOKEN_SECRET,required"`
	ResendAPIKey         string   `env:"RESEND_API_KEY"`
	MailFrom             string   `env:"MAIL_FROM" envDefault:"noreply@atelierhq.studio"`
	MailInbox            string   `env:"MAIL_INBOX"`
	AllowedOrigins       []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	SessionTTLHours      int      `env:"SESSION_TTL_HOURS" envDefault:"168"`
	SweepIntervalMinutes int      `env:"SWEEP_INTERVAL_MINUTES" envDefault:"30"`
	LogLevel             string   `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SessionTTL is the validity window granted on login and on refresh.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMinutes) * time.Minute
}

func (c *Config) Validate() error {
	if !strings.HasPrefix(c.AdminPasswordHash, "$2a$") &&
		!strings.HasPrefix(c.AdminPasswordHash, "$2b$") &&
		!strings.HasPrefix(c.AdminPasswordHash, "$2y$") {
		return fmt.Errorf("ADMIN_PASSWORD_HASH must be a bcrypt hash (generate with: go run scripts/hash-password.go <password>)")
	}

	if c.IsProduction() {
		if err := validateSecret("TOKEN_SECRET", c.TokenSecret); err != nil {
			return err
		}
		if c.ResendAPIKey == "" {
			log.Warn().Msg("RESEND_API_KEY is empty in production: onboard notification emails disabled")
		}
		if c.RedisURL == "" {
			log.Warn().Msg("REDIS_URL is empty in production: sessions are held in process memory and lost on restart")
		}
		if len(c.AllowedOrigins) == 0 {
			log.Warn().Msg("ALLOWED_ORIGINS is empty in production: browser clients will be rejected by CORS")
		}
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
