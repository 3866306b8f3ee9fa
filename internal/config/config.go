// Package config reads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	DriverSupabase = "supabase"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port      string `env:"PORT,default=3000"`
	APIPrefix string `env:"API_PREFIX,default=/api"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	DatabaseDriver string `env:"DATABASE_DRIVER,default=supabase"`
	SupabaseURL    string `env:"SUPABASE_URL"`
	SupabaseKey    string `env:"SUPABASE_KEY"`
	DatabaseURL    string `env:"DATABASE_URL"`

	EmailUser        string `env:"EMAIL_USER"`
	EmailAppPassword string `env:"EMAIL_APP_PASSWORD"`
	SMTPHost         string `env:"SMTP_HOST,default=smtp.gmail.com"`
	SMTPPort         int    `env:"SMTP_PORT,default=587"`
	PostmarkToken    string `env:"POSTMARK_TOKEN"`
	MailLocale       string `env:"MAIL_LOCALE,default=es-CL"`

	LoginRateLimit int `env:"LOGIN_RATE_LIMIT,default=10"`
}

// Load reads envFiles (a missing file is fine, a malformed one is not) and
// then decodes the environment. Variables already set win over the files.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	if c.DatabaseDriver == "" {
		c.DatabaseDriver = DriverSupabase
	}
	c.APIPrefix = "/" + strings.Trim(strings.TrimSpace(c.APIPrefix), "/")
	if c.APIPrefix == "/" {
		c.APIPrefix = ""
	}
}

// Validate rejects settings the server cannot start with. Missing Supabase
// credentials are not among them: the gateway starts unconfigured instead.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSupabase:
	case DriverPostgres, DriverSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for driver %q", c.DatabaseDriver)
		}
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP_PORT %d", c.SMTPPort)
	}
	if c.LoginRateLimit < 0 {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT %d", c.LoginRateLimit)
	}
	return nil
}

// SupabaseConfigured reports whether both Supabase secrets are present.
func (c *Config) SupabaseConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}
