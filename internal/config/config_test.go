package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_PREFIX", "")
	t.Setenv("DATABASE_DRIVER", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, DriverSupabase, cfg.DatabaseDriver)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "es-CL", cfg.MailLocale)
	assert.Equal(t, 10, cfg.LoginRateLimit)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("API_PREFIX", "v1/")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "condo.db")
	t.Setenv("LOGIN_RATE_LIMIT", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/v1", cfg.APIPrefix)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "condo.db", cfg.DatabaseURL)
	assert.Equal(t, 0, cfg.LoginRateLimit)
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9999\nEMAIL_USER=admin@condo.example\n"), 0o600))

	t.Setenv("PORT", "4000")
	t.Setenv("EMAIL_USER", "")
	os.Unsetenv("EMAIL_USER")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "admin@condo.example", cfg.EmailUser)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DATABASE_DRIVER": "mongo"}},
		{"postgres without url", map[string]string{"DATABASE_DRIVER": "postgres", "DATABASE_URL": ""}},
		{"negative rate limit", map[string]string{"LOGIN_RATE_LIMIT": "-1"}},
		{"port out of range", map[string]string{"SMTP_PORT": "70000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSupabaseConfigured(t *testing.T) {
	cfg := &Config{SupabaseURL: "https://x.supabase.co"}
	assert.False(t, cfg.SupabaseConfigured())
	cfg.SupabaseKey = "key"
	assert.True(t, cfg.SupabaseConfigured())
}
