package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = strings.Repeat("s", 32)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ACCOUNTS_SECRET_KEY", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, []byte(testSecret), cfg.SecretKey)
	require.Equal(t, jwtx.DefaultTokenTTL, cfg.TokenTTL)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "accounts.db", cfg.DatabaseFile)
	require.Equal(t, "pepper", cfg.PepperFile)
	require.Equal(t, 8, cfg.Rules.PasswordMinLength)
	require.Equal(t, 128, cfg.Rules.PasswordMaxLength)
	require.Equal(t, 150, cfg.Rules.UsernameMaxLength)
	require.Equal(t, 30, cfg.Rules.FirstNameMaxLength)
	require.Equal(t, 150, cfg.Rules.LastNameMaxLength)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ACCOUNTS_SECRET_KEY", testSecret)
	t.Setenv("ACCOUNTS_TOKEN_TTL", "2h")
	t.Setenv("ACCOUNTS_DATABASE_DRIVER", "postgres")
	t.Setenv("ACCOUNTS_DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("ACCOUNTS_PASSWORD_MIN_LENGTH", "12")
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, 2*time.Hour, cfg.TokenTTL)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, 12, cfg.Rules.PasswordMinLength)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 5*time.Minute, cfg.ShutdownGracePeriod)
}

func TestLoadConfigSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(path, []byte(testSecret+"\n"), 0o600))

	t.Setenv("ACCOUNTS_SECRET_KEY", "")
	t.Setenv("ACCOUNTS_SECRET_KEY_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []byte(testSecret), cfg.SecretKey)

	t.Setenv("ACCOUNTS_SECRET_KEY_FILE", filepath.Join(t.TempDir(), "missing"))
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		t.Setenv("ACCOUNTS_SECRET_KEY", testSecret)
		cfg, err := LoadConfig()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name string
		edit func(*Config)
		want string
	}{
		{"missing secret", func(c *Config) { c.SecretKey = nil }, "ACCOUNTS_SECRET_KEY"},
		{"short secret", func(c *Config) { c.SecretKey = []byte("short") }, "at least 32 bytes"},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }, "unknown database driver"},
		{"postgres without url", func(c *Config) { c.DatabaseDriver = DriverPostgres }, "ACCOUNTS_DATABASE_URL"},
		{"inverted password bounds", func(c *Config) { c.Rules.PasswordMaxLength = 4 }, "password length"},
		{"zero name limit", func(c *Config) { c.Rules.FirstNameMaxLength = 0 }, "must be positive"},
		{"bad port", func(c *Config) { c.Port = 0 }, "invalid port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.edit(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
