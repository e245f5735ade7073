package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	SecretKey []byte        // Required: HS256 signing secret, from ACCOUNTS_SECRET_KEY or ACCOUNTS_SECRET_KEY_FILE
	TokenTTL  time.Duration // Optional: token lifetime (default: 60 days)

	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./accounts.db)
	DatabaseURL    string // Required for postgres: connection URL
	PepperFile     string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	Rules service.ValidationRules // Optional: field length limits

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the configuration from the environment. It only fails when
// a secret file is named but cannot be read; everything else is checked by
// Validate.
func LoadConfig() (Config, error) {
	defaults := service.DefaultValidationRules()

	cfg := Config{
		TokenTTL:       getEnvDurationOrDefault("ACCOUNTS_TOKEN_TTL", jwtx.DefaultTokenTTL),
		DatabaseDriver: getEnvOrDefault("ACCOUNTS_DATABASE_DRIVER", DriverSQLite),
		DatabaseFile:   getEnvOrDefault("ACCOUNTS_DATABASE_FILE", "accounts.db"),
		DatabaseURL:    os.Getenv("ACCOUNTS_DATABASE_URL"),
		PepperFile:     getEnvOrDefault("ACCOUNTS_PEPPER_FILE", "pepper"),
		Rules: service.ValidationRules{
			PasswordMinLength:  getEnvIntOrDefault("ACCOUNTS_PASSWORD_MIN_LENGTH", defaults.PasswordMinLength),
			PasswordMaxLength:  getEnvIntOrDefault("ACCOUNTS_PASSWORD_MAX_LENGTH", defaults.PasswordMaxLength),
			UsernameMaxLength:  getEnvIntOrDefault("ACCOUNTS_USERNAME_MAX_LENGTH", defaults.UsernameMaxLength),
			FirstNameMaxLength: getEnvIntOrDefault("ACCOUNTS_FIRST_NAME_MAX_LENGTH", defaults.FirstNameMaxLength),
			LastNameMaxLength:  getEnvIntOrDefault("ACCOUNTS_LAST_NAME_MAX_LENGTH", defaults.LastNameMaxLength),
		},
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	secret, err := loadSecret(os.Getenv("ACCOUNTS_SECRET_KEY"), os.Getenv("ACCOUNTS_SECRET_KEY_FILE"))
	if err != nil {
		return cfg, err
	}
	cfg.SecretKey = secret

	return cfg, nil
}

// Validate rejects a configuration the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	if len(c.SecretKey) == 0 {
		errs = append(errs, errors.New("ACCOUNTS_SECRET_KEY or ACCOUNTS_SECRET_KEY_FILE must be set"))
	} else if len(c.SecretKey) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("signing secret must be at least %d bytes", jwtx.MinSecretLength))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("ACCOUNTS_DATABASE_FILE must not be empty"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("ACCOUNTS_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.DatabaseDriver))
	}

	r := c.Rules
	if r.PasswordMinLength < 1 || r.PasswordMaxLength < r.PasswordMinLength {
		errs = append(errs, fmt.Errorf("invalid password length bounds %d..%d", r.PasswordMinLength, r.PasswordMaxLength))
	}
	if r.UsernameMaxLength < 1 || r.FirstNameMaxLength < 1 || r.LastNameMaxLength < 1 {
		errs = append(errs, errors.New("field length limits must be positive"))
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
