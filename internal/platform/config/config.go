package config

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// TokenConfig holds the secrets and lifetimes used to sign access and refresh tokens.
// It is injected into the authenticator rather than read from the environment per call.
type TokenConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
}

// Validate reports a configuration error when any token setting is missing.
func (t TokenConfig) Validate() error {
	var missing []string
	if t.AccessTokenSecret == "" {
		missing = append(missing, "ACCESS_TOKEN_SECRET")
	}
	if t.AccessTokenExpiry <= 0 {
		missing = append(missing, "ACCESS_TOKEN_EXPIRY")
	}
	if t.RefreshTokenSecret == "" {
		missing = append(missing, "REFRESH_TOKEN_SECRET")
	}
	if t.RefreshTokenExpiry <= 0 {
		missing = append(missing, "REFRESH_TOKEN_EXPIRY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing or invalid %s", apperrors.ErrConfiguration, strings.Join(missing, ", "))
	}
	if t.AccessTokenSecret == t.RefreshTokenSecret {
		return fmt.Errorf("%w: ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ", apperrors.ErrConfiguration)
	}
	if t.RefreshTokenExpiry <= t.AccessTokenExpiry {
		return fmt.Errorf("%w: REFRESH_TOKEN_EXPIRY must be longer than ACCESS_TOKEN_EXPIRY", apperrors.ErrConfiguration)
	}
	return nil
}

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	MigrationsPath     string
	CORSAllowedOrigins []string
	LoginRateLimit     string // ulule/limiter formatted rate, e.g. "5-M"
	Token              TokenConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Missing token secrets or expiries are reported as apperrors.ErrConfiguration.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8000")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		LoginRateLimit: v.GetString("LOGIN_RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ORIGIN"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	accessExpiry, err := ParseExpiry(v.GetString("ACCESS_TOKEN_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("%w: ACCESS_TOKEN_EXPIRY: %v", apperrors.ErrConfiguration, err)
	}
	refreshExpiry, err := ParseExpiry(v.GetString("REFRESH_TOKEN_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("%w: REFRESH_TOKEN_EXPIRY: %v", apperrors.ErrConfiguration, err)
	}

	cfg.Token = TokenConfig{
		AccessTokenSecret:  v.GetString("ACCESS_TOKEN_SECRET"),
		AccessTokenExpiry:  accessExpiry,
		RefreshTokenSecret: v.GetString("REFRESH_TOKEN_SECRET"),
		RefreshTokenExpiry: refreshExpiry,
	}
	if err := cfg.Token.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// maxExpiryDays is the largest day count that fits in a time.Duration.
const maxExpiryDays = int64(math.MaxInt64 / int64(24*time.Hour))

// ParseExpiry parses a token lifetime. It accepts Go durations ("15m", "1h30m")
// and whole days ("10d"). An empty value parses to zero.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.ParseInt(days, 10, 64)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		if n > maxExpiryDays {
			return 0, fmt.Errorf("day count %q exceeds %d", s, maxExpiryDays)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("expiry must be positive, got %q", s)
	}
	return d, nil
}
