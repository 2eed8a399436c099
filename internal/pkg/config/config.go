package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/99minutos/catalog-api/internal/pkg/security"
)

// placeholderSecret is the sample value shipped in example env files.
const placeholderSecret = "your-secret-key-change-this-in-production"

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	Debug      bool   `env:"DEBUG,       default=false"`
	AppName    string `env:"APP_NAME,    default=Catalog API"`
	AppVersion string `env:"APP_VERSION, default=1.0.0"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth  AuthConfig
	Users UsersConfig
	Seed  SeedConfig
	HTTP  HTTPConfig
}

type AuthConfig struct {
	JWTSecret          string `env:"JWT_SECRET"`
	TokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=30"`
	BcryptCost         int    `env:"BCRYPT_COST,                 default=10"`
	HashWorkers        int    `env:"HASH_WORKERS,                default=4"`
	// OptionalInactive is "anonymous" or "reject".
	OptionalInactive string `env:"AUTH_OPTIONAL_INACTIVE, default=anonymous"`
}

type UsersConfig struct {
	AllowSelfElevation bool `env:"ALLOW_SELF_ELEVATION, default=true"`
	// DeletePolicy is "orphan" or "cascade".
	DeletePolicy string `env:"USER_DELETE_POLICY, default=orphan"`
}

type SeedConfig struct {
	AdminEmail    string `env:"ADMIN_EMAIL,       default=admin@example.com"`
	AdminUsername string `env:"ADMIN_USERNAME,    default=admin"`
	AdminPassword string `env:"ADMIN_PASSWORD,    default=AdminPass123"`
	// AdminPasswordHash, when set, is stored as is and ADMIN_PASSWORD is ignored.
	// Produce one with `catalog hash-password`.
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	SampleItems       bool   `env:"SEED_SAMPLE_ITEMS, default=true"`
}

type HTTPConfig struct {
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:3000,http://localhost:8080"`
	RateLimitRequests  int           `env:"RATE_LIMIT_REQUESTS,  default=100"`
	RateLimitPeriod    time.Duration `env:"RATE_LIMIT_PERIOD,    default=60s"`
}

// TokenTTL is the access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenExpireMinutes) * time.Minute
}

// IsDevelopment reports whether ENV selects the development profile.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
// In development a .env file in the working directory is loaded first when present.
func Load(ctx context.Context) (*Config, error) {
	if env := os.Getenv("ENV"); env == "" || env == "development" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith processes configuration from an arbitrary lookuper and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Auth.JWTSecret {
	case "":
		return errors.New("config: JWT_SECRET is required")
	case placeholderSecret:
		return errors.New("config: JWT_SECRET still holds the example placeholder")
	}
	if c.Auth.TokenExpireMinutes <= 0 {
		return fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", c.Auth.TokenExpireMinutes)
	}
	switch c.Auth.OptionalInactive {
	case "anonymous", "reject":
	default:
		return fmt.Errorf("config: AUTH_OPTIONAL_INACTIVE must be anonymous or reject, got %q", c.Auth.OptionalInactive)
	}
	switch c.Users.DeletePolicy {
	case "orphan", "cascade":
	default:
		return fmt.Errorf("config: USER_DELETE_POLICY must be orphan or cascade, got %q", c.Users.DeletePolicy)
	}
	if c.Seed.AdminPasswordHash != "" && !security.IsHash(c.Seed.AdminPasswordHash) {
		return errors.New("config: ADMIN_PASSWORD_HASH is not a bcrypt hash")
	}
	if c.HTTP.RateLimitRequests < 0 {
		return fmt.Errorf("config: RATE_LIMIT_REQUESTS must not be negative, got %d", c.HTTP.RateLimitRequests)
	}
	return nil
}
