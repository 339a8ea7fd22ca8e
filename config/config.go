// Package config loads the application configuration from the environment.
//
// Values come from the process environment, optionally seeded from a .env
// file. Nested sections use a double-underscore prefix (DB__HOST,
// REDIS__PORT, AUTH__TOKEN_AUDIENCE).
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// defaultSecret is the placeholder that ships in .env templates. It is
// refused outside local environments.
const defaultSecret = "change_this"

// Config is the root application configuration.
type Config struct {
	Environment string   `env:"ENVIRONMENT" envDefault:"local"`
	Domain      string   `env:"DOMAIN"`
	SecretKey   string   `env:"SECRET_KEY" envDefault:"change_this"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	Server   Server
	Database Database
	Redis    Redis
	Auth     Auth
}

// Server holds the HTTP listener settings.
type Server struct {
	Port int `env:"SERVER__PORT" envDefault:"8000"`
}

// Database holds the Postgres connection settings.
type Database struct {
	User     string `env:"DB__USER" envDefault:"postgres"`
	Password string `env:"DB__PASSWORD" envDefault:"postgres"`
	Host     string `env:"DB__HOST" envDefault:"localhost"`
	Port     int    `env:"DB__PORT" envDefault:"5432"`
	Name     string `env:"DB__NAME" envDefault:"postgres"`
	SSLMode  string `env:"DB__SSL_MODE" envDefault:"disable"`
}

// URL returns the database URL in the form used by golang-migrate.
func (d Database) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// Redis holds the Redis connection settings. The token blacklist and the
// short-lived security artifacts (verification codes, reset tokens) live in
// separate logical databases.
type Redis struct {
	Host        string `env:"REDIS__HOST" envDefault:"localhost"`
	Port        int    `env:"REDIS__PORT" envDefault:"6379"`
	BlacklistDB int    `env:"REDIS__TOKEN_BLACKLIST_DB" envDefault:"0"`
	SecurityDB  int    `env:"REDIS__SECURITY_DB" envDefault:"1"`
}

// Addr returns the host:port address of the Redis server.
func (r Redis) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Auth holds the token issuing and verification settings.
type Auth struct {
	PrivateKeyPath string `env:"AUTH__JWT_PRIVATE_KEY" envDefault:"certs/jwt-private.pem"`
	PublicKeyPath  string `env:"AUTH__JWT_PUBLIC_KEY" envDefault:"certs/jwt-public.pem"`

	TokenAudience string `env:"AUTH__TOKEN_AUDIENCE" envDefault:"backend:authentication"`

	AccessTokenLifetime  time.Duration `env:"AUTH__ACCESS_TOKEN_LIFETIME" envDefault:"1h"`
	RefreshTokenLifetime time.Duration `env:"AUTH__REFRESH_TOKEN_LIFETIME" envDefault:"336h"`

	VerificationCodeLifetime time.Duration `env:"AUTH__VERIFICATION_CODE_LIFETIME" envDefault:"15m"`
	ResetTokenLifetime       time.Duration `env:"AUTH__RESET_TOKEN_LIFETIME" envDefault:"1h"`
}

// IsLocal reports whether the application runs in a local environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}

// Load reads the configuration from the environment, seeding it from a .env
// file when one is present.
func Load() (*Config, error) {
	// A missing .env file is fine; containers inject the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !c.IsLocal() {
		if c.SecretKey == defaultSecret {
			return fmt.Errorf("SECRET_KEY is %q, change it for deployments", defaultSecret)
		}
		if c.Database.Password == defaultSecret {
			return fmt.Errorf("DB__PASSWORD is %q, change it for deployments", defaultSecret)
		}
	}
	return nil
}
