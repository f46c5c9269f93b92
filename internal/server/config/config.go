// Package config handles configuration for the auth server: defaults, an
// optional JSON file, command-line flags and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
)

// MinBcryptCost is the lowest cost accepted for production use.
const MinBcryptCost = 10

// Config holds runtime settings for the auth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDriver / DatabaseDSN: "sqlite" (modernc) or "pgx" (PostgreSQL).
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
//   - BcryptCost: password hashing cost.
//   - TOTPIssuer: issuer shown in authenticator apps.
//   - CORSAllowedOrigins: browser origins allowed to call the API; empty disables CORS.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - LogLevel: minimum level written to the JSON log (debug, info, warn, error).
type Config struct {
	EndpointAddrHTTP            string
	DatabaseDriver              string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	BcryptCost                  int
	TOTPIssuer                  string
	CORSAllowedOrigins          []string
	ShutdownTimeout             time.Duration
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3001"
	c.DatabaseDriver = repomanager.DriverSQLite
	c.DatabaseDSN = "auth.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 1 * time.Hour
	c.BcryptCost = MinBcryptCost
	c.TOTPIssuer = "Ft_Transcendence"
	c.CORSAllowedOrigins = nil
	c.ShutdownTimeout = 5 * time.Second
	c.LogLevel = "info"
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.EndpointAddrHTTP == "" {
		errs = append(errs, errors.New("empty HTTP endpoint address"))
	}
	if c.DatabaseDriver != repomanager.DriverSQLite && c.DatabaseDriver != repomanager.DriverPostgres {
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.DatabaseDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("empty database DSN"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("empty secret key"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("access token validity must be positive"))
	}
	if c.BcryptCost < MinBcryptCost {
		errs = append(errs, fmt.Errorf("bcrypt cost %d is below %d", c.BcryptCost, MinBcryptCost))
	}
	if c.TOTPIssuer == "" {
		errs = append(errs, errors.New("empty TOTP issuer"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, command-line flags and finally environment
// variables.
func LoadConfig() *Config {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup lookupFunc) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	parseEnv(cfg, lookup)
	return cfg
}
