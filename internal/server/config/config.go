// Package config handles configuration for the server component,
// including defaults, environment overlay, and command-line flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the taskkeeper server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required; startup
//     fails without it.
//   - TokenValidityDuration: access token lifetime.
//   - MongoHost / MongoUsername / MongoPassword / MongoDatabase: fallback
//     database settings used when Vault resolution fails.
//   - MongoTimeout: per-operation bound for database calls.
//   - VaultAddr / VaultToken: secrets service connection; empty VaultAddr
//     disables Vault and uses the fallback settings directly.
//   - VaultSecretPath: logical path of the database credential bundle.
//   - RateLimitRedisAddr: optional Redis address for a shared rate-limit
//     counter store; empty keeps counters in process memory.
//   - CORSAllowedOrigins: comma-separated list of allowed origins.
type Config struct {
	EndpointAddr          string
	SecretKey             string
	TokenValidityDuration time.Duration
	MongoHost             string
	MongoUsername         string
	MongoPassword         string
	MongoDatabase         string
	MongoTimeout          time.Duration
	VaultAddr             string
	VaultToken            string
	VaultSecretPath       string
	RateLimitRedisAddr    string
	CORSAllowedOrigins    string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: SecretKey has no default; it must be provided explicitly.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.TokenValidityDuration = 24 * time.Hour
	c.MongoHost = "mongodb"
	c.MongoDatabase = "taskdb"
	c.MongoTimeout = 5 * time.Second
	c.VaultSecretPath = "secret/data/mongodb"
	c.CORSAllowedOrigins = "http://localhost:3000"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including an optional .env file) and finally from
// command-line flags. It returns an error for fatal configuration problems.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports fatal configuration errors. A missing signing key aborts
// startup; everything else has a workable default or fallback.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	return nil
}
