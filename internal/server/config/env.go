package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first if present; real environment
// variables win over file values.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.EndpointAddr = getEnv("ENDPOINT_ADDR", config.EndpointAddr)
	config.SecretKey = getEnv("JWT_SECRET_KEY", config.SecretKey)
	config.TokenValidityDuration = getEnvAsDuration("JWT_VALIDITY_DURATION", config.TokenValidityDuration)

	config.MongoHost = getEnv("MONGODB_HOST", config.MongoHost)
	config.MongoUsername = getEnv("MONGODB_USERNAME", config.MongoUsername)
	config.MongoPassword = getEnv("MONGODB_PASSWORD", config.MongoPassword)
	config.MongoDatabase = getEnv("MONGODB_DATABASE", config.MongoDatabase)
	config.MongoTimeout = getEnvAsDuration("MONGODB_TIMEOUT", config.MongoTimeout)

	config.VaultAddr = getEnv("VAULT_ADDR", config.VaultAddr)
	config.VaultToken = getEnv("VAULT_TOKEN", config.VaultToken)
	config.VaultSecretPath = getEnv("VAULT_SECRET_PATH", config.VaultSecretPath)

	config.RateLimitRedisAddr = getEnv("RATE_LIMIT_REDIS_ADDR", config.RateLimitRedisAddr)
	config.CORSAllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", config.CORSAllowedOrigins)
}

// getEnv returns the value of the environment variable or the default when
// the variable is unset or empty.
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses the environment variable with time.ParseDuration
// (e.g. "24h", "5s"), falling back to the default on absence or parse error.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
