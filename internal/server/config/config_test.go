package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, "mongodb", c.MongoHost)
	assert.Equal(t, "taskdb", c.MongoDatabase)
	assert.Equal(t, 5*time.Second, c.MongoTimeout)
	assert.Equal(t, "secret/data/mongodb", c.VaultSecretPath)
	assert.Empty(t, c.SecretKey, "signing key must not have a default")
}

func TestValidate_RequiresSecretKey(t *testing.T) {
	var c Config
	c.LoadDefaults()

	err := c.Validate()
	require.Error(t, err)

	c.SecretKey = "k"
	require.NoError(t, c.Validate())
}

func TestLoadConfig_EnvOverlay(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "env-secret")
	t.Setenv("MONGODB_HOST", "mongo.internal")
	t.Setenv("JWT_VALIDITY_DURATION", "1h")
	t.Setenv("MONGODB_TIMEOUT", "not-a-duration")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, "mongo.internal", c.MongoHost)
	assert.Equal(t, time.Hour, c.TokenValidityDuration)
	// unparsable duration falls back to the default
	assert.Equal(t, 5*time.Second, c.MongoTimeout)
}

func TestLoadConfig_MissingSecretKeyFails(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
}
