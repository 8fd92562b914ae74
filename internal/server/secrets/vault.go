// Package secrets resolves database credentials from a Vault KV store.
// Resolution happens once at startup; the caller falls back to statically
// configured values when the secrets service is unavailable.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeevs/taskkeeper/internal/logging"
	"github.com/hashicorp/vault/api"
)

// Bundle is a set of database connection credentials fetched from the
// secrets service. It is held in process memory for the process lifetime and
// never persisted.
type Bundle struct {
	Host     string
	Username string
	Password string
	Database string
}

// ErrIncompleteSecret is returned when the secret exists but lacks a usable
// username/password pair.
var ErrIncompleteSecret = errors.New("secret is missing required fields")

// logicalReader is the slice of the Vault API the resolver needs. The real
// implementation is (*api.Client).Logical().
type logicalReader interface {
	ReadWithContext(ctx context.Context, path string) (*api.Secret, error)
}

// Resolver reads a credential bundle from a fixed logical path in Vault.
type Resolver struct {
	reader  logicalReader
	path    string
	logger  logging.Logger
	backoff time.Duration
}

const resolveAttempts = 3

// NewResolver builds a Resolver talking to the Vault server at addr,
// authenticating with token, reading the bundle at path (KV v2 data path,
// e.g. "secret/data/mongodb").
func NewResolver(addr, token, path string, logger logging.Logger) (*Resolver, error) {
	cfg := api.DefaultConfig()
	cfg.Address = addr

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault client init: %w", err)
	}
	client.SetToken(token)

	return &Resolver{
		reader:  client.Logical(),
		path:    path,
		logger:  logger.With("module", "secrets"),
		backoff: time.Second,
	}, nil
}

// Resolve fetches the credential bundle, retrying transient failures a small
// fixed number of times with backoff. It is called once, synchronously,
// before the server starts listening — never lazily per request.
func (r *Resolver) Resolve(ctx context.Context) (*Bundle, error) {
	var lastErr error

	for attempt := 1; attempt <= resolveAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.backoff * time.Duration(attempt-1)):
			}
		}

		secret, err := r.reader.ReadWithContext(ctx, r.path)
		if err != nil {
			lastErr = err
			r.logger.Warn(ctx, "secret read failed", "attempt", attempt, "error", err.Error())
			continue
		}
		if secret == nil {
			return nil, fmt.Errorf("no secret at path %s", r.path)
		}

		bundle, err := bundleFromSecret(secret)
		if err != nil {
			return nil, err
		}
		return bundle, nil
	}

	return nil, fmt.Errorf("vault unreachable after %d attempts: %w", resolveAttempts, lastErr)
}

// bundleFromSecret unpacks a KV v2 read, where the payload sits under the
// "data" key of the response data.
func bundleFromSecret(secret *api.Secret) (*Bundle, error) {
	payload := secret.Data

	if nested, ok := secret.Data["data"].(map[string]interface{}); ok {
		payload = nested
	}

	bundle := &Bundle{
		Host:     stringField(payload, "host"),
		Username: stringField(payload, "username"),
		Password: stringField(payload, "password"),
		Database: stringField(payload, "database"),
	}

	if bundle.Username == "" || bundle.Password == "" {
		return nil, ErrIncompleteSecret
	}

	return bundle, nil
}

func stringField(data map[string]interface{}, key string) string {
	v, ok := data[key].(string)
	if !ok {
		return ""
	}
	return v
}
