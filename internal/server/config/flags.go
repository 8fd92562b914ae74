package config

import (
	"flag"
	"os"

	"github.com/avdeevs/taskkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   JWT HMAC secret key
//	-m string   MongoDB host
//	-d string   MongoDB database name
//	-v string   Vault address (e.g., "http://127.0.0.1:8200")
//	-r string   Redis address for the shared rate-limit store
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-m", "-d", "-v", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.MongoHost, "m", config.MongoHost, "MongoDB host")
	fs.StringVar(&config.MongoDatabase, "d", config.MongoDatabase, "MongoDB database name")
	fs.StringVar(&config.VaultAddr, "v", config.VaultAddr, "Vault address")
	fs.StringVar(&config.RateLimitRedisAddr, "r", config.RateLimitRedisAddr, "Redis address for rate limiting")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
