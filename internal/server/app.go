// Package server initializes and runs the main application server.
// It resolves database credentials, connects the document store, wires the
// auth and task services into the HTTP API, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avdeevs/taskkeeper/internal/logging"
	"github.com/avdeevs/taskkeeper/internal/server/config"
	"github.com/avdeevs/taskkeeper/internal/server/httpapi"
	"github.com/avdeevs/taskkeeper/internal/server/ratelimit"
	taskrepo "github.com/avdeevs/taskkeeper/internal/server/repositories/tasks"
	userrepo "github.com/avdeevs/taskkeeper/internal/server/repositories/users"
	"github.com/avdeevs/taskkeeper/internal/server/secrets"
	"github.com/avdeevs/taskkeeper/internal/server/services"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	mongoClient *mongo.Client
	httpServer  *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	bundle, source := resolveCredentials(ctx, cfg, logger)
	if bundle.Username == "" || bundle.Password == "" {
		return nil, errors.New("no usable database credentials: set MONGODB_USERNAME and MONGODB_PASSWORD or configure Vault")
	}

	client, db, err := connectMongo(ctx, cfg, bundle)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	usersRepo := userrepo.NewMongoRepository(db, cfg.MongoTimeout)
	if err := usersRepo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("db index error: %w", err)
	}
	tasksRepo := taskrepo.NewMongoRepository(db, cfg.MongoTimeout)

	us := services.NewUserService(usersRepo, cfg)
	ts := services.NewTaskService(tasksRepo)

	limiter := newLimiter(ctx, cfg, logger)

	health := httpapi.Health{
		CredentialSource: source,
		MongoHost:        bundle.Host,
		MongoDatabase:    bundle.Database,
		PingDatabase: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
			defer cancel()
			return client.Ping(pingCtx, readpref.Primary())
		},
	}

	httpServer := httpapi.NewServer(cfg, logger, us, ts, limiter, health)

	return &App{config: cfg, logger: logger, mongoClient: client, httpServer: httpServer}, nil
}

// resolveCredentials asks Vault for the database credential bundle once,
// before the server starts listening, and falls back to the statically
// configured values on any failure. The returned source is "vault" or "env".
func resolveCredentials(ctx context.Context, cfg *config.Config, logger logging.Logger) (*secrets.Bundle, string) {

	fallback := &secrets.Bundle{
		Host:     cfg.MongoHost,
		Username: cfg.MongoUsername,
		Password: cfg.MongoPassword,
		Database: cfg.MongoDatabase,
	}

	if cfg.VaultAddr == "" {
		return fallback, "env"
	}

	resolver, err := secrets.NewResolver(cfg.VaultAddr, cfg.VaultToken, cfg.VaultSecretPath, logger)
	if err != nil {
		logger.Warn(ctx, "vault client init failed, using fallback credentials", "error", err.Error())
		return fallback, "env"
	}

	bundle, err := resolver.Resolve(ctx)
	if err != nil {
		logger.Warn(ctx, "vault resolution failed, using fallback credentials", "error", err.Error())
		return fallback, "env"
	}

	// the secret may omit host/database; those keep their configured values
	if bundle.Host == "" {
		bundle.Host = cfg.MongoHost
	}
	if bundle.Database == "" {
		bundle.Database = cfg.MongoDatabase
	}

	return bundle, "vault"
}

func connectMongo(ctx context.Context, cfg *config.Config, bundle *secrets.Bundle) (*mongo.Client, *mongo.Database, error) {

	uri := fmt.Sprintf("mongodb://%s:%s@%s:27017/%s?authSource=admin",
		bundle.Username, bundle.Password, bundle.Host, bundle.Database)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, nil, err
	}

	return client, client.Database(bundle.Database), nil
}

// newLimiter picks the counter store: Redis when configured, otherwise
// process-local memory (fine for a single instance).
func newLimiter(ctx context.Context, cfg *config.Config, logger logging.Logger) *ratelimit.Limiter {

	var store ratelimit.Store
	if cfg.RateLimitRedisAddr != "" {
		store = ratelimit.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RateLimitRedisAddr}))
		logger.Info(ctx, "rate limiting with shared redis counters", "addr", cfg.RateLimitRedisAddr)
	} else {
		store = ratelimit.NewMemoryStore()
	}

	return ratelimit.New(store, ratelimit.DefaultWindow, httpapi.DefaultRouteLimit, httpapi.RouteLimits)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	disconnectCtx, cancel := context.WithTimeout(context.Background(), app.config.MongoTimeout)
	defer cancel()
	if err := app.mongoClient.Disconnect(disconnectCtx); err != nil {
		app.logger.Error(ctx, "mongo disconnect error", "error", err.Error())
	}
}
