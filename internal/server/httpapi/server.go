// Package httpapi binds the HTTP surface to the task and auth services.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/avdeevs/taskkeeper/internal/logging"
	"github.com/avdeevs/taskkeeper/internal/server/config"
	"github.com/avdeevs/taskkeeper/internal/server/ratelimit"
	"github.com/avdeevs/taskkeeper/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Route keys for the rate limiter. Ceilings are per key per client address
// within ratelimit.DefaultWindow.
const (
	routeRegister   = "register"
	routeLogin      = "login"
	routeTasksRead  = "tasks:read"
	routeTasksWrite = "tasks:write"
	routeDefault    = "default"
)

// RouteLimits declares each route's ceiling; anything unlisted falls back to
// DefaultRouteLimit.
var RouteLimits = map[string]int64{
	routeRegister:   5,
	routeLogin:      10,
	routeTasksRead:  100,
	routeTasksWrite: 50,
}

const DefaultRouteLimit int64 = 100

// Health reports the state of the server's external collaborators for the
// /api/health endpoint.
type Health struct {
	// CredentialSource is "vault" when the database credentials came from
	// the secrets service, "env" after a fallback.
	CredentialSource string
	MongoHost        string
	MongoDatabase    string
	PingDatabase     func(ctx context.Context) error
}

type Server struct {
	address        string
	allowedOrigins string
	logger         logging.Logger
	users          *services.UserService
	tasks          *services.TaskService
	limiter        *ratelimit.Limiter
	jwtSecret      []byte
	health         Health
}

func NewServer(cfg *config.Config, logger logging.Logger, us *services.UserService, ts *services.TaskService, limiter *ratelimit.Limiter, health Health) *Server {
	return &Server{
		address:        cfg.EndpointAddr,
		allowedOrigins: cfg.CORSAllowedOrigins,
		logger:         logger.With("module", "httpapi"),
		users:          us,
		tasks:          ts,
		limiter:        limiter,
		jwtSecret:      []byte(cfg.SecretKey),
		health:         health,
	}
}

func (s *Server) router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestID())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(s.allowedOrigins, ",")
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		// rate limiting runs before token checks on every route
		api.POST("/register", s.rateLimit(routeRegister), s.handleRegister)
		api.POST("/login", s.rateLimit(routeLogin), s.handleLogin)

		api.GET("/tasks", s.rateLimit(routeTasksRead), s.handleListTasks)
		api.POST("/task", s.rateLimit(routeTasksWrite), s.handleCreateTask)
		api.PUT("/task/:id", s.rateLimit(routeTasksWrite), s.requireToken(), s.handleUpdateTask)
		api.DELETE("/task/:id", s.rateLimit(routeTasksWrite), s.requireToken(), s.handleDeleteTask)

		api.GET("/health", s.rateLimit(routeDefault), s.handleHealth)
	}

	return router
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
