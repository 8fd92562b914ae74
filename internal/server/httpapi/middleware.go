package httpapi

import (
	"errors"
	"net/http"

	"github.com/avdeevs/taskkeeper/internal/common"
	"github.com/avdeevs/taskkeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey      = "user_id"
	userNameKey    = "username"
	requestIDKey   = "request_id"
	requestIDField = "X-Request-Id"
)

// requestID tags every request with a fresh id, echoed to the client and
// attached to log lines.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDField, id)
		c.Next()
	}
}

// rateLimit rejects requests over the route's ceiling with 429. A limiter
// store failure is logged and the request admitted; limiter trouble must not
// take the API down with it.
func (s *Server) rateLimit(routeKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := s.limiter.Allow(c.Request.Context(), routeKey, c.ClientIP())
		if err != nil {
			s.logger.Warn(c.Request.Context(), "rate limiter unavailable",
				"route", routeKey, "error", err.Error())
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// requireToken validates the bearer token and injects the authenticated
// identity into the request context. All failures surface as 401; the
// message distinguishes missing, expired and invalid tokens.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token := auth.ExtractToken(header)

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			msg := "Token is invalid"
			switch {
			case errors.Is(err, common.ErrMissingToken):
				msg = "Token is missing"
			case errors.Is(err, common.ErrTokenExpired):
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(userNameKey, claims.UserName)
		c.Next()
	}
}
