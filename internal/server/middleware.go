package server

import (
	"context"
	"time"

	"auction-marketplace/internal/metrics"
	"auction-marketplace/internal/models"
	authhelpers "auction-marketplace/services/auth/helpers"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// Authenticator resolves a bearer token to the caller
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Identity, error)
}

// RequestIDMiddleware keeps a well-formed incoming X-Request-ID or assigns a new one
func RequestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if !utils.IsValidID(id) {
		id = utils.GenerateID()
	}
	c.Set(utils.RequestIDKey, id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"route":      c.FullPath(),
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": c.GetString(utils.RequestIDKey),
		"client_ip":  c.ClientIP(),
	}
	if identity := utils.CurrentIdentity(c); identity != nil {
		fields["user_id"] = identity.UserID
	}
	utils.Info("HTTP Request", fields)
}

// MetricsMiddleware records request latency per route template
func MetricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
}

// AuthMiddleware attaches the caller when a bearer token is present. Requests without
// a token continue anonymously; an invalid or revoked token is refused with 401.
func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := authhelpers.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		identity, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, "AuthMiddleware", err, map[string]any{
				"path":       c.Request.URL.Path,
				"request_id": c.GetString(utils.RequestIDKey),
			})
			return
		}

		utils.SetIdentity(c, identity)
		c.Next()
	}
}
