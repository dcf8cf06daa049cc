package server

import (
	"net/http"
	"strings"
	"time"

	"auction-backend/internal/auth"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing and tags each
// request with an id echoed in the X-Request-ID header.
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = utils.GenerateID()
	}
	c.Set("request_id", requestID)
	c.Writer.Header().Set("X-Request-ID", requestID)

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": requestID,
	})
}

// bearerToken extracts the token from an "Authorization: Bearer" header
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// RequireAuth validates the access token and sets the caller identity into
// the context. Requests without a valid token are rejected with 401.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "authorization header required", "authentication required")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(token, auth.TokenTypeAccess)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "token is invalid or expired", "authentication required")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalAuth sets the caller identity when a valid access token is
// presented but lets anonymous requests through. Used on groups whose read
// operations are open while writes check identity in the handler path.
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := tokens.Parse(token, auth.TokenTypeAccess); err == nil {
				c.Set("user_id", claims.UserID)
				c.Set("username", claims.Username)
			}
		}
		c.Next()
	}
}
