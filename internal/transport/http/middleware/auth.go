package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/friendlist/internal/metrics"
	"github.com/ErlanBelekov/friendlist/internal/requestctx"
	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

const (
	errTokenRequired = "Access token required"
	errTokenInvalid  = "Invalid or expired token"
)

// TokenVerifier is satisfied by *usecase.AuthUsecase.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, rawToken string) (string, error)
}

// Auth guards protected routes. A request without a token gets 401; a token
// that fails verification gets 403. On success the user id is stored under
// UserIDKey and in the request context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := bearerToken(c.GetHeader("Authorization"))
		if rawToken == "" {
			metrics.AuthEventsTotal.WithLabelValues("token", "missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenRequired})
			return
		}

		userID, err := verifier.VerifyToken(c.Request.Context(), rawToken)
		if err != nil {
			metrics.AuthEventsTotal.WithLabelValues("token", "invalid").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errTokenInvalid})
			return
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(requestctx.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// bearerToken returns the credential after the scheme, e.g. "Bearer <token>".
// The scheme itself is not checked; a non-JWT credential fails verification.
func bearerToken(header string) string {
	_, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
