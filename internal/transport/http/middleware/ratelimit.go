package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/ErlanBelekov/friendlist/internal/metrics"
	"github.com/ErlanBelekov/friendlist/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

const errTooManyRequests = "Too many requests from this IP, please try again later."

// RateLimit caps requests per client address, authenticated or not.
// Limiter errors are logged and the request is let through.
func RateLimit(limiter ratelimit.Limiter, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "rate_limit")

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()

		res, err := limiter.Allow(ctx, ip)
		if err != nil {
			logger.WarnContext(ctx, "rate limit check failed, allowing request", "error", err)
		}

		now := time.Now()
		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			metrics.RateLimitRejectionsTotal.Inc()
			logger.WarnContext(ctx, "rate limit exceeded", "ip", ip, "endpoint", c.Request.Method+" "+c.Request.URL.Path)
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter(now).Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": errTooManyRequests})
			return
		}
		c.Next()
	}
}
