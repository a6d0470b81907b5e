package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/ratelimit"
	"portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// KeyFunc derives the rate-limit identity for a request. Deployments behind
// a different edge layer can supply their own.
type KeyFunc func(c *gin.Context) string

// ClientIP extracts the caller's best-available IP address, in order:
// first X-Forwarded-For entry, X-Real-IP, then the transport address.
// These headers are only as trustworthy as the proxy layer that sets them;
// that trust boundary belongs to the deployment, not this function.
func ClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		// Multiple comma-separated IPs: the first is the original client
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil && host != "" {
		return host
	}
	if c.Request.RemoteAddr != "" {
		return c.Request.RemoteAddr
	}
	return "unknown"
}

// RateLimit gates the route on the given limiter. Rejected requests get a
// 429 with Retry-After and X-RateLimit-* headers and never reach the
// handler, so the gate always precedes payload validation.
func RateLimit(limiter ratelimit.Limiter, keyFunc KeyFunc) gin.HandlerFunc {
	if keyFunc == nil {
		keyFunc = ClientIP
	}

	return func(c *gin.Context) {
		identity := keyFunc(c)

		res, err := limiter.Check(c.Request.Context(), identity)
		if err != nil {
			// Shared store unreachable: log and fail open rather than
			// blocking legitimate mail over an infra hiccup.
			logger.Log.Error("rate limit check failed", "identity", identity, "error", err)
			c.Next()
			return
		}

		if !res.Allowed {
			retryAfter := ratelimit.RetryAfterSeconds(res.ResetAt, time.Now())
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			c.Header("X-RateLimit-Reset", res.ResetAt.Format(time.RFC3339))

			logger.Log.Warn("rate limit exceeded", "identity", identity, "reset_at", res.ResetAt)
			response.RateLimited(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", retryAfter)
			c.Abort()
			return
		}

		c.Next()
	}
}
