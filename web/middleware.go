package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

const sessionCookie = "session_id"

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SessionMiddleware gives every browser a session id cookie. The form state
// is keyed by it. Anything that is not a UUID is replaced.
func SessionMiddleware(c rweb.Context) error {
	sessionID, err := c.GetCookie(sessionCookie)
	if err != nil || !validSessionID(sessionID) {
		sessionID = uuid.New().String()
		if err := c.SetCookie(sessionCookie, sessionID); err != nil {
			logger.LogErr(err, "failed to set session cookie")
		}
	}

	c.Set("session_id", sessionID)
	return c.Next()
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// Inline handlers on the form inputs need 'unsafe-inline'
	csp := []string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"connect-src 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// RateLimitMiddleware allows requestsPerMinute per client in a fixed
// one-minute window. Clients are told apart by forwarded address, else by
// session. A limited request gets 429 and is then passed to limited, which
// may write a body; limited may be nil.
func RateLimitMiddleware(requestsPerMinute int, limited rweb.Handler) rweb.Handler {
	visitors := cache.New(time.Minute, 2*time.Minute)

	return func(c rweb.Context) error {
		if rateLimitExempt(c.Request().Path()) {
			return c.Next()
		}
		key := clientKey(c)

		// Add only succeeds for the first request of a window
		if err := visitors.Add(key, 1, cache.DefaultExpiration); err != nil {
			count, err := visitors.IncrementInt(key, 1)
			if err == nil && count > requestsPerMinute {
				logger.Info("Rate limit exceeded", "client", key, "path", c.Request().Path())
				c.SetStatus(http.StatusTooManyRequests)
				if limited != nil {
					return limited(c)
				}
				return nil
			}
		}

		return c.Next()
	}
}

// Assets, health checks and the receiving endpoint are never limited. The
// server posts to its own receiving endpoint when submit_url points at it.
func rateLimitExempt(path string) bool {
	switch {
	case strings.HasPrefix(path, "/static/"),
		path == "/favicon.ico",
		path == "/health",
		path == "/api/v1/submissions":
		return true
	}
	return false
}

func clientKey(c rweb.Context) string {
	if ip := clientIP(c); ip != "" {
		return "ip:" + ip
	}
	if id, _ := c.Get("session_id").(string); id != "" {
		return "session:" + id
	}
	return "unknown"
}

func clientIP(c rweb.Context) string {
	ip := c.Request().Header("X-Forwarded-For")
	if i := strings.IndexByte(ip, ','); i >= 0 {
		ip = ip[:i]
	}
	if ip == "" {
		ip = c.Request().Header("X-Real-IP")
	}
	return strings.TrimSpace(ip)
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"ip", c.Request().Header("X-Forwarded-For"),
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}
