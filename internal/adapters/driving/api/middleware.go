package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	headerRequestID = "X-Request-ID"
	ctxLoggerKey    = "logger"
)

// RequestLogger returns a middleware that:
//  1. Reads or generates a request ID and echoes it in X-Request-ID.
//  2. Stores a child logger with request metadata in the gin context.
//  3. Logs the completed request with status and latency.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}

		child := logger.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Logger()

		c.Header(headerRequestID, reqID)
		c.Set(ctxLoggerKey, child)

		c.Next()

		child.Info().
			Int("status", c.Writer.Status()).
			Float64("latency_ms", float64(time.Since(start).Microseconds())/1000).
			Msg("request completed")
	}
}

// requestLogger returns the logger stored by RequestLogger, or a disabled one.
func requestLogger(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(ctxLoggerKey); ok {
		if l, ok := v.(zerolog.Logger); ok {
			return &l
		}
	}
	l := zerolog.Nop()
	return &l
}

// RateLimit rejects requests above rps sustained with the given burst.
// A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			fail(c, http.StatusTooManyRequests, CodeRateLimited, "too many requests")
			return
		}
		c.Next()
	}
}

// CORS allows read access from any origin.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", headerRequestID},
		ExposeHeaders: []string{"Content-Length", headerRequestID},
		MaxAge:        12 * time.Hour,
	})
}
