package logger

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// HeaderRequestID is echoed back on every response
	HeaderRequestID = "X-Request-Id"
	// ContextRequestID is the gin context key holding the request id
	ContextRequestID = "request_id"
)

// MiddlewareConfig tunes the request logging middleware.
type MiddlewareConfig struct {
	// SkipPaths are not logged, e.g. /health and /metrics
	SkipPaths []string
}

// GinMiddleware assigns a request id, attaches a request-scoped logger to the
// request context and logs one line per request.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), requestID))

		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		if _, ok := skip[path]; ok {
			return
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}

		log := FromContext(c.Request.Context())
		if len(c.Errors) > 0 {
			log.Error("request failed", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		if c.Writer.Status() >= 500 {
			log.Error("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}
