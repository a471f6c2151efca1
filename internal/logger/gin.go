package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "requestID"
	loggerKey    = "logger"
)

// GinMiddleware assigns a request id, stores a request-scoped logger on the
// context and logs the completed request.
func (l *Logger) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		ctx := &RequestContext{
			RequestID:  requestID,
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			RemoteAddr: c.ClientIP(),
			StartTime:  time.Now(),
		}
		c.Set(loggerKey, l.WithRequest(ctx))
		l.LogRequest(ctx)

		c.Next()

		ctx.StatusCode = c.Writer.Status()
		l.LogResponse(ctx)
	}
}

// FromGin returns the request-scoped logger, or fallback when the middleware did not run.
func FromGin(c *gin.Context, fallback *Logger) *Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*Logger); ok {
			return l
		}
	}
	return fallback
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
