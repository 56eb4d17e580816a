package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware assigns each request a UUID, available to
// downstream handlers and echoed in the X-Request-ID header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// MonitoringMiddleware records per-request metrics and an access log line.
func MonitoringMiddleware(logger *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		ip := c.ClientIP()
		userAgent := c.GetHeader("User-Agent")
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		// FullPath keeps parameterized routes as one metric series;
		// unmatched routes fall back to the raw path.
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		RecordHTTPRequest(endpoint, method, strconv.Itoa(statusCode), float64(duration.Milliseconds()))
		logger.RequestLogger(method, c.Request.URL.Path, ip, userAgent, statusCode, duration)

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				logger.APIErrorLogger(err.Err, method, c.Request.URL.Path, ip, statusCode)
			}
		}

		if duration > 30*time.Second {
			logger.SystemLogger("slow_request", method+" "+c.Request.URL.Path)
		}
	}
}
