package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orris-inc/momogate/internal/shared/logger"
)

const RequestIDHeader = "X-Request-ID"

// Logger tags every request with a request id, echoing the caller's when it
// sent one, and logs the outcome once the handler returns. Server errors log
// at Error, client errors at Warn and everything else at Debug.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Set("request_id", requestID)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		reqLog := log.With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			reqLog = reqLog.With("error", c.Errors.String())
		}

		switch {
		case status >= 500:
			reqLog.Errorw("HTTP request failed")
		case status >= 400:
			reqLog.Warnw("HTTP request refused")
		default:
			reqLog.Debugw("HTTP request served")
		}
	}
}
