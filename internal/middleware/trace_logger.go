package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"flightconnect/pkg/logger"
)

// TraceLogger writes one line per request with the trace and span IDs of the
// active otel span attached.
func TraceLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		spanCtx := trace.SpanFromContext(c.Request.Context()).SpanContext()
		if spanCtx.IsValid() {
			c.Set("trace_id", spanCtx.TraceID().String())
			c.Set("span_id", spanCtx.SpanID().String())
		}

		c.Next()

		fields := []logger.Field{
			{Key: "method", Value: c.Request.Method},
			{Key: "path", Value: c.FullPath()},
			{Key: "query", Value: c.Request.URL.RawQuery},
			{Key: "status", Value: c.Writer.Status()},
			{Key: "latency", Value: time.Since(start)},
			{Key: "request_id", Value: GetRequestID(c)},
		}
		if spanCtx.IsValid() {
			fields = append(fields,
				logger.Field{Key: "trace_id", Value: spanCtx.TraceID().String()},
				logger.Field{Key: "span_id", Value: spanCtx.SpanID().String()},
			)
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("request completed", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request completed", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
