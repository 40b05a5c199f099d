package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/postdigester/donation-backend/pkg/logger"
	"github.com/postdigester/donation-backend/pkg/metrics"
)

// RequestLogger logs one line per request and records request metrics.
// Routes are labelled by their registered pattern to keep label cardinality bounded.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())

		switch {
		case status >= 500:
			logger.Errorf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, elapsed)
		case status >= 400:
			logger.Warnf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, elapsed)
		default:
			logger.Infof("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, elapsed)
		}
	}
}
