package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mystocktax/backend/internal/metrics"
)

// metricsMiddleware records request counts and latency per route template.
// c.FullPath() keeps the cardinality bounded: "/api/stock/:metric/check"
// rather than one series per ticker.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
