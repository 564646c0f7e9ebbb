package middleware

import (
	"strconv"
	"time"

	"stocktrade_backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request count and duration for every route.
// The route template (e.g. "/api/v1/products/:id") is used as the path label
// to keep cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
	}
}
