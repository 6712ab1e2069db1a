package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ledgerline/internal/metrics"
)

// Metrics returns a Gin middleware that records request counts and latency.
// Routes are labelled by their pattern so ids don't explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
