package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juegoteca/backend/pkg/metrics"
)

// Metrics records per-request Prometheus counters and latency histograms,
// labelled by the matched route template (not the raw path, to keep
// cardinality bounded).
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
