package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pranav-ms/uni-records-api/internal/service"
)

// Metrics records latency and status for every request. The route
// template is used as the path label so /classes/:id stays one series.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
