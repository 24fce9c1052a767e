package middleware

import (
	"strconv"
	"time"

	"lumina-ledger/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Metrics counts requests per matched route and logs each one.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()

		zap.L().Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)))
	}
}
