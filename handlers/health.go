package handlers

import (
	"errors"
	"net/http"

	"taskhive/utils"

	"github.com/gin-gonic/gin"
)

var errMediaUnconfigured = errors.New("media storage is not configured")

// HealthReporter exposes the latest dependency snapshot.
type HealthReporter interface {
	Status() utils.HealthStatus
}

// HealthHandler handles GET /health. Without a reporter the process only
// vouches for itself.
func HealthHandler(reporter HealthReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reporter == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		status := reporter.Status()
		code, label := http.StatusOK, "ok"
		if !status.Healthy() {
			code, label = http.StatusServiceUnavailable, "degraded"
		}
		c.JSON(code, gin.H{"status": label, "dependencies": status})
	}
}
