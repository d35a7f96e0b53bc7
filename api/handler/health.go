package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dredding8/malibu-ui-private/models"
)

// Health returns a handler for GET /api/v1/health.
//
// Reports "busy" while any audit holds a browser; mapping requests are
// snapshot-based and never affect this.
func Health(runs *Runs, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		active := runs.Active()

		status := "healthy"
		if active > 0 {
			status = "busy"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:     status,
			Uptime:     time.Since(startTime).Round(time.Second).String(),
			Version:    "0.1.0",
			ActiveRuns: active,
		})
	}
}
