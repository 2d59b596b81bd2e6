package handlers

import (
	"net/http"

	"lexdraft/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last probe results from the background monitor.
func HealthHandler(c *gin.Context) {
	snapshot := utils.GetHealthStatus()
	status := "ok"
	code := http.StatusOK
	if !snapshot.Healthy() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "dependencies": snapshot})
}
