package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"poppi/utils"
)

// Health reports the last recorded dependency checks.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	if !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": status})
}
