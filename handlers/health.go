// File: handlers/health.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotsmith/utils"
)

// HealthHandler reports dependency health for load balancers and monitors.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo || !status.Redis {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
