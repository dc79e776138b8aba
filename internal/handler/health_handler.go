package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docintake/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	intakeService service.IntakeService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(intakeService service.IntakeService) *HealthHandler {
	return &HealthHandler{intakeService: intakeService}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The service is not ready until SmartSuite is fully configured.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if missing := h.intakeService.MissingConfig(); len(missing) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "missing": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
