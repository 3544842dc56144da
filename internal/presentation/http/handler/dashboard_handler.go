package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/latia/admin-api/internal/application/service"
	"github.com/latia/admin-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles the aggregated stats endpoint
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles retrieving the dashboard aggregates
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
