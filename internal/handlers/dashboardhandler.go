package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/services"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard}
}

// Overview is the GET /dashboard endpoint
func (h *DashboardHandler) Overview(c *gin.Context) {
	data, err := h.Dashboard.Overview(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to fetch dashboard data")
		return
	}
	c.JSON(http.StatusOK, data)
}
