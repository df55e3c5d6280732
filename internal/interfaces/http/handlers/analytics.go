// internal/interfaces/http/handlers/analytics.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/domain/analytics"
)

// AnalyticsService is the reporting behaviour the dashboard needs
type AnalyticsService interface {
	GetStats(ctx context.Context, req *analytics.StatsRequest) (*analytics.DashboardStats, error)
	GetSalesReport(ctx context.Context, req *analytics.SalesReportRequest) (*analytics.SalesReport, error)
}

// AnalyticsHandler handles dashboard endpoints
type AnalyticsHandler struct {
	analyticsService AnalyticsService
	logger           *logrus.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(svc AnalyticsService, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: svc,
		logger:           logger,
	}
}

// GetStats handles GET /dashboard/stats
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	var req analytics.StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	stats, err := h.analyticsService.GetStats(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetSalesReport handles GET /dashboard/sales-report
func (h *AnalyticsHandler) GetSalesReport(c *gin.Context) {
	var req analytics.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	report, err := h.analyticsService.GetSalesReport(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
