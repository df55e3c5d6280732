// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/domain/inventory"
)

// InventoryService is the stock behaviour the inventory endpoints need
type InventoryService interface {
	AdjustInventory(ctx context.Context, req *inventory.AdjustInventoryRequest) (*inventory.AdjustInventoryResponse, error)
	ListMovements(ctx context.Context, req *inventory.ListMovementsRequest) (*inventory.ListMovementsResponse, error)
}

// InventoryHandler handles inventory endpoints
type InventoryHandler struct {
	inventoryService InventoryService
	logger           *logrus.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(svc InventoryService, logger *logrus.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: svc,
		logger:           logger,
	}
}

// AdjustInventory handles POST /inventory/adjust
func (h *InventoryHandler) AdjustInventory(c *gin.Context) {
	var req inventory.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.inventoryService.AdjustInventory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMovements handles GET /inventory/movements
func (h *InventoryHandler) GetMovements(c *gin.Context) {
	var req inventory.ListMovementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.inventoryService.ListMovements(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
