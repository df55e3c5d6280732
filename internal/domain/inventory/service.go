// internal/domain/inventory/service.go
package inventory

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/pkg/apperror"
	"github.com/your-org/commerce-api/internal/pkg/metrics"
)

const DefaultMovementsLimit = 50

// Service handles inventory business logic
type Service struct {
	repo   Repository
	logger *logrus.Logger
}

// NewService creates a new inventory service
func NewService(repo Repository, logger *logrus.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// AdjustInventoryRequest represents a manual stock correction
type AdjustInventoryRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity"`
	Notes     *string `json:"notes"`
}

// AdjustInventoryResponse reports the stock level after the adjustment
type AdjustInventoryResponse struct {
	Success       bool `json:"success"`
	NewStockLevel int  `json:"new_stock_level"`
}

// ListMovementsRequest represents movement history query parameters
type ListMovementsRequest struct {
	ProductID    uint         `form:"product_id"`
	MovementType MovementType `form:"movement_type" binding:"omitempty,oneof=in out adjustment"`
	Limit        int          `form:"limit,default=50" binding:"min=0,max=500"`
	Offset       int          `form:"offset,default=0" binding:"min=0"`
}

// ListMovementsResponse is a page of movements plus the filter's total
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	Total     int64              `json:"total"`
}

// AdjustInventory adds a signed quantity to a product's stock
func (s *Service) AdjustInventory(ctx context.Context, req *AdjustInventoryRequest) (*AdjustInventoryResponse, error) {
	newLevel, err := s.repo.AdjustStock(ctx, req.ProductID, req.Quantity, req.Notes)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to adjust inventory")
	}

	metrics.StockAdjustments.WithLabelValues(string(MovementTypeAdjustment)).Inc()

	entry := s.logger.WithFields(logrus.Fields{
		"product_id":      req.ProductID,
		"delta":           req.Quantity,
		"new_stock_level": newLevel,
	})
	if newLevel < 0 {
		entry.Warn("Stock adjusted below zero")
	} else {
		entry.Info("Stock adjusted")
	}

	return &AdjustInventoryResponse{
		Success:       true,
		NewStockLevel: newLevel,
	}, nil
}

// ListMovements returns the ledger newest first
func (s *Service) ListMovements(ctx context.Context, req *ListMovementsRequest) (*ListMovementsResponse, error) {
	if req.MovementType != "" && !req.MovementType.IsValid() {
		return nil, apperror.Validation("movement_type must be one of in, out, adjustment")
	}
	if req.Limit <= 0 {
		req.Limit = DefaultMovementsLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	movements, err := s.repo.ListMovements(ctx, req)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list movements")
	}

	total, err := s.repo.CountMovements(ctx, req)
	if err != nil {
		return nil, apperror.Internal(err, "failed to count movements")
	}

	if movements == nil {
		movements = []MovementResponse{}
	}
	return &ListMovementsResponse{
		Movements: movements,
		Total:     total,
	}, nil
}
