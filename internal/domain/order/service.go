// internal/domain/order/service.go
package order

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/domain/inventory"
	"github.com/your-org/commerce-api/internal/pkg/apperror"
	"github.com/your-org/commerce-api/internal/pkg/dateparam"
	"github.com/your-org/commerce-api/internal/pkg/metrics"
	"github.com/your-org/commerce-api/internal/pkg/pricing"
	"github.com/your-org/commerce-api/internal/pkg/reference"
)

const (
	DefaultListLimit  = 20
	orderNumberPrefix = "ORD"
)

// Service handles order business logic
type Service struct {
	repo    Repository
	pricing *pricing.Calculator
	logger  *logrus.Logger
}

// NewService creates a new order service
func NewService(repo Repository, calc *pricing.Calculator, logger *logrus.Logger) *Service {
	return &Service{
		repo:    repo,
		pricing: calc,
		logger:  logger,
	}
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	CustomerID      uint               `json:"customer_id" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress *string            `json:"delivery_address"`
	DeliveryDate    *string            `json:"delivery_date"`
	Notes           *string            `json:"notes"`
}

// ListOrdersRequest represents order list query parameters
type ListOrdersRequest struct {
	Status     OrderStatus `form:"status" binding:"omitempty,oneof=pending processing completed cancelled"`
	CustomerID uint        `form:"customer_id"`
	DateFrom   string      `form:"date_from"`
	DateTo     string      `form:"date_to"`
	Limit      int         `form:"limit,default=20" binding:"min=0,max=500"`
	Offset     int         `form:"offset,default=0" binding:"min=0"`
}

// ListOrdersResponse is a page of orders plus the filter's total
type ListOrdersResponse struct {
	Orders []OrderListItem `json:"orders"`
	Total  int64           `json:"total"`
}

// UpdateOrderStatusRequest represents a lifecycle transition
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=processing completed cancelled"`
}

// CreateOrder prices the requested items at their current final price, adds
// the platform fee and stores the order. Items are checked in request order
// and the first missing product or stock shortfall aborts the whole order.
func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, apperror.Validation("order must contain at least one item")
	}

	names := make(map[uint]string, len(req.Items))
	items := make([]OrderItem, 0, len(req.Items))
	subtotal := decimal.Zero

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperror.Validation("quantity for product %d must be positive", item.ProductID)
		}

		p, err := s.repo.GetActiveProduct(ctx, item.ProductID)
		if err != nil {
			return nil, apperror.Wrap(err, "failed to load product")
		}
		if p.StockQuantity < item.Quantity {
			return nil, apperror.Validation("Insufficient stock for product %s", p.Name)
		}

		lineTotal := s.pricing.LineTotal(p.FinalPrice, item.Quantity)
		subtotal = subtotal.Add(lineTotal)
		names[p.ID] = p.Name
		items = append(items, OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  p.FinalPrice,
			TotalPrice: lineTotal,
		})
	}

	fee, total := s.pricing.OrderTotals(subtotal)

	order := &Order{
		OrderNumber:     reference.New(orderNumberPrefix),
		CustomerID:      req.CustomerID,
		Status:          OrderStatusPending,
		Subtotal:        subtotal,
		PlatformFee:     fee,
		Total:           total,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	}

	if req.DeliveryDate != nil && *req.DeliveryDate != "" {
		date, err := dateparam.Parse(*req.DeliveryDate)
		if err != nil {
			return nil, apperror.Validation("delivery_date must be YYYY-MM-DD")
		}
		date = dateparam.Date(date)
		order.DeliveryDate = &date
	}

	if err := s.repo.CreateOrder(ctx, order, items); err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, apperror.Validation("Insufficient stock for product %s", names[stockErr.ProductID])
		}
		return nil, apperror.Internal(err, "Failed to create order")
	}

	metrics.OrdersCreated.Inc()
	metrics.StockAdjustments.WithLabelValues(string(inventory.MovementTypeOut)).Add(float64(len(items)))
	s.logger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"customer_id":  order.CustomerID,
		"items":        len(items),
		"total":        order.Total.String(),
	}).Info("Order created")

	return newOrderResponse(order, req.Items), nil
}

// ListOrders returns orders newest first with the customer's name
func (s *Service) ListOrders(ctx context.Context, req *ListOrdersRequest) (*ListOrdersResponse, error) {
	filter := &ListFilter{
		Status:     req.Status,
		CustomerID: req.CustomerID,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	from, err := dateparam.ParseOptional(req.DateFrom)
	if err != nil {
		return nil, apperror.Validation("date_from: %v", err)
	}
	filter.DateFrom = from

	if req.DateTo != "" {
		to, err := dateparam.ParseUpper(req.DateTo)
		if err != nil {
			return nil, apperror.Validation("date_to: %v", err)
		}
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, apperror.Validation("date_from must not be after date_to")
	}

	orders, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list orders")
	}

	total, err := s.repo.CountOrders(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err, "failed to count orders")
	}

	if orders == nil {
		orders = []OrderListItem{}
	}
	return &ListOrdersResponse{
		Orders: orders,
		Total:  total,
	}, nil
}

// GetOrder returns an order with its priced lines
func (s *Service) GetOrder(ctx context.Context, id uint) (*OrderDetail, error) {
	detail, err := s.repo.GetOrderDetail(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to get order")
	}
	return detail, nil
}

// UpdateOrderStatus applies a lifecycle transition:
// pending -> processing | cancelled, processing -> completed | cancelled.
func (s *Service) UpdateOrderStatus(ctx context.Context, id uint, req *UpdateOrderStatusRequest) (*OrderDetail, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to get order")
	}

	if !order.CanTransitionTo(req.Status) {
		return nil, apperror.Validation("invalid status transition from %s to %s", order.Status, req.Status)
	}

	if err := s.repo.TransitionStatus(ctx, order, req.Status); err != nil {
		var conflict *StatusConflictError
		if errors.As(err, &conflict) {
			return nil, apperror.Validation("order status changed, retry with the current status")
		}
		return nil, apperror.Internal(err, "failed to update order status")
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     order.Status,
		"to":       req.Status,
	}).Info("Order status changed")

	detail, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status == OrderStatusCancelled {
		metrics.StockAdjustments.WithLabelValues(string(inventory.MovementTypeIn)).Add(float64(len(detail.Items)))
	}
	return detail, nil
}
