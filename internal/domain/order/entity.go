// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/commerce-api/internal/pkg/dateparam"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order represents a customer order
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	CustomerID      uint            `gorm:"not null;index" json:"customer_id"`
	Status          OrderStatus     `gorm:"not null;size:20;default:'pending';index" json:"status"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	PlatformFee     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"platform_fee"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	DeliveryAddress *string         `gorm:"type:text" json:"delivery_address"`
	DeliveryDate    *time.Time      `gorm:"type:date" json:"delivery_date"`
	Notes           *string         `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is a priced line of an order, fixed at creation time
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	ProductID  uint            `gorm:"not null;index" json:"product_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// CanTransitionTo reports whether the lifecycle allows moving to next
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	switch o.Status {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	}
	return false
}

// OrderItemRequest is one requested line: a product and how many
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// OrderResponse is returned by order creation. Items echo the request.
type OrderResponse struct {
	ID              uint               `json:"id"`
	OrderNumber     string             `json:"order_number"`
	CustomerID      uint               `json:"customer_id"`
	Status          OrderStatus        `json:"status"`
	Subtotal        float64            `json:"subtotal"`
	PlatformFee     float64            `json:"platform_fee"`
	Total           float64            `json:"total"`
	DeliveryAddress *string            `json:"delivery_address"`
	DeliveryDate    *string            `json:"delivery_date"`
	Notes           *string            `json:"notes"`
	Items           []OrderItemRequest `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
}

// OrderListItem is one row of the order listing
type OrderListItem struct {
	ID           uint        `json:"id"`
	OrderNumber  string      `json:"order_number"`
	CustomerID   uint        `json:"customer_id"`
	CustomerName string      `json:"customer_name"`
	Status       OrderStatus `json:"status"`
	Total        float64     `json:"total"`
	CreatedAt    time.Time   `json:"created_at"`
}

// OrderItemDetail is a stored line with its product name
type OrderItemDetail struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// OrderDetail is a stored order with customer name and priced lines
type OrderDetail struct {
	ID              uint              `json:"id"`
	OrderNumber     string            `json:"order_number"`
	CustomerID      uint              `json:"customer_id"`
	CustomerName    string            `json:"customer_name"`
	Status          OrderStatus       `json:"status"`
	Subtotal        float64           `json:"subtotal"`
	PlatformFee     float64           `json:"platform_fee"`
	Total           float64           `json:"total"`
	DeliveryAddress *string           `json:"delivery_address"`
	DeliveryDate    *string           `json:"delivery_date"`
	Notes           *string           `json:"notes"`
	Items           []OrderItemDetail `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func newOrderResponse(o *Order, items []OrderItemRequest) *OrderResponse {
	return &OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		Status:          o.Status,
		Subtotal:        o.Subtotal.InexactFloat64(),
		PlatformFee:     o.PlatformFee.InexactFloat64(),
		Total:           o.Total.InexactFloat64(),
		DeliveryAddress: o.DeliveryAddress,
		DeliveryDate:    dateparam.Format(o.DeliveryDate),
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
	}
}
