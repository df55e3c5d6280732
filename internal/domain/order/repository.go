// internal/domain/order/repository.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/commerce-api/internal/domain/inventory"
	"github.com/your-org/commerce-api/internal/domain/product"
	"github.com/your-org/commerce-api/internal/pkg/apperror"
	"github.com/your-org/commerce-api/internal/pkg/dateparam"
	"gorm.io/gorm"
)

const unknownCustomerName = "Unknown Customer"

// ListFilter is the parsed form of ListOrdersRequest
type ListFilter struct {
	Status     OrderStatus
	CustomerID uint
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

// Repository is the order's view of the data store
type Repository interface {
	GetActiveProduct(ctx context.Context, id uint) (*product.Product, error)
	CreateOrder(ctx context.Context, o *Order, items []OrderItem) error
	ListOrders(ctx context.Context, filter *ListFilter) ([]OrderListItem, error)
	CountOrders(ctx context.Context, filter *ListFilter) (int64, error)
	GetOrder(ctx context.Context, id uint) (*Order, error)
	GetOrderDetail(ctx context.Context, id uint) (*OrderDetail, error)
	TransitionStatus(ctx context.Context, o *Order, next OrderStatus) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed order repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetActiveProduct(ctx context.Context, id uint) (*product.Product, error) {
	var p product.Product
	err := r.db.WithContext(ctx).
		Select("id", "name", "final_price", "stock_quantity").
		Where("id = ? AND is_active = ?", id, true).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Product %d not found", id)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// CreateOrder inserts the order, its items and one "out" movement per item in
// a single transaction. Stock is decremented only where enough remains; a
// shortfall rolls everything back with *InsufficientStockError.
func (r *gormRepository) CreateOrder(ctx context.Context, o *Order, items []OrderItem) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	if err := tx.Create(o).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].OrderID = o.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create order item: %w", err)
		}

		result := tx.Model(&product.Product{}).
			Where("id = ? AND stock_quantity >= ?", items[i].ProductID, items[i].Quantity).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", items[i].Quantity))
		if result.Error != nil {
			tx.Rollback()
			return fmt.Errorf("failed to decrement stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return &InsufficientStockError{ProductID: items[i].ProductID}
		}

		movement := inventory.NewOrderMovement(items[i].ProductID, inventory.MovementTypeOut, items[i].Quantity, o.ID, inventory.ReferenceTypeOrder)
		if err := tx.Create(movement).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record movement: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}
	return nil
}

func (r *gormRepository) filtered(ctx context.Context, filter *ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("orders AS o").
		Joins("LEFT JOIN customers c ON c.id = o.customer_id")

	if filter.Status != "" {
		query = query.Where("o.status = ?", filter.Status)
	}
	if filter.CustomerID > 0 {
		query = query.Where("o.customer_id = ?", filter.CustomerID)
	}
	if filter.DateFrom != nil {
		query = query.Where("o.created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("o.created_at <= ?", *filter.DateTo)
	}
	return query
}

type orderListRow struct {
	ID           uint
	OrderNumber  string
	CustomerID   uint
	CustomerName string
	Status       OrderStatus
	Total        decimal.Decimal
	CreatedAt    time.Time
}

func (r *gormRepository) ListOrders(ctx context.Context, filter *ListFilter) ([]OrderListItem, error) {
	var rows []orderListRow
	err := r.filtered(ctx, filter).
		Select("o.id, o.order_number, o.customer_id, COALESCE(c.name, ?) AS customer_name, o.status, o.total, o.created_at", unknownCustomerName).
		Order("o.created_at DESC, o.id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]OrderListItem, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, OrderListItem{
			ID:           row.ID,
			OrderNumber:  row.OrderNumber,
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			Status:       row.Status,
			Total:        row.Total.InexactFloat64(),
			CreatedAt:    row.CreatedAt,
		})
	}
	return orders, nil
}

func (r *gormRepository) CountOrders(ctx context.Context, filter *ListFilter) (int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}

func (r *gormRepository) GetOrder(ctx context.Context, id uint) (*Order, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

type orderItemRow struct {
	ProductID   uint
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

func (r *gormRepository) GetOrderDetail(ctx context.Context, id uint) (*OrderDetail, error) {
	o, err := r.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	var customerName string
	err = r.db.WithContext(ctx).
		Raw("SELECT COALESCE((SELECT name FROM customers WHERE id = ?), ?)", o.CustomerID, unknownCustomerName).
		Scan(&customerName).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get customer name: %w", err)
	}

	var rows []orderItemRow
	err = r.db.WithContext(ctx).
		Table("order_items AS oi").
		Joins("JOIN products p ON p.id = oi.product_id").
		Select("oi.product_id, p.name AS product_name, oi.quantity, oi.unit_price, oi.total_price").
		Where("oi.order_id = ?", o.ID).
		Order("oi.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	items := make([]OrderItemDetail, 0, len(rows))
	for _, row := range rows {
		items = append(items, OrderItemDetail{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice.InexactFloat64(),
			TotalPrice:  row.TotalPrice.InexactFloat64(),
		})
	}

	return &OrderDetail{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		CustomerName:    customerName,
		Status:          o.Status,
		Subtotal:        o.Subtotal.InexactFloat64(),
		PlatformFee:     o.PlatformFee.InexactFloat64(),
		Total:           o.Total.InexactFloat64(),
		DeliveryAddress: o.DeliveryAddress,
		DeliveryDate:    dateparam.Format(o.DeliveryDate),
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}, nil
}

// TransitionStatus moves o to next only if its stored status is still
// o.Status. Cancelling returns every line's quantity to stock with an "in"
// movement, in the same transaction.
func (r *gormRepository) TransitionStatus(ctx context.Context, o *Order, next OrderStatus) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	result := tx.Model(&Order{}).
		Where("id = ? AND status = ?", o.ID, o.Status).
		Updates(map[string]interface{}{
			"status":     next,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return &StatusConflictError{OrderID: o.ID}
	}

	if next == OrderStatusCancelled {
		if err := r.restoreStock(tx, o.ID); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit status change: %w", err)
	}
	return nil
}

func (r *gormRepository) restoreStock(tx *gorm.DB, orderID uint) error {
	var items []OrderItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return fmt.Errorf("failed to get order items: %w", err)
	}

	for _, item := range items {
		err := tx.Model(&product.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error
		if err != nil {
			return fmt.Errorf("failed to restore stock: %w", err)
		}

		movement := inventory.NewOrderMovement(item.ProductID, inventory.MovementTypeIn, item.Quantity, orderID, inventory.ReferenceTypeOrderCancellation)
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record movement: %w", err)
		}
	}
	return nil
}
