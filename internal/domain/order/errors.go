// internal/domain/order/errors.go
package order

import "fmt"

// InsufficientStockError is returned by the repository when a conditional
// stock decrement matched no row.
type InsufficientStockError struct {
	ProductID uint
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// StatusConflictError is returned when the order's status changed between
// read and update.
type StatusConflictError struct {
	OrderID uint
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("order %d status changed concurrently", e.OrderID)
}
