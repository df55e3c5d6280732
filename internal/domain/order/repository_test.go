package order

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/commerce-api/internal/pkg/dbtest"
)

const decrementStockSQL = `UPDATE "products" SET "stock_quantity"=stock_quantity - $1 WHERE id = $2 AND stock_quantity >= $3`

func newOrderRows() (*Order, []OrderItem) {
	o := &Order{
		OrderNumber: "ORD-TEST",
		CustomerID:  7,
		Status:      OrderStatusPending,
		Subtotal:    decimal.RequireFromString("20.60"),
		PlatformFee: decimal.RequireFromString("0.62"),
		Total:       decimal.RequireFromString("21.22"),
	}
	items := []OrderItem{{
		ProductID:  3,
		Quantity:   2,
		UnitPrice:  decimal.RequireFromString("10.30"),
		TotalPrice: decimal.RequireFromString("20.60"),
	}}
	return o, items
}

func TestGormCreateOrder_Commits(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := NewRepository(db)
	o, items := newOrderRows()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).WillReturnRows(dbtest.IDRows(42))
	mock.ExpectQuery(`INSERT INTO "order_items"`).WillReturnRows(dbtest.IDRows(1))
	mock.ExpectExec(regexp.QuoteMeta(decrementStockSQL)).
		WithArgs(2, 3, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "inventory_movements"`).WillReturnRows(dbtest.IDRows(9))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateOrder(context.Background(), o, items))
	assert.Equal(t, uint(42), o.ID)
	assert.Equal(t, uint(42), items[0].OrderID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCreateOrder_InsufficientStockRollsBack(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := NewRepository(db)
	o, items := newOrderRows()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).WillReturnRows(dbtest.IDRows(42))
	mock.ExpectQuery(`INSERT INTO "order_items"`).WillReturnRows(dbtest.IDRows(1))
	mock.ExpectExec(regexp.QuoteMeta(decrementStockSQL)).
		WithArgs(2, 3, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CreateOrder(context.Background(), o, items)

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "got %v", err)
	assert.Equal(t, uint(3), stockErr.ProductID)
	// No movement insert and no commit were issued
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCreateOrder_ItemInsertFailureRollsBack(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := NewRepository(db)
	o, items := newOrderRows()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).WillReturnRows(dbtest.IDRows(42))
	mock.ExpectQuery(`INSERT INTO "order_items"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.CreateOrder(context.Background(), o, items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create order item")
	require.NoError(t, mock.ExpectationsWereMet())
}
