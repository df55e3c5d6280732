package order

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/commerce-api/internal/domain/inventory"
	"github.com/your-org/commerce-api/internal/domain/product"
	"github.com/your-org/commerce-api/internal/pkg/apperror"
)

// fakeRepository is an in-memory store whose CreateOrder and TransitionStatus
// are all-or-nothing, like the SQL transaction.
type fakeRepository struct {
	products  map[uint]*product.Product
	customers map[uint]string
	orders    []Order
	items     []OrderItem
	movements []inventory.Movement
	clock     time.Time

	// beforeCreate runs inside CreateOrder before stock is checked, to
	// simulate a concurrent writer.
	beforeCreate func()
	createErr    error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		products:  map[uint]*product.Product{},
		customers: map[uint]string{},
		clock:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepository) addProduct(id uint, name, finalPrice string, stock int) {
	f.products[id] = &product.Product{
		ID:            id,
		Name:          name,
		FinalPrice:    decimal.RequireFromString(finalPrice),
		StockQuantity: stock,
		IsActive:      true,
	}
}

func (f *fakeRepository) GetActiveProduct(_ context.Context, id uint) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok || !p.IsActive {
		return nil, apperror.NotFound("Product %d not found", id)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepository) CreateOrder(_ context.Context, o *Order, items []OrderItem) error {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	if f.createErr != nil {
		return f.createErr
	}

	stock := make(map[uint]int, len(f.products))
	for id, p := range f.products {
		stock[id] = p.StockQuantity
	}
	for _, item := range items {
		if stock[item.ProductID] < item.Quantity {
			return &InsufficientStockError{ProductID: item.ProductID}
		}
		stock[item.ProductID] -= item.Quantity
	}

	f.clock = f.clock.Add(time.Minute)
	o.ID = uint(len(f.orders) + 1)
	o.CreatedAt = f.clock
	o.UpdatedAt = f.clock
	f.orders = append(f.orders, *o)

	for i := range items {
		items[i].OrderID = o.ID
		items[i].ID = uint(len(f.items) + 1)
		f.items = append(f.items, items[i])
		f.movements = append(f.movements, *inventory.NewOrderMovement(items[i].ProductID, inventory.MovementTypeOut, items[i].Quantity, o.ID, inventory.ReferenceTypeOrder))
	}
	for id, level := range stock {
		f.products[id].StockQuantity = level
	}
	return nil
}

func (f *fakeRepository) matching(filter *ListFilter) []OrderListItem {
	var out []OrderListItem
	for _, o := range f.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.CustomerID > 0 && o.CustomerID != filter.CustomerID {
			continue
		}
		if filter.DateFrom != nil && o.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && o.CreatedAt.After(*filter.DateTo) {
			continue
		}
		name, ok := f.customers[o.CustomerID]
		if !ok {
			name = unknownCustomerName
		}
		out = append(out, OrderListItem{
			ID:           o.ID,
			OrderNumber:  o.OrderNumber,
			CustomerID:   o.CustomerID,
			CustomerName: name,
			Status:       o.Status,
			Total:        o.Total.InexactFloat64(),
			CreatedAt:    o.CreatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeRepository) ListOrders(_ context.Context, filter *ListFilter) ([]OrderListItem, error) {
	all := f.matching(filter)
	if filter.Offset >= len(all) {
		return nil, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], nil
}

func (f *fakeRepository) CountOrders(_ context.Context, filter *ListFilter) (int64, error) {
	return int64(len(f.matching(filter))), nil
}

func (f *fakeRepository) GetOrder(_ context.Context, id uint) (*Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			cp := f.orders[i]
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("Order not found")
}

func (f *fakeRepository) GetOrderDetail(ctx context.Context, id uint) (*OrderDetail, error) {
	o, err := f.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &OrderDetail{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		Status:      o.Status,
		Subtotal:    o.Subtotal.InexactFloat64(),
		PlatformFee: o.PlatformFee.InexactFloat64(),
		Total:       o.Total.InexactFloat64(),
		Items:       []OrderItemDetail{},
	}
	for _, item := range f.items {
		if item.OrderID != id {
			continue
		}
		detail.Items = append(detail.Items, OrderItemDetail{
			ProductID:   item.ProductID,
			ProductName: f.products[item.ProductID].Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.InexactFloat64(),
			TotalPrice:  item.TotalPrice.InexactFloat64(),
		})
	}
	return detail, nil
}

func (f *fakeRepository) TransitionStatus(_ context.Context, o *Order, next OrderStatus) error {
	for i := range f.orders {
		if f.orders[i].ID != o.ID {
			continue
		}
		if f.orders[i].Status != o.Status {
			return &StatusConflictError{OrderID: o.ID}
		}
		f.orders[i].Status = next
		if next == OrderStatusCancelled {
			for _, item := range f.items {
				if item.OrderID == o.ID {
					f.products[item.ProductID].StockQuantity += item.Quantity
					f.movements = append(f.movements, *inventory.NewOrderMovement(item.ProductID, inventory.MovementTypeIn, item.Quantity, o.ID, inventory.ReferenceTypeOrderCancellation))
				}
			}
		}
		return nil
	}
	return errors.New("order vanished")
}
