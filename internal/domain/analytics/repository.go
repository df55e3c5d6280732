// internal/domain/analytics/repository.go
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository runs the aggregate queries behind the dashboard
type Repository interface {
	SalesTotals(ctx context.Context, from, to time.Time) (*SalesTotals, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountActiveProducts(ctx context.Context) (int64, error)
	DailySales(ctx context.Context, from, to time.Time, limit int) ([]DailySales, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
	LowStockProducts(ctx context.Context, limit int) ([]LowStockProduct, error)
	SalesReport(ctx context.Context, from, to time.Time, groupBy GroupBy) ([]SalesReportRow, error)
	SalesSummary(ctx context.Context, from, to time.Time) (*SalesReportSummary, error)
}

// SalesTotals is the order count and revenue over a range
type SalesTotals struct {
	TotalSales  float64
	TotalOrders int64
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed analytics repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// periodExpressions whitelists the bucket expression per grouping. Every
// bucket is a date so its label does not depend on the client's time zone.
var periodExpressions = map[GroupBy]string{
	GroupByDay:   "DATE(created_at)",
	GroupByWeek:  "DATE_TRUNC('week', created_at)::date",
	GroupByMonth: "DATE_TRUNC('month', created_at)::date",
}

func (r *gormRepository) SalesTotals(ctx context.Context, from, to time.Time) (*SalesTotals, error) {
	var row struct {
		TotalSales  decimal.Decimal
		TotalOrders int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0) AS total_sales, COUNT(*) AS total_orders
		FROM orders
		WHERE created_at >= ? AND created_at <= ? AND status != 'cancelled'`,
		from, to,
	).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sales totals: %w", err)
	}
	return &SalesTotals{
		TotalSales:  row.TotalSales.InexactFloat64(),
		TotalOrders: row.TotalOrders,
	}, nil
}

func (r *gormRepository) CountCustomers(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Table("customers").Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return total, nil
}

func (r *gormRepository) CountActiveProducts(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Table("products").Where("is_active = ?", true).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (r *gormRepository) DailySales(ctx context.Context, from, to time.Time, limit int) ([]DailySales, error) {
	var rows []struct {
		Date   time.Time
		Sales  decimal.Decimal
		Orders int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT DATE(created_at) AS date, COALESCE(SUM(total), 0) AS sales, COUNT(*) AS orders
		FROM orders
		WHERE created_at >= ? AND created_at <= ? AND status != 'cancelled'
		GROUP BY DATE(created_at)
		ORDER BY date DESC
		LIMIT ?`,
		from, to, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily sales: %w", err)
	}

	out := make([]DailySales, 0, len(rows))
	for _, row := range rows {
		out = append(out, DailySales{
			Date:   row.Date.UTC().Format(periodLayout),
			Sales:  row.Sales.InexactFloat64(),
			Orders: row.Orders,
		})
	}
	return out, nil
}

func (r *gormRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error) {
	var rows []struct {
		ProductID   uint
		ProductName string
		TotalSold   int64
		Revenue     decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.name AS product_name,
		       SUM(oi.quantity) AS total_sold, SUM(oi.total_price) AS revenue
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.created_at >= ? AND o.created_at <= ? AND o.status != 'cancelled'
		GROUP BY p.id, p.name
		ORDER BY revenue DESC
		LIMIT ?`,
		from, to, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get top products: %w", err)
	}

	out := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, TopProduct{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			TotalSold:   row.TotalSold,
			Revenue:     row.Revenue.InexactFloat64(),
		})
	}
	return out, nil
}

func (r *gormRepository) LowStockProducts(ctx context.Context, limit int) ([]LowStockProduct, error) {
	var out []LowStockProduct
	err := r.db.WithContext(ctx).Raw(`
		SELECT id AS product_id, name AS product_name,
		       stock_quantity AS current_stock, min_stock_level
		FROM products
		WHERE is_active = TRUE AND stock_quantity <= min_stock_level
		ORDER BY stock_quantity ASC
		LIMIT ?`,
		limit,
	).Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock products: %w", err)
	}
	return out, nil
}

func (r *gormRepository) SalesReport(ctx context.Context, from, to time.Time, groupBy GroupBy) ([]SalesReportRow, error) {
	period, ok := periodExpressions[groupBy]
	if !ok {
		return nil, fmt.Errorf("unsupported grouping %q", groupBy)
	}

	var rows []struct {
		Period            time.Time
		TotalSales        decimal.Decimal
		TotalOrders       int64
		AverageOrderValue decimal.Decimal
		PlatformFees      decimal.Decimal
		NetRevenue        decimal.Decimal
	}
	query := fmt.Sprintf(`
		SELECT %[1]s AS period,
		       COALESCE(SUM(total), 0) AS total_sales,
		       COUNT(*) AS total_orders,
		       COALESCE(AVG(total), 0) AS average_order_value,
		       COALESCE(SUM(platform_fee), 0) AS platform_fees,
		       COALESCE(SUM(subtotal), 0) AS net_revenue
		FROM orders
		WHERE created_at >= ? AND created_at <= ? AND status != 'cancelled'
		GROUP BY %[1]s
		ORDER BY period DESC`, period)

	if err := r.db.WithContext(ctx).Raw(query, from, to).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get sales report: %w", err)
	}

	out := make([]SalesReportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, SalesReportRow{
			Period:            row.Period.UTC().Format(periodLayout),
			TotalSales:        row.TotalSales.InexactFloat64(),
			TotalOrders:       row.TotalOrders,
			AverageOrderValue: row.AverageOrderValue.Round(2).InexactFloat64(),
			PlatformFees:      row.PlatformFees.InexactFloat64(),
			NetRevenue:        row.NetRevenue.InexactFloat64(),
		})
	}
	return out, nil
}

func (r *gormRepository) SalesSummary(ctx context.Context, from, to time.Time) (*SalesReportSummary, error) {
	var row struct {
		TotalSales        decimal.Decimal
		TotalOrders       int64
		TotalPlatformFees decimal.Decimal
		TotalNetRevenue   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0) AS total_sales,
		       COUNT(*) AS total_orders,
		       COALESCE(SUM(platform_fee), 0) AS total_platform_fees,
		       COALESCE(SUM(subtotal), 0) AS total_net_revenue
		FROM orders
		WHERE created_at >= ? AND created_at <= ? AND status != 'cancelled'`,
		from, to,
	).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sales summary: %w", err)
	}
	return &SalesReportSummary{
		TotalSales:        row.TotalSales.InexactFloat64(),
		TotalOrders:       row.TotalOrders,
		TotalPlatformFees: row.TotalPlatformFees.InexactFloat64(),
		TotalNetRevenue:   row.TotalNetRevenue.InexactFloat64(),
	}, nil
}
