// internal/domain/analytics/service.go
package analytics

import (
	"context"
	"time"

	"github.com/your-org/commerce-api/internal/pkg/apperror"
	"github.com/your-org/commerce-api/internal/pkg/dateparam"
)

const (
	periodLayout       = "2006-01-02"
	defaultStatsWindow = 30 * 24 * time.Hour
	dailySalesLimit    = 30
	topProductsLimit   = 10
	lowStockLimit      = 20
)

// GroupBy is the bucket width of the sales report
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
)

// Service handles dashboard and reporting logic
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new analytics service
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// StatsRequest represents dashboard stats query parameters
type StatsRequest struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// SalesReportRequest represents sales report query parameters
type SalesReportRequest struct {
	DateFrom string  `form:"date_from" binding:"required"`
	DateTo   string  `form:"date_to" binding:"required"`
	GroupBy  GroupBy `form:"group_by,default=day" binding:"omitempty,oneof=day week month"`
}

// DashboardStats represents overall dashboard statistics
type DashboardStats struct {
	// Sales metrics, within the requested range
	TotalSales  float64      `json:"total_sales"`
	TotalOrders int64        `json:"total_orders"`
	DailySales  []DailySales `json:"daily_sales"`
	TopProducts []TopProduct `json:"top_products"`

	// Lifetime counts
	TotalCustomers int64 `json:"total_customers"`
	TotalProducts  int64 `json:"total_products"`

	LowStockProducts []LowStockProduct `json:"low_stock_products"`
}

// DailySales is one day of the stats time series
type DailySales struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int64   `json:"orders"`
}

// TopProduct is a product ranked by revenue
type TopProduct struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	TotalSold   int64   `json:"total_sold"`
	Revenue     float64 `json:"revenue"`
}

// LowStockProduct is an active product at or below its minimum level
type LowStockProduct struct {
	ProductID     uint   `json:"product_id"`
	ProductName   string `json:"product_name"`
	CurrentStock  int    `json:"current_stock"`
	MinStockLevel int    `json:"min_stock_level"`
}

// SalesReportRow is one bucket of the sales report
type SalesReportRow struct {
	Period            string  `json:"period"`
	TotalSales        float64 `json:"total_sales"`
	TotalOrders       int64   `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
	PlatformFees      float64 `json:"platform_fees"`
	NetRevenue        float64 `json:"net_revenue"`
}

// SalesReportSummary totals the whole report range
type SalesReportSummary struct {
	TotalSales        float64 `json:"total_sales"`
	TotalOrders       int64   `json:"total_orders"`
	TotalPlatformFees float64 `json:"total_platform_fees"`
	TotalNetRevenue   float64 `json:"total_net_revenue"`
}

// SalesReport is the grouped report plus its summary
type SalesReport struct {
	Report  []SalesReportRow   `json:"report"`
	Summary SalesReportSummary `json:"summary"`
}

// GetStats returns dashboard statistics. The range defaults to the last 30
// days. Cancelled orders are not counted as sales.
func (s *Service) GetStats(ctx context.Context, req *StatsRequest) (*DashboardStats, error) {
	now := s.now()
	from := now.Add(-defaultStatsWindow)
	to := now

	if req.DateFrom != "" {
		parsed, err := dateparam.Parse(req.DateFrom)
		if err != nil {
			return nil, apperror.Validation("date_from: %v", err)
		}
		from = parsed
	}
	if req.DateTo != "" {
		parsed, err := dateparam.ParseUpper(req.DateTo)
		if err != nil {
			return nil, apperror.Validation("date_to: %v", err)
		}
		to = parsed
	}
	if from.After(to) {
		return nil, apperror.Validation("date_from must not be after date_to")
	}

	totals, err := s.repo.SalesTotals(ctx, from, to)
	if err != nil {
		return nil, apperror.Internal(err, "failed to get dashboard stats")
	}
	customers, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to get dashboard stats")
	}
	products, err := s.repo.CountActiveProducts(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to get dashboard stats")
	}
	daily, err := s.repo.DailySales(ctx, from, to, dailySalesLimit)
	if err != nil {
		return nil, apperror.Internal(err, "failed to get dashboard stats")
	}
	top, err := s.repo.TopProducts(ctx, from, to, topProductsLimit)
	if err != nil {
		return nil, apperror.Internal(err, "failed to get dashboard stats")
	}
	lowStock, err := s.repo.LowStockProducts(ctx, lowStockLimit)
	if err != nil {
		return nil, apperror.Internal(err, "failed to get dashboard stats")
	}

	return &DashboardStats{
		TotalSales:       totals.TotalSales,
		TotalOrders:      totals.TotalOrders,
		TotalCustomers:   customers,
		TotalProducts:    products,
		DailySales:       nonNil(daily),
		TopProducts:      nonNil(top),
		LowStockProducts: nonNil(lowStock),
	}, nil
}

// GetSalesReport buckets non-cancelled orders by day, week or month, newest first
func (s *Service) GetSalesReport(ctx context.Context, req *SalesReportRequest) (*SalesReport, error) {
	groupBy := req.GroupBy
	if groupBy == "" {
		groupBy = GroupByDay
	}
	if _, ok := periodExpressions[groupBy]; !ok {
		return nil, apperror.Validation("group_by must be one of day, week, month")
	}
	if req.DateFrom == "" || req.DateTo == "" {
		return nil, apperror.Validation("date_from and date_to are required")
	}

	from, err := dateparam.Parse(req.DateFrom)
	if err != nil {
		return nil, apperror.Validation("date_from: %v", err)
	}
	to, err := dateparam.ParseUpper(req.DateTo)
	if err != nil {
		return nil, apperror.Validation("date_to: %v", err)
	}
	if from.After(to) {
		return nil, apperror.Validation("date_from must not be after date_to")
	}

	rows, err := s.repo.SalesReport(ctx, from, to, groupBy)
	if err != nil {
		return nil, apperror.Internal(err, "failed to build sales report")
	}
	summary, err := s.repo.SalesSummary(ctx, from, to)
	if err != nil {
		return nil, apperror.Internal(err, "failed to build sales report")
	}

	return &SalesReport{
		Report:  nonNil(rows),
		Summary: *summary,
	}, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
