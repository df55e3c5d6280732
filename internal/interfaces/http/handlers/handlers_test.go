package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/your-org/commerce-api/internal/domain/analytics"
	"github.com/your-org/commerce-api/internal/domain/inventory"
	"github.com/your-org/commerce-api/internal/domain/order"
	"github.com/your-org/commerce-api/internal/domain/product"
	"github.com/your-org/commerce-api/internal/pkg/apperror"
	"github.com/your-org/commerce-api/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) ListProducts(ctx context.Context, req *product.ListProductsRequest) (*product.ListProductsResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*product.ListProductsResponse)
	return resp, args.Error(1)
}

func (m *mockProductService) GetProduct(ctx context.Context, id uint) (*product.ProductResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*product.ProductResponse)
	return resp, args.Error(1)
}

func (m *mockProductService) SearchProducts(ctx context.Context, req *product.SearchProductsRequest) (*product.SearchProductsResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*product.SearchProductsResponse)
	return resp, args.Error(1)
}

func (m *mockProductService) CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.ProductResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*product.ProductResponse)
	return resp, args.Error(1)
}

func productRouter(svc ProductService) *gin.Engine {
	h := NewProductHandler(svc, logger.Discard())
	r := gin.New()
	r.GET("/products", h.GetProducts)
	r.GET("/products/search", h.SearchProducts)
	r.GET("/products/:id", h.GetProduct)
	r.POST("/products", h.CreateProduct)
	return r
}

func TestProductHandler_GetProducts(t *testing.T) {
	svc := &mockProductService{}
	svc.On("ListProducts", mock.Anything, mock.MatchedBy(func(req *product.ListProductsRequest) bool {
		return req.CategoryID == 2 && req.Search == "cafe" && req.IsCombo != nil && *req.IsCombo &&
			req.Limit == 5 && req.Offset == 10
	})).Return(&product.ListProductsResponse{
		Products: []product.ProductResponse{{ID: 1, Name: "Cafe"}},
		Total:    11,
	}, nil)

	w := perform(productRouter(svc), http.MethodGet, "/products?category_id=2&search=cafe&is_combo=true&limit=5&offset=10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(11), body["total"])
	assert.Len(t, body["products"], 1)
	svc.AssertExpectations(t)
}

func TestProductHandler_GetProductsDefaultLimit(t *testing.T) {
	svc := &mockProductService{}
	svc.On("ListProducts", mock.Anything, mock.MatchedBy(func(req *product.ListProductsRequest) bool {
		return req.Limit == 20 && req.Offset == 0 && req.IsCombo == nil
	})).Return(&product.ListProductsResponse{Products: []product.ProductResponse{}}, nil)

	w := perform(productRouter(svc), http.MethodGet, "/products", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestProductHandler_GetProduct(t *testing.T) {
	svc := &mockProductService{}
	svc.On("GetProduct", mock.Anything, uint(7)).Return(&product.ProductResponse{ID: 7, Name: "Te"}, nil)
	svc.On("GetProduct", mock.Anything, uint(8)).Return(nil, apperror.NotFound("Product not found"))
	r := productRouter(svc)

	w := perform(r, http.MethodGet, "/products/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Te", decode(t, w)["name"])

	w = perform(r, http.MethodGet, "/products/8", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decode(t, w)["error"])

	w = perform(r, http.MethodGet, "/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_SearchRequiresQuery(t *testing.T) {
	svc := &mockProductService{}
	r := productRouter(svc)

	w := perform(r, http.MethodGet, "/products/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SearchProducts", mock.Anything, mock.Anything)

	svc.On("SearchProducts", mock.Anything, mock.MatchedBy(func(req *product.SearchProductsRequest) bool {
		return req.Query == "pan" && req.Limit == 10
	})).Return(&product.SearchProductsResponse{Products: []product.ProductResponse{}}, nil)

	w = perform(r, http.MethodGet, "/products/search?query=pan", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestProductHandler_CreateProduct(t *testing.T) {
	svc := &mockProductService{}
	svc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(req *product.CreateProductRequest) bool {
		return req.Name == "Cafe" && req.BasePrice == 100 && req.CategoryID == 1
	})).Return(&product.ProductResponse{ID: 3, Name: "Cafe", BasePrice: 100, FinalPrice: 103}, nil)
	r := productRouter(svc)

	w := perform(r, http.MethodPost, "/products", map[string]interface{}{
		"name":        "Cafe",
		"category_id": 1,
		"base_price":  100,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(103), decode(t, w)["final_price"])

	w = perform(r, http.MethodPost, "/products", map[string]interface{}{"category_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) CreateOrder(ctx context.Context, req *order.CreateOrderRequest) (*order.OrderResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*order.OrderResponse)
	return resp, args.Error(1)
}

func (m *mockOrderService) ListOrders(ctx context.Context, req *order.ListOrdersRequest) (*order.ListOrdersResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*order.ListOrdersResponse)
	return resp, args.Error(1)
}

func (m *mockOrderService) GetOrder(ctx context.Context, id uint) (*order.OrderDetail, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*order.OrderDetail)
	return resp, args.Error(1)
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, id uint, req *order.UpdateOrderStatusRequest) (*order.OrderDetail, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*order.OrderDetail)
	return resp, args.Error(1)
}

func orderRouter(svc OrderService) *gin.Engine {
	h := NewOrderHandler(svc, logger.Discard())
	r := gin.New()
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders", h.GetOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.PUT("/orders/:id/status", h.UpdateOrderStatus)
	return r
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	svc := &mockOrderService{}
	svc.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *order.CreateOrderRequest) bool {
		return req.CustomerID == 4 && len(req.Items) == 1 && req.Items[0].Quantity == 2
	})).Return(&order.OrderResponse{
		ID:          1,
		OrderNumber: "ORD-1-abc",
		Subtotal:    200,
		PlatformFee: 6,
		Total:       206,
		Items:       []order.OrderItemRequest{{ProductID: 9, Quantity: 2}},
	}, nil)
	r := orderRouter(svc)

	w := perform(r, http.MethodPost, "/orders", map[string]interface{}{
		"customer_id": 4,
		"items":       []map[string]interface{}{{"product_id": 9, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(206), body["total"])
	assert.Equal(t, "ORD-1-abc", body["order_number"])
	svc.AssertExpectations(t)
}

func TestOrderHandler_CreateOrderValidation(t *testing.T) {
	svc := &mockOrderService{}
	r := orderRouter(svc)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "no items", body: map[string]interface{}{"customer_id": 4, "items": []interface{}{}}},
		{name: "zero quantity", body: map[string]interface{}{"customer_id": 4, "items": []map[string]interface{}{{"product_id": 9, "quantity": 0}}}},
		{name: "no customer", body: map[string]interface{}{"items": []map[string]interface{}{{"product_id": 9, "quantity": 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodPost, "/orders", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrderHandler_CreateOrderInsufficientStock(t *testing.T) {
	svc := &mockOrderService{}
	svc.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, apperror.Validation("Insufficient stock for product Cafe"))

	w := perform(orderRouter(svc), http.MethodPost, "/orders", map[string]interface{}{
		"customer_id": 4,
		"items":       []map[string]interface{}{{"product_id": 9, "quantity": 50}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Insufficient stock for product Cafe", decode(t, w)["error"])
}

func TestOrderHandler_InternalErrorIsHidden(t *testing.T) {
	svc := &mockOrderService{}
	svc.On("ListOrders", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	w := perform(orderRouter(svc), http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w)["error"])
}

func TestOrderHandler_GetOrdersFilters(t *testing.T) {
	svc := &mockOrderService{}
	svc.On("ListOrders", mock.Anything, mock.MatchedBy(func(req *order.ListOrdersRequest) bool {
		return req.Status == order.OrderStatusPending && req.CustomerID == 3 &&
			req.DateFrom == "2024-01-01" && req.DateTo == "2024-01-31" && req.Limit == 20
	})).Return(&order.ListOrdersResponse{Orders: []order.OrderListItem{}, Total: 0}, nil)
	r := orderRouter(svc)

	w := perform(r, http.MethodGet, "/orders?status=pending&customer_id=3&date_from=2024-01-01&date_to=2024-01-31", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/orders?status=shipped", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	svc := &mockOrderService{}
	svc.On("UpdateOrderStatus", mock.Anything, uint(5), &order.UpdateOrderStatusRequest{Status: order.OrderStatusCancelled}).
		Return(&order.OrderDetail{ID: 5, Status: order.OrderStatusCancelled}, nil)
	r := orderRouter(svc)

	w := perform(r, http.MethodPut, "/orders/5/status", map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", decode(t, w)["status"])

	w = perform(r, http.MethodPut, "/orders/5/status", map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type mockInventoryService struct {
	mock.Mock
}

func (m *mockInventoryService) AdjustInventory(ctx context.Context, req *inventory.AdjustInventoryRequest) (*inventory.AdjustInventoryResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*inventory.AdjustInventoryResponse)
	return resp, args.Error(1)
}

func (m *mockInventoryService) ListMovements(ctx context.Context, req *inventory.ListMovementsRequest) (*inventory.ListMovementsResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*inventory.ListMovementsResponse)
	return resp, args.Error(1)
}

func TestInventoryHandler(t *testing.T) {
	svc := &mockInventoryService{}
	h := NewInventoryHandler(svc, logger.Discard())
	r := gin.New()
	r.POST("/inventory/adjust", h.AdjustInventory)
	r.GET("/inventory/movements", h.GetMovements)

	svc.On("AdjustInventory", mock.Anything, mock.MatchedBy(func(req *inventory.AdjustInventoryRequest) bool {
		return req.ProductID == 2 && req.Quantity == -5
	})).Return(&inventory.AdjustInventoryResponse{Success: true, NewStockLevel: 10}, nil)
	svc.On("ListMovements", mock.Anything, mock.MatchedBy(func(req *inventory.ListMovementsRequest) bool {
		return req.ProductID == 2 && req.MovementType == inventory.MovementTypeOut && req.Limit == 50
	})).Return(&inventory.ListMovementsResponse{Movements: []inventory.MovementResponse{}, Total: 0}, nil)

	w := perform(r, http.MethodPost, "/inventory/adjust", map[string]interface{}{"product_id": 2, "quantity": -5})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(10), body["new_stock_level"])

	w = perform(r, http.MethodGet, "/inventory/movements?product_id=2&movement_type=out", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/inventory/movements?movement_type=transfer", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

type mockAnalyticsService struct {
	mock.Mock
}

func (m *mockAnalyticsService) GetStats(ctx context.Context, req *analytics.StatsRequest) (*analytics.DashboardStats, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*analytics.DashboardStats)
	return resp, args.Error(1)
}

func (m *mockAnalyticsService) GetSalesReport(ctx context.Context, req *analytics.SalesReportRequest) (*analytics.SalesReport, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*analytics.SalesReport)
	return resp, args.Error(1)
}

func TestAnalyticsHandler(t *testing.T) {
	svc := &mockAnalyticsService{}
	h := NewAnalyticsHandler(svc, logger.Discard())
	r := gin.New()
	r.GET("/dashboard/stats", h.GetStats)
	r.GET("/dashboard/sales-report", h.GetSalesReport)

	svc.On("GetStats", mock.Anything, &analytics.StatsRequest{DateFrom: "2024-01-01"}).
		Return(&analytics.DashboardStats{TotalOrders: 3}, nil)
	svc.On("GetSalesReport", mock.Anything, mock.MatchedBy(func(req *analytics.SalesReportRequest) bool {
		return req.GroupBy == analytics.GroupBy("day")
	})).Return(&analytics.SalesReport{}, nil)

	w := perform(r, http.MethodGet, "/dashboard/stats?date_from=2024-01-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decode(t, w)["total_orders"])

	w = perform(r, http.MethodGet, "/dashboard/sales-report?date_from=2024-01-01&date_to=2024-01-31", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/dashboard/sales-report?date_from=2024-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodGet, "/dashboard/sales-report?date_from=2024-01-01&date_to=2024-01-31&group_by=year", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) ListCategories(ctx context.Context) (*product.ListCategoriesResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*product.ListCategoriesResponse)
	return resp, args.Error(1)
}

func TestCategoryHandler(t *testing.T) {
	svc := &mockCategoryService{}
	svc.On("ListCategories", mock.Anything).Return(&product.ListCategoriesResponse{
		Categories: []*product.CategoryNode{{ID: 1, Name: "Bebidas", Children: []*product.CategoryNode{{ID: 2, Name: "Cafe"}}}},
	}, nil)
	h := NewCategoryHandler(svc, logger.Discard())
	r := gin.New()
	r.GET("/categories", h.GetCategories)

	w := perform(r, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"children"`))
}
