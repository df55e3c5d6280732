// internal/domain/product/service.go
package product

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/pkg/apperror"
	"github.com/your-org/commerce-api/internal/pkg/dateparam"
	"github.com/your-org/commerce-api/internal/pkg/pricing"
)

const (
	DefaultListLimit   = 20
	DefaultSearchLimit = 10
)

// Service handles catalog business logic
type Service struct {
	repo    Repository
	pricing *pricing.Calculator
	logger  *logrus.Logger
}

// NewService creates a new product service
func NewService(repo Repository, calc *pricing.Calculator, logger *logrus.Logger) *Service {
	return &Service{
		repo:    repo,
		pricing: calc,
		logger:  logger,
	}
}

// ListProductsRequest represents product list query parameters
type ListProductsRequest struct {
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
	IsCombo    *bool  `form:"is_combo"`
	Limit      int    `form:"limit,default=20" binding:"min=0,max=500"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}

// ListProductsResponse is a page of products plus the filter's total
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
}

// SearchProductsRequest represents search query parameters
type SearchProductsRequest struct {
	Query string `form:"query" binding:"required"`
	Limit int    `form:"limit,default=10" binding:"min=0,max=100"`
}

// SearchProductsResponse holds ranked search results
type SearchProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Description    *string                `json:"description"`
	CategoryID     uint                   `json:"category_id" binding:"required"`
	BasePrice      float64                `json:"base_price" binding:"gte=0"`
	SKU            *string                `json:"sku"`
	Weight         *float64               `json:"weight"`
	Dimensions     map[string]interface{} `json:"dimensions"`
	StockQuantity  int                    `json:"stock_quantity" binding:"gte=0"`
	MinStockLevel  int                    `json:"min_stock_level" binding:"gte=0"`
	IsCombo        bool                   `json:"is_combo"`
	ExpirationDate *string                `json:"expiration_date"`
	Images         []string               `json:"images"`
	Tags           []string               `json:"tags"`
}

// ListProducts returns active products matching the filters, newest first
func (s *Service) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	if req.Limit <= 0 {
		req.Limit = DefaultListLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	products, err := s.repo.ListProducts(ctx, req)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list products")
	}

	total, err := s.repo.CountProducts(ctx, req)
	if err != nil {
		return nil, apperror.Internal(err, "failed to count products")
	}

	return &ListProductsResponse{
		Products: toResponses(products),
		Total:    total,
	}, nil
}

// GetProduct returns an active product by id
func (s *Service) GetProduct(ctx context.Context, id uint) (*ProductResponse, error) {
	p, err := s.repo.GetActiveProduct(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to get product")
	}
	resp := p.ToResponse()
	return &resp, nil
}

// SearchProducts ranks name matches above description matches above tag matches
func (s *Service) SearchProducts(ctx context.Context, req *SearchProductsRequest) (*SearchProductsResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, apperror.Validation("query is required")
	}
	if req.Limit <= 0 {
		req.Limit = DefaultSearchLimit
	}

	products, err := s.repo.SearchProducts(ctx, query, req.Limit)
	if err != nil {
		return nil, apperror.Internal(err, "failed to search products")
	}

	return &SearchProductsResponse{Products: toResponses(products)}, nil
}

// CreateProduct stores a product with its fee-inclusive final price
func (s *Service) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.Validation("name is required")
	}
	if req.BasePrice < 0 {
		return nil, apperror.Validation("base_price must not be negative")
	}

	base := decimal.NewFromFloat(req.BasePrice).Round(2)

	p := &Product{
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		BasePrice:     base,
		FinalPrice:    s.pricing.FinalPrice(base),
		PlatformFee:   s.pricing.Rate(),
		SKU:           req.SKU,
		Weight:        req.Weight,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
		IsActive:      true,
		IsCombo:       req.IsCombo,
		Images:        req.Images,
		Tags:          req.Tags,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	dimensions := req.Dimensions
	if dimensions == nil {
		dimensions = map[string]interface{}{}
	}
	raw, err := json.Marshal(dimensions)
	if err != nil {
		return nil, apperror.Validation("dimensions must be a JSON object")
	}
	p.Dimensions = raw

	if req.ExpirationDate != nil && *req.ExpirationDate != "" {
		date, err := dateparam.Parse(*req.ExpirationDate)
		if err != nil {
			return nil, apperror.Validation("expiration_date must be YYYY-MM-DD")
		}
		date = dateparam.Date(date)
		p.ExpirationDate = &date
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, apperror.Internal(err, "Failed to create product")
	}

	s.logger.WithFields(logrus.Fields{
		"product_id":  p.ID,
		"base_price":  p.BasePrice.String(),
		"final_price": p.FinalPrice.String(),
	}).Info("Product created")

	resp := p.ToResponse()
	return &resp, nil
}

func toResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, products[i].ToResponse())
	}
	return out
}
