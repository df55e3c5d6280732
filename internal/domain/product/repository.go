// internal/domain/product/repository.go
package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/commerce-api/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Repository is the catalog's view of the data store
type Repository interface {
	ListProducts(ctx context.Context, req *ListProductsRequest) ([]Product, error)
	CountProducts(ctx context.Context, req *ListProductsRequest) (int64, error)
	GetActiveProduct(ctx context.Context, id uint) (*Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	ListActiveCategories(ctx context.Context) ([]Category, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed catalog repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) filtered(ctx context.Context, req *ListProductsRequest) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&Product{}).Where("is_active = ?", true)

	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("(name ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	if req.IsCombo != nil {
		query = query.Where("is_combo = ?", *req.IsCombo)
	}
	return query
}

func (r *gormRepository) ListProducts(ctx context.Context, req *ListProductsRequest) ([]Product, error) {
	var products []Product
	err := r.filtered(ctx, req).
		Order("created_at DESC").
		Limit(req.Limit).
		Offset(req.Offset).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// CountProducts runs as its own statement, so under concurrent writes the
// total can disagree with a page fetched just before or after it.
func (r *gormRepository) CountProducts(ctx context.Context, req *ListProductsRequest) (int64, error) {
	var total int64
	if err := r.filtered(ctx, req).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (r *gormRepository) GetActiveProduct(ctx context.Context, id uint) (*Product, error) {
	var p Product
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

const searchProductsSQL = `
	SELECT *
	FROM products
	WHERE is_active = TRUE
	  AND (name ILIKE @pattern OR description ILIKE @pattern OR @query = ANY(tags))
	ORDER BY
	  CASE
	    WHEN name ILIKE @pattern THEN 1
	    WHEN description ILIKE @pattern THEN 2
	    ELSE 3
	  END,
	  name
	LIMIT @limit`

func (r *gormRepository) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).Raw(searchProductsSQL, map[string]interface{}{
		"pattern": "%" + query + "%",
		"query":   query,
		"limit":   limit,
	}).Scan(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (r *gormRepository) CreateProduct(ctx context.Context, p *Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *gormRepository) ListActiveCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("parent_id NULLS FIRST, name").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
