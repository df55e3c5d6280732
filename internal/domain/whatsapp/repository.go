// internal/domain/whatsapp/repository.go
package whatsapp

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository persists the message log and purchase requests
type Repository interface {
	CreateMessage(ctx context.Context, msg *Message) error
	CreatePurchaseRequest(ctx context.Context, req *PurchaseRequest) error
	MatchProducts(ctx context.Context, text string, limit int) ([]ProductMatch, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed whatsapp repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateMessage(ctx context.Context, msg *Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}
	return nil
}

func (r *gormRepository) CreatePurchaseRequest(ctx context.Context, req *PurchaseRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create purchase request: %w", err)
	}
	return nil
}

// MatchProducts is a plain substring match of the whole message text
func (r *gormRepository) MatchProducts(ctx context.Context, text string, limit int) ([]ProductMatch, error) {
	var rows []struct {
		Name        string
		BasePrice   decimal.Decimal
		Description *string
	}
	pattern := "%" + text + "%"
	err := r.db.WithContext(ctx).
		Table("products").
		Select("name, base_price, description").
		Where("is_active = ?", true).
		Where("(name ILIKE ? OR description ILIKE ?)", pattern, pattern).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to match products: %w", err)
	}

	matches := make([]ProductMatch, 0, len(rows))
	for _, row := range rows {
		m := ProductMatch{
			Name:  row.Name,
			Type:  "product",
			Price: row.BasePrice.InexactFloat64(),
		}
		if row.Description != nil {
			m.Description = *row.Description
		}
		matches = append(matches, m)
	}
	return matches, nil
}
