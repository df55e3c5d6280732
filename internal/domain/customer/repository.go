// internal/domain/customer/repository.go
package customer

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the customer store
type Repository interface {
	FindOrCreateByWhatsApp(ctx context.Context, number string) (*Customer, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed customer repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// FindOrCreateByWhatsApp upserts on the unique number and bumps last_activity,
// so two messages racing from a new number resolve to the same row.
func (r *gormRepository) FindOrCreateByWhatsApp(ctx context.Context, number string) (*Customer, error) {
	c := Customer{
		WhatsAppNumber: number,
		LastActivity:   time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "whatsapp_number"}},
				DoUpdates: clause.AssignmentColumns([]string{"last_activity"}),
			},
			clause.Returning{},
		).
		Create(&c).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}
	return &c, nil
}
