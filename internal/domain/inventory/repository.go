// internal/domain/inventory/repository.go
package inventory

import (
	"context"
	"fmt"

	"github.com/your-org/commerce-api/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Repository is the inventory's view of the data store
type Repository interface {
	AdjustStock(ctx context.Context, productID uint, delta int, notes *string) (int, error)
	ListMovements(ctx context.Context, req *ListMovementsRequest) ([]MovementResponse, error)
	CountMovements(ctx context.Context, req *ListMovementsRequest) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed inventory repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// AdjustStock applies delta in a single statement and records the movement in
// the same transaction. There is no floor: stock may go negative.
func (r *gormRepository) AdjustStock(ctx context.Context, productID uint, delta int, notes *string) (int, error) {
	var newLevel int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row struct {
			StockQuantity int
		}
		result := tx.Raw(
			`UPDATE products
			 SET stock_quantity = stock_quantity + ?, updated_at = NOW()
			 WHERE id = ?
			 RETURNING stock_quantity`,
			delta, productID,
		).Scan(&row)
		if result.Error != nil {
			return fmt.Errorf("failed to update stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("Product not found")
		}
		newLevel = row.StockQuantity

		referenceType := ReferenceTypeManualAdjustment
		movement := Movement{
			ProductID:     productID,
			MovementType:  MovementTypeAdjustment,
			Quantity:      delta,
			ReferenceType: &referenceType,
			Notes:         notes,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to record movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newLevel, nil
}

func (r *gormRepository) filtered(ctx context.Context, req *ListMovementsRequest) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("inventory_movements AS im").
		Joins("JOIN products p ON p.id = im.product_id")

	if req.ProductID > 0 {
		query = query.Where("im.product_id = ?", req.ProductID)
	}
	if req.MovementType != "" {
		query = query.Where("im.movement_type = ?", req.MovementType)
	}
	return query
}

func (r *gormRepository) ListMovements(ctx context.Context, req *ListMovementsRequest) ([]MovementResponse, error) {
	var movements []MovementResponse
	err := r.filtered(ctx, req).
		Select(`im.id, im.product_id, p.name AS product_name, im.movement_type, im.quantity,
			im.reference_id, im.reference_type, im.notes, im.created_at`).
		Order("im.created_at DESC, im.id DESC").
		Limit(req.Limit).
		Offset(req.Offset).
		Scan(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

func (r *gormRepository) CountMovements(ctx context.Context, req *ListMovementsRequest) (int64, error) {
	var total int64
	if err := r.filtered(ctx, req).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count movements: %w", err)
	}
	return total, nil
}
