// internal/domain/recommendation/repository.go
package recommendation

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the recommendation engine's view of the data store
type Repository interface {
	CreateInteraction(ctx context.Context, interaction *CustomerInteraction) error
	RecentInteractions(ctx context.Context, customerID uint, since time.Time) ([]Interaction, error)
	PopularProducts(ctx context.Context, limit int) ([]PopularProduct, error)
	CategoryCandidates(ctx context.Context, customerID uint, categoryIDs []uint, limit int) ([]Candidate, error)
	UpsertRecommendations(ctx context.Context, recs []Recommendation) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed recommendation repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateInteraction(ctx context.Context, interaction *CustomerInteraction) error {
	if err := r.db.WithContext(ctx).Create(interaction).Error; err != nil {
		return fmt.Errorf("failed to record interaction: %w", err)
	}
	return nil
}

// RecentInteractions drops interactions whose product no longer exists
func (r *gormRepository) RecentInteractions(ctx context.Context, customerID uint, since time.Time) ([]Interaction, error) {
	var interactions []Interaction
	err := r.db.WithContext(ctx).Raw(`
		SELECT ci.product_id, ci.interaction_type, ci.duration_seconds,
		       p.name AS product_name, p.category_id
		FROM customer_interactions ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.customer_id = ? AND ci.created_at >= ?
		ORDER BY ci.created_at DESC, ci.id DESC`,
		customerID, since,
	).Scan(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get interactions: %w", err)
	}
	return interactions, nil
}

func (r *gormRepository) PopularProducts(ctx context.Context, limit int) ([]PopularProduct, error) {
	var products []PopularProduct
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.name AS product_name, COUNT(oi.id) AS order_count
		FROM products p
		LEFT JOIN order_items oi ON p.id = oi.product_id
		WHERE p.is_active = TRUE
		GROUP BY p.id, p.name
		ORDER BY order_count DESC, p.id
		LIMIT ?`,
		limit,
	).Scan(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get popular products: %w", err)
	}
	return products, nil
}

func (r *gormRepository) CategoryCandidates(ctx context.Context, customerID uint, categoryIDs []uint, limit int) ([]Candidate, error) {
	var candidates []Candidate
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.name AS product_name, p.category_id,
		       COUNT(oi.id) AS popularity
		FROM products p
		LEFT JOIN order_items oi ON p.id = oi.product_id
		WHERE p.is_active = TRUE
		  AND p.category_id IN ?
		  AND p.id NOT IN (
		    SELECT DISTINCT product_id
		    FROM customer_interactions
		    WHERE customer_id = ? AND interaction_type = ?
		  )
		GROUP BY p.id, p.name, p.category_id
		ORDER BY popularity DESC, p.id
		LIMIT ?`,
		categoryIDs, customerID, InteractionPurchase, limit,
	).Scan(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get candidates: %w", err)
	}
	return candidates, nil
}

// UpsertRecommendations overwrites score and timestamp for existing pairs
func (r *gormRepository) UpsertRecommendations(ctx context.Context, recs []Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"score":      gorm.Expr("EXCLUDED.score"),
				"algorithm":  gorm.Expr("EXCLUDED.algorithm"),
				"created_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(&recs).Error
	if err != nil {
		return fmt.Errorf("failed to store recommendations: %w", err)
	}
	return nil
}
