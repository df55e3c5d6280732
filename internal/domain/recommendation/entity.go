// internal/domain/recommendation/entity.go
package recommendation

import "time"

// InteractionType is the kind of engagement a customer had with a product
type InteractionType string

const (
	InteractionView     InteractionType = "view"
	InteractionClick    InteractionType = "click"
	InteractionCartAdd  InteractionType = "cart_add"
	InteractionPurchase InteractionType = "purchase"
)

// AlgorithmEngagement tags rows written by the engagement scorer
const AlgorithmEngagement = "tiktok_style"

// CustomerInteraction is an append-only engagement signal
type CustomerInteraction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CustomerID      uint            `gorm:"not null;index:idx_interactions_customer_created,priority:1" json:"customer_id"`
	ProductID       uint            `gorm:"not null;index" json:"product_id"`
	InteractionType InteractionType `gorm:"not null;size:20" json:"interaction_type"`
	DurationSeconds *int            `json:"duration_seconds"`
	CreatedAt       time.Time       `gorm:"index:idx_interactions_customer_created,priority:2" json:"created_at"`
}

// Recommendation is the latest score for a customer/product pair
type Recommendation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_recommendations_customer_product,priority:1" json:"customer_id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_recommendations_customer_product,priority:2" json:"product_id"`
	Score      float64   `gorm:"type:double precision;not null" json:"score"`
	Algorithm  string    `gorm:"not null;size:50" json:"algorithm"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides
func (CustomerInteraction) TableName() string {
	return "customer_interactions"
}

// TableName overrides
func (Recommendation) TableName() string {
	return "recommendations"
}

// Interaction is a recent interaction joined with its product
type Interaction struct {
	ProductID       uint
	ProductName     string
	CategoryID      uint
	InteractionType InteractionType
	DurationSeconds *int
}

// Candidate is an unpurchased product from one of the customer's top categories
type Candidate struct {
	ProductID   uint
	ProductName string
	CategoryID  uint
	Popularity  int64
}

// PopularProduct is a product ranked by how many order lines reference it
type PopularProduct struct {
	ProductID   uint
	ProductName string
	OrderCount  int64
}

// Item is one recommendation returned to the caller
type Item struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Score       float64 `json:"score"`
	Reason      string  `json:"reason"`
}
