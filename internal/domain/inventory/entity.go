// internal/domain/inventory/entity.go
package inventory

import "time"

// MovementType represents the type of inventory movement
type MovementType string

const (
	MovementTypeIn         MovementType = "in"         // Stock returned or received
	MovementTypeOut        MovementType = "out"        // Stock leaving with an order
	MovementTypeAdjustment MovementType = "adjustment" // Manual correction, signed
)

// IsValid reports whether t is one of the known movement types
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// Reference types recorded on movements
const (
	ReferenceTypeOrder             = "order"
	ReferenceTypeOrderCancellation = "order_cancellation"
	ReferenceTypeManualAdjustment  = "manual_adjustment"
)

// Movement is an append-only ledger entry for a stock change
type Movement struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	ProductID     uint         `gorm:"not null;index:idx_movements_product_created,priority:1" json:"product_id"`
	MovementType  MovementType `gorm:"not null;size:20;index" json:"movement_type"`
	Quantity      int          `gorm:"not null" json:"quantity"`
	ReferenceID   *uint        `gorm:"index" json:"reference_id"`
	ReferenceType *string      `gorm:"size:50" json:"reference_type"`
	Notes         *string      `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time    `gorm:"index:idx_movements_product_created,priority:2" json:"created_at"`
}

// TableName overrides
func (Movement) TableName() string { return "inventory_movements" }

// MovementResponse is a movement joined with its product name
type MovementResponse struct {
	ID            uint         `json:"id"`
	ProductID     uint         `json:"product_id"`
	ProductName   string       `json:"product_name"`
	MovementType  MovementType `json:"movement_type"`
	Quantity      int          `json:"quantity"`
	ReferenceID   *uint        `json:"reference_id"`
	ReferenceType *string      `json:"reference_type"`
	Notes         *string      `json:"notes"`
	CreatedAt     time.Time    `json:"created_at"`
}

// NewOrderMovement builds the ledger entry for stock leaving or returning with an order
func NewOrderMovement(productID uint, movementType MovementType, quantity int, orderID uint, referenceType string) *Movement {
	return &Movement{
		ProductID:     productID,
		MovementType:  movementType,
		Quantity:      quantity,
		ReferenceID:   &orderID,
		ReferenceType: &referenceType,
	}
}
