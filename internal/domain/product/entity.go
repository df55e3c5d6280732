// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/your-org/commerce-api/internal/pkg/dateparam"
	"gorm.io/datatypes"
)

// Product represents a sellable catalog item
type Product struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	Name           string                      `gorm:"not null;size:255" json:"name"`
	Description    *string                     `gorm:"type:text" json:"description"`
	CategoryID     uint                        `gorm:"not null;index" json:"category_id"`
	BasePrice      decimal.Decimal             `gorm:"type:numeric(12,2);not null" json:"base_price"`
	FinalPrice     decimal.Decimal             `gorm:"type:numeric(12,2);not null" json:"final_price"`
	PlatformFee    decimal.Decimal             `gorm:"type:numeric(5,4);not null" json:"platform_fee"`
	SKU            *string                     `gorm:"size:100;uniqueIndex" json:"sku"`
	Weight         *float64                    `json:"weight"`
	Dimensions     datatypes.JSON              `gorm:"type:jsonb" json:"dimensions"`
	StockQuantity  int                         `gorm:"not null;default:0" json:"stock_quantity"`
	MinStockLevel  int                         `gorm:"not null;default:0" json:"min_stock_level"`
	IsActive       bool                        `gorm:"not null;default:true;index" json:"is_active"`
	IsCombo        bool                        `gorm:"not null;default:false" json:"is_combo"`
	ExpirationDate *time.Time                  `gorm:"type:date" json:"expiration_date"`
	Images         datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"images"`
	Tags           pq.StringArray              `gorm:"type:text[]" json:"tags"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// Category represents a node of the category tree
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description *string   `gorm:"size:500" json:"description"`
	ParentID    *uint     `gorm:"index" json:"parent_id"`
	ImageURL    *string   `gorm:"size:500" json:"image_url"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }

// ProductResponse is the read shape of a product
type ProductResponse struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	Description    *string        `json:"description"`
	CategoryID     uint           `json:"category_id"`
	BasePrice      float64        `json:"base_price"`
	FinalPrice     float64        `json:"final_price"`
	PlatformFee    float64        `json:"platform_fee"`
	SKU            *string        `json:"sku"`
	Weight         *float64       `json:"weight"`
	Dimensions     datatypes.JSON `json:"dimensions,omitempty"`
	StockQuantity  int            `json:"stock_quantity"`
	MinStockLevel  int            `json:"min_stock_level"`
	IsActive       bool           `json:"is_active"`
	IsCombo        bool           `json:"is_combo"`
	ExpirationDate *string        `json:"expiration_date"`
	Images         []string       `json:"images"`
	Tags           []string       `json:"tags"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ToResponse shapes a stored product for the API. Nil collections become
// empty lists and the expiration date is rendered as a calendar date.
func (p *Product) ToResponse() ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		BasePrice:     p.BasePrice.InexactFloat64(),
		FinalPrice:    p.FinalPrice.InexactFloat64(),
		PlatformFee:   p.PlatformFee.InexactFloat64(),
		SKU:           p.SKU,
		Weight:        p.Weight,
		Dimensions:    p.Dimensions,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		IsActive:      p.IsActive,
		IsCombo:       p.IsCombo,
		Images:        []string{},
		Tags:          []string{},
		CreatedAt:     p.CreatedAt,
	}
	if len(p.Images) > 0 {
		resp.Images = append(resp.Images, p.Images...)
	}
	if len(p.Tags) > 0 {
		resp.Tags = append(resp.Tags, p.Tags...)
	}
	resp.ExpirationDate = dateparam.Format(p.ExpirationDate)
	return resp
}

// CategoryNode is a category with its active descendants
type CategoryNode struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	ParentID    *uint           `json:"parent_id"`
	ImageURL    *string         `json:"image_url"`
	IsActive    bool            `json:"is_active"`
	Children    []*CategoryNode `json:"children"`
}
