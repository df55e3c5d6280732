// internal/domain/customer/entity.go
package customer

import "time"

// Customer is a buyer, keyed by WhatsApp number for message intake
type Customer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	WhatsAppNumber string    `gorm:"column:whatsapp_number;uniqueIndex;not null;size:32" json:"whatsapp_number"`
	Name           *string   `gorm:"size:255" json:"name"`
	LastActivity   time.Time `json:"last_activity"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName overrides
func (Customer) TableName() string { return "customers" }
