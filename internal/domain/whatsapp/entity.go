// internal/domain/whatsapp/entity.go
package whatsapp

import (
	"time"

	"gorm.io/datatypes"
)

// MessageType is the kind of inbound WhatsApp message
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageAudio MessageType = "audio"
	MessageImage MessageType = "image"
)

// PurchaseRequestStatus tracks a purchase request through follow-up
type PurchaseRequestStatus string

const (
	PurchaseRequestPending PurchaseRequestStatus = "pending"
)

// Message is the log of every inbound message
type Message struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerID    uint        `gorm:"not null;index" json:"customer_id"`
	MessageID     string      `gorm:"not null;size:255;index" json:"message_id"`
	MessageType   MessageType `gorm:"not null;size:20" json:"message_type"`
	Content       *string     `gorm:"type:text" json:"content"`
	AudioURL      *string     `gorm:"size:500" json:"audio_url"`
	Transcription *string     `gorm:"type:text" json:"transcription"`
	CreatedAt     time.Time   `json:"created_at"`
}

// PurchaseRequest is raised when a message reads like a purchase
type PurchaseRequest struct {
	ID                uint                  `gorm:"primaryKey" json:"id"`
	RequestID         string                `gorm:"uniqueIndex;not null;size:50" json:"request_id"`
	CustomerID        uint                  `gorm:"not null;index" json:"customer_id"`
	ProductsRequested datatypes.JSON        `gorm:"type:jsonb" json:"products_requested"`
	Status            PurchaseRequestStatus `gorm:"not null;size:20;default:pending" json:"status"`
	CreatedAt         time.Time             `json:"created_at"`
}

// TableName overrides
func (Message) TableName() string {
	return "whatsapp_messages"
}

// TableName overrides
func (PurchaseRequest) TableName() string {
	return "purchase_requests"
}

// ProductMatch is a catalog hit returned to the conversation
type ProductMatch struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}
