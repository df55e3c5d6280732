// internal/domain/whatsapp/service.go
package whatsapp

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/domain/customer"
	"github.com/your-org/commerce-api/internal/pkg/apperror"
	"github.com/your-org/commerce-api/internal/pkg/metrics"
	"github.com/your-org/commerce-api/internal/pkg/reference"
)

const productMatchLimit = 5

// Service handles inbound WhatsApp messages
type Service struct {
	repo      Repository
	customers customer.Repository
	logger    *logrus.Logger
}

// NewService creates a new whatsapp intake service
func NewService(repo Repository, customers customer.Repository, logger *logrus.Logger) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		logger:    logger,
	}
}

// ProcessMessageRequest is one inbound message
type ProcessMessageRequest struct {
	CustomerWhatsApp string      `json:"customer_whatsapp" binding:"required"`
	MessageID        string      `json:"message_id" binding:"required"`
	MessageType      MessageType `json:"message_type" binding:"required,oneof=text audio image"`
	Content          string      `json:"content"`
	AudioURL         string      `json:"audio_url"`
	Transcription    string      `json:"transcription"`
}

// ProcessMessageResponse reports whether the message raised a purchase request
type ProcessMessageResponse struct {
	Success          bool           `json:"success"`
	IsPurchaseIntent bool           `json:"is_purchase_intent"`
	RequestID        string         `json:"request_id,omitempty"`
	ProductsFound    []ProductMatch `json:"products_found,omitempty"`
}

// MarshalJSON emits products_found on every purchase intent, as [] when
// nothing matched, and leaves it out otherwise.
func (r ProcessMessageResponse) MarshalJSON() ([]byte, error) {
	type response ProcessMessageResponse
	if !r.IsPurchaseIntent {
		return json.Marshal(response(r))
	}

	found := r.ProductsFound
	if found == nil {
		found = []ProductMatch{}
	}
	return json.Marshal(struct {
		response
		ProductsFound []ProductMatch `json:"products_found"`
	}{response(r), found})
}

// ProcessMessage logs the message against its customer and, when the text
// reads like a purchase, opens a purchase request with matching products.
func (s *Service) ProcessMessage(ctx context.Context, req *ProcessMessageRequest) (*ProcessMessageResponse, error) {
	if req.CustomerWhatsApp == "" {
		return nil, apperror.Validation("customer_whatsapp is required")
	}

	c, err := s.customers.FindOrCreateByWhatsApp(ctx, req.CustomerWhatsApp)
	if err != nil {
		return nil, apperror.Internal(err, "failed to process message")
	}

	msg := &Message{
		CustomerID:    c.ID,
		MessageID:     req.MessageID,
		MessageType:   req.MessageType,
		Content:       optional(req.Content),
		AudioURL:      optional(req.AudioURL),
		Transcription: optional(req.Transcription),
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, apperror.Internal(err, "failed to process message")
	}

	text := req.Content
	if text == "" {
		text = req.Transcription
	}

	if !IsPurchaseIntent(text) {
		return &ProcessMessageResponse{Success: true}, nil
	}

	requested, err := json.Marshal(map[string]string{"query": text})
	if err != nil {
		return nil, apperror.Internal(err, "failed to process message")
	}

	purchase := &PurchaseRequest{
		RequestID:         reference.New("REQ"),
		CustomerID:        c.ID,
		ProductsRequested: requested,
		Status:            PurchaseRequestPending,
	}
	if err := s.repo.CreatePurchaseRequest(ctx, purchase); err != nil {
		return nil, apperror.Internal(err, "failed to create purchase request")
	}

	matches, err := s.repo.MatchProducts(ctx, text, productMatchLimit)
	if err != nil {
		return nil, apperror.Internal(err, "failed to search products")
	}
	if matches == nil {
		matches = []ProductMatch{}
	}

	metrics.PurchaseIntents.Inc()
	s.logger.WithFields(logrus.Fields{
		"customer_id":    c.ID,
		"request_id":     purchase.RequestID,
		"products_found": len(matches),
	}).Info("Purchase intent detected")

	return &ProcessMessageResponse{
		Success:          true,
		IsPurchaseIntent: true,
		RequestID:        purchase.RequestID,
		ProductsFound:    matches,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
