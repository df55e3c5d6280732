// internal/interfaces/http/handlers/whatsapp.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/domain/whatsapp"
)

// WhatsAppService processes inbound messages
type WhatsAppService interface {
	ProcessMessage(ctx context.Context, req *whatsapp.ProcessMessageRequest) (*whatsapp.ProcessMessageResponse, error)
}

// WhatsAppHandler handles message intake
type WhatsAppHandler struct {
	whatsappService WhatsAppService
	logger          *logrus.Logger
}

// NewWhatsAppHandler creates a new whatsapp handler
func NewWhatsAppHandler(svc WhatsAppService, logger *logrus.Logger) *WhatsAppHandler {
	return &WhatsAppHandler{
		whatsappService: svc,
		logger:          logger,
	}
}

// ProcessMessage handles POST /whatsapp/process-message
func (h *WhatsAppHandler) ProcessMessage(c *gin.Context) {
	var req whatsapp.ProcessMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.whatsappService.ProcessMessage(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
