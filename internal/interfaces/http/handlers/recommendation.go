// internal/interfaces/http/handlers/recommendation.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/domain/recommendation"
)

// RecommendationService scores products for a customer
type RecommendationService interface {
	Generate(ctx context.Context, customerID uint) (*recommendation.GenerateResponse, error)
	TrackInteraction(ctx context.Context, req *recommendation.TrackInteractionRequest) (*recommendation.TrackInteractionResponse, error)
}

// RecommendationHandler handles recommendation endpoints
type RecommendationHandler struct {
	recommendationService RecommendationService
	logger                *logrus.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(svc RecommendationService, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: svc,
		logger:                logger,
	}
}

// Generate handles POST /recommendations/generate/:customer_id
func (h *RecommendationHandler) Generate(c *gin.Context) {
	customerID, err := parseIDParam(c, "customer_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID",
		})
		return
	}

	response, err := h.recommendationService.Generate(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// TrackInteraction handles POST /recommendations/track
func (h *RecommendationHandler) TrackInteraction(c *gin.Context) {
	var req recommendation.TrackInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.recommendationService.TrackInteraction(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
