// internal/domain/recommendation/service.go
package recommendation

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/pkg/apperror"
	"github.com/your-org/commerce-api/internal/pkg/metrics"
)

const (
	historyWindow      = 30 * 24 * time.Hour
	topCategoryCount   = 3
	candidateLimit     = 15
	resultLimit        = 10
	popularLimit       = 10
	popularScore       = 0.5
	reasonPopular      = "Popular product"
	reasonCategoryLike = "Based on your interest in this category"
)

// Service handles recommendation business logic
type Service struct {
	repo   Repository
	logger *logrus.Logger
	now    func() time.Time
}

// NewService creates a new recommendation service
func NewService(repo Repository, logger *logrus.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// TrackInteractionRequest represents one engagement signal
type TrackInteractionRequest struct {
	CustomerID      uint            `json:"customer_id" binding:"required"`
	ProductID       uint            `json:"product_id" binding:"required"`
	InteractionType InteractionType `json:"interaction_type" binding:"required,oneof=view click cart_add purchase"`
	DurationSeconds *int            `json:"duration_seconds" binding:"omitempty,min=0"`
}

// TrackInteractionResponse acknowledges a tracked interaction
type TrackInteractionResponse struct {
	Success bool `json:"success"`
}

// GenerateResponse holds the ranked recommendations
type GenerateResponse struct {
	Recommendations []Item `json:"recommendations"`
}

// TrackInteraction appends an interaction to the customer's history
func (s *Service) TrackInteraction(ctx context.Context, req *TrackInteractionRequest) (*TrackInteractionResponse, error) {
	if !req.InteractionType.IsValid() {
		return nil, apperror.Validation("interaction_type must be one of view, click, cart_add, purchase")
	}

	interaction := &CustomerInteraction{
		CustomerID:      req.CustomerID,
		ProductID:       req.ProductID,
		InteractionType: req.InteractionType,
		DurationSeconds: req.DurationSeconds,
	}
	if err := s.repo.CreateInteraction(ctx, interaction); err != nil {
		return nil, apperror.Internal(err, "failed to track interaction")
	}
	return &TrackInteractionResponse{Success: true}, nil
}

// Generate scores the customer's last 30 days of interactions, picks the top
// three categories and recommends unpurchased products from them. Customers
// without usable history get the globally popular products instead.
func (s *Service) Generate(ctx context.Context, customerID uint) (*GenerateResponse, error) {
	if customerID == 0 {
		return nil, apperror.Validation("customer_id is required")
	}

	interactions, err := s.repo.RecentInteractions(ctx, customerID, s.now().Add(-historyWindow))
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate recommendations")
	}

	engagement := ScoreInteractions(interactions)
	topCategories := engagement.TopCategories(topCategoryCount)

	if len(topCategories) == 0 {
		return s.popular(ctx, customerID)
	}

	candidates, err := s.repo.CategoryCandidates(ctx, customerID, topCategories, candidateLimit)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate recommendations")
	}

	items := make([]Item, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, Item{
			ProductID:   c.ProductID,
			ProductName: c.ProductName,
			Score:       FinalScore(engagement.Categories[c.CategoryID], c.Popularity),
			Reason:      reasonCategoryLike,
		})
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].Score > items[b].Score })

	recs := make([]Recommendation, 0, len(items))
	for _, item := range items {
		recs = append(recs, Recommendation{
			CustomerID: customerID,
			ProductID:  item.ProductID,
			Score:      item.Score,
			Algorithm:  AlgorithmEngagement,
		})
	}
	if err := s.repo.UpsertRecommendations(ctx, recs); err != nil {
		return nil, apperror.Internal(err, "failed to store recommendations")
	}

	if len(items) > resultLimit {
		items = items[:resultLimit]
	}

	metrics.RecommendationRuns.WithLabelValues("engagement").Inc()
	s.logger.WithFields(logrus.Fields{
		"customer_id":    customerID,
		"interactions":   len(interactions),
		"top_categories": topCategories,
		"candidates":     len(candidates),
	}).Info("Recommendations generated")

	return &GenerateResponse{Recommendations: items}, nil
}

func (s *Service) popular(ctx context.Context, customerID uint) (*GenerateResponse, error) {
	products, err := s.repo.PopularProducts(ctx, popularLimit)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate recommendations")
	}

	items := make([]Item, 0, len(products))
	for _, p := range products {
		items = append(items, Item{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Score:       popularScore,
			Reason:      reasonPopular,
		})
	}

	metrics.RecommendationRuns.WithLabelValues("popular").Inc()
	s.logger.WithField("customer_id", customerID).Debug("No recent interactions, recommending popular products")

	return &GenerateResponse{Recommendations: items}, nil
}
