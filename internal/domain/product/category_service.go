// internal/domain/product/category_service.go
package product

import (
	"context"

	"github.com/your-org/commerce-api/internal/pkg/apperror"
)

// CategoryService handles category business logic
type CategoryService struct {
	repo Repository
}

// NewCategoryService creates a new category service
func NewCategoryService(repo Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

// ListCategoriesResponse wraps the root level of the tree
type ListCategoriesResponse struct {
	Categories []*CategoryNode `json:"categories"`
}

// ListCategories returns the active category tree
func (s *CategoryService) ListCategories(ctx context.Context) (*ListCategoriesResponse, error) {
	categories, err := s.repo.ListActiveCategories(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list categories")
	}
	return &ListCategoriesResponse{Categories: BuildCategoryTree(categories)}, nil
}

// BuildCategoryTree nests categories under their parents at any depth.
// Roots are the categories without a parent. A category whose parent is not
// in the input is dropped together with its subtree. Input order is kept
// among siblings.
func BuildCategoryTree(categories []Category) []*CategoryNode {
	nodes := make(map[uint]*CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &CategoryNode{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			ParentID:    c.ParentID,
			ImageURL:    c.ImageURL,
			IsActive:    c.IsActive,
			Children:    []*CategoryNode{},
		}
	}

	roots := []*CategoryNode{}
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok && parent != node {
			parent.Children = append(parent.Children, node)
		}
	}

	return roots
}
