package product

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/your-org/commerce-api/internal/pkg/apperror"
)

// fakeRepository keeps products and categories in memory and applies the
// same filters the SQL does.
type fakeRepository struct {
	products   []Product
	categories []Category
	nextID     uint
	createErr  error
	lastList   *ListProductsRequest
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1}
}

func (f *fakeRepository) add(p Product) *Product {
	if p.ID == 0 {
		p.ID = f.nextID
	}
	f.nextID = p.ID + 1
	f.products = append(f.products, p)
	return &f.products[len(f.products)-1]
}

func (f *fakeRepository) matching(req *ListProductsRequest) []Product {
	var out []Product
	for _, p := range f.products {
		if !p.IsActive {
			continue
		}
		if req.CategoryID > 0 && p.CategoryID != req.CategoryID {
			continue
		}
		if req.Search != "" {
			needle := strings.ToLower(req.Search)
			desc := ""
			if p.Description != nil {
				desc = strings.ToLower(*p.Description)
			}
			if !strings.Contains(strings.ToLower(p.Name), needle) && !strings.Contains(desc, needle) {
				continue
			}
		}
		if req.IsCombo != nil && p.IsCombo != *req.IsCombo {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeRepository) ListProducts(_ context.Context, req *ListProductsRequest) ([]Product, error) {
	f.lastList = req
	all := f.matching(req)
	if req.Offset >= len(all) {
		return nil, nil
	}
	end := req.Offset + req.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[req.Offset:end], nil
}

func (f *fakeRepository) CountProducts(_ context.Context, req *ListProductsRequest) (int64, error) {
	return int64(len(f.matching(req))), nil
}

func (f *fakeRepository) GetActiveProduct(_ context.Context, id uint) (*Product, error) {
	for i := range f.products {
		if f.products[i].ID == id && f.products[i].IsActive {
			return &f.products[i], nil
		}
	}
	return nil, apperror.NotFound("Product not found")
}

func (f *fakeRepository) SearchProducts(_ context.Context, query string, limit int) ([]Product, error) {
	needle := strings.ToLower(query)
	type ranked struct {
		p    Product
		rank int
	}
	var hits []ranked
	for _, p := range f.products {
		if !p.IsActive {
			continue
		}
		desc := ""
		if p.Description != nil {
			desc = strings.ToLower(*p.Description)
		}
		switch {
		case strings.Contains(strings.ToLower(p.Name), needle):
			hits = append(hits, ranked{p, 1})
		case strings.Contains(desc, needle):
			hits = append(hits, ranked{p, 2})
		default:
			for _, tag := range p.Tags {
				if tag == query {
					hits = append(hits, ranked{p, 3})
					break
				}
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })
	var out []Product
	for i := 0; i < len(hits) && i < limit; i++ {
		out = append(out, hits[i].p)
	}
	return out, nil
}

func (f *fakeRepository) CreateProduct(_ context.Context, p *Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.add(*p)
	return nil
}

func (f *fakeRepository) ListActiveCategories(_ context.Context) ([]Category, error) {
	var out []Category
	for _, c := range f.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}
