package product

import (
	"context"
	"fmt"

	"github.com/inventory-dashboard-api/internal/domain"
	"github.com/inventory-dashboard-api/internal/infrastructure/products"
)

// DefaultLimit matches the upstream catalog's natural page size.
const DefaultLimit = 30

type Service interface {
	// List returns one catalog page. A negative limit means "unspecified" and
	// falls back to DefaultLimit; an explicit zero asks the backend for the
	// whole catalog, the way the upstream API treats limit=0. Negative skip is
	// treated as 0.
	List(ctx context.Context, limit, skip int) (*domain.ProductPage, error)
	// ListAll returns the complete catalog, for the in-memory dashboard views.
	ListAll(ctx context.Context) ([]domain.Product, error)
}

type service struct {
	source products.Source
}

func NewService(source products.Source) Service {
	return &service{source: source}
}

func (s *service) List(ctx context.Context, limit, skip int) (*domain.ProductPage, error) {
	if limit < 0 {
		limit = DefaultLimit
	}
	if skip < 0 {
		skip = 0
	}
	page, err := s.source.Fetch(ctx, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	// Defensive truncation for backends that hand back more than asked.
	if limit > 0 && len(page.Products) > limit {
		page.Products = page.Products[:limit]
		page.Limit = limit
	}
	return page, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Product, error) {
	page, err := s.source.Fetch(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	return page.Products, nil
}
