package products

import (
	"context"

	"github.com/inventory-dashboard-api/internal/domain"
)

// Source is a pluggable product catalog backend. The three implementations
// (remote API, local fixture file, S3 fixture object) are interchangeable
// from the caller's point of view; one is selected at startup via
// configuration.
//
// limit <= 0 means "no truncation" (the backend's full remaining result).
type Source interface {
	Fetch(ctx context.Context, limit, skip int) (*domain.ProductPage, error)
}

// window applies skip-then-limit truncation to a full product slice and
// wraps it in the stable envelope. Used by the fixture backends, which always
// load the complete catalog.
func window(all []domain.Product, limit, skip int) *domain.ProductPage {
	total := len(all)
	if skip < 0 {
		skip = 0
	}
	if skip > total {
		skip = total
	}
	items := all[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return &domain.ProductPage{
		Products: items,
		Total:    total,
		Skip:     skip,
		Limit:    len(items),
	}
}
