package products

import (
	"context"
	"fmt"
	"io"

	"github.com/inventory-dashboard-api/internal/domain"
)

// ObjectStore is the slice of the S3 store the catalog backend needs.
type ObjectStore interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// S3Source serves the catalog from a JSON fixture object in a bucket.
// Same fixture format as FileSource.
type S3Source struct {
	store ObjectStore
	key   string
}

func NewS3Source(store ObjectStore, key string) *S3Source {
	return &S3Source{store: store, key: key}
}

func (s *S3Source) Fetch(ctx context.Context, limit, skip int) (*domain.ProductPage, error) {
	body, err := s.store.Download(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("fetch product fixture: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read product fixture: %w", err)
	}
	all, err := decodeFixture(data)
	if err != nil {
		return nil, fmt.Errorf("decode product fixture %s: %w", s.key, err)
	}
	return window(all, limit, skip), nil
}
