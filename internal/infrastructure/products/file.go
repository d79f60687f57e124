package products

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/inventory-dashboard-api/internal/domain"
)

// FileSource serves the catalog from a static JSON fixture on disk. The file
// holds either a bare product array or a {"products": [...]} envelope; the
// fixture is re-read on every Fetch so edits show up without a restart.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(ctx context.Context, limit, skip int) (*domain.ProductPage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read product fixture: %w", err)
	}
	all, err := decodeFixture(data)
	if err != nil {
		return nil, fmt.Errorf("decode product fixture %s: %w", s.path, err)
	}
	return window(all, limit, skip), nil
}

func decodeFixture(data []byte) ([]domain.Product, error) {
	var all []domain.Product
	if err := json.Unmarshal(data, &all); err == nil {
		return all, nil
	}
	var envelope struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}
