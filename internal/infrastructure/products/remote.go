package products

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/inventory-dashboard-api/internal/domain"
)

// RemoteSource proxies a dummyjson-style product API. No retry, no caching:
// every Fetch is one outbound GET.
type RemoteSource struct {
	baseURL string
	client  *http.Client
}

func NewRemoteSource(baseURL string) *RemoteSource {
	return &RemoteSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *RemoteSource) Fetch(ctx context.Context, limit, skip int) (*domain.ProductPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	reqURL := fmt.Sprintf("%s/products?%s", s.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build product request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch products: upstream returned %s", resp.Status)
	}

	var page domain.ProductPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode product response: %w", err)
	}
	if page.Products == nil {
		page.Products = []domain.Product{}
	}
	// Some sources omit limit when it equals the page length.
	if page.Limit == 0 {
		page.Limit = len(page.Products)
	}
	return &page, nil
}
