package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/inventory-dashboard-api/internal/domain"
)

// PageSize is the fixed table page size.
const PageSize = 15

// TableQuery captures the table's filter/sort/page state. Zero values (or
// "all") mean "no constraint".
type TableQuery struct {
	Search     string // case-insensitive substring over title, brand, SKU
	Category   string // exact category match
	Stock      string // "in-stock" | "low-stock" | "out-of-stock"
	PriceRange string // "under-50" | "50-100" | "100-500" | "over-500"
	Sort       string // see SortProducts
	Page       int    // 1-based
}

// TablePage is one rendered page of the filtered, sorted table.
type TablePage struct {
	Products   []domain.Product `json:"products"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
}

// QueryTable runs the full filter → sort → paginate pipeline. Pure: the
// input slice is never mutated.
func QueryTable(products []domain.Product, q TableQuery) TablePage {
	filtered := FilterProducts(products, q)
	sorted := SortProducts(filtered, q.Sort)
	return Paginate(sorted, q.Page)
}

// FilterProducts applies all four filters; a product must match every
// constraint to survive.
func FilterProducts(products []domain.Product, q TableQuery) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	search := strings.ToLower(q.Search)
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		if !all(q.Category) && p.Category != q.Category {
			continue
		}
		if !all(q.Stock) && !matchesStock(p, q.Stock) {
			continue
		}
		if !all(q.PriceRange) && !matchesPriceRange(p.Price, q.PriceRange) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func all(filter string) bool {
	return filter == "" || filter == "all"
}

func matchesStock(p domain.Product, bucket string) bool {
	switch bucket {
	case "in-stock":
		return p.Stock > 0 && p.AvailabilityStatus == domain.AvailabilityInStock
	case "low-stock":
		return p.AvailabilityStatus == domain.AvailabilityLowStock
	case "out-of-stock":
		return p.AvailabilityStatus == domain.AvailabilityOutOfStock
	default:
		return false
	}
}

func matchesPriceRange(price float64, bucket string) bool {
	switch bucket {
	case "under-50":
		return price < 50
	case "50-100":
		return price >= 50 && price <= 100
	case "100-500":
		return price > 100 && price <= 500
	case "over-500":
		return price > 500
	default:
		return false
	}
}

// SortProducts returns a sorted copy. One active key; ties keep the original
// array order (stable sort). Unknown keys fall back to name A-Z.
func SortProducts(products []domain.Product, key string) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)

	var less func(a, b domain.Product) bool
	switch key {
	case "price-low":
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case "price-high":
		less = func(a, b domain.Product) bool { return a.Price > b.Price }
	case "rating-high":
		less = func(a, b domain.Product) bool { return a.Rating > b.Rating }
	case "rating-low":
		less = func(a, b domain.Product) bool { return a.Rating < b.Rating }
	case "stock-high":
		less = func(a, b domain.Product) bool { return a.Stock > b.Stock }
	case "stock-low":
		less = func(a, b domain.Product) bool { return a.Stock < b.Stock }
	case "discount":
		less = func(a, b domain.Product) bool { return a.DiscountPercentage > b.DiscountPercentage }
	case "newest":
		less = func(a, b domain.Product) bool { return createdAt(a).After(createdAt(b)) }
	case "weight":
		less = func(a, b domain.Product) bool { return a.Weight > b.Weight }
	default: // "title"
		less = func(a, b domain.Product) bool { return a.Title < b.Title }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func createdAt(p domain.Product) time.Time {
	t, err := time.Parse(time.RFC3339, p.Meta.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Paginate slices one fixed-size page out of the result set. Pages are
// 1-based; out-of-range pages clamp to the valid range rather than erroring
// (the UI disables navigation at the bounds, but query params can say anything).
func Paginate(products []domain.Product, page int) TablePage {
	total := len(products)
	totalPages := (total + PageSize - 1) / PageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}
	return TablePage{
		Products:   products[start:end],
		TotalItems: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   PageSize,
	}
}

// Categories lists the distinct categories in first-seen order, for the
// filter dropdown.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
