package dashboard

import (
	"math"
	"sort"

	"github.com/inventory-dashboard-api/internal/domain"
)

// CategoryCount is one slice of the category distribution chart.
type CategoryCount struct {
	Name       string  `json:"name"`
	Value      int     `json:"value"`
	Percentage float64 `json:"percentage"`
}

// NamedCount is a generic chart point (brand counts, histogram buckets).
type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PerformanceAxis is one spoke of the performance radar, normalized to 0-100.
type PerformanceAxis struct {
	Subject string  `json:"subject"`
	Score   float64 `json:"score"`
}

// MonthlyTrend is one point of the simulated monthly performance series.
type MonthlyTrend struct {
	Month    string `json:"month"`
	Products int    `json:"products"`
	Revenue  int    `json:"revenue"`
	Orders   int    `json:"orders"`
}

// Analytics holds every chart-ready aggregate the analyze page renders.
type Analytics struct {
	CategoryData       []CategoryCount   `json:"category_data"`
	TopBrands          []NamedCount      `json:"top_brands"`
	PriceDistribution  []NamedCount      `json:"price_distribution"`
	RatingDistribution []NamedCount      `json:"rating_distribution"`
	Performance        []PerformanceAxis `json:"performance"`
	TopRated           []domain.Product  `json:"top_rated"`
	TopDiscounted      []domain.Product  `json:"top_discounted"`
	TopPriced          []domain.Product  `json:"top_priced"`
	MonthlyTrends      []MonthlyTrend    `json:"monthly_trends"`
}

// Stats are the headline numbers on the dashboard home.
type Stats struct {
	TotalProducts   int     `json:"total_products"`
	TotalValue      float64 `json:"total_value"` // Σ price × stock
	AverageRating   float64 `json:"average_rating"`
	LowStockCount   int     `json:"low_stock_count"` // stock < 10
	AverageDiscount float64 `json:"average_discount"`
}

type bucket struct {
	label    string
	min, max float64 // half-open [min, max)
}

var priceBuckets = []bucket{
	{"$0-$10", 0, 10},
	{"$10-$50", 10, 50},
	{"$50-$100", 50, 100},
	{"$100-$500", 100, 500},
	{"$500+", 500, math.Inf(1)},
}

var ratingBuckets = []bucket{
	{"4.5-5.0", 4.5, 5.0},
	{"4.0-4.5", 4.0, 4.5},
	{"3.5-4.0", 3.5, 4.0},
	{"3.0-3.5", 3.0, 3.5},
	{"0-3.0", 0, 3.0},
}

// monthlyTrends is a fixed, simulated series; the source has no historical
// order data to aggregate.
var monthlyTrends = []MonthlyTrend{
	{"Jan", 45, 12000, 89},
	{"Feb", 52, 15000, 112},
	{"Mar", 61, 18000, 145},
	{"Apr", 58, 22000, 167},
	{"May", 65, 25000, 198},
	{"Jun", 72, 28000, 234},
	{"Jul", 75, 31000, 250},
}

// ComputeStats derives the headline numbers. Averages of an empty catalog
// are zero, not NaN.
func ComputeStats(products []domain.Product) Stats {
	s := Stats{TotalProducts: len(products)}
	if len(products) == 0 {
		return s
	}
	var ratingSum, discountSum float64
	for _, p := range products {
		s.TotalValue += p.Price * float64(p.Stock)
		ratingSum += p.Rating
		discountSum += p.DiscountPercentage
		if p.Stock < 10 {
			s.LowStockCount++
		}
	}
	s.AverageRating = ratingSum / float64(len(products))
	s.AverageDiscount = discountSum / float64(len(products))
	return s
}

// Aggregate computes every chart dataset in one pass over the catalog.
// Deterministic: categories and brands are bucketed in first-seen order
// before the stable count sort.
func Aggregate(products []domain.Product) Analytics {
	stats := ComputeStats(products)

	categoryData := categoryDistribution(products, stats.TotalProducts)
	topBrands := brandCounts(products, 8)

	perf := []PerformanceAxis{
		{Subject: "Quality", Score: stats.AverageRating * 20},
		{Subject: "Variety", Score: math.Min(float64(len(categoryData))/10*100, 100)},
		{Subject: "Stock Health", Score: stockHealth(stats)},
		{Subject: "Value for Money", Score: math.Min(stats.AverageDiscount/20*100, 100)},
		{Subject: "Brand Diversity", Score: math.Min(float64(len(topBrands))/15*100, 100)},
	}

	return Analytics{
		CategoryData:       categoryData,
		TopBrands:          topBrands,
		PriceDistribution:  distribution(products, priceBuckets, func(p domain.Product) float64 { return p.Price }),
		RatingDistribution: distribution(products, ratingBuckets, func(p domain.Product) float64 { return p.Rating }),
		Performance:        perf,
		TopRated: topN(products, 5,
			func(p domain.Product) bool { return p.Rating >= 4.5 },
			func(a, b domain.Product) bool { return a.Rating > b.Rating }),
		TopDiscounted: topN(products, 5,
			func(p domain.Product) bool { return p.DiscountPercentage > 0 },
			func(a, b domain.Product) bool { return a.DiscountPercentage > b.DiscountPercentage }),
		TopPriced: topN(products, 5,
			func(domain.Product) bool { return true },
			func(a, b domain.Product) bool { return a.Price > b.Price }),
		MonthlyTrends: monthlyTrends,
	}
}

func stockHealth(s Stats) float64 {
	if s.TotalProducts == 0 {
		return 0
	}
	return float64(s.TotalProducts-s.LowStockCount) / float64(s.TotalProducts) * 100
}

func categoryDistribution(products []domain.Product, total int) []CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, p := range products {
		if counts[p.Category] == 0 {
			order = append(order, p.Category)
		}
		counts[p.Category]++
	}
	out := make([]CategoryCount, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryCount{
			Name:       c,
			Value:      counts[c],
			Percentage: float64(counts[c]) / float64(total) * 100,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

func brandCounts(products []domain.Product, n int) []NamedCount {
	counts := make(map[string]int)
	var order []string
	for _, p := range products {
		if p.Brand == "" {
			continue
		}
		if counts[p.Brand] == 0 {
			order = append(order, p.Brand)
		}
		counts[p.Brand]++
	}
	out := make([]NamedCount, 0, len(order))
	for _, b := range order {
		out = append(out, NamedCount{Name: b, Value: counts[b]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func distribution(products []domain.Product, buckets []bucket, value func(domain.Product) float64) []NamedCount {
	out := make([]NamedCount, len(buckets))
	for i, b := range buckets {
		out[i].Name = b.label
		for _, p := range products {
			if v := value(p); v >= b.min && v < b.max {
				out[i].Value++
			}
		}
	}
	return out
}

func topN(products []domain.Product, n int, keep func(domain.Product) bool, more func(a, b domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return more(out[i], out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
