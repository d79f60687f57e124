package handler

import (
	"net/http"
	"strconv"

	"github.com/inventory-dashboard-api/internal/application/dashboard"
	"github.com/inventory-dashboard-api/internal/application/product"
)

// DashboardHandler serves the in-memory table and analytics views. Every view
// pulls the full catalog and computes on top of it, so the product source is
// the only upstream dependency.
type DashboardHandler struct {
	svc product.Service
}

func NewDashboardHandler(svc product.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

type tableEnvelope struct {
	dashboard.TablePage
	Categories []string `json:"categories"`
}

func (h *DashboardHandler) Table(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	query := dashboard.TableQuery{
		Search:     q.Get("search"),
		Category:   q.Get("category"),
		Stock:      q.Get("stock"),
		PriceRange: q.Get("price_range"),
		Sort:       q.Get("sort"),
		Page:       page,
	}
	writeJSON(w, http.StatusOK, tableEnvelope{
		TablePage:  dashboard.QueryTable(all, query),
		Categories: dashboard.Categories(all),
	})
}

func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dashboard.Aggregate(all))
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dashboard.ComputeStats(all))
}
