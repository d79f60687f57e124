package handler

import (
	"net/http"
	"strconv"

	"github.com/inventory-dashboard-api/internal/application/product"
)

// ProductHandler proxies the catalog list endpoint.
type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler { return &ProductHandler{svc: svc} }

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := parseQueryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	skip, err := parseQueryInt(r, "skip")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid skip")
		return
	}
	page, err := h.svc.List(r.Context(), limit, skip)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// parseQueryInt returns -1 for an absent parameter and an error only for a
// present but unparseable one. The sentinel lets the service tell "no limit
// given" apart from an explicit limit=0, which the upstream API treats as
// "everything".
func parseQueryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return -1, nil
	}
	return strconv.Atoi(raw)
}
