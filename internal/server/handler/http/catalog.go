package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/regenefi/storefront/internal/models"
)

const defaultPageSize = 20

// CatalogAPI defines the product lookups required by the CatalogHandler.
type CatalogAPI interface {
	Products(ctx context.Context, first int) ([]models.Product, error)
	ProductByHandle(ctx context.Context, handle string) (*models.Product, error)
}

// CatalogHandler handles HTTP requests for the product catalog.
type CatalogHandler struct {
	Catalog CatalogAPI
}

// List handles GET /api/products?first=N.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	first := pageSize(r)
	products, err := h.Catalog.Products(r.Context(), first)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{handle}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	product, err := h.Catalog.ProductByHandle(r.Context(), handle)
	if err != nil {
		writeError(w, err)
		return
	}
	if product == nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func pageSize(r *http.Request) int {
	first, err := strconv.Atoi(r.URL.Query().Get("first"))
	if err != nil || first <= 0 {
		return defaultPageSize
	}
	return first
}
