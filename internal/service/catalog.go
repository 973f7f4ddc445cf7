package service

import (
	"context"

	"github.com/regenefi/storefront/internal/models"
)

// CatalogRepository defines the product listing operations required by the
// CatalogService.
type CatalogRepository interface {
	// Products lists up to first products.
	Products(ctx context.Context, first int) ([]models.Product, error)
	// ProductByHandle fetches one product; nil when the handle is unknown.
	ProductByHandle(ctx context.Context, handle string) (*models.Product, error)
}

// CatalogService exposes the product catalog by delegating to a
// CatalogRepository.
type CatalogService struct {
	repo CatalogRepository
}

// NewCatalogService constructs a CatalogService using the provided
// repository.
func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Products lists up to first products.
func (s *CatalogService) Products(ctx context.Context, first int) ([]models.Product, error) {
	return s.repo.Products(ctx, first)
}

// ProductByHandle fetches a single product by its URL handle. Returns nil
// without error when no product carries the handle.
func (s *CatalogService) ProductByHandle(ctx context.Context, handle string) (*models.Product, error) {
	return s.repo.ProductByHandle(ctx, handle)
}
