package repository

import (
	"context"

	"github.com/regenefi/storefront/internal/models"
	"github.com/regenefi/storefront/internal/shopify"
)

// ShopifyCatalogRepository reads product listings from the Storefront API.
type ShopifyCatalogRepository struct {
	client *shopify.Client
}

// NewShopifyCatalogRepository creates a catalog repository over the given
// client.
func NewShopifyCatalogRepository(client *shopify.Client) *ShopifyCatalogRepository {
	return &ShopifyCatalogRepository{client: client}
}

type productPayload struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Images      struct {
		Edges []struct {
			Node models.Image `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node struct {
				ID                string       `json:"id"`
				Title             string       `json:"title"`
				AvailableForSale  bool         `json:"availableForSale"`
				QuantityAvailable int          `json:"quantityAvailable"`
				PriceV2           models.Money `json:"priceV2"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (p *productPayload) toModel() models.Product {
	product := models.Product{
		ID:          p.ID,
		Handle:      p.Handle,
		Title:       p.Title,
		Description: p.Description,
		Images:      make([]models.Image, 0, len(p.Images.Edges)),
		Variants:    make([]models.ProductVariant, 0, len(p.Variants.Edges)),
	}
	for _, edge := range p.Images.Edges {
		product.Images = append(product.Images, edge.Node)
	}
	for _, edge := range p.Variants.Edges {
		n := edge.Node
		product.Variants = append(product.Variants, models.ProductVariant{
			ID:                n.ID,
			Title:             n.Title,
			Price:             n.PriceV2,
			AvailableForSale:  n.AvailableForSale,
			QuantityAvailable: n.QuantityAvailable,
		})
	}
	return product
}

// Products lists up to first products.
func (r *ShopifyCatalogRepository) Products(ctx context.Context, first int) ([]models.Product, error) {
	var data struct {
		Products struct {
			Edges []struct {
				Node productPayload `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	vars := map[string]any{"first": first}
	if err := r.client.Do(ctx, shopify.ProductsQuery, vars, &data); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		products = append(products, edge.Node.toModel())
	}
	return products, nil
}

// ProductByHandle fetches a single product. Returns nil without error when
// no product carries the handle.
func (r *ShopifyCatalogRepository) ProductByHandle(ctx context.Context, handle string) (*models.Product, error) {
	var data struct {
		Product *productPayload `json:"product"`
	}
	vars := map[string]any{"handle": handle}
	if err := r.client.Do(ctx, shopify.ProductByHandleQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, nil
	}
	product := data.Product.toModel()
	return &product, nil
}
