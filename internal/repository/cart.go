// Package repository implements data access against the commerce
// platform's APIs. Each repository runs GraphQL operations through the
// shopify client and flattens the connection-shaped payloads into models.
package repository

import (
	"context"
	"fmt"

	"github.com/regenefi/storefront/internal/models"
	"github.com/regenefi/storefront/internal/shopify"
)

// ShopifyCartRepository performs cart operations against the Storefront API.
type ShopifyCartRepository struct {
	client *shopify.Client
}

// NewShopifyCartRepository creates a cart repository over the given client.
func NewShopifyCartRepository(client *shopify.Client) *ShopifyCartRepository {
	return &ShopifyCartRepository{client: client}
}

// cartPayload mirrors the cart selection shared by every cart operation.
type cartPayload struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
	Lines       struct {
		Edges []struct {
			Node struct {
				ID          string `json:"id"`
				Quantity    int    `json:"quantity"`
				Merchandise struct {
					ID      string       `json:"id"`
					Title   string       `json:"title"`
					PriceV2 models.Money `json:"priceV2"`
					Product struct {
						Title string `json:"title"`
					} `json:"product"`
					Image *models.Image `json:"image"`
				} `json:"merchandise"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lines"`
}

func (p *cartPayload) toModel() *models.Cart {
	cart := &models.Cart{
		ID:          p.ID,
		CheckoutURL: p.CheckoutURL,
		Lines:       make([]models.CartLine, 0, len(p.Lines.Edges)),
	}
	for _, edge := range p.Lines.Edges {
		n := edge.Node
		cart.Lines = append(cart.Lines, models.CartLine{
			ID:       n.ID,
			Quantity: n.Quantity,
			Merchandise: models.Merchandise{
				ID:           n.Merchandise.ID,
				Title:        n.Merchandise.Title,
				Price:        n.Merchandise.PriceV2,
				ProductTitle: n.Merchandise.Product.Title,
				Image:        n.Merchandise.Image,
			},
		})
	}
	return cart
}

// mutationResult is the shared shape of every cart mutation payload.
type mutationResult struct {
	Cart       *cartPayload        `json:"cart"`
	UserErrors []shopify.UserError `json:"userErrors"`
}

// CreateCart creates a new empty cart and returns its handle and checkout
// URL.
func (r *ShopifyCartRepository) CreateCart(ctx context.Context) (*models.Cart, error) {
	var data struct {
		CartCreate mutationResult `json:"cartCreate"`
	}
	if err := r.client.Do(ctx, shopify.CartCreate, nil, &data); err != nil {
		return nil, err
	}
	if err := shopify.AsUserErrors(data.CartCreate.UserErrors); err != nil {
		return nil, err
	}
	if data.CartCreate.Cart == nil {
		return nil, fmt.Errorf("cartCreate returned no cart")
	}
	return data.CartCreate.Cart.toModel(), nil
}

// GetCart fetches a cart by handle. Returns nil without error when the
// platform no longer knows the handle (expired or purged cart).
func (r *ShopifyCartRepository) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	var data struct {
		Cart *cartPayload `json:"cart"`
	}
	vars := map[string]any{"cartId": cartID}
	if err := r.client.Do(ctx, shopify.CartQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Cart == nil {
		return nil, nil
	}
	return data.Cart.toModel(), nil
}

// AddLines adds merchandise lines to the cart and returns the full updated
// cart.
func (r *ShopifyCartRepository) AddLines(ctx context.Context, cartID string, lines []models.CartLineInput) (*models.Cart, error) {
	inputs := make([]map[string]any, len(lines))
	for i, l := range lines {
		inputs[i] = map[string]any{
			"merchandiseId": l.MerchandiseID,
			"quantity":      l.Quantity,
		}
	}
	var data struct {
		CartLinesAdd mutationResult `json:"cartLinesAdd"`
	}
	vars := map[string]any{"cartId": cartID, "lines": inputs}
	if err := r.client.Do(ctx, shopify.CartLinesAdd, vars, &data); err != nil {
		return nil, err
	}
	return resultCart(data.CartLinesAdd, "cartLinesAdd")
}

// UpdateLines changes line quantities and returns the full updated cart.
func (r *ShopifyCartRepository) UpdateLines(ctx context.Context, cartID string, lines []models.CartLineUpdateInput) (*models.Cart, error) {
	inputs := make([]map[string]any, len(lines))
	for i, l := range lines {
		inputs[i] = map[string]any{
			"id":       l.LineID,
			"quantity": l.Quantity,
		}
	}
	var data struct {
		CartLinesUpdate mutationResult `json:"cartLinesUpdate"`
	}
	vars := map[string]any{"cartId": cartID, "lines": inputs}
	if err := r.client.Do(ctx, shopify.CartLinesUpdate, vars, &data); err != nil {
		return nil, err
	}
	return resultCart(data.CartLinesUpdate, "cartLinesUpdate")
}

// RemoveLines removes lines by id and returns the full updated cart.
func (r *ShopifyCartRepository) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*models.Cart, error) {
	var data struct {
		CartLinesRemove mutationResult `json:"cartLinesRemove"`
	}
	vars := map[string]any{"cartId": cartID, "lineIds": lineIDs}
	if err := r.client.Do(ctx, shopify.CartLinesRemove, vars, &data); err != nil {
		return nil, err
	}
	return resultCart(data.CartLinesRemove, "cartLinesRemove")
}

func resultCart(res mutationResult, op string) (*models.Cart, error) {
	if err := shopify.AsUserErrors(res.UserErrors); err != nil {
		return nil, err
	}
	if res.Cart == nil {
		return nil, fmt.Errorf("%s returned no cart", op)
	}
	return res.Cart.toModel(), nil
}
