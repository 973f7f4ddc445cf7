package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/regenefi/storefront/internal/models"
	"github.com/regenefi/storefront/internal/service"
)

// CartAPI defines the remote cart operations required by the CartHandler.
type CartAPI interface {
	CreateCart(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
	AddLines(ctx context.Context, cartID string, lines []models.CartLineInput) (*models.Cart, error)
	UpdateLines(ctx context.Context, cartID string, lines []models.CartLineUpdateInput) (*models.Cart, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*models.Cart, error)
}

// CartHandler handles HTTP requests for cart operations. The caller owns
// the cart handle; every response returns the full cart so the caller can
// replace its local state wholesale.
type CartHandler struct {
	Cart CartAPI
}

// Create handles POST /api/cart: creates a new cart and returns its handle
// and checkout URL.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Cart.CreateCart(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cart)
}

// Get handles GET /api/cart?id=...: fetches a cart by handle. A handle the
// platform no longer knows yields 404; the caller should create a new cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cartID := r.URL.Query().Get("id")
	if cartID == "" {
		http.Error(w, "cart id required", http.StatusBadRequest)
		return
	}
	cart, err := h.Cart.GetCart(r.Context(), cartID)
	if err != nil {
		writeError(w, err)
		return
	}
	if cart == nil {
		http.Error(w, "cart not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddLineRequest is the JSON payload for adding merchandise to a cart.
type AddLineRequest struct {
	CartID        string  `json:"cartId"`
	MerchandiseID string  `json:"merchandiseId"`
	// Quantity accepts any number; it is coerced to a positive integer
	// before the platform sees it.
	Quantity float64 `json:"quantity"`
}

// AddLine handles POST /api/cart/lines.
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CartID == "" || req.MerchandiseID == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	cart, err := h.Cart.AddLines(r.Context(), req.CartID, []models.CartLineInput{
		{MerchandiseID: req.MerchandiseID, Quantity: service.NormalizeQuantity(req.Quantity)},
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// UpdateLineRequest is the JSON payload for changing a line quantity.
type UpdateLineRequest struct {
	CartID   string `json:"cartId"`
	LineID   string `json:"lineId"`
	Quantity int    `json:"quantity"`
}

// UpdateLine handles PUT /api/cart/lines. A quantity of zero or less
// removes the line.
func (h *CartHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var req UpdateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CartID == "" || req.LineID == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	var (
		cart *models.Cart
		err  error
	)
	if req.Quantity <= 0 {
		cart, err = h.Cart.RemoveLines(r.Context(), req.CartID, []string{req.LineID})
	} else {
		cart, err = h.Cart.UpdateLines(r.Context(), req.CartID, []models.CartLineUpdateInput{
			{LineID: req.LineID, Quantity: req.Quantity},
		})
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveLineRequest is the JSON payload for removing a line.
type RemoveLineRequest struct {
	CartID string `json:"cartId"`
	LineID string `json:"lineId"`
}

// RemoveLine handles DELETE /api/cart/lines.
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	var req RemoveLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CartID == "" || req.LineID == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	cart, err := h.Cart.RemoveLines(r.Context(), req.CartID, []string{req.LineID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}
