package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/regenefi/storefront/internal/middleware"
	"github.com/regenefi/storefront/internal/models"
	"github.com/regenefi/storefront/internal/service"
)

// CustomerAPI defines the remote customer operations required by the
// AuthHandler.
type CustomerAPI interface {
	CreateAccessToken(ctx context.Context, email, password string) (*models.AccessToken, error)
	CreateCustomer(ctx context.Context, input models.CustomerInput) (*models.Customer, error)
	GetCustomer(ctx context.Context, token string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, token string, input models.CustomerInput) (*models.Customer, error)
	CreateAddress(ctx context.Context, token string, input models.AddressInput) (*models.Address, error)
	UpdateAddress(ctx context.Context, token, addressID string, input models.AddressInput) (*models.Address, error)
	DeleteAddress(ctx context.Context, token, addressID string) error
	SetDefaultAddress(ctx context.Context, token, addressID string) error
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
}

// AuthHandler handles HTTP requests for authentication and the customer
// account. Account routes read the bearer token placed in the request
// context by middleware.TokenAuth.
type AuthHandler struct {
	Customers CustomerAPI
}

// LoginRequest is the JSON payload for credential exchange.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. Bad credentials yield 422 with the
// platform's message; success returns the access token and its expiry.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	token, err := h.Customers.CreateAccessToken(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

// RegisterRequest is the JSON payload for account creation.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	customer, err := h.Customers.CreateCustomer(r.Context(), models.CustomerInput{
		FirstName: &req.FirstName,
		LastName:  &req.LastName,
		Email:     &req.Email,
		Password:  &req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

// Profile handles GET /api/account: the full customer profile for the
// request's token. An invalid token yields 401; the client must drop its
// stored token on that signal.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetTokenFromContext(r.Context())
	customer, err := h.Customers.GetCustomer(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// UpdateProfileRequest is the JSON payload for profile updates. Absent
// fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// UpdateProfile handles PUT /api/account.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetTokenFromContext(r.Context())
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Phone != nil && *req.Phone != "" {
		normalized := service.NormalizePhone(*req.Phone)
		req.Phone = &normalized
	}
	customer, err := h.Customers.UpdateCustomer(r.Context(), token, models.CustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// AddressRequest is the JSON payload for address create/update/delete.
type AddressRequest struct {
	// AddressID targets an existing address; empty on create.
	AddressID string `json:"addressId,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

func (req AddressRequest) input() models.AddressInput {
	return models.AddressInput{
		Address1: req.Address1,
		Address2: req.Address2,
		City:     req.City,
		Province: req.Province,
		Zip:      req.Zip,
		Country:  req.Country,
		Phone:    req.Phone,
	}
}

// CreateAddress handles POST /api/account/addresses.
func (h *AuthHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetTokenFromContext(r.Context())
	var req AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	address, err := h.Customers.CreateAddress(r.Context(), token, req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, address)
}

// UpdateAddress handles PUT /api/account/addresses. The target address id
// travels in the body: address GIDs contain slashes and do not survive as
// path segments.
func (h *AuthHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetTokenFromContext(r.Context())
	var req AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AddressID == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	address, err := h.Customers.UpdateAddress(r.Context(), token, req.AddressID, req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, address)
}

// DeleteAddress handles DELETE /api/account/addresses.
func (h *AuthHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetTokenFromContext(r.Context())
	var req struct {
		AddressID string `json:"addressId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AddressID == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Customers.DeleteAddress(r.Context(), token, req.AddressID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetDefaultAddress handles POST /api/account/addresses/default.
func (h *AuthHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetTokenFromContext(r.Context())
	var req struct {
		AddressID string `json:"addressId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AddressID == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Customers.SetDefaultAddress(r.Context(), token, req.AddressID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Order handles GET /api/account/orders?id=...: a single order with its
// pricing breakdown.
func (h *AuthHandler) Order(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("id")
	if orderID == "" {
		http.Error(w, "order id required", http.StatusBadRequest)
		return
	}
	order, err := h.Customers.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
