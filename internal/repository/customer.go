package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/regenefi/storefront/internal/models"
	"github.com/regenefi/storefront/internal/shopify"
)

// ErrCustomerNotFound is returned when a customer query resolves to null
// without the platform reporting an error.
var ErrCustomerNotFound = errors.New("customer not found")

func customerVars(in models.CustomerInput) map[string]any {
	vars := map[string]any{}
	if in.FirstName != nil {
		vars["firstName"] = *in.FirstName
	}
	if in.LastName != nil {
		vars["lastName"] = *in.LastName
	}
	if in.Email != nil {
		vars["email"] = *in.Email
	}
	if in.Password != nil {
		vars["password"] = *in.Password
	}
	if in.Phone != nil {
		vars["phone"] = *in.Phone
	}
	return vars
}

func addressVars(in models.AddressInput) map[string]any {
	return map[string]any{
		"address1": in.Address1,
		"address2": in.Address2,
		"city":     in.City,
		"province": in.Province,
		"zip":      in.Zip,
		"country":  in.Country,
		"phone":    in.Phone,
	}
}

// ShopifyCustomerRepository performs customer, address, and order
// operations against the Storefront API.
type ShopifyCustomerRepository struct {
	client *shopify.Client
}

// NewShopifyCustomerRepository creates a customer repository over the given
// client.
func NewShopifyCustomerRepository(client *shopify.Client) *ShopifyCustomerRepository {
	return &ShopifyCustomerRepository{client: client}
}

// CreateAccessToken exchanges credentials for a customer access token.
// Bad credentials come back as shopify.UserErrors with the platform's
// message.
func (r *ShopifyCustomerRepository) CreateAccessToken(ctx context.Context, email, password string) (*models.AccessToken, error) {
	var data struct {
		CustomerAccessTokenCreate struct {
			CustomerAccessToken *models.AccessToken `json:"customerAccessToken"`
			CustomerUserErrors  []shopify.UserError `json:"customerUserErrors"`
		} `json:"customerAccessTokenCreate"`
	}
	vars := map[string]any{
		"input": map[string]any{"email": email, "password": password},
	}
	if err := r.client.Do(ctx, shopify.CustomerAccessTokenCreate, vars, &data); err != nil {
		return nil, err
	}
	payload := data.CustomerAccessTokenCreate
	if err := shopify.AsUserErrors(payload.CustomerUserErrors); err != nil {
		return nil, err
	}
	if payload.CustomerAccessToken == nil {
		return nil, fmt.Errorf("customerAccessTokenCreate returned no token")
	}
	return payload.CustomerAccessToken, nil
}

// CreateCustomer registers a new customer account.
func (r *ShopifyCustomerRepository) CreateCustomer(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	var data struct {
		CustomerCreate struct {
			Customer           *models.Customer    `json:"customer"`
			CustomerUserErrors []shopify.UserError `json:"customerUserErrors"`
		} `json:"customerCreate"`
	}
	vars := map[string]any{"input": customerVars(input)}
	if err := r.client.Do(ctx, shopify.CustomerCreate, vars, &data); err != nil {
		return nil, err
	}
	payload := data.CustomerCreate
	if err := shopify.AsUserErrors(payload.CustomerUserErrors); err != nil {
		return nil, err
	}
	if payload.Customer == nil {
		return nil, fmt.Errorf("customerCreate returned no customer")
	}
	return payload.Customer, nil
}

// customerPayload mirrors the getCustomer selection.
type customerPayload struct {
	ID             string          `json:"id"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	DefaultAddress *models.Address `json:"defaultAddress"`
	Addresses      struct {
		Edges []struct {
			Node models.Address `json:"node"`
		} `json:"edges"`
	} `json:"addresses"`
	Orders struct {
		Edges []struct {
			Node orderPayload `json:"node"`
		} `json:"edges"`
	} `json:"orders"`
}

type orderPayload struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	OrderNumber       int             `json:"orderNumber"`
	ProcessedAt       string          `json:"processedAt"`
	StatusURL         string          `json:"statusUrl"`
	FulfillmentStatus string          `json:"fulfillmentStatus"`
	FinancialStatus   string          `json:"financialStatus"`
	TotalPriceV2      models.Money    `json:"totalPriceV2"`
	SubtotalPriceV2   *models.Money   `json:"subtotalPriceV2"`
	TotalShippingV2   *models.Money   `json:"totalShippingPriceV2"`
	LineItems         lineItemConn    `json:"lineItems"`
	ShippingAddress   *models.Address `json:"shippingAddress"`
}

type lineItemConn struct {
	Edges []struct {
		Node struct {
			Title    string `json:"title"`
			Quantity int    `json:"quantity"`
			Variant  *struct {
				PriceV2 models.Money  `json:"priceV2"`
				Image   *models.Image `json:"image"`
			} `json:"variant"`
		} `json:"node"`
	} `json:"edges"`
}

func (p *customerPayload) toModel() *models.Customer {
	c := &models.Customer{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		DefaultAddress: p.DefaultAddress,
		Addresses:      make([]models.Address, 0, len(p.Addresses.Edges)),
		Orders:         make([]models.Order, 0, len(p.Orders.Edges)),
	}
	for _, edge := range p.Addresses.Edges {
		c.Addresses = append(c.Addresses, edge.Node)
	}
	for _, edge := range p.Orders.Edges {
		c.Orders = append(c.Orders, edge.Node.toModel())
	}
	return c
}

func (p orderPayload) toModel() models.Order {
	o := models.Order{
		ID:                p.ID,
		Name:              p.Name,
		OrderNumber:       p.OrderNumber,
		ProcessedAt:       parseTime(p.ProcessedAt),
		StatusURL:         p.StatusURL,
		FulfillmentStatus: p.FulfillmentStatus,
		FinancialStatus:   p.FinancialStatus,
		TotalPrice:        p.TotalPriceV2,
		SubtotalPrice:     p.SubtotalPriceV2,
		ShippingPrice:     p.TotalShippingV2,
		ShippingAddress:   p.ShippingAddress,
		LineItems:         make([]models.OrderLineItem, 0, len(p.LineItems.Edges)),
	}
	for _, edge := range p.LineItems.Edges {
		item := models.OrderLineItem{
			Title:    edge.Node.Title,
			Quantity: edge.Node.Quantity,
		}
		if v := edge.Node.Variant; v != nil {
			item.Price = v.PriceV2
			item.Image = v.Image
		}
		o.LineItems = append(o.LineItems, item)
	}
	return o
}

// GetCustomer fetches the full profile for the given access token. An
// invalid or expired token surfaces as a GraphQL error that satisfies
// shopify.IsInvalidToken.
func (r *ShopifyCustomerRepository) GetCustomer(ctx context.Context, token string) (*models.Customer, error) {
	var data struct {
		Customer *customerPayload `json:"customer"`
	}
	vars := map[string]any{"customerAccessToken": token}
	if err := r.client.Do(ctx, shopify.CustomerQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, ErrCustomerNotFound
	}
	return data.Customer.toModel(), nil
}

// UpdateCustomer updates profile fields and returns the new identity
// projection.
func (r *ShopifyCustomerRepository) UpdateCustomer(ctx context.Context, token string, input models.CustomerInput) (*models.Customer, error) {
	var data struct {
		CustomerUpdate struct {
			Customer           *models.Customer    `json:"customer"`
			CustomerUserErrors []shopify.UserError `json:"customerUserErrors"`
		} `json:"customerUpdate"`
	}
	vars := map[string]any{
		"customerAccessToken": token,
		"customer":            customerVars(input),
	}
	if err := r.client.Do(ctx, shopify.CustomerUpdate, vars, &data); err != nil {
		return nil, err
	}
	payload := data.CustomerUpdate
	if err := shopify.AsUserErrors(payload.CustomerUserErrors); err != nil {
		return nil, err
	}
	if payload.Customer == nil {
		return nil, fmt.Errorf("customerUpdate returned no customer")
	}
	return payload.Customer, nil
}

// CreateAddress adds a mailing address to the customer.
func (r *ShopifyCustomerRepository) CreateAddress(ctx context.Context, token string, input models.AddressInput) (*models.Address, error) {
	var data struct {
		CustomerAddressCreate addressResult `json:"customerAddressCreate"`
	}
	vars := map[string]any{
		"customerAccessToken": token,
		"address":             addressVars(input),
	}
	if err := r.client.Do(ctx, shopify.CustomerAddressCreate, vars, &data); err != nil {
		return nil, err
	}
	return data.CustomerAddressCreate.address("customerAddressCreate")
}

// UpdateAddress updates an existing mailing address.
func (r *ShopifyCustomerRepository) UpdateAddress(ctx context.Context, token, addressID string, input models.AddressInput) (*models.Address, error) {
	var data struct {
		CustomerAddressUpdate addressResult `json:"customerAddressUpdate"`
	}
	vars := map[string]any{
		"customerAccessToken": token,
		"id":                  addressID,
		"address":             addressVars(input),
	}
	if err := r.client.Do(ctx, shopify.CustomerAddressUpdate, vars, &data); err != nil {
		return nil, err
	}
	return data.CustomerAddressUpdate.address("customerAddressUpdate")
}

// DeleteAddress removes a mailing address.
func (r *ShopifyCustomerRepository) DeleteAddress(ctx context.Context, token, addressID string) error {
	var data struct {
		CustomerAddressDelete struct {
			DeletedCustomerAddressID *string             `json:"deletedCustomerAddressId"`
			CustomerUserErrors       []shopify.UserError `json:"customerUserErrors"`
		} `json:"customerAddressDelete"`
	}
	vars := map[string]any{
		"customerAccessToken": token,
		"id":                  addressID,
	}
	if err := r.client.Do(ctx, shopify.CustomerAddressDelete, vars, &data); err != nil {
		return err
	}
	return shopify.AsUserErrors(data.CustomerAddressDelete.CustomerUserErrors)
}

// SetDefaultAddress marks one of the customer's addresses as the default.
func (r *ShopifyCustomerRepository) SetDefaultAddress(ctx context.Context, token, addressID string) error {
	var data struct {
		CustomerDefaultAddressUpdate struct {
			Customer           *struct{}           `json:"customer"`
			CustomerUserErrors []shopify.UserError `json:"customerUserErrors"`
		} `json:"customerDefaultAddressUpdate"`
	}
	vars := map[string]any{
		"customerAccessToken": token,
		"addressId":           addressID,
	}
	if err := r.client.Do(ctx, shopify.CustomerDefaultAddressUpdate, vars, &data); err != nil {
		return err
	}
	return shopify.AsUserErrors(data.CustomerDefaultAddressUpdate.CustomerUserErrors)
}

// GetOrder fetches a single order node with its pricing breakdown.
func (r *ShopifyCustomerRepository) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var data struct {
		Node *orderPayload `json:"node"`
	}
	vars := map[string]any{"id": orderID}
	if err := r.client.Do(ctx, shopify.OrderQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Node == nil || data.Node.ID == "" {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	order := data.Node.toModel()
	return &order, nil
}

// parseTime parses the platform's RFC 3339 timestamps, returning the zero
// time for anything unparsable.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type addressResult struct {
	CustomerAddress    *models.Address     `json:"customerAddress"`
	CustomerUserErrors []shopify.UserError `json:"customerUserErrors"`
}

func (res addressResult) address(op string) (*models.Address, error) {
	if err := shopify.AsUserErrors(res.CustomerUserErrors); err != nil {
		return nil, err
	}
	if res.CustomerAddress == nil {
		return nil, fmt.Errorf("%s returned no address", op)
	}
	return res.CustomerAddress, nil
}
