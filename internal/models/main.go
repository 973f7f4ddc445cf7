// Package models defines the client-side projections of the commerce
// platform's server-owned records. The client owns no durable state beyond
// the session identifiers; every struct here mirrors the last successful
// server response.
package models

import "time"

// Money is a decimal amount as returned by the Storefront API. Amount stays
// a string end to end; it is only parsed when a total is computed.
type Money struct {
	// Amount is the decimal value, e.g. "42.00".
	Amount string `json:"amount"`
	// CurrencyCode is the ISO 4217 code, e.g. "USD".
	CurrencyCode string `json:"currencyCode"`
}

// Image is a remote image reference with optional alt text.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// Merchandise identifies the product variant behind a cart line, with the
// metadata needed to display it.
type Merchandise struct {
	// ID is the variant GID the line was added with.
	ID string `json:"id"`
	// Title is the variant title.
	Title string `json:"title"`
	// Price is the variant unit price.
	Price Money `json:"price"`
	// ProductTitle is the parent product's title.
	ProductTitle string `json:"productTitle,omitempty"`
	// Image is the variant or product image, if any.
	Image *Image `json:"image,omitempty"`
}

// CartLine is a single line of the remote cart.
type CartLine struct {
	// ID is the line GID used for update/remove mutations.
	ID string `json:"id"`
	// Quantity is always a positive integer.
	Quantity int `json:"quantity"`
	// Merchandise is the variant on this line.
	Merchandise Merchandise `json:"merchandise"`
}

// Cart is the remote cart as last reported by the platform.
type Cart struct {
	// ID is the opaque cart handle persisted across sessions.
	ID string `json:"id"`
	// CheckoutURL is the hosted checkout for this cart.
	CheckoutURL string `json:"checkoutUrl"`
	// Lines is the full line set, replaced wholesale on every mutation.
	Lines []CartLine `json:"lines"`
}

// Address is a customer mailing address. Created and mutated only through
// remote calls, never locally.
type Address struct {
	ID       string `json:"id"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Phone    string `json:"phone,omitempty"`
}

// OrderLineItem is a purchased item on a past order.
type OrderLineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    Money  `json:"price"`
	Image    *Image `json:"image,omitempty"`
}

// Order is a past customer order as listed on the account page.
type Order struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	OrderNumber       int             `json:"orderNumber"`
	ProcessedAt       time.Time       `json:"processedAt"`
	StatusURL         string          `json:"statusUrl"`
	FulfillmentStatus string          `json:"fulfillmentStatus"`
	FinancialStatus   string          `json:"financialStatus,omitempty"`
	TotalPrice        Money           `json:"totalPrice"`
	SubtotalPrice     *Money          `json:"subtotalPrice,omitempty"`
	ShippingPrice     *Money          `json:"shippingPrice,omitempty"`
	LineItems         []OrderLineItem `json:"lineItems"`
	ShippingAddress   *Address        `json:"shippingAddress,omitempty"`
}

// Customer is the authenticated shopper profile. Replaced wholesale on
// every successful fetch, cleared on logout.
type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	// DefaultAddress is the platform-designated default; the same record
	// also appears in Addresses.
	DefaultAddress *Address  `json:"defaultAddress,omitempty"`
	Addresses      []Address `json:"addresses"`
	Orders         []Order   `json:"orders"`
}

// AccessToken is the customer bearer credential issued by the platform.
type AccessToken struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}
