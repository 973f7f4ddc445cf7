package models

import "time"

// ProductVariant is a purchasable variant of a product. Its ID is the
// merchandiseId used when adding the variant to a cart.
type ProductVariant struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Price             Money  `json:"price"`
	AvailableForSale  bool   `json:"availableForSale"`
	QuantityAvailable int    `json:"quantityAvailable,omitempty"`
}

// Product is a storefront product listing entry.
type Product struct {
	ID          string           `json:"id"`
	Handle      string           `json:"handle"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Images      []Image          `json:"images"`
	Variants    []ProductVariant `json:"variants"`
}

// Article is a blog article flattened out of the platform's blog/article
// connection shape.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
	Image       string    `json:"image"`
	ImageAlt    string    `json:"imageAlt"`
	Author      string    `json:"author"`
	BlogTitle   string    `json:"blogTitle"`
	Tags        []string  `json:"tags"`
}

// WholesaleInquiry is the B2B lead form payload captured by the wholesale
// page and forwarded to the platform's admin API.
type WholesaleInquiry struct {
	BusinessName  string `json:"businessName"`
	ContactName   string `json:"contactName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BusinessType  string `json:"businessType"`
	MonthlyVolume string `json:"monthlyVolume"`
	Message       string `json:"message"`
}
