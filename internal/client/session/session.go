// Package session persists the shopper's session identifiers across runs:
// the customer access token and the cart handle. These two values are the
// only durable state the storefront owns; everything else lives on the
// commerce platform.
package session

import (
	"encoding/json"
	"os"
	"sync"
)

// Store is a file-backed session store. The whole file is rewritten on
// every change, mirroring how the browser storefront treated local storage.
type Store struct {
	path string
	mu   sync.Mutex
	data sessionData
}

type sessionData struct {
	CustomerAccessToken string `json:"customerAccessToken,omitempty"`
	CartID              string `json:"shopifyCartId,omitempty"`
	CheckoutURL         string `json:"checkoutUrl,omitempty"`
}

// NewStore returns a Store backed by the file at path. Call Load before use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the session file. A missing file is not an error: the store
// starts with an empty session.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = sessionData{}
			return nil
		}
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&s.data)
}

// save writes the session file. Caller must hold s.mu.
func (s *Store) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(&s.data)
}

// Token returns the persisted customer access token, or "" if absent.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.CustomerAccessToken
}

// SetToken persists a customer access token.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.CustomerAccessToken = token
	return s.save()
}

// ClearToken removes the customer access token.
func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.CustomerAccessToken = ""
	return s.save()
}

// CartID returns the persisted cart handle, or "" if absent.
func (s *Store) CartID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.CartID
}

// CheckoutURL returns the checkout URL of the persisted cart, if known.
func (s *Store) CheckoutURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.CheckoutURL
}

// SetCart persists a cart handle and its checkout URL. The handle is never
// mutated afterwards, only replaced when a new cart is created.
func (s *Store) SetCart(id, checkoutURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.CartID = id
	s.data.CheckoutURL = checkoutURL
	return s.save()
}

// ClearCart removes the cart handle and checkout URL.
func (s *Store) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.CartID = ""
	s.data.CheckoutURL = ""
	return s.save()
}
