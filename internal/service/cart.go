// Package service provides the storefront's business logic: cart
// synchronization, customer authentication, catalog and blog access, and
// wholesale lead capture. Services delegate every remote operation to
// repository interfaces so tests can inject fakes.
package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/regenefi/storefront/internal/models"
)

// CartRepository defines the remote cart operations required by the
// CartService.
type CartRepository interface {
	// CreateCart creates a new empty cart on the platform.
	CreateCart(ctx context.Context) (*models.Cart, error)
	// GetCart fetches a cart by handle; nil cart means the handle expired.
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
	// AddLines adds merchandise lines and returns the full updated cart.
	AddLines(ctx context.Context, cartID string, lines []models.CartLineInput) (*models.Cart, error)
	// UpdateLines changes line quantities and returns the full updated cart.
	UpdateLines(ctx context.Context, cartID string, lines []models.CartLineUpdateInput) (*models.Cart, error)
	// RemoveLines removes lines by id and returns the full updated cart.
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*models.Cart, error)
}

// SessionStore defines the durable session operations required by the cart
// and auth services.
type SessionStore interface {
	Token() string
	SetToken(token string) error
	ClearToken() error
	CartID() string
	CheckoutURL() string
	SetCart(id, checkoutURL string) error
	ClearCart() error
}

// CartService owns the in-memory cart: a direct mirror of the last
// successful server response. Every mutation goes through the platform and
// replaces the line set wholesale.
//
// All mutations are serialized through one mutex, so at most one cart
// mutation is in flight at a time and a slow response can never overwrite
// the effect of a later request.
type CartService struct {
	repo    CartRepository
	session SessionStore
	log     *zap.Logger

	mu          sync.Mutex
	lines       []models.CartLine
	checkoutURL string
	lastErr     string
}

// NewCartService constructs a CartService. The persisted checkout URL, if
// any, is adopted so the shopper can check out a reloaded cart without a
// prior mutation.
func NewCartService(repo CartRepository, session SessionStore, log *zap.Logger) *CartService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartService{
		repo:        repo,
		session:     session,
		log:         log,
		checkoutURL: session.CheckoutURL(),
	}
}

// NormalizeQuantity coerces a requested quantity to a positive integer:
// fractional values are floored, anything below one becomes one.
func NormalizeQuantity(q float64) int {
	n := int(math.Floor(q))
	if n < 1 {
		return 1
	}
	return n
}

// Snapshot returns a copy of the current in-memory lines. No I/O, never
// fails.
func (s *CartService) Snapshot() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// CheckoutURL returns the hosted checkout URL for the current cart, or ""
// if no cart exists yet.
func (s *CartService) CheckoutURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkoutURL
}

// Err returns the message of the last failed operation, or "". It is a
// readable field, not a signal: mutation methods report success through
// their boolean result.
func (s *CartService) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// EnsureCart returns the persisted cart handle, creating a cart on the
// platform first when none exists. The new handle and checkout URL are
// persisted before returning.
func (s *CartService) EnsureCart(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureCartLocked(ctx)
}

func (s *CartService) ensureCartLocked(ctx context.Context) (string, error) {
	if id := s.session.CartID(); id != "" {
		return id, nil
	}
	cart, err := s.repo.CreateCart(ctx)
	if err != nil {
		s.log.Error("failed to create cart", zap.Error(err))
		return "", fmt.Errorf("create cart: %w", err)
	}
	if err := s.session.SetCart(cart.ID, cart.CheckoutURL); err != nil {
		return "", fmt.Errorf("persist cart handle: %w", err)
	}
	s.checkoutURL = cart.CheckoutURL
	s.log.Info("created cart", zap.String("cartId", cart.ID))
	return cart.ID, nil
}

// AddItem adds the given variant to the cart. The quantity is coerced to a
// positive integer; a cart is created first if none exists. On success the
// in-memory lines are replaced with the server's line set, patched so the
// added variant displays the requested quantity even if the response
// momentarily diverges (the next full overwrite wins). Returns false on any
// failure, recording a message readable via Err.
func (s *CartService) AddItem(ctx context.Context, merchandiseID string, quantity float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty := NormalizeQuantity(quantity)

	cartID, err := s.ensureCartLocked(ctx)
	if err != nil {
		s.lastErr = "Failed to create cart"
		return false
	}

	s.log.Debug("adding to cart",
		zap.String("cartId", cartID),
		zap.String("merchandiseId", merchandiseID),
		zap.Int("quantity", qty),
	)

	cart, err := s.repo.AddLines(ctx, cartID, []models.CartLineInput{
		{MerchandiseID: merchandiseID, Quantity: qty},
	})
	if err != nil {
		s.log.Error("failed to add item", zap.Error(err))
		s.lastErr = "Failed to add item to cart"
		return false
	}

	// Optimistic consistency patch: show the requested quantity for the
	// variant just added. Not conflict resolution; the next overwrite
	// replaces it.
	for i := range cart.Lines {
		if cart.Lines[i].Merchandise.ID == merchandiseID {
			cart.Lines[i].Quantity = qty
		}
	}
	s.applyLocked(cart)
	s.lastErr = ""
	return true
}

// UpdateItem sets the quantity of an existing line through a remote
// update. A quantity of zero or less removes the line instead. Returns
// false on failure, recording a message readable via Err.
func (s *CartService) UpdateItem(ctx context.Context, lineID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, lineID)
	}

	cartID := s.session.CartID()
	if cartID == "" {
		s.lastErr = "No cart to update"
		return false
	}
	cart, err := s.repo.UpdateLines(ctx, cartID, []models.CartLineUpdateInput{
		{LineID: lineID, Quantity: quantity},
	})
	if err != nil {
		s.log.Error("failed to update item", zap.Error(err))
		s.lastErr = "Failed to update cart"
		return false
	}
	s.applyLocked(cart)
	s.lastErr = ""
	return true
}

// RemoveItem removes a line through a remote mutation. Returns false on
// failure, recording a message readable via Err.
func (s *CartService) RemoveItem(ctx context.Context, lineID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, lineID)
}

func (s *CartService) removeLocked(ctx context.Context, lineID string) bool {
	cartID := s.session.CartID()
	if cartID == "" {
		s.lastErr = "No cart to update"
		return false
	}
	cart, err := s.repo.RemoveLines(ctx, cartID, []string{lineID})
	if err != nil {
		s.log.Error("failed to remove item", zap.Error(err))
		s.lastErr = "Failed to remove item from cart"
		return false
	}
	s.applyLocked(cart)
	s.lastErr = ""
	return true
}

// Refresh refetches the persisted cart and replaces the in-memory lines
// wholesale. When the platform no longer knows the handle, the persisted
// handle is dropped so the next AddItem creates a fresh cart.
func (s *CartService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cartID := s.session.CartID()
	if cartID == "" {
		s.lines = nil
		return nil
	}
	cart, err := s.repo.GetCart(ctx, cartID)
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}
	if cart == nil {
		s.log.Warn("cart handle expired", zap.String("cartId", cartID))
		s.lines = nil
		s.checkoutURL = ""
		return s.session.ClearCart()
	}
	s.applyLocked(cart)
	return nil
}

// applyLocked replaces local state with the server cart. Caller holds s.mu.
func (s *CartService) applyLocked(cart *models.Cart) {
	s.lines = cart.Lines
	s.checkoutURL = cart.CheckoutURL
}

// Total returns the sum of unit price times quantity over the current
// snapshot. Pure, no I/O. Unparsable amounts count as zero.
func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, line := range s.lines {
		price, err := strconv.ParseFloat(line.Merchandise.Price.Amount, 64)
		if err != nil {
			continue
		}
		total += price * float64(line.Quantity)
	}
	return total
}

// Count returns the sum of quantities over the current snapshot. Pure, no
// I/O.
func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}
