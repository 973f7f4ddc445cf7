package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/regenefi/storefront/internal/models"
	"github.com/regenefi/storefront/internal/shopify"
)

// CustomerRepository defines the remote customer operations required by the
// AuthService.
type CustomerRepository interface {
	// CreateAccessToken exchanges credentials for a customer access token.
	CreateAccessToken(ctx context.Context, email, password string) (*models.AccessToken, error)
	// GetCustomer fetches the full profile for an access token.
	GetCustomer(ctx context.Context, token string) (*models.Customer, error)
	// CreateCustomer registers a new customer account.
	CreateCustomer(ctx context.Context, input models.CustomerInput) (*models.Customer, error)
	// UpdateCustomer updates profile fields.
	UpdateCustomer(ctx context.Context, token string, input models.CustomerInput) (*models.Customer, error)
	// CreateAddress adds a mailing address.
	CreateAddress(ctx context.Context, token string, input models.AddressInput) (*models.Address, error)
	// UpdateAddress updates an existing mailing address.
	UpdateAddress(ctx context.Context, token, addressID string, input models.AddressInput) (*models.Address, error)
	// DeleteAddress removes a mailing address.
	DeleteAddress(ctx context.Context, token, addressID string) error
	// SetDefaultAddress marks an address as the default.
	SetDefaultAddress(ctx context.Context, token, addressID string) error
	// GetOrder fetches a single order with its pricing breakdown.
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
}

// AuthError is a credential or account validation failure. Its message is
// the platform's own text, surfaced to the user verbatim.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// ErrNotAuthenticated is returned by customer-scoped operations when no
// session token is present.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthService owns the customer session: the bearer token and the profile
// cache. The profile is replaced wholesale on every successful fetch and
// cleared on logout.
//
// State machine: Anonymous -> (login) -> Authenticating (token set, profile
// pending) -> Authenticated. Logout or an invalid-token report returns to
// Anonymous. A non-token profile fetch error keeps the token (recoverable;
// the caller retries RefreshCustomer on its own schedule).
type AuthService struct {
	repo    CustomerRepository
	session SessionStore
	log     *zap.Logger

	mu       sync.Mutex
	token    string
	customer *models.Customer
	lastErr  string
}

// NewAuthService constructs an AuthService, rehydrating a persisted token
// from the session store. The profile is not fetched here; callers run
// RefreshCustomer when they need it, and IsAuthenticated stays false until
// that succeeds.
func NewAuthService(repo CustomerRepository, session SessionStore, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		repo:    repo,
		session: session,
		log:     log,
		token:   session.Token(),
	}
}

// Login exchanges credentials for an access token, persists it, and
// triggers a profile fetch. Bad credentials return an *AuthError carrying
// the platform's first reported message. A profile fetch failure after a
// successful token exchange does not fail the login: the session enters the
// recoverable pending state and RefreshCustomer can be retried.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""

	token, err := s.repo.CreateAccessToken(ctx, email, password)
	if err != nil {
		var userErrs shopify.UserErrors
		if errors.As(err, &userErrs) {
			s.log.Warn("login rejected", zap.String("reason", userErrs.Error()))
			s.lastErr = userErrs.Error()
			return &AuthError{Message: userErrs.Error()}
		}
		s.log.Error("login failed", zap.Error(err))
		s.lastErr = err.Error()
		return err
	}

	if err := s.session.SetToken(token.Token); err != nil {
		return err
	}
	s.token = token.Token
	s.customer = nil

	if _, err := s.refreshLocked(ctx); err != nil {
		// Token is valid; the profile fetch can be retried.
		s.log.Warn("profile fetch after login failed", zap.Error(err))
	}
	return nil
}

// Logout clears the persisted token and the in-memory session and profile.
// No remote call is made; the platform does not revoke the token.
func (s *AuthService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.ClearToken(); err != nil {
		s.log.Error("failed to clear session token", zap.Error(err))
	}
	s.token = ""
	s.customer = nil
	s.lastErr = ""
}

// RefreshCustomer re-issues the profile query and replaces the in-memory
// profile wholesale. When the platform reports the token invalid, the
// session is cleared (forced logout) and the error is returned; any other
// failure keeps the token so the caller can retry.
func (s *AuthService) RefreshCustomer(ctx context.Context) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *AuthService) refreshLocked(ctx context.Context) (*models.Customer, error) {
	if s.token == "" {
		return nil, ErrNotAuthenticated
	}
	customer, err := s.repo.GetCustomer(ctx, s.token)
	if err != nil {
		if shopify.IsInvalidToken(err) {
			s.log.Info("customer token invalid, clearing session")
			if clearErr := s.session.ClearToken(); clearErr != nil {
				s.log.Error("failed to clear session token", zap.Error(clearErr))
			}
			s.token = ""
			s.customer = nil
			s.lastErr = ""
			return nil, err
		}
		s.log.Error("failed to fetch customer", zap.Error(err))
		s.lastErr = err.Error()
		return nil, err
	}
	s.customer = customer
	s.lastErr = ""
	return customer, nil
}

// IsAuthenticated reports whether a token is present AND a profile has been
// loaded. A bare token (e.g. right after rehydration, before the profile
// query resolves) is not authenticated yet.
func (s *AuthService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.customer != nil
}

// Customer returns the cached profile, or nil when not loaded.
func (s *AuthService) Customer() *models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customer
}

// Token returns the current session token, or "".
func (s *AuthService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Err returns the message of the last failed operation, or "".
func (s *AuthService) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Register creates a new customer account. Validation failures return an
// *AuthError with the platform's message. Registration does not log the
// customer in; callers follow with Login.
func (s *AuthService) Register(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	customer, err := s.repo.CreateCustomer(ctx, input)
	if err != nil {
		var userErrs shopify.UserErrors
		if errors.As(err, &userErrs) {
			return nil, &AuthError{Message: userErrs.Error()}
		}
		return nil, err
	}
	return customer, nil
}

// NormalizePhone shapes a phone number into the E.164-ish form the platform
// accepts: non-digits are stripped, a leading zero or a missing country code
// is rewritten as UK (+44). It never fails.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	switch {
	case strings.HasPrefix(cleaned, "0"):
		return "+44" + cleaned[1:]
	case len(cleaned) <= 10:
		return "+44" + cleaned
	case !strings.HasPrefix(phone, "+"):
		return "+" + cleaned
	}
	return phone
}

// UpdateProfile updates the customer's profile fields and refreshes the
// cached profile to mirror the server. Phone numbers are normalized before
// they leave the process.
func (s *AuthService) UpdateProfile(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return nil, ErrNotAuthenticated
	}
	if input.Phone != nil && *input.Phone != "" {
		normalized := NormalizePhone(*input.Phone)
		input.Phone = &normalized
	}
	if _, err := s.repo.UpdateCustomer(ctx, s.token, input); err != nil {
		var userErrs shopify.UserErrors
		if errors.As(err, &userErrs) {
			return nil, &AuthError{Message: userErrs.Error()}
		}
		return nil, err
	}
	return s.refreshLocked(ctx)
}

// CreateAddress adds a mailing address and refreshes the cached profile.
func (s *AuthService) CreateAddress(ctx context.Context, input models.AddressInput) (*models.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return nil, ErrNotAuthenticated
	}
	address, err := s.repo.CreateAddress(ctx, s.token, input)
	if err != nil {
		return nil, err
	}
	if _, err := s.refreshLocked(ctx); err != nil {
		s.log.Warn("profile refresh after address create failed", zap.Error(err))
	}
	return address, nil
}

// UpdateAddress updates a mailing address and refreshes the cached profile.
func (s *AuthService) UpdateAddress(ctx context.Context, addressID string, input models.AddressInput) (*models.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return nil, ErrNotAuthenticated
	}
	address, err := s.repo.UpdateAddress(ctx, s.token, addressID, input)
	if err != nil {
		return nil, err
	}
	if _, err := s.refreshLocked(ctx); err != nil {
		s.log.Warn("profile refresh after address update failed", zap.Error(err))
	}
	return address, nil
}

// DeleteAddress removes a mailing address and refreshes the cached profile.
func (s *AuthService) DeleteAddress(ctx context.Context, addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return ErrNotAuthenticated
	}
	if err := s.repo.DeleteAddress(ctx, s.token, addressID); err != nil {
		return err
	}
	if _, err := s.refreshLocked(ctx); err != nil {
		s.log.Warn("profile refresh after address delete failed", zap.Error(err))
	}
	return nil
}

// SetDefaultAddress marks an address as the default and refreshes the
// cached profile.
func (s *AuthService) SetDefaultAddress(ctx context.Context, addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return ErrNotAuthenticated
	}
	if err := s.repo.SetDefaultAddress(ctx, s.token, addressID); err != nil {
		return err
	}
	if _, err := s.refreshLocked(ctx); err != nil {
		s.log.Warn("profile refresh after default address change failed", zap.Error(err))
	}
	return nil
}

// OrderDetails fetches a single order with its pricing breakdown.
func (s *AuthService) OrderDetails(ctx context.Context, orderID string) (*models.Order, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return s.repo.GetOrder(ctx, orderID)
}
