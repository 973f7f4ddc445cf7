package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/regenefi/storefront/internal/models"
	"github.com/regenefi/storefront/internal/shopify"
)

type mockCustomerRepo struct {
	CreateAccessTokenFunc func(ctx context.Context, email, password string) (*models.AccessToken, error)
	GetCustomerFunc       func(ctx context.Context, token string) (*models.Customer, error)
	CreateCustomerFunc    func(ctx context.Context, input models.CustomerInput) (*models.Customer, error)
	UpdateCustomerFunc    func(ctx context.Context, token string, input models.CustomerInput) (*models.Customer, error)
	CreateAddressFunc     func(ctx context.Context, token string, input models.AddressInput) (*models.Address, error)
	UpdateAddressFunc     func(ctx context.Context, token, addressID string, input models.AddressInput) (*models.Address, error)
	DeleteAddressFunc     func(ctx context.Context, token, addressID string) error
	SetDefaultAddressFunc func(ctx context.Context, token, addressID string) error
	GetOrderFunc          func(ctx context.Context, orderID string) (*models.Order, error)
}

func (m *mockCustomerRepo) CreateAccessToken(ctx context.Context, email, password string) (*models.AccessToken, error) {
	return m.CreateAccessTokenFunc(ctx, email, password)
}
func (m *mockCustomerRepo) GetCustomer(ctx context.Context, token string) (*models.Customer, error) {
	return m.GetCustomerFunc(ctx, token)
}
func (m *mockCustomerRepo) CreateCustomer(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	return m.CreateCustomerFunc(ctx, input)
}
func (m *mockCustomerRepo) UpdateCustomer(ctx context.Context, token string, input models.CustomerInput) (*models.Customer, error) {
	return m.UpdateCustomerFunc(ctx, token, input)
}
func (m *mockCustomerRepo) CreateAddress(ctx context.Context, token string, input models.AddressInput) (*models.Address, error) {
	return m.CreateAddressFunc(ctx, token, input)
}
func (m *mockCustomerRepo) UpdateAddress(ctx context.Context, token, addressID string, input models.AddressInput) (*models.Address, error) {
	return m.UpdateAddressFunc(ctx, token, addressID, input)
}
func (m *mockCustomerRepo) DeleteAddress(ctx context.Context, token, addressID string) error {
	return m.DeleteAddressFunc(ctx, token, addressID)
}
func (m *mockCustomerRepo) SetDefaultAddress(ctx context.Context, token, addressID string) error {
	return m.SetDefaultAddressFunc(ctx, token, addressID)
}
func (m *mockCustomerRepo) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return m.GetOrderFunc(ctx, orderID)
}

func TestLogin_Success(t *testing.T) {
	repo := &mockCustomerRepo{
		CreateAccessTokenFunc: func(ctx context.Context, email, password string) (*models.AccessToken, error) {
			if email != "bob@example.com" || password != "secret" {
				t.Errorf("CreateAccessToken received %q / %q", email, password)
			}
			return &models.AccessToken{Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
		GetCustomerFunc: func(ctx context.Context, token string) (*models.Customer, error) {
			if token != "tok-1" {
				t.Errorf("GetCustomer received token = %q; want %q", token, "tok-1")
			}
			return &models.Customer{ID: "cust-1", Email: "bob@example.com"}, nil
		},
	}
	session := &fakeSession{}
	svc := NewAuthService(repo, session, nil)

	if err := svc.Login(context.Background(), "bob@example.com", "secret"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Token() != "tok-1" {
		t.Errorf("session token = %q; want %q", session.Token(), "tok-1")
	}
	if !svc.IsAuthenticated() {
		t.Error("expected IsAuthenticated after login with loaded profile")
	}
	if c := svc.Customer(); c == nil || c.ID != "cust-1" {
		t.Errorf("Customer = %+v; want cust-1", c)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := &mockCustomerRepo{
		CreateAccessTokenFunc: func(ctx context.Context, email, password string) (*models.AccessToken, error) {
			return nil, shopify.UserErrors{{Code: "UNIDENTIFIED_CUSTOMER", Message: "Invalid email or password"}}
		},
	}
	session := &fakeSession{}
	svc := NewAuthService(repo, session, nil)

	err := svc.Login(context.Background(), "bob@example.com", "wrong")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Login error = %v; want *AuthError", err)
	}
	if authErr.Message != "Invalid email or password" {
		t.Errorf("AuthError message = %q; want platform text verbatim", authErr.Message)
	}
	if session.Token() != "" {
		t.Errorf("session token = %q; want empty after rejected login", session.Token())
	}
	if svc.IsAuthenticated() {
		t.Error("IsAuthenticated = true; want false")
	}
}

func TestLogin_ProfileFetchFailureKeepsToken(t *testing.T) {
	repo := &mockCustomerRepo{
		CreateAccessTokenFunc: func(ctx context.Context, email, password string) (*models.AccessToken, error) {
			return &models.AccessToken{Token: "tok-1"}, nil
		},
		GetCustomerFunc: func(ctx context.Context, token string) (*models.Customer, error) {
			return nil, errors.New("server error")
		},
	}
	session := &fakeSession{}
	svc := NewAuthService(repo, session, nil)

	if err := svc.Login(context.Background(), "bob@example.com", "secret"); err != nil {
		t.Fatalf("Login returned error: %v; a failed profile fetch must not fail login", err)
	}
	if svc.Token() != "tok-1" {
		t.Errorf("Token = %q; want token kept", svc.Token())
	}
	if svc.IsAuthenticated() {
		t.Error("IsAuthenticated = true; want false until profile loads")
	}
}

func TestRehydratedToken_NotAuthenticatedUntilRefresh(t *testing.T) {
	repo := &mockCustomerRepo{
		GetCustomerFunc: func(ctx context.Context, token string) (*models.Customer, error) {
			return &models.Customer{ID: "cust-1"}, nil
		},
	}
	svc := NewAuthService(repo, &fakeSession{token: "tok-saved"}, nil)

	if svc.IsAuthenticated() {
		t.Fatal("IsAuthenticated = true before profile load; want false")
	}
	if _, err := svc.RefreshCustomer(context.Background()); err != nil {
		t.Fatalf("RefreshCustomer returned error: %v", err)
	}
	if !svc.IsAuthenticated() {
		t.Error("expected IsAuthenticated after successful refresh")
	}
}

func TestRefreshCustomer_InvalidTokenForcesLogout(t *testing.T) {
	repo := &mockCustomerRepo{
		GetCustomerFunc: func(ctx context.Context, token string) (*models.Customer, error) {
			return nil, shopify.GraphQLErrors{{Message: "Invalid token: expired"}}
		},
	}
	session := &fakeSession{token: "tok-stale"}
	svc := NewAuthService(repo, session, nil)

	if _, err := svc.RefreshCustomer(context.Background()); err == nil {
		t.Fatal("RefreshCustomer returned nil error; want invalid-token error")
	}
	if session.Token() != "" {
		t.Errorf("session token = %q; want cleared", session.Token())
	}
	if svc.Token() != "" {
		t.Errorf("Token = %q; want cleared", svc.Token())
	}
	if svc.IsAuthenticated() {
		t.Error("IsAuthenticated = true; want false after forced logout")
	}
}

func TestRefreshCustomer_TransientErrorKeepsToken(t *testing.T) {
	repo := &mockCustomerRepo{
		GetCustomerFunc: func(ctx context.Context, token string) (*models.Customer, error) {
			return nil, errors.New("timeout")
		},
	}
	session := &fakeSession{token: "tok-1"}
	svc := NewAuthService(repo, session, nil)

	if _, err := svc.RefreshCustomer(context.Background()); err == nil {
		t.Fatal("RefreshCustomer returned nil error; want error")
	}
	if svc.Token() != "tok-1" {
		t.Errorf("Token = %q; want kept for retry", svc.Token())
	}
	if session.Token() != "tok-1" {
		t.Errorf("session token = %q; want kept", session.Token())
	}
}

func TestRefreshCustomer_NotAuthenticated(t *testing.T) {
	svc := NewAuthService(&mockCustomerRepo{}, &fakeSession{}, nil)

	if _, err := svc.RefreshCustomer(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("RefreshCustomer error = %v; want ErrNotAuthenticated", err)
	}
}

func TestLogout_ClearsSessionAndProfile(t *testing.T) {
	repo := &mockCustomerRepo{
		CreateAccessTokenFunc: func(ctx context.Context, email, password string) (*models.AccessToken, error) {
			return &models.AccessToken{Token: "tok-1"}, nil
		},
		GetCustomerFunc: func(ctx context.Context, token string) (*models.Customer, error) {
			return &models.Customer{ID: "cust-1"}, nil
		},
	}
	session := &fakeSession{}
	svc := NewAuthService(repo, session, nil)
	if err := svc.Login(context.Background(), "bob@example.com", "secret"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	svc.Logout()

	if session.Token() != "" {
		t.Errorf("session token = %q; want cleared", session.Token())
	}
	if svc.Customer() != nil {
		t.Error("Customer != nil after logout")
	}
	if svc.IsAuthenticated() {
		t.Error("IsAuthenticated = true after logout")
	}
}

func TestRegister_DoesNotLogIn(t *testing.T) {
	email := "new@example.com"
	repo := &mockCustomerRepo{
		CreateCustomerFunc: func(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
			return &models.Customer{ID: "cust-2", Email: email}, nil
		},
	}
	session := &fakeSession{}
	svc := NewAuthService(repo, session, nil)

	customer, err := svc.Register(context.Background(), models.CustomerInput{Email: &email})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if customer.ID != "cust-2" {
		t.Errorf("Register customer = %+v", customer)
	}
	if session.Token() != "" || svc.IsAuthenticated() {
		t.Error("Register must not establish a session")
	}
}

func TestRegister_ValidationFailure(t *testing.T) {
	email := "taken@example.com"
	repo := &mockCustomerRepo{
		CreateCustomerFunc: func(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
			return nil, shopify.UserErrors{{Code: "TAKEN", Message: "Email has already been taken"}}
		},
	}
	svc := NewAuthService(repo, &fakeSession{}, nil)

	_, err := svc.Register(context.Background(), models.CustomerInput{Email: &email})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Register error = %v; want *AuthError", err)
	}
	if authErr.Message != "Email has already been taken" {
		t.Errorf("AuthError message = %q", authErr.Message)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"07911 123456", "+447911123456"},
		{"07911123456", "+447911123456"},
		{"7911 123456", "+447911123456"},
		{"+447911123456", "+447911123456"},
		{"44 7911 123456", "+447911123456"},
		{"(202) 555-0147", "+442025550147"},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestUpdateProfile_NormalizesPhone(t *testing.T) {
	var sent string
	repo := &mockCustomerRepo{
		UpdateCustomerFunc: func(ctx context.Context, token string, input models.CustomerInput) (*models.Customer, error) {
			if input.Phone != nil {
				sent = *input.Phone
			}
			return &models.Customer{ID: "cust-1"}, nil
		},
		GetCustomerFunc: func(ctx context.Context, token string) (*models.Customer, error) {
			return &models.Customer{ID: "cust-1"}, nil
		},
	}
	svc := NewAuthService(repo, &fakeSession{token: "tok-1"}, nil)

	phone := "07911 123456"
	if _, err := svc.UpdateProfile(context.Background(), models.CustomerInput{Phone: &phone}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if sent != "+447911123456" {
		t.Errorf("phone sent = %q; want %q", sent, "+447911123456")
	}
}

func TestCreateAddress_RefreshesProfile(t *testing.T) {
	refreshed := false
	repo := &mockCustomerRepo{
		CreateAddressFunc: func(ctx context.Context, token string, input models.AddressInput) (*models.Address, error) {
			if token != "tok-1" {
				t.Errorf("CreateAddress received token = %q", token)
			}
			return &models.Address{ID: "addr-1", City: input.City}, nil
		},
		GetCustomerFunc: func(ctx context.Context, token string) (*models.Customer, error) {
			refreshed = true
			return &models.Customer{ID: "cust-1"}, nil
		},
	}
	svc := NewAuthService(repo, &fakeSession{token: "tok-1"}, nil)

	address, err := svc.CreateAddress(context.Background(), models.AddressInput{City: "Portland"})
	if err != nil {
		t.Fatalf("CreateAddress returned error: %v", err)
	}
	if address.ID != "addr-1" {
		t.Errorf("CreateAddress = %+v", address)
	}
	if !refreshed {
		t.Error("expected profile refresh after address create")
	}
}

func TestAddressOperations_RequireToken(t *testing.T) {
	svc := NewAuthService(&mockCustomerRepo{}, &fakeSession{}, nil)
	ctx := context.Background()

	if _, err := svc.CreateAddress(ctx, models.AddressInput{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("CreateAddress error = %v; want ErrNotAuthenticated", err)
	}
	if _, err := svc.UpdateAddress(ctx, "addr-1", models.AddressInput{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("UpdateAddress error = %v; want ErrNotAuthenticated", err)
	}
	if err := svc.DeleteAddress(ctx, "addr-1"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("DeleteAddress error = %v; want ErrNotAuthenticated", err)
	}
	if err := svc.SetDefaultAddress(ctx, "addr-1"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("SetDefaultAddress error = %v; want ErrNotAuthenticated", err)
	}
	if _, err := svc.OrderDetails(ctx, "order-1"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("OrderDetails error = %v; want ErrNotAuthenticated", err)
	}
}

func TestOrderDetails(t *testing.T) {
	repo := &mockCustomerRepo{
		GetOrderFunc: func(ctx context.Context, orderID string) (*models.Order, error) {
			if orderID != "order-1" {
				t.Errorf("GetOrder received orderID = %q", orderID)
			}
			return &models.Order{ID: "order-1", Name: "#1001"}, nil
		},
	}
	svc := NewAuthService(repo, &fakeSession{token: "tok-1"}, nil)

	order, err := svc.OrderDetails(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("OrderDetails returned error: %v", err)
	}
	if order.Name != "#1001" {
		t.Errorf("OrderDetails = %+v", order)
	}
}
