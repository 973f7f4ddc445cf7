package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SendsTokenAndDecodesData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-123", r.Header.Get("X-Shopify-Storefront-Access-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "cartCreate")
		assert.Equal(t, "gid://shopify/Cart/1", req.Variables["cartId"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"value":"ok"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token-123", nil)

	var out struct {
		Value string `json:"value"`
	}
	err := client.Do(context.Background(), "mutation cartCreate { cartCreate { cart { id } } }",
		map[string]any{"cartId": "gid://shopify/Cart/1"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Value)
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "token", nil)

	err := client.Do(context.Background(), "query { shop { name } }", nil, nil)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestDo_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token", nil)

	err := client.Do(context.Background(), "query { shop { name } }", nil, nil)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestDo_GraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":[{"message":"Invalid token: access denied"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token", nil)

	err := client.Do(context.Background(), "query getCustomer { customer { id } }", nil, nil)
	var gqlErrs GraphQLErrors
	require.ErrorAs(t, err, &gqlErrs)
	require.Len(t, gqlErrs, 1)
	assert.Equal(t, "Invalid token: access denied", gqlErrs[0].Message)
	assert.True(t, IsInvalidToken(err))
}

func TestDo_NilOutSkipsDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"customerAddressDelete":{"deletedCustomerAddressId":"gid://1"}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token", nil)

	assert.NoError(t, client.Do(context.Background(), "mutation { x }", nil, nil))
}

func TestIsInvalidToken(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid token message", GraphQLErrors{{Message: "Invalid token: expired"}}, true},
		{"case insensitive", GraphQLErrors{{Message: "INVALID TOKEN"}}, true},
		{"other graphql error", GraphQLErrors{{Message: "Throttled"}}, false},
		{"plain error", errors.New("invalid token"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInvalidToken(tt.err))
		})
	}
}

func TestAsUserErrors(t *testing.T) {
	assert.NoError(t, AsUserErrors(nil))
	assert.NoError(t, AsUserErrors([]UserError{}))

	err := AsUserErrors([]UserError{
		{Code: "UNIDENTIFIED_CUSTOMER", Message: "Invalid email or password"},
		{Code: "OTHER", Message: "second"},
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestOperationName(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"mutation cartLinesAdd($cartId: ID!) { x }", "cartLinesAdd"},
		{"query getCustomer($token: String!) { x }", "getCustomer"},
		{"query { shop { name } }", "anonymous"},
		{"", "anonymous"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, operationName(tt.query))
	}
}
