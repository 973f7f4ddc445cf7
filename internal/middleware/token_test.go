package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenAuth(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		expectedCode  int
		expectedToken string
	}{
		{"bearer token", "Bearer tok-1", http.StatusOK, "tok-1"},
		{"no header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotToken string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotToken = GetTokenFromContext(r.Context())
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/account", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			TokenAuth(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if gotToken != tt.expectedToken {
				t.Errorf("token in context = %q; want %q", gotToken, tt.expectedToken)
			}
		})
	}
}

func TestGetTokenFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := GetTokenFromContext(req.Context()); got != "" {
		t.Errorf("GetTokenFromContext = %q; want empty", got)
	}
}
