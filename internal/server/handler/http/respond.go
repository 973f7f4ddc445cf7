// Package http provides the HTTP handlers of the storefront gateway. The
// gateway is stateless: every handler forwards the request to the commerce
// platform and maps its failure modes onto HTTP status codes.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/regenefi/storefront/internal/repository"
	"github.com/regenefi/storefront/internal/shopify"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps platform failures onto HTTP statuses:
// domain validation -> 422 with the platform's first message verbatim,
// invalid customer token -> 401, unreachable platform -> 502, customer
// lookup miss -> 404, anything else -> 500.
func writeError(w http.ResponseWriter, err error) {
	var userErrs shopify.UserErrors
	switch {
	case errors.As(err, &userErrs):
		http.Error(w, userErrs.Error(), http.StatusUnprocessableEntity)
	case shopify.IsInvalidToken(err):
		http.Error(w, "invalid customer access token", http.StatusUnauthorized)
	case errors.Is(err, shopify.ErrRemoteUnavailable):
		http.Error(w, "commerce platform unavailable", http.StatusBadGateway)
	case errors.Is(err, repository.ErrCustomerNotFound):
		http.Error(w, "customer not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
