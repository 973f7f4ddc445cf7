package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/regenefi/storefront/internal/models"
)

// WholesaleAPI defines the inquiry intake required by the WholesaleHandler.
type WholesaleAPI interface {
	CreateInquiry(ctx context.Context, inquiry models.WholesaleInquiry) (string, error)
}

// WholesaleHandler handles HTTP requests for wholesale applications.
type WholesaleHandler struct {
	Wholesale WholesaleAPI
}

// InquiryResponse carries the reference assigned to a submitted inquiry.
type InquiryResponse struct {
	Reference string `json:"reference"`
}

// Create handles POST /api/wholesale.
func (h *WholesaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var inquiry models.WholesaleInquiry
	if err := json.NewDecoder(r.Body).Decode(&inquiry); err != nil || inquiry.Email == "" || inquiry.BusinessName == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	reference, err := h.Wholesale.CreateInquiry(r.Context(), inquiry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, InquiryResponse{Reference: reference})
}
