package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// adminTokenHeader carries the Admin API credential. Unlike the storefront
// token, this credential is private and only the wholesale lead flow uses it.
const adminTokenHeader = "X-Shopify-Access-Token"

// AdminClient is a minimal Admin REST API transport used for wholesale lead
// capture (draft orders and metaobjects).
type AdminClient struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

// NewAdminClient returns an AdminClient for the given Admin API base URL
// (".../admin/api/{version}") and access token.
func NewAdminClient(baseURL, token string, log *zap.Logger) *AdminClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminClient{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// post sends a JSON payload to an Admin REST resource and decodes the
// response into out (may be nil).
func (c *AdminClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode admin request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build admin request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(adminTokenHeader, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("admin request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("admin API error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode admin response: %w", err)
	}
	return nil
}

// DraftOrderCustomer is the customer block of a draft order request.
type DraftOrderCustomer struct {
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	Metafields []Metafield `json:"metafields,omitempty"`
}

// Metafield is an Admin API metafield attached to a customer.
type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

// NoteAttribute is a free-form name/value pair on a draft order.
type NoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DraftOrder is the draft order resource used as the lead-capture record.
type DraftOrder struct {
	Note           string             `json:"note,omitempty"`
	Tags           []string           `json:"tags,omitempty"`
	Customer       DraftOrderCustomer `json:"customer"`
	NoteAttributes []NoteAttribute    `json:"note_attributes,omitempty"`
}

// CreateDraftOrder creates a draft order and returns its numeric id.
func (c *AdminClient) CreateDraftOrder(ctx context.Context, order DraftOrder) (int64, error) {
	var result struct {
		DraftOrder struct {
			ID int64 `json:"id"`
		} `json:"draft_order"`
	}
	payload := map[string]DraftOrder{"draft_order": order}
	if err := c.post(ctx, "/draft_orders.json", payload, &result); err != nil {
		return 0, fmt.Errorf("create draft order: %w", err)
	}
	return result.DraftOrder.ID, nil
}

// MetaobjectField is a single key/value field of a metaobject.
type MetaobjectField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CreateMetaobject creates a metaobject of the given type.
func (c *AdminClient) CreateMetaobject(ctx context.Context, objType string, fields []MetaobjectField) error {
	payload := map[string]any{
		"metaobject": map[string]any{
			"type":   objType,
			"fields": fields,
		},
	}
	if err := c.post(ctx, "/metaobjects.json", payload, nil); err != nil {
		return fmt.Errorf("create metaobject: %w", err)
	}
	return nil
}
