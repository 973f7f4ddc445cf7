// Package shopify implements the transport layer for the commerce
// platform's Storefront GraphQL API and Admin REST API. Every call bypasses
// caching: the platform is the single source of truth and responses are
// mirrored, never merged.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// tokenHeader carries the public Storefront API credential on every request.
const tokenHeader = "X-Shopify-Storefront-Access-Token"

// Client is a configured Storefront GraphQL transport. Safe for concurrent
// use; it holds no per-request state.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	log      *zap.Logger
}

// NewClient returns a Client for the given GraphQL endpoint and storefront
// access token.
func NewClient(endpoint, token string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// request is the GraphQL request envelope.
type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// response is the GraphQL response envelope.
type response struct {
	Data   json.RawMessage `json:"data"`
	Errors GraphQLErrors   `json:"errors,omitempty"`
}

// Do executes a GraphQL operation and decodes the data payload into out.
// Transport failures return ErrRemoteUnavailable; a populated errors array
// returns GraphQLErrors. out may be nil when the caller ignores the data.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, c.token)

	c.log.Debug("storefront request",
		zap.String("operation", operationName(query)),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("storefront request failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrRemoteUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Error("storefront API error",
			zap.Int("status", resp.StatusCode),
			zap.String("statusText", http.StatusText(resp.StatusCode)),
		)
		return fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	var envelope response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		c.log.Warn("storefront reported errors",
			zap.String("operation", operationName(query)),
			zap.String("first", envelope.Errors[0].Message),
		)
		return envelope.Errors
	}

	c.log.Debug("storefront response",
		zap.String("operation", operationName(query)),
		zap.Int("bytes", len(envelope.Data)),
	)

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}

// operationName extracts the operation name from a GraphQL document for
// logging. Best effort; returns "anonymous" when none is declared.
func operationName(query string) string {
	tokens := strings.Fields(query)
	for i, tok := range tokens {
		if (tok == "query" || tok == "mutation") && i+1 < len(tokens) {
			name := tokens[i+1]
			if j := strings.IndexAny(name, "({"); j >= 0 {
				name = name[:j]
			}
			if name != "" {
				return name
			}
		}
	}
	return "anonymous"
}
