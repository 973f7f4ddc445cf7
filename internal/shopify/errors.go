package shopify

import (
	"errors"
	"strings"
)

// ErrRemoteUnavailable reports a network or transport failure talking to the
// commerce platform. Callers surface it to the user and may retry on the
// next user action; there is no automatic retry.
var ErrRemoteUnavailable = errors.New("commerce platform unavailable")

// GraphQLError is a single entry of the top-level GraphQL errors array.
type GraphQLError struct {
	Message string `json:"message"`
}

// GraphQLErrors is the top-level errors array of a GraphQL response. The
// request reached the platform but was rejected before producing data.
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	if len(e) == 0 {
		return "graphql error"
	}
	msgs := make([]string, len(e))
	for i, ge := range e {
		msgs[i] = ge.Message
	}
	return strings.Join(msgs, "; ")
}

// UserError is a domain-level validation failure reported inside a mutation
// payload (customerUserErrors / userErrors). The platform executed the
// request and rejected it; the first message is shown to the user verbatim.
type UserError struct {
	Code    string   `json:"code,omitempty"`
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// UserErrors is a non-empty userErrors payload turned into an error.
type UserErrors []UserError

func (e UserErrors) Error() string {
	if len(e) == 0 {
		return "user error"
	}
	return e[0].Message
}

// AsUserErrors returns nil if errs is empty, otherwise the slice as an
// error. Repositories call it on every mutation payload.
func AsUserErrors(errs []UserError) error {
	if len(errs) == 0 {
		return nil
	}
	return UserErrors(errs)
}

// IsInvalidToken reports whether err carries the platform's invalid
// customer access token signature. The platform does not expose a typed
// code for this on the errors array, so the message substring is matched,
// isolated here so nothing else depends on the exact text.
func IsInvalidToken(err error) bool {
	var gqlErrs GraphQLErrors
	if errors.As(err, &gqlErrs) {
		for _, ge := range gqlErrs {
			if strings.Contains(strings.ToLower(ge.Message), "invalid token") {
				return true
			}
		}
	}
	return false
}
