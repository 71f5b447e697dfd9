package service

import (
	"github.com/cassiomorais/connector-service/internal/domain/connector"
	"github.com/cassiomorais/connector-service/internal/domain/router"
	"github.com/cassiomorais/connector-service/internal/infrastructure/connectorapi"
)

// AuthorizeResult is the outcome of one authorize call.
// Exactly one of Response and Error is set.
type AuthorizeResult struct {
	Connector  connector.ConnectorEnum
	PaymentID  string
	AttemptID  string
	Status     connector.AttemptStatus
	Class      connectorapi.Class
	StatusCode int
	Response   *connector.PaymentsResponseData
	Error      *router.ErrorResponse
	// RawResponse is the connector reply body, as received.
	RawResponse []byte
}

// Succeeded reports whether the connector accepted the payment.
func (r *AuthorizeResult) Succeeded() bool {
	return r.Error == nil
}

// AuthorizeOption customizes a single authorize call.
type AuthorizeOption func(*authorizeOptions)

type authorizeOptions struct {
	auth       router.AuthType
	merchantID string
}

// WithAuth overrides the configured credentials for the call.
func WithAuth(auth router.AuthType) AuthorizeOption {
	return func(o *authorizeOptions) {
		o.auth = auth
	}
}

// WithMerchantID sets the merchant the call is made on behalf of.
func WithMerchantID(id string) AuthorizeOption {
	return func(o *authorizeOptions) {
		o.merchantID = id
	}
}
