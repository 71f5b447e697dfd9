package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Connector errors
	ErrFailedToObtainIntegrationURL  = errors.New("failed to obtain integration url")
	ErrRequestEncodingFailed         = errors.New("failed to encode connector request")
	ErrResponseDeserializationFailed = errors.New("failed to deserialize connector response")
	ErrResponseHandlingFailed        = errors.New("failed to handle connector response")
	ErrFailedToObtainAuthType        = errors.New("failed to obtain authentication type")
	ErrMissingRequiredField          = errors.New("missing required field")
	ErrNotImplemented                = errors.New("not implemented")
	ErrFlowNotImplemented            = errors.New("flow not implemented")
	ErrUnsupportedConnector          = errors.New("unsupported connector")

	// API client errors
	ErrInvalidProxyConfiguration = errors.New("invalid proxy configuration")
	ErrCertificateDecodingFailed = errors.New("failed to decode root certificate")
	ErrClientConstructionFailed  = errors.New("failed to construct http client")
	ErrBodySerializationFailed   = errors.New("failed to serialize request body")
	ErrRequestTimeoutReceived    = errors.New("request timeout received")
	ErrRequestNotSent            = errors.New("request not sent")
	ErrResponseDecodingFailed    = errors.New("failed to read response body")
	ErrUnexpectedServerResponse  = errors.New("unexpected response from server")

	// Conversion errors
	ErrInvalidPaymentMethodData = errors.New("invalid payment method data")
	ErrMissingPaymentMethod     = errors.New("missing payment method")
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrInvalidCardNumber        = errors.New("invalid card number")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// Conversion sub codes carried by ConversionError.
const (
	SubCodeInvalidPaymentMethodData = "INVALID_PAYMENT_METHOD_DATA"
	SubCodeMissingPaymentMethod     = "MISSING_PAYMENT_METHOD"
	SubCodeInvalidAmount            = "INVALID_AMOUNT"
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ConnectorError is raised while building a connector request or reading its response.
// Kind is one of the connector sentinels above.
type ConnectorError struct {
	Kind   error
	Detail string
	Err    error
}

func (e *ConnectorError) Error() string {
	return join(e.Kind, e.Detail, e.Err)
}

func (e *ConnectorError) Unwrap() []error {
	return compact(e.Kind, e.Err)
}

// NewConnectorError creates a new connector error
func NewConnectorError(kind error, detail string, err error) *ConnectorError {
	return &ConnectorError{Kind: kind, Detail: detail, Err: err}
}

// APIClientError is raised by the outbound HTTP engine.
type APIClientError struct {
	Kind   error
	Detail string
	Err    error
}

func (e *APIClientError) Error() string {
	return join(e.Kind, e.Detail, e.Err)
}

func (e *APIClientError) Unwrap() []error {
	return compact(e.Kind, e.Err)
}

// NewAPIClientError creates a new API client error
func NewAPIClientError(kind error, detail string, err error) *APIClientError {
	return &APIClientError{Kind: kind, Detail: detail, Err: err}
}

// ConversionError is raised when a front-end request cannot be normalized.
type ConversionError struct {
	SubCode string
	Message string
	Err     error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.SubCode, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.SubCode, e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a new conversion error
func NewConversionError(subCode, message string, err error) *ConversionError {
	return &ConversionError{SubCode: subCode, Message: message, Err: err}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

func join(kind error, detail string, err error) string {
	parts := make([]string, 0, 3)
	if kind != nil {
		parts = append(parts, kind.Error())
	}
	if detail != "" {
		parts = append(parts, detail)
	}
	if err != nil {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, ": ")
}

func compact(errs ...error) []error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
