package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name: "with wrapped error",
			err: &DomainError{
				Code:    "authorize_failed",
				Message: "authorize call failed",
				Err:     errors.New("connector timeout"),
			},
			expected: "authorize call failed: connector timeout",
		},
		{
			name: "without wrapped error",
			err: &DomainError{
				Code:    "invalid_state",
				Message: "cannot authorize",
			},
			expected: "cannot authorize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestConnectorError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")

	tests := []struct {
		name     string
		err      *ConnectorError
		expected string
	}{
		{
			name:     "kind only",
			err:      NewConnectorError(ErrFailedToObtainAuthType, "", nil),
			expected: "failed to obtain authentication type",
		},
		{
			name:     "kind with detail",
			err:      NewConnectorError(ErrNotImplemented, "mandate payments", nil),
			expected: "not implemented: mandate payments",
		},
		{
			name:     "kind with detail and cause",
			err:      NewConnectorError(ErrResponseDeserializationFailed, "AdyenPaymentResponse", cause),
			expected: "failed to deserialize connector response: AdyenPaymentResponse: unexpected end of JSON input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestConnectorError_MatchesKindAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("building request: %w", NewConnectorError(ErrRequestEncodingFailed, "", cause))

	assert.ErrorIs(t, err, ErrRequestEncodingFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotImplemented)

	var connErr *ConnectorError
	assert.ErrorAs(t, err, &connErr)
	assert.Equal(t, ErrRequestEncodingFailed, connErr.Kind)
}

func TestAPIClientError(t *testing.T) {
	err := NewAPIClientError(ErrUnexpectedServerResponse, "status 600", nil)

	assert.Equal(t, "unexpected response from server: status 600", err.Error())
	assert.ErrorIs(t, err, ErrUnexpectedServerResponse)
	assert.NotErrorIs(t, err, ErrRequestNotSent)
}

func TestConversionError(t *testing.T) {
	cause := ErrInvalidCardNumber
	err := NewConversionError(SubCodeInvalidPaymentMethodData, "card number rejected", cause)

	assert.Equal(t, "INVALID_PAYMENT_METHOD_DATA: card number rejected: invalid card number", err.Error())
	assert.ErrorIs(t, err, ErrInvalidCardNumber)

	bare := NewConversionError(SubCodeMissingPaymentMethod, "payment method is required", nil)
	assert.Equal(t, "MISSING_PAYMENT_METHOD: payment method is required", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestNewDomainError(t *testing.T) {
	originalErr := errors.New("underlying error")
	err := NewDomainError("test_code", "test message", originalErr)

	assert.NotNil(t, err)
	assert.Equal(t, "test_code", err.Code)
	assert.Equal(t, "test message", err.Message)
	assert.Equal(t, originalErr, err.Unwrap())
}

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError("minor_amount", "must be greater than 0")

	assert.Equal(t, "validation failed for field minor_amount: must be greater than 0", err.Error())
	assert.Equal(t, "minor_amount", err.Field)
}
