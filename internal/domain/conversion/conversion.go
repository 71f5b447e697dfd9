// Package conversion normalizes front-end requests into the internal models.
package conversion

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cassiomorais/connector-service/internal/domain/connector"
	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
	"github.com/cassiomorais/connector-service/internal/domain/paymentmethod"
	"github.com/cassiomorais/connector-service/internal/wire"
)

const (
	DefaultCurrency   = "USD"
	DefaultMerchantID = "default"
)

// Metadata is the caller context that travels alongside a request.
type Metadata struct {
	MerchantID string
}

// CardFromDetails builds a Card using T's own conversion from the wire number.
func CardFromDetails[T paymentmethod.Holder[T]](d wire.CardDetails) (paymentmethod.Card[T], error) {
	var zero T
	inner, err := zero.FromCardNumber(d.CardNumber)
	if err != nil {
		return paymentmethod.Card[T]{}, domainErrors.NewConversionError(
			domainErrors.SubCodeInvalidPaymentMethodData, "card number rejected", err)
	}
	return paymentmethod.Card[T]{
		Number: paymentmethod.RawCardNumber[T]{Inner: inner},
		Issuer: d.CardIssuer,
	}, nil
}

// PaymentMethodDataFrom converts the wire payment method.
func PaymentMethodDataFrom[T paymentmethod.Holder[T]](pm wire.PaymentMethod) (paymentmethod.PaymentMethodData[T], error) {
	switch {
	case pm.Card != nil:
		card, err := CardFromDetails[T](*pm.Card)
		if err != nil {
			return paymentmethod.PaymentMethodData[T]{}, err
		}
		return paymentmethod.NewCardData(card), nil
	default:
		return paymentmethod.PaymentMethodData[T]{}, domainErrors.NewConversionError(
			domainErrors.SubCodeMissingPaymentMethod, "payment method is required", nil)
	}
}

// AuthorizeDataFrom converts an authorize request.
func AuthorizeDataFrom[T paymentmethod.Holder[T]](req wire.AuthorizeRequest) (connector.PaymentsAuthorizeData[T], error) {
	if req.MinorAmount <= 0 || req.Amount < 0 {
		return connector.PaymentsAuthorizeData[T]{}, domainErrors.NewConversionError(
			domainErrors.SubCodeInvalidAmount, "amount must be positive", domainErrors.ErrInvalidAmount)
	}

	pmd, err := PaymentMethodDataFrom[T](req.PaymentMethod)
	if err != nil {
		return connector.PaymentsAuthorizeData[T]{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	return connector.PaymentsAuthorizeData[T]{
		PaymentMethodData: pmd,
		Amount:            req.Amount,
		MinorAmount:       req.MinorAmount,
		Currency:          currency,
		Confirm:           true,
	}, nil
}

// PaymentFlowDataFrom builds the flow-common context for req.
func PaymentFlowDataFrom(req wire.AuthorizeRequest, connectors connector.Connectors, md Metadata) (connector.PaymentFlowData, error) {
	if req.PaymentMethod.Card == nil {
		return connector.PaymentFlowData{}, domainErrors.NewConversionError(
			domainErrors.SubCodeMissingPaymentMethod, "payment method is required", nil)
	}

	merchantID := md.MerchantID
	if merchantID == "" {
		merchantID = DefaultMerchantID
	}
	paymentID := req.ReferenceID
	if paymentID == "" {
		paymentID = "pay_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	return connector.PaymentFlowData{
		MerchantID:    merchantID,
		PaymentID:     paymentID,
		AttemptID:     "att_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Status:        connector.AttemptStarted,
		PaymentMethod: paymentmethod.KindCard,
		Description:   req.Description,
		ReturnURL:     req.ReturnURL,
		Metadata:      req.Metadata,
		Connectors:    connectors,
	}, nil
}
