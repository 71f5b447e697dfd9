package adyen

import (
	"strings"

	"github.com/cassiomorais/connector-service/internal/domain/connector"
	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
	"github.com/cassiomorais/connector-service/internal/domain/paymentmethod"
	"github.com/cassiomorais/connector-service/internal/domain/router"
)

const cardPaymentType = "scheme"

// Amount is expressed in minor units.
type Amount struct {
	Currency string `json:"currency"`
	Value    int64  `json:"value"`
}

// AdyenCard is a scheme card payment method.
type AdyenCard[T paymentmethod.Holder[T]] struct {
	Type       string                         `json:"type"`
	Number     paymentmethod.RawCardNumber[T] `json:"number"`
	Brand      *string                        `json:"brand,omitempty"`
	HolderName *string                        `json:"holderName,omitempty"`
}

// AdyenPaymentMethod embeds one pointer per supported method; exactly one is set.
type AdyenPaymentMethod[T paymentmethod.Holder[T]] struct {
	*AdyenCard[T]
}

// AdyenPaymentRequest is the body of POST /payments.
type AdyenPaymentRequest[T paymentmethod.Holder[T]] struct {
	Amount          Amount                `json:"amount"`
	MerchantAccount string                `json:"merchantAccount"`
	Reference       string                `json:"reference"`
	PaymentMethod   AdyenPaymentMethod[T] `json:"paymentMethod"`
	ReturnURL       *string               `json:"returnUrl,omitempty"`
	Metadata        map[string]string     `json:"metadata,omitempty"`
}

type adyenAuth struct {
	APIKey          string
	MerchantAccount string
}

func authFromBodyKey(auth router.AuthType) (adyenAuth, error) {
	key, ok := auth.(router.BodyKey)
	if !ok {
		return adyenAuth{}, domainErrors.NewConnectorError(domainErrors.ErrFailedToObtainAuthType, "adyen requires BodyKey credentials", nil)
	}
	return adyenAuth{APIKey: key.APIKey, MerchantAccount: key.Key1}, nil
}

func apiKeyFrom(auth router.AuthType) (string, error) {
	switch a := auth.(type) {
	case router.BodyKey:
		return a.APIKey, nil
	case router.HeaderKey:
		return a.APIKey, nil
	default:
		return "", domainErrors.NewConnectorError(domainErrors.ErrFailedToObtainAuthType, "adyen requires an api key", nil)
	}
}

// TryFrom builds the request from the authorize envelope.
func (r *AdyenPaymentRequest[T]) TryFrom(item AuthorizeInput[T]) error {
	rd := item.RouterData
	if rd == nil {
		return domainErrors.NewConnectorError(domainErrors.ErrMissingRequiredField, "router data", nil)
	}
	if m := rd.Request.MandateID; m != nil && m.MandateReferenceID != nil {
		return domainErrors.NewConnectorError(domainErrors.ErrNotImplemented, "mandate payments", nil)
	}

	auth, err := authFromBodyKey(rd.ConnectorAuthType)
	if err != nil {
		return err
	}
	pm, err := paymentMethodFrom(rd.Request.PaymentMethodData)
	if err != nil {
		return err
	}

	*r = AdyenPaymentRequest[T]{
		Amount: Amount{
			Currency: rd.Request.Currency,
			Value:    rd.Request.MinorAmount,
		},
		MerchantAccount: auth.MerchantAccount,
		Reference:       rd.ResourceCommonData.PaymentID,
		PaymentMethod:   pm,
		ReturnURL:       rd.ResourceCommonData.ReturnURL,
		Metadata:        rd.ResourceCommonData.Metadata,
	}
	return nil
}

func paymentMethodFrom[T paymentmethod.Holder[T]](data paymentmethod.PaymentMethodData[T]) (AdyenPaymentMethod[T], error) {
	switch data.Kind() {
	case paymentmethod.KindCard:
		card := &AdyenCard[T]{
			Type:   cardPaymentType,
			Number: data.Card.Number,
		}
		if data.Card.Issuer != nil {
			brand := strings.ToLower(*data.Card.Issuer)
			card.Brand = &brand
		}
		return AdyenPaymentMethod[T]{AdyenCard: card}, nil
	default:
		return AdyenPaymentMethod[T]{}, domainErrors.NewConnectorError(domainErrors.ErrNotImplemented, "payment method", nil)
	}
}

// ResultCode is Adyen's payment outcome.
type ResultCode string

const (
	ResultAuthorised       ResultCode = "Authorised"
	ResultRefused          ResultCode = "Refused"
	ResultError            ResultCode = "Error"
	ResultCancelled        ResultCode = "Cancelled"
	ResultPending          ResultCode = "Pending"
	ResultReceived         ResultCode = "Received"
	ResultRedirectShopper  ResultCode = "RedirectShopper"
	ResultIdentifyShopper  ResultCode = "IdentifyShopper"
	ResultChallengeShopper ResultCode = "ChallengeShopper"
	ResultPresentToShopper ResultCode = "PresentToShopper"
)

// AttemptStatus maps the result code onto the attempt lifecycle.
func (c ResultCode) AttemptStatus() connector.AttemptStatus {
	switch c {
	case ResultAuthorised:
		return connector.AttemptAuthorized
	case ResultRefused, ResultError, ResultCancelled:
		return connector.AttemptFailure
	case ResultRedirectShopper, ResultIdentifyShopper, ResultChallengeShopper, ResultPresentToShopper:
		return connector.AttemptAuthenticationPending
	default:
		return connector.AttemptPending
	}
}

// AdyenPaymentResponse is the body of a 2xx reply to POST /payments.
type AdyenPaymentResponse struct {
	PspReference      string            `json:"pspReference"`
	ResultCode        ResultCode        `json:"resultCode"`
	MerchantReference string            `json:"merchantReference,omitempty"`
	RefusalReason     string            `json:"refusalReason,omitempty"`
	RefusalReasonCode string            `json:"refusalReasonCode,omitempty"`
	Amount            *Amount           `json:"amount,omitempty"`
	AdditionalData    map[string]string `json:"additionalData,omitempty"`
}

// AdyenErrorResponse is the body of a 4xx or 5xx reply.
type AdyenErrorResponse struct {
	Status       int    `json:"status"`
	ErrorCode    string `json:"errorCode"`
	Message      string `json:"message"`
	ErrorType    string `json:"errorType"`
	PspReference string `json:"pspReference,omitempty"`
}

func authorizeResult[T paymentmethod.Holder[T]](resp AdyenPaymentResponse, rd *connector.AuthorizeRouterData[T], statusCode int) *connector.AuthorizeRouterData[T] {
	status := resp.ResultCode.AttemptStatus()

	if status == connector.AttemptFailure {
		code := resp.RefusalReasonCode
		if code == "" {
			code = router.NoErrorCode
		}
		message := resp.RefusalReason
		if message == "" {
			message = router.NoErrorMessage
		}
		out := rd.WithError(router.ErrorResponse{
			Code:                   code,
			Message:                message,
			Reason:                 optional(resp.RefusalReason),
			StatusCode:             statusCode,
			ConnectorTransactionID: optional(resp.PspReference),
			NetworkAdviceCode:      optional(resp.AdditionalData["merchantAdviceCode"]),
			NetworkDeclineCode:     optional(resp.AdditionalData["refusalCodeRaw"]),
			NetworkErrorMessage:    optional(resp.AdditionalData["refusalReasonRaw"]),
		})
		out.ResourceCommonData.Status = status
		return out
	}

	incremental := false
	out := rd.WithResponse(connector.PaymentsResponseData{
		TransactionResponse: &connector.TransactionResponse{
			ConnectorTransactionID:          optional(resp.PspReference),
			ConnectorResponseReferenceID:    optional(resp.MerchantReference),
			Status:                          status,
			IncrementalAuthorizationAllowed: &incremental,
			StatusCode:                      statusCode,
		},
	})
	out.ResourceCommonData.Status = status
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
