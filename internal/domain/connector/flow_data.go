package connector

import (
	"github.com/cassiomorais/connector-service/internal/domain/flow"
	"github.com/cassiomorais/connector-service/internal/domain/paymentmethod"
	"github.com/cassiomorais/connector-service/internal/domain/router"
)

// PaymentFlowData is the context common to every payment flow.
type PaymentFlowData struct {
	MerchantID    string
	PaymentID     string
	AttemptID     string
	Status        AttemptStatus
	PaymentMethod paymentmethod.Kind
	Description   *string
	ReturnURL     *string
	Metadata      map[string]string
	Connectors    Connectors
}

// AttemptStatus is the lifecycle state of a payment attempt.
type AttemptStatus string

const (
	AttemptStarted               AttemptStatus = "started"
	AttemptPending               AttemptStatus = "pending"
	AttemptAuthorized            AttemptStatus = "authorized"
	AttemptCharged               AttemptStatus = "charged"
	AttemptAuthenticationPending AttemptStatus = "authentication_pending"
	AttemptFailure               AttemptStatus = "failure"
)

// MandateReferenceID points at a previously stored mandate.
type MandateReferenceID struct {
	NetworkMandateID string
}

// MandateIds references a mandate to charge against.
type MandateIds struct {
	MandateID          *string
	MandateReferenceID *MandateReferenceID
}

// PaymentsAuthorizeData is the authorize request, generic over the card
// number representation T.
type PaymentsAuthorizeData[T paymentmethod.Holder[T]] struct {
	PaymentMethodData paymentmethod.PaymentMethodData[T]
	Amount            int64
	MinorAmount       int64
	Currency          string
	Confirm           bool
	MandateID         *MandateIds
}

// TransactionResponse is the successful outcome of an authorize call.
type TransactionResponse struct {
	ConnectorTransactionID          *string
	ConnectorResponseReferenceID    *string
	Status                          AttemptStatus
	IncrementalAuthorizationAllowed *bool
	StatusCode                      int
}

// PaymentsResponseData carries exactly one response variant.
type PaymentsResponseData struct {
	TransactionResponse *TransactionResponse
}

// AuthorizeRouterData is the envelope for the authorize flow.
type AuthorizeRouterData[T paymentmethod.Holder[T]] = router.RouterData[flow.Authorize, PaymentFlowData, PaymentsAuthorizeData[T], PaymentsResponseData]
