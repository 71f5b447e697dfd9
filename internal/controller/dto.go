package controller

import (
	"github.com/cassiomorais/connector-service/internal/domain/connector"
	"github.com/cassiomorais/connector-service/internal/service"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AuthorizeResponse is the reply to an authorize call. A decline from the
// connector is a normal reply with Error set.
type AuthorizeResponse struct {
	Connector                       string                `json:"connector"`
	PaymentID                       string                `json:"payment_id"`
	AttemptID                       string                `json:"attempt_id"`
	Status                          string                `json:"status"`
	ConnectorStatusCode             int                   `json:"connector_status_code,omitempty"`
	ConnectorTransactionID          *string               `json:"connector_transaction_id,omitempty"`
	ConnectorResponseReferenceID    *string               `json:"connector_response_reference_id,omitempty"`
	IncrementalAuthorizationAllowed *bool                 `json:"incremental_authorization_allowed,omitempty"`
	Error                           *ConnectorErrorDetail `json:"error,omitempty"`
}

// ConnectorErrorDetail is the connector's reason for not authorizing.
type ConnectorErrorDetail struct {
	Code                string  `json:"code"`
	Message             string  `json:"message"`
	Reason              *string `json:"reason,omitempty"`
	NetworkDeclineCode  *string `json:"network_decline_code,omitempty"`
	NetworkAdviceCode   *string `json:"network_advice_code,omitempty"`
	NetworkErrorMessage *string `json:"network_error_message,omitempty"`
}

// ConnectorsResponse lists the connectors this build can route to.
type ConnectorsResponse struct {
	Connectors []ConnectorInfo `json:"connectors"`
	Default    string          `json:"default"`
}

type ConnectorInfo struct {
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
}

// NewAuthorizeResponse renders a service result for clients.
func NewAuthorizeResponse(res *service.AuthorizeResult) AuthorizeResponse {
	out := AuthorizeResponse{
		Connector:           res.Connector.String(),
		PaymentID:           res.PaymentID,
		AttemptID:           res.AttemptID,
		Status:              string(res.Status),
		ConnectorStatusCode: res.StatusCode,
	}
	if res.Response != nil && res.Response.TransactionResponse != nil {
		tx := res.Response.TransactionResponse
		out.ConnectorTransactionID = tx.ConnectorTransactionID
		out.ConnectorResponseReferenceID = tx.ConnectorResponseReferenceID
		out.IncrementalAuthorizationAllowed = tx.IncrementalAuthorizationAllowed
	}
	if e := res.Error; e != nil {
		out.ConnectorTransactionID = e.ConnectorTransactionID
		out.Error = &ConnectorErrorDetail{
			Code:                e.Code,
			Message:             e.Message,
			Reason:              e.Reason,
			NetworkDeclineCode:  e.NetworkDeclineCode,
			NetworkAdviceCode:   e.NetworkAdviceCode,
			NetworkErrorMessage: e.NetworkErrorMessage,
		}
	}
	return out
}

func toConnectorsResponse(params connector.Connectors, def connector.ConnectorEnum) ConnectorsResponse {
	supported := connector.Supported()
	out := ConnectorsResponse{Connectors: make([]ConnectorInfo, 0, len(supported)), Default: def.String()}
	for _, id := range supported {
		out.Connectors = append(out.Connectors, ConnectorInfo{Name: id.String(), BaseURL: params.Params(id).BaseURL})
	}
	return out
}
