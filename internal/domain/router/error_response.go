package router

import "net/http"

const (
	DefaultErrorCode    = "HE_00"
	DefaultErrorMessage = "Something went wrong"
	NoErrorCode         = "No error code"
	NoErrorMessage      = "No error message"
)

// ErrorResponse is the typed failure result of a flow.
type ErrorResponse struct {
	Code                   string  `json:"code"`
	Message                string  `json:"message"`
	Reason                 *string `json:"reason,omitempty"`
	StatusCode             int     `json:"status_code"`
	ConnectorTransactionID *string `json:"connector_transaction_id,omitempty"`
	NetworkDeclineCode     *string `json:"network_decline_code,omitempty"`
	NetworkAdviceCode      *string `json:"network_advice_code,omitempty"`
	NetworkErrorMessage    *string `json:"network_error_message,omitempty"`
}

// DefaultErrorResponse is the placeholder every new envelope starts with.
func DefaultErrorResponse() ErrorResponse {
	return ErrorResponse{
		Code:       DefaultErrorCode,
		Message:    DefaultErrorMessage,
		StatusCode: http.StatusInternalServerError,
	}
}

// GenericErrorResponse describes a failed call whose body could not be read
// as a connector-specific error.
func GenericErrorResponse(res Response) ErrorResponse {
	reason := string(res.Body)
	out := ErrorResponse{
		Code:       NoErrorCode,
		Message:    NoErrorMessage,
		StatusCode: res.StatusCode,
	}
	if reason != "" {
		out.Reason = &reason
	}
	return out
}
