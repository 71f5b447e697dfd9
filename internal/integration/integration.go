// Package integration defines the per-flow contract every connector
// implements and the pure function that turns it into an outbound request.
package integration

import (
	"github.com/cassiomorais/connector-service/internal/domain/connector"
	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
	"github.com/cassiomorais/connector-service/internal/domain/flow"
	"github.com/cassiomorais/connector-service/internal/domain/paymentmethod"
	"github.com/cassiomorais/connector-service/internal/domain/router"
	"github.com/cassiomorais/connector-service/internal/request"
)

// ConnectorIntegration is what a connector provides for one flow.
type ConnectorIntegration[F, C, Req, Resp any] interface {
	Headers(rd *router.RouterData[F, C, Req, Resp]) ([]request.Header, error)
	HTTPMethod() request.Method
	URL(rd *router.RouterData[F, C, Req, Resp]) (string, error)
	// RequestBody returns nil when the call carries no body.
	RequestBody(rd *router.RouterData[F, C, Req, Resp]) (request.Content, error)
	// HandleResponse maps a success reply onto a copy of rd.
	HandleResponse(rd *router.RouterData[F, C, Req, Resp], res router.Response) (*router.RouterData[F, C, Req, Resp], error)
	// ErrorResponse maps a failure reply.
	ErrorResponse(res router.Response) (router.ErrorResponse, error)
}

// PaymentAuthorize is the authorize contract for representation T.
type PaymentAuthorize[T paymentmethod.Holder[T]] = ConnectorIntegration[
	flow.Authorize,
	connector.PaymentFlowData,
	connector.PaymentsAuthorizeData[T],
	connector.PaymentsResponseData,
]

// ConnectorService is the full set of flows a connector supports.
type ConnectorService[T paymentmethod.Holder[T]] interface {
	ID() connector.ConnectorEnum
	Authorize() PaymentAuthorize[T]
}

// Defaults can be embedded to fill the parts of the contract a connector does
// not override. URL and HandleResponse fail with ErrFlowNotImplemented.
type Defaults[F, C, Req, Resp any] struct{}

func (Defaults[F, C, Req, Resp]) Headers(*router.RouterData[F, C, Req, Resp]) ([]request.Header, error) {
	return []request.Header{}, nil
}

func (Defaults[F, C, Req, Resp]) HTTPMethod() request.Method {
	return request.MethodPost
}

func (Defaults[F, C, Req, Resp]) URL(*router.RouterData[F, C, Req, Resp]) (string, error) {
	return "", domainErrors.NewConnectorError(domainErrors.ErrFlowNotImplemented, "url", nil)
}

func (Defaults[F, C, Req, Resp]) RequestBody(*router.RouterData[F, C, Req, Resp]) (request.Content, error) {
	return nil, nil
}

func (Defaults[F, C, Req, Resp]) HandleResponse(*router.RouterData[F, C, Req, Resp], router.Response) (*router.RouterData[F, C, Req, Resp], error) {
	return nil, domainErrors.NewConnectorError(domainErrors.ErrFlowNotImplemented, "handle response", nil)
}

func (Defaults[F, C, Req, Resp]) ErrorResponse(res router.Response) (router.ErrorResponse, error) {
	return router.GenericErrorResponse(res), nil
}

// BuildRequest assembles the outbound request for rd. It performs no I/O and
// returns the first error raised by the contract.
func BuildRequest[F, C, Req, Resp any](ci ConnectorIntegration[F, C, Req, Resp], rd *router.RouterData[F, C, Req, Resp]) (*request.Request, error) {
	url, err := ci.URL(rd)
	if err != nil {
		return nil, err
	}
	headers, err := ci.Headers(rd)
	if err != nil {
		return nil, err
	}
	body, err := ci.RequestBody(rd)
	if err != nil {
		return nil, err
	}

	req := request.NewBuilder().
		Method(ci.HTTPMethod()).
		URL(url).
		AttachDefaultHeaders().
		Headers(headers).
		Body(body).
		Build()
	return &req, nil
}
