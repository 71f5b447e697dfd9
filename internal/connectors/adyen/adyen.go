// Package adyen implements the Adyen checkout API.
package adyen

//go:generate go run ../../../cmd/connectorgen generate --declaration connector.yaml --output zz_generated.prerequisites.go

import (
	"net/url"

	"github.com/cassiomorais/connector-service/internal/connectors/bridge"
	"github.com/cassiomorais/connector-service/internal/domain/connector"
	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
	"github.com/cassiomorais/connector-service/internal/domain/flow"
	"github.com/cassiomorais/connector-service/internal/domain/paymentmethod"
	"github.com/cassiomorais/connector-service/internal/domain/router"
	"github.com/cassiomorais/connector-service/internal/integration"
	"github.com/cassiomorais/connector-service/internal/request"
)

const apiVersion = "v68"

func (c *Adyen[T]) ID() connector.ConnectorEnum {
	return connector.Adyen
}

func (c *Adyen[T]) Authorize() integration.PaymentAuthorize[T] {
	return authorizeFlow[T]{adyen: c}
}

type authorizeFlow[T paymentmethod.Holder[T]] struct {
	integration.Defaults[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData[T], connector.PaymentsResponseData]
	adyen *Adyen[T]
}

func (f authorizeFlow[T]) Headers(rd *connector.AuthorizeRouterData[T]) ([]request.Header, error) {
	apiKey, err := apiKeyFrom(rd.ConnectorAuthType)
	if err != nil {
		return nil, err
	}
	return []request.Header{
		{Name: "Content-Type", Value: request.NormalValue("application/json")},
		{Name: "X-API-Key", Value: request.MaskedValue(apiKey)},
	}, nil
}

func (f authorizeFlow[T]) URL(rd *connector.AuthorizeRouterData[T]) (string, error) {
	base := rd.ResourceCommonData.Connectors.Params(connector.Adyen).BaseURL
	if base == "" {
		return "", domainErrors.NewConnectorError(domainErrors.ErrFailedToObtainIntegrationURL, "adyen base url is not configured", nil)
	}
	u, err := url.JoinPath(base, apiVersion, "payments")
	if err != nil {
		return "", domainErrors.NewConnectorError(domainErrors.ErrFailedToObtainIntegrationURL, "adyen base url", err)
	}
	return u, nil
}

func (f authorizeFlow[T]) RequestBody(rd *connector.AuthorizeRouterData[T]) (request.Content, error) {
	body, err := f.adyen.authorize.RequestBody(AuthorizeInput[T]{Connector: f.adyen, RouterData: rd})
	if err != nil {
		return nil, err
	}
	return request.JSONContent{Payload: body}, nil
}

func (f authorizeFlow[T]) HandleResponse(rd *connector.AuthorizeRouterData[T], res router.Response) (*connector.AuthorizeRouterData[T], error) {
	resp, err := f.adyen.authorize.ResponseBody(res.Body)
	if err != nil {
		return nil, err
	}
	return authorizeResult(resp, rd, res.StatusCode), nil
}

func (f authorizeFlow[T]) ErrorResponse(res router.Response) (router.ErrorResponse, error) {
	parsed, err := bridge.DecodeResponse[AdyenErrorResponse](res.Body)
	if err != nil {
		return router.ErrorResponse{}, err
	}
	if parsed.ErrorCode == "" && parsed.Message == "" {
		return router.GenericErrorResponse(res), nil
	}
	return router.ErrorResponse{
		Code:                   parsed.ErrorCode,
		Message:                parsed.Message,
		Reason:                 optional(parsed.ErrorType),
		StatusCode:             res.StatusCode,
		ConnectorTransactionID: optional(parsed.PspReference),
	}, nil
}
