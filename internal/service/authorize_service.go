package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/cassiomorais/connector-service/internal/connectors"
	"github.com/cassiomorais/connector-service/internal/domain/connector"
	"github.com/cassiomorais/connector-service/internal/domain/conversion"
	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
	"github.com/cassiomorais/connector-service/internal/domain/flow"
	"github.com/cassiomorais/connector-service/internal/domain/paymentmethod"
	"github.com/cassiomorais/connector-service/internal/domain/router"
	"github.com/cassiomorais/connector-service/internal/infrastructure/connectorapi"
	"github.com/cassiomorais/connector-service/internal/infrastructure/observability"
	"github.com/cassiomorais/connector-service/internal/wire"
)

const (
	resultSuccess  = "success"
	resultDeclined = "declined"
	resultError    = "error"
)

// AuthorizeService runs the authorize flow against a named connector.
type AuthorizeService struct {
	engine      *connectorapi.Engine
	connectors  connector.Connectors
	credentials map[connector.ConnectorEnum]router.AuthType
	logger      zerolog.Logger
	metrics     *observability.Metrics
}

// NewAuthorizeService creates a new AuthorizeService.
// credentials may be nil; metrics may be nil.
func NewAuthorizeService(
	engine *connectorapi.Engine,
	connectorParams connector.Connectors,
	credentials map[connector.ConnectorEnum]router.AuthType,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *AuthorizeService {
	if connectorParams == nil {
		connectorParams = connector.DefaultConnectors()
	}
	return &AuthorizeService{
		engine:      engine,
		connectors:  connectorParams,
		credentials: credentials,
		logger:      logger,
		metrics:     metrics,
	}
}

// Authorize converts req, sends it to the connector and maps the reply.
// A connector decline is returned as a result with Error set, not as an error.
func (s *AuthorizeService) Authorize(
	ctx context.Context,
	req wire.AuthorizeRequest,
	id connector.ConnectorEnum,
	opts ...AuthorizeOption,
) (*AuthorizeResult, error) {
	var o authorizeOptions
	for _, opt := range opts {
		opt(&o)
	}

	res, err := authorize[paymentmethod.DefaultHolder](ctx, s, req, id, o)
	if err != nil {
		s.countConversion(err)
		s.count(id, resultError)
		return nil, err
	}
	if res.Succeeded() {
		s.count(id, resultSuccess)
	} else {
		s.count(id, resultDeclined)
	}
	return res, nil
}

func authorize[T paymentmethod.Holder[T]](
	ctx context.Context,
	s *AuthorizeService,
	req wire.AuthorizeRequest,
	id connector.ConnectorEnum,
	o authorizeOptions,
) (*AuthorizeResult, error) {
	data, err := connectors.GetConnectorByName[T](id)
	if err != nil {
		return nil, err
	}

	common, err := conversion.PaymentFlowDataFrom(req, s.connectors, conversion.Metadata{MerchantID: o.merchantID})
	if err != nil {
		return nil, err
	}
	authData, err := conversion.AuthorizeDataFrom[T](req)
	if err != nil {
		return nil, err
	}

	logger := observability.ForFlow(s.logger, id.String(), flow.Authorize{}.Name()).With().
		Str("payment_id", common.PaymentID).
		Str("attempt_id", common.AttemptID).
		Logger()

	rd := router.New[flow.Authorize, connector.PaymentsResponseData](common, s.authFor(id, o), authData)
	info := connectorapi.CallInfo{Connector: id.String(), Flow: flow.Authorize{}.Name()}

	executed, err := connectorapi.Execute(ctx, s.engine, info, data.Connector.Authorize(), rd)
	if err != nil {
		logger.Error().Err(err).Msg("authorize call failed")
		return nil, err
	}

	out := &AuthorizeResult{
		Connector:   id,
		PaymentID:   executed.RouterData.ResourceCommonData.PaymentID,
		AttemptID:   executed.RouterData.ResourceCommonData.AttemptID,
		Status:      executed.RouterData.ResourceCommonData.Status,
		Class:       executed.Outcome.Class(),
		StatusCode:  executed.Outcome.Response.StatusCode,
		RawResponse: executed.Outcome.Response.Body,
	}
	out.Response, out.Error = executed.RouterData.Result()
	if out.Error != nil && out.Status == connector.AttemptStarted {
		out.Status = connector.AttemptFailure
	}

	logger.Info().
		Str("status", string(out.Status)).
		Int("status_code", out.StatusCode).
		Bool("declined", out.Error != nil).
		Msg("authorize completed")
	return out, nil
}

// authFor prefers the per-call credential, then the configured one.
func (s *AuthorizeService) authFor(id connector.ConnectorEnum, o authorizeOptions) router.AuthType {
	if o.auth != nil {
		return o.auth
	}
	if auth, ok := s.credentials[id]; ok && auth != nil {
		return auth
	}
	return router.TemporaryAuth{}
}

func (s *AuthorizeService) count(id connector.ConnectorEnum, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.AuthorizeTotal.WithLabelValues(id.String(), result).Inc()
}

func (s *AuthorizeService) countConversion(err error) {
	if s.metrics == nil {
		return
	}
	var convErr *domainErrors.ConversionError
	if errors.As(err, &convErr) {
		s.metrics.ConversionFails.WithLabelValues(convErr.SubCode).Inc()
	}
}
