package connectorapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
	"github.com/cassiomorais/connector-service/internal/domain/router"
	"github.com/cassiomorais/connector-service/internal/infrastructure/observability"
	"github.com/cassiomorais/connector-service/internal/integration"
	"github.com/cassiomorais/connector-service/internal/request"
)

// ResponseHandlingFailedCode marks a success reply the connector could not map.
const ResponseHandlingFailedCode = "RESPONSE_HANDLING_FAILED"

// CallInfo names a call for logs, spans and metrics.
type CallInfo struct {
	Connector string
	Flow      string
}

// Engine sends connector requests. It never retries.
type Engine struct {
	client   *http.Client
	logger   zerolog.Logger
	metrics  *observability.Metrics
	unmasked []string
	tracer   trace.Tracer
}

// NewEngine builds an engine. metrics may be nil.
func NewEngine(client *http.Client, logger zerolog.Logger, metrics *observability.Metrics, unmaskedHeaders []string) *Engine {
	return &Engine{
		client:   client,
		logger:   logger,
		metrics:  metrics,
		unmasked: unmaskedHeaders,
		tracer:   otel.Tracer("connector-service/connectorapi"),
	}
}

// Send performs req and classifies the reply.
func (e *Engine) Send(ctx context.Context, info CallInfo, req request.Request) (Outcome, error) {
	logger := observability.ForFlow(e.logger, info.Connector, info.Flow)
	logger.Info().
		Interface("raw_connector_request", NewRawRequest(req, e.unmasked)).
		Msg("calling connector")

	ctx, span := e.tracer.Start(ctx, "connector."+info.Flow,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("connector.name", info.Connector),
			attribute.String("connector.flow", info.Flow),
			attribute.String("http.method", string(req.Method)),
		),
	)
	defer span.End()

	start := time.Now()
	outcome, err := e.send(ctx, req)
	elapsed := time.Since(start)

	if e.metrics != nil {
		e.metrics.ConnectorRequestDuration.WithLabelValues(info.Connector, info.Flow).Observe(elapsed.Seconds())
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if e.metrics != nil {
			e.metrics.ConnectorClientErrors.WithLabelValues(info.Connector, info.Flow, clientErrorKind(err)).Inc()
		}
		logger.Error().Err(err).Dur("latency", elapsed).Msg("connector call failed")
		return Outcome{}, err
	}

	span.SetAttributes(attribute.Int("http.status_code", outcome.Response.StatusCode))
	if e.metrics != nil {
		e.metrics.ConnectorRequestsTotal.WithLabelValues(info.Connector, info.Flow, outcome.Class().String()).Inc()
	}
	logger.Info().
		Int("status_code", outcome.Response.StatusCode).
		Str("outcome", outcome.Class().String()).
		Dur("latency", elapsed).
		Msg("connector responded")

	return outcome, nil
}

func (e *Engine) send(ctx context.Context, req request.Request) (Outcome, error) {
	httpReq, err := newHTTPRequest(ctx, req)
	if err != nil {
		return Outcome{}, err
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return Outcome{}, sendError(err)
	}
	defer resp.Body.Close()

	class := Classify(resp.StatusCode)
	if class == ClassUnexpected {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Outcome{}, domainErrors.NewAPIClientError(
			domainErrors.ErrUnexpectedServerResponse, fmt.Sprintf("status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, domainErrors.NewAPIClientError(domainErrors.ErrResponseDecodingFailed, "", err)
	}

	return Outcome{
		Success: class == ClassSuccess,
		Response: router.Response{
			Headers:    resp.Header,
			Body:       body,
			StatusCode: resp.StatusCode,
		},
	}, nil
}

// newHTTPRequest attaches a body to every method except GET.
func newHTTPRequest(ctx context.Context, req request.Request) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)
	if req.Body != nil && req.Method != request.MethodGet {
		data, ct, err := req.Body.Encode()
		if err != nil {
			return nil, domainErrors.NewAPIClientError(domainErrors.ErrBodySerializationFailed, req.Body.Kind().String(), err)
		}
		body = bytes.NewReader(data)
		contentType = ct
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), req.URL, body)
	if err != nil {
		return nil, domainErrors.NewAPIClientError(domainErrors.ErrRequestNotSent, "build http request", err)
	}
	for _, h := range req.Headers {
		httpReq.Header.Add(h.Name, h.Value.Expose())
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

func sendError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domainErrors.NewAPIClientError(domainErrors.ErrRequestTimeoutReceived, "", err)
	}
	return domainErrors.NewAPIClientError(domainErrors.ErrRequestNotSent, "", err)
}

func clientErrorKind(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrRequestTimeoutReceived):
		return "timeout"
	case errors.Is(err, domainErrors.ErrUnexpectedServerResponse):
		return "unexpected_status"
	case errors.Is(err, domainErrors.ErrBodySerializationFailed):
		return "encoding"
	case errors.Is(err, domainErrors.ErrResponseDecodingFailed):
		return "read"
	default:
		return "not_sent"
	}
}

// Result is one executed flow.
type Result[F, C, Req, Resp any] struct {
	RouterData *router.RouterData[F, C, Req, Resp]
	// Request is nil when the connector produced no request.
	Request *request.Request
	Outcome Outcome
}

// Execute builds the request for rd, sends it and maps the classified reply
// back onto a copy of rd through the connector contract.
func Execute[F, C, Req, Resp any](
	ctx context.Context,
	e *Engine,
	info CallInfo,
	ci integration.ConnectorIntegration[F, C, Req, Resp],
	rd *router.RouterData[F, C, Req, Resp],
) (*Result[F, C, Req, Resp], error) {
	req, err := integration.BuildRequest(ci, rd)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return &Result[F, C, Req, Resp]{RouterData: rd}, nil
	}

	outcome, err := e.Send(ctx, info, *req)
	if err != nil {
		return nil, err
	}

	res := &Result[F, C, Req, Resp]{Request: req, Outcome: outcome}
	logger := observability.ForFlow(e.logger, info.Connector, info.Flow)

	if outcome.Success {
		updated, err := ci.HandleResponse(rd, outcome.Response)
		if err != nil {
			logger.Warn().Err(err).Msg("could not map connector response")
			res.RouterData = rd.WithError(router.ErrorResponse{
				Code:       ResponseHandlingFailedCode,
				Message:    err.Error(),
				StatusCode: outcome.Response.StatusCode,
			})
			return res, nil
		}
		res.RouterData = updated
		return res, nil
	}

	errResp, err := ci.ErrorResponse(outcome.Response)
	if err != nil {
		logger.Debug().Err(err).Msg("connector error body not recognized")
		errResp = router.GenericErrorResponse(outcome.Response)
	}
	res.RouterData = rd.WithError(errResp)
	return res, nil
}
