package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cassiomorais/connector-service/internal/domain/connector"
	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
	"github.com/cassiomorais/connector-service/internal/domain/router"
	customMW "github.com/cassiomorais/connector-service/internal/middleware"
	"github.com/cassiomorais/connector-service/internal/service"
	"github.com/cassiomorais/connector-service/internal/wire"
)

// Request headers carrying per-call connector credentials and merchant.
const (
	HeaderAuthType   = "X-Auth"
	HeaderAPIKey     = "X-Api-Key"
	HeaderKey1       = "X-Key1"
	HeaderMerchantID = "X-Merchant-Id"
)

// Authorizer is the service behind the authorize endpoints.
type Authorizer interface {
	Authorize(ctx context.Context, req wire.AuthorizeRequest, id connector.ConnectorEnum, opts ...service.AuthorizeOption) (*service.AuthorizeResult, error)
}

// AuthorizeController handles authorize HTTP requests.
type AuthorizeController struct {
	service          Authorizer
	connectors       connector.Connectors
	defaultConnector connector.ConnectorEnum
}

// NewAuthorizeController creates a new AuthorizeController.
func NewAuthorizeController(svc Authorizer, connectors connector.Connectors, defaultConnector connector.ConnectorEnum) *AuthorizeController {
	if defaultConnector == "" {
		defaultConnector = connector.Adyen
	}
	return &AuthorizeController{
		service:          svc,
		connectors:       connectors,
		defaultConnector: defaultConnector,
	}
}

// Authorize handles POST /api/v1/authorize. The connector comes from the
// X-Connector header, falling back to the configured default.
func (h *AuthorizeController) Authorize(w http.ResponseWriter, r *http.Request) {
	name := r.Header.Get(customMW.ConnectorHeader)
	if name == "" {
		name = h.defaultConnector.String()
	}
	h.authorize(w, r, name)
}

// AuthorizeWith handles POST /api/v1/connectors/{name}/authorize
func (h *AuthorizeController) AuthorizeWith(w http.ResponseWriter, r *http.Request) {
	h.authorize(w, r, chi.URLParam(r, "name"))
}

// ListConnectors handles GET /api/v1/connectors
func (h *AuthorizeController) ListConnectors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toConnectorsResponse(h.connectors, h.defaultConnector))
}

func (h *AuthorizeController) authorize(w http.ResponseWriter, r *http.Request, name string) {
	id, err := connector.ParseConnectorEnum(name)
	if err != nil {
		writeError(w, err)
		return
	}

	var req wire.AuthorizeRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	opts, err := callOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.service.Authorize(r.Context(), req, id, opts...)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewAuthorizeResponse(res))
}

// callOptions reads per-call credentials and merchant. A token-bound merchant
// takes precedence over the header.
func callOptions(r *http.Request) ([]service.AuthorizeOption, error) {
	var opts []service.AuthorizeOption

	if tag := strings.TrimSpace(r.Header.Get(HeaderAuthType)); tag != "" {
		auth, err := router.ParseAuthType(tag, r.Header.Get(HeaderAPIKey), r.Header.Get(HeaderKey1))
		if err != nil {
			return nil, domainErrors.NewValidationError(HeaderAuthType, err.Error())
		}
		opts = append(opts, service.WithAuth(auth))
	}

	if merchant, ok := customMW.GetMerchantID(r.Context()); ok {
		opts = append(opts, service.WithMerchantID(merchant))
	} else if merchant := r.Header.Get(HeaderMerchantID); merchant != "" {
		opts = append(opts, service.WithMerchantID(merchant))
	}

	return opts, nil
}
