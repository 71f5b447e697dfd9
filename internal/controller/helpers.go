package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domainErrors.ErrUnsupportedConnector, http.StatusBadRequest, "unsupported_connector"},
	{domainErrors.ErrFailedToObtainAuthType, http.StatusBadRequest, "invalid_connector_auth"},
	{domainErrors.ErrMissingRequiredField, http.StatusBadRequest, "missing_required_field"},
	{domainErrors.ErrNotImplemented, http.StatusNotImplemented, "not_implemented"},
	{domainErrors.ErrFlowNotImplemented, http.StatusNotImplemented, "not_implemented"},
	{domainErrors.ErrFailedToObtainIntegrationURL, http.StatusInternalServerError, "connector_misconfigured"},
	{domainErrors.ErrRequestTimeoutReceived, http.StatusGatewayTimeout, "connector_timeout"},
	{domainErrors.ErrRequestNotSent, http.StatusBadGateway, "connector_unreachable"},
	{domainErrors.ErrUnexpectedServerResponse, http.StatusBadGateway, "connector_unexpected_response"},
	{domainErrors.ErrResponseDecodingFailed, http.StatusBadGateway, "connector_unexpected_response"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		resp.Code = "validation_error"
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	var conversionErr *domainErrors.ConversionError
	if errors.As(err, &conversionErr) {
		resp.Code = conversionErr.SubCode
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			resp.Code = m.code
			writeJSON(w, m.status, resp)
			return
		}
	}

	var connectorErr *domainErrors.ConnectorError
	if errors.As(err, &connectorErr) {
		resp.Code = "connector_error"
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	var domainErr *domainErrors.DomainError
	if errors.As(err, &domainErr) {
		resp.Code = domainErr.Code
		resp.Error = domainErr.Message
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	resp.Code = "internal_error"
	resp.Error = "internal server error"
	writeJSON(w, http.StatusInternalServerError, resp)
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return domainErrors.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return domainErrors.NewValidationError(ve[0].Namespace(), ve[0].Tag()+" validation failed")
		}
		return domainErrors.NewValidationError("body", err.Error())
	}
	return nil
}
