package connectorapi

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/cassiomorais/connector-service/internal/request"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RawRequest is the loggable rendering of an outbound request.
type RawRequest struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Body    any               `json:"body,omitempty"`
}

// NewRawRequest renders req for logging. Header values are shown only when
// their name is in allow; the body is the masked inner value, decoded as JSON
// when possible.
func NewRawRequest(req request.Request, allow []string) RawRequest {
	raw := RawRequest{
		URL:     req.URL,
		Method:  string(req.Method),
		Headers: request.RenderHeaders(req.Headers, allow),
	}
	if req.Body == nil {
		return raw
	}

	inner, err := req.Body.InnerValue()
	if err != nil {
		raw.Body = "<unrenderable body>"
		return raw
	}
	var parsed any
	if err := json.UnmarshalFromString(inner, &parsed); err == nil {
		raw.Body = parsed
		return raw
	}
	raw.Body = inner
	return raw
}
