// Package router defines the envelope that carries a single flow through the
// connector pipeline.
package router

// RouterData is parameterized by the flow marker F, the flow-common data C, the
// flow request Req and the flow response Resp. Exactly one of the typed
// response or the error response is set at any time.
type RouterData[F, C, Req, Resp any] struct {
	Flow               F
	ResourceCommonData C
	ConnectorAuthType  AuthType
	Request            Req

	response      *Resp
	errorResponse *ErrorResponse
}

// New builds an envelope holding the default error response.
// F and Resp cannot be inferred and come first so callers may write
// New[flow.Authorize, Resp](common, auth, req).
func New[F, Resp, C, Req any](common C, auth AuthType, req Req) *RouterData[F, C, Req, Resp] {
	def := DefaultErrorResponse()
	return &RouterData[F, C, Req, Resp]{
		ResourceCommonData: common,
		ConnectorAuthType:  auth,
		Request:            req,
		errorResponse:      &def,
	}
}

// Clone returns a shallow copy that can be updated independently.
func (rd *RouterData[F, C, Req, Resp]) Clone() *RouterData[F, C, Req, Resp] {
	out := *rd
	return &out
}

// WithResponse returns a copy holding resp as the result.
func (rd *RouterData[F, C, Req, Resp]) WithResponse(resp Resp) *RouterData[F, C, Req, Resp] {
	out := rd.Clone()
	out.response = &resp
	out.errorResponse = nil
	return out
}

// WithError returns a copy holding e as the result.
func (rd *RouterData[F, C, Req, Resp]) WithError(e ErrorResponse) *RouterData[F, C, Req, Resp] {
	out := rd.Clone()
	out.response = nil
	out.errorResponse = &e
	return out
}

// Result returns the typed response or the error response; one is nil.
func (rd *RouterData[F, C, Req, Resp]) Result() (*Resp, *ErrorResponse) {
	return rd.response, rd.errorResponse
}
