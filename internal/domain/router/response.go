package router

import "net/http"

// Response is a raw connector reply as received by the HTTP engine.
type Response struct {
	Headers    http.Header
	Body       []byte
	StatusCode int
}
