// Package request describes an outbound connector call independently of the
// HTTP client that performs it.
package request

import "strings"

// Method is an HTTP method.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Header is one outbound header.
type Header struct {
	Name  string
	Value Maskable
}

// Request is a fully formed connector call.
type Request struct {
	URL     string
	Method  Method
	Headers []Header
	Body    Content
}

// Header returns the first header named name, compared case-insensitively.
func (r Request) Header(name string) (Maskable, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return Maskable{}, false
}

// Builder assembles a Request.
type Builder struct {
	req Request
}

// NewBuilder starts a GET request with no headers and no body.
func NewBuilder() *Builder {
	return &Builder{req: Request{Method: MethodGet}}
}

func (b *Builder) Method(m Method) *Builder {
	b.req.Method = m
	return b
}

func (b *Builder) URL(u string) *Builder {
	b.req.URL = u
	return b
}

// AttachDefaultHeaders adds the headers sent on every connector call.
func (b *Builder) AttachDefaultHeaders() *Builder {
	return b.Header("Via", NormalValue("connector-service"))
}

func (b *Builder) Header(name string, value Maskable) *Builder {
	b.req.Headers = append(b.req.Headers, Header{Name: name, Value: value})
	return b
}

func (b *Builder) Headers(headers []Header) *Builder {
	b.req.Headers = append(b.req.Headers, headers...)
	return b
}

// Body sets the body; a nil content leaves the request without one.
func (b *Builder) Body(c Content) *Builder {
	b.req.Body = c
	return b
}

func (b *Builder) Build() Request {
	out := b.req
	out.Headers = append([]Header(nil), b.req.Headers...)
	return out
}
