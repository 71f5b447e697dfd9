// Package bridge connects a connector's flow input to its request and
// response body types. The pairing is fixed at compile time by the type
// arguments of Bridge.
package bridge

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"sync"

	jsoniter "github.com/json-iterator/go"

	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RequestResponse converts a flow input into a request body and a raw reply
// into a response body.
type RequestResponse[In, ReqBody, RespBody any] interface {
	RequestBody(in In) (ReqBody, error)
	ResponseBody(raw []byte) (RespBody, error)
}

// Constructible is satisfied by *B when B can be built from In.
type Constructible[In, B any] interface {
	*B
	TryFrom(in In) error
}

// Bridge implements RequestResponse for request body B built from In and
// response body R decoded as JSON.
type Bridge[In, B, R any, PB Constructible[In, B]] struct{}

// New returns a Bridge; PB is inferred from B.
func New[In, B, R any, PB Constructible[In, B]]() RequestResponse[In, B, R] {
	return Bridge[In, B, R, PB]{}
}

func (Bridge[In, B, R, PB]) RequestBody(in In) (B, error) {
	var body B
	if err := PB(&body).TryFrom(in); err != nil {
		var connErr *domainErrors.ConnectorError
		if errors.As(err, &connErr) {
			return body, err
		}
		return body, domainErrors.NewConnectorError(domainErrors.ErrRequestEncodingFailed, typeName[B](), err)
	}
	return body, nil
}

func (Bridge[In, B, R, PB]) ResponseBody(raw []byte) (R, error) {
	return DecodeResponse[R](raw)
}

// DecodeResponse decodes raw as R. An empty body decodes as an empty object.
func DecodeResponse[R any](raw []byte) (R, error) {
	var out R
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, domainErrors.NewConnectorError(domainErrors.ErrResponseDeserializationFailed, typeName[R](), err)
	}
	return out, nil
}

// NoRequestBody is the request body of flows that send none.
type NoRequestBody[In any] struct{}

func (*NoRequestBody[In]) TryFrom(In) error { return nil }

func typeName[T any]() string {
	return fmt.Sprintf("%v", reflect.TypeFor[T]())
}

var instances sync.Map

// Instance returns the process-wide value of C, building it on first use.
// Concurrent first calls may each run build; only one result is kept.
func Instance[C any](build func() *C) *C {
	key := reflect.TypeFor[C]()
	if v, ok := instances.Load(key); ok {
		return v.(*C)
	}
	v, _ := instances.LoadOrStore(key, build())
	return v.(*C)
}
