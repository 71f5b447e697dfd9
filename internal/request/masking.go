package request

import (
	"net/http"
	"reflect"
	"strings"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// Secret is implemented by values that have a log-safe rendering.
type Secret interface {
	Masked() string
}

var secretType = reflect2.TypeOfPtr((*Secret)(nil)).Elem()

// maskedAPI serializes like the wire encoder but renders every Secret through
// its Masked method.
var maskedAPI = func() jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()
	api.RegisterExtension(&secretExtension{})
	return api
}()

type secretExtension struct {
	jsoniter.DummyExtension
}

func (e *secretExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	switch typ.Kind() {
	case reflect.Interface:
		return nil
	case reflect.Ptr:
		// *T would otherwise pick up T's MarshalJSON
		if typ.Implements(secretType) {
			return &secretPtrEncoder{typ: typ}
		}
		return nil
	}
	if typ.Implements(secretType) {
		return &secretEncoder{typ: typ}
	}
	return nil
}

type secretEncoder struct {
	typ reflect2.Type
}

func (e *secretEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return false
}

func (e *secretEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString(e.typ.UnsafeIndirect(ptr).(Secret).Masked())
}

type secretPtrEncoder struct {
	typ reflect2.Type
}

func (e *secretPtrEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return *((*unsafe.Pointer)(ptr)) == nil
}

func (e *secretPtrEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	if *((*unsafe.Pointer)(ptr)) == nil {
		stream.WriteNil()
		return
	}
	stream.WriteString(e.typ.UnsafeIndirect(ptr).(Secret).Masked())
}

// MaskedJSON serializes v with every Secret masked.
func MaskedJSON(v any) (string, error) {
	return maskedAPI.MarshalToString(v)
}

// MaskHeaders returns headers with every value replaced by MaskedPlaceholder
// unless its name is in allow, compared case-insensitively.
func MaskHeaders(headers map[string]string, allow []string) map[string]string {
	out := make(map[string]string, len(headers))
	for name, value := range headers {
		if allowed(name, allow) {
			out[name] = value
			continue
		}
		out[name] = MaskedPlaceholder
	}
	return out
}

// MaskHTTPHeader is MaskHeaders for an http.Header, joining repeated values.
func MaskHTTPHeader(h http.Header, allow []string) map[string]string {
	flat := make(map[string]string, len(h))
	for name, values := range h {
		flat[name] = strings.Join(values, ", ")
	}
	return MaskHeaders(flat, allow)
}

// RenderHeaders flattens outbound headers for logging, joining repeated
// names like MaskHTTPHeader. The allow-list alone decides visibility.
func RenderHeaders(headers []Header, allow []string) map[string]string {
	flat := make(map[string]string, len(headers))
	for _, h := range headers {
		if prev, ok := flat[h.Name]; ok {
			flat[h.Name] = prev + ", " + h.Value.Expose()
			continue
		}
		flat[h.Name] = h.Value.Expose()
	}
	return MaskHeaders(flat, allow)
}

func allowed(name string, allow []string) bool {
	for _, a := range allow {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}
