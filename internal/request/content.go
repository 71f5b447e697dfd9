package request

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// ContentKind tags the body encoding.
type ContentKind int

const (
	KindJSON ContentKind = iota
	KindFormURLEncoded
	KindFormData
	KindXML
	KindRawBytes
)

func (k ContentKind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindFormURLEncoded:
		return "form_url_encoded"
	case KindFormData:
		return "form_data"
	case KindXML:
		return "xml"
	case KindRawBytes:
		return "raw_bytes"
	default:
		return "unknown"
	}
}

// Content is a request body. The set of implementations is closed.
type Content interface {
	Kind() ContentKind
	// Encode renders the body for the wire and returns the Content-Type to
	// send, or "" to leave the header to the connector.
	Encode() ([]byte, string, error)
	// InnerValue renders the body for logs with secrets masked.
	InnerValue() (string, error)

	isContent()
}

var wireAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONContent is serialized as JSON.
type JSONContent struct {
	Payload any
}

func (JSONContent) Kind() ContentKind { return KindJSON }
func (JSONContent) isContent()        {}

func (c JSONContent) Encode() ([]byte, string, error) {
	data, err := wireAPI.Marshal(c.Payload)
	if err != nil {
		return nil, "", fmt.Errorf("encode json body: %w", err)
	}
	return data, "application/json", nil
}

func (c JSONContent) InnerValue() (string, error) {
	return maskedAPI.MarshalToString(c.Payload)
}

// FormURLEncodedContent is serialized as application/x-www-form-urlencoded.
// Nested objects flatten to parent[child] keys.
type FormURLEncodedContent struct {
	Payload any
}

func (FormURLEncodedContent) Kind() ContentKind { return KindFormURLEncoded }
func (FormURLEncodedContent) isContent()        {}

func (c FormURLEncodedContent) Encode() ([]byte, string, error) {
	values, err := FormValues(c.Payload)
	if err != nil {
		return nil, "", err
	}
	return []byte(values.Encode()), "application/x-www-form-urlencoded", nil
}

func (c FormURLEncodedContent) InnerValue() (string, error) {
	return maskedAPI.MarshalToString(c.Payload)
}

// FormField is one multipart field. A non-nil Data makes it a file part.
type FormField struct {
	Name        string
	Value       string
	FileName    string
	ContentType string
	Data        []byte
}

// FormDataContent is serialized as multipart/form-data.
type FormDataContent struct {
	Fields []FormField
}

func (FormDataContent) Kind() ContentKind { return KindFormData }
func (FormDataContent) isContent()        {}

func (c FormDataContent) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range c.Fields {
		if f.Data == nil {
			if err := w.WriteField(f.Name, f.Value); err != nil {
				return nil, "", fmt.Errorf("write form field %s: %w", f.Name, err)
			}
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Name, f.FileName))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create form part %s: %w", f.Name, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("write form part %s: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// InnerValue is empty: multipart bodies are not logged.
func (FormDataContent) InnerValue() (string, error) {
	return "", nil
}

// XMLContent carries a payload whose JSON serialization is a string literal
// holding the XML document.
type XMLContent struct {
	Payload any
}

func (XMLContent) Kind() ContentKind { return KindXML }
func (XMLContent) isContent()        {}

func (c XMLContent) Encode() ([]byte, string, error) {
	body, err := XMLBody(c.Payload)
	if err != nil {
		return nil, "", err
	}
	return []byte(body), "text/xml", nil
}

func (c XMLContent) InnerValue() (string, error) {
	return maskedAPI.MarshalToString(c.Payload)
}

// RawBytesContent is sent verbatim.
type RawBytesContent struct {
	Data []byte
}

func (RawBytesContent) Kind() ContentKind { return KindRawBytes }
func (RawBytesContent) isContent()        {}

func (c RawBytesContent) Encode() ([]byte, string, error) {
	return c.Data, "", nil
}

func (c RawBytesContent) InnerValue() (string, error) {
	return string(c.Data), nil
}

// XMLBody serializes payload to JSON and, when the result is a JSON string
// literal, returns it unescaped.
func XMLBody(payload any) (string, error) {
	data, err := wireAPI.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode xml body: %w", err)
	}
	var s string
	if err := wireAPI.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	return string(data), nil
}

// FormValues flattens payload into form values.
func FormValues(payload any) (url.Values, error) {
	switch v := payload.(type) {
	case url.Values:
		return v, nil
	case map[string]string:
		out := make(url.Values, len(v))
		for k, val := range v {
			out.Set(k, val)
		}
		return out, nil
	}

	data, err := wireAPI.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode form body: %w", err)
	}
	var tree map[string]any
	dec := wireAPI.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("form body must serialize to an object: %w", err)
	}
	out := make(url.Values)
	flatten("", tree, out)
	return out, nil
}

func flatten(prefix string, node any, out url.Values) {
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(formKey(prefix, k), v[k], out)
		}
	case []any:
		for i, item := range v {
			flatten(formKey(prefix, strconv.Itoa(i)), item, out)
		}
	case nil:
	case string:
		out.Add(prefix, v)
	case bool:
		out.Add(prefix, strconv.FormatBool(v))
	case float64:
		out.Add(prefix, strconv.FormatFloat(v, 'f', -1, 64))
	case fmt.Stringer:
		out.Add(prefix, v.String())
	default:
		out.Add(prefix, fmt.Sprint(v))
	}
}

func formKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "[" + key + "]"
}
