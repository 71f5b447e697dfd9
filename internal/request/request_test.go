package request

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cassiomorais/connector-service/internal/domain/paymentmethod"
)

func TestBuilder(t *testing.T) {
	req := NewBuilder().
		Method(MethodPost).
		URL("https://connector.example/v1/payments").
		AttachDefaultHeaders().
		Headers([]Header{
			{Name: "Content-Type", Value: NormalValue("application/json")},
			{Name: "X-API-Key", Value: MaskedValue("secret")},
		}).
		Body(JSONContent{Payload: map[string]int{"amount": 10}}).
		Build()

	assert.Equal(t, MethodPost, req.Method)
	assert.Equal(t, "https://connector.example/v1/payments", req.URL)
	require.Len(t, req.Headers, 3)

	via, ok := req.Header("via")
	require.True(t, ok)
	assert.Equal(t, "connector-service", via.Expose())

	key, ok := req.Header("x-api-key")
	require.True(t, ok)
	assert.True(t, key.IsMasked())
	assert.Equal(t, "secret", key.Expose())
	assert.Equal(t, MaskedPlaceholder, key.String())

	_, ok = req.Header("authorization")
	assert.False(t, ok)
	require.NotNil(t, req.Body)
	assert.Equal(t, KindJSON, req.Body.Kind())
}

func TestBuilder_DefaultsToGetWithoutBody(t *testing.T) {
	req := NewBuilder().URL("https://connector.example").Body(nil).Build()

	assert.Equal(t, MethodGet, req.Method)
	assert.Nil(t, req.Body)
	assert.Empty(t, req.Headers)
}

func TestMaskHeaders(t *testing.T) {
	got := MaskHeaders(
		map[string]string{"authorization": "secret", "x-trace-id": "abc"},
		[]string{"x-trace-id"},
	)

	assert.Equal(t, map[string]string{
		"authorization": MaskedPlaceholder,
		"x-trace-id":    "abc",
	}, got)
}

func TestMaskHeaders_CaseInsensitiveAllowList(t *testing.T) {
	got := MaskHeaders(
		map[string]string{"Content-Type": "application/json", "X-Api-Key": "k"},
		[]string{"content-type"},
	)

	assert.Equal(t, "application/json", got["Content-Type"])
	assert.Equal(t, MaskedPlaceholder, got["X-Api-Key"])
}

func TestMaskHTTPHeader(t *testing.T) {
	h := http.Header{}
	h.Add("Accept", "application/json")
	h.Add("Accept", "text/plain")
	h.Set("Authorization", "Bearer token")

	got := MaskHTTPHeader(h, []string{"accept"})
	assert.Equal(t, "application/json, text/plain", got["Accept"])
	assert.Equal(t, MaskedPlaceholder, got["Authorization"])
}

func TestRenderHeaders_AllowListDecides(t *testing.T) {
	got := RenderHeaders([]Header{
		{Name: "Content-Type", Value: NormalValue("application/json")},
		{Name: "Via", Value: NormalValue("connector-service")},
		{Name: "X-API-Key", Value: MaskedValue("secret")},
	}, []string{"content-type"})

	assert.Equal(t, "application/json", got["Content-Type"])
	assert.Equal(t, MaskedPlaceholder, got["Via"])
	assert.Equal(t, MaskedPlaceholder, got["X-API-Key"])
}

func TestRenderHeaders_JoinsRepeatedNames(t *testing.T) {
	got := RenderHeaders([]Header{
		{Name: "Accept", Value: NormalValue("application/json")},
		{Name: "Accept", Value: NormalValue("text/plain")},
		{Name: "X-API-Key", Value: MaskedValue("first")},
		{Name: "X-API-Key", Value: MaskedValue("second")},
	}, []string{"accept"})

	assert.Len(t, got, 2)
	assert.Equal(t, "application/json, text/plain", got["Accept"])
	assert.Equal(t, MaskedPlaceholder, got["X-API-Key"])
}

type cardPayload struct {
	Amount int64                                                   `json:"amount"`
	Number paymentmethod.RawCardNumber[paymentmethod.MaskedNumber] `json:"number"`
	Holder *string                                                 `json:"holder,omitempty"`
}

func newCardPayload(t *testing.T) cardPayload {
	t.Helper()
	n, err := paymentmethod.MaskedNumber{}.FromCardNumber(4111111111111111)
	require.NoError(t, err)
	return cardPayload{Amount: 1000, Number: paymentmethod.RawCardNumber[paymentmethod.MaskedNumber]{Inner: n}}
}

func TestJSONContent_EncodeExposesAndInnerValueMasks(t *testing.T) {
	content := JSONContent{Payload: newCardPayload(t)}

	body, contentType, err := content.Encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"amount":1000,"number":"4111111111111111"}`, string(body))

	logged, err := content.InnerValue()
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":1000,"number":"411111**********"}`, logged)
	assert.NotContains(t, logged, "4111111111111111")
}

func TestMaskedJSON_PointerToSecret(t *testing.T) {
	n, err := paymentmethod.MaskedNumber{}.FromCardNumber(4111111111111111)
	require.NoError(t, err)

	out, err := MaskedJSON(struct {
		Number *paymentmethod.MaskedNumber `json:"number"`
		Empty  *paymentmethod.MaskedNumber `json:"empty"`
	}{Number: &n})
	require.NoError(t, err)
	assert.JSONEq(t, `{"number":"411111**********","empty":null}`, out)
}

func TestXMLBody(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{name: "escaped string literal", payload: json.RawMessage(`"<a>1<\/a>"`), want: "<a>1</a>"},
		{name: "plain string", payload: "<root><id>7</id></root>", want: "<root><id>7</id></root>"},
		{name: "non string payload", payload: map[string]int{"a": 1}, want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := XMLBody(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestXMLContent_Encode(t *testing.T) {
	body, contentType, err := XMLContent{Payload: "<a>1</a>"}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "text/xml", contentType)
	assert.Equal(t, "<a>1</a>", string(body))
}

func TestFormURLEncodedContent_Encode(t *testing.T) {
	payload := struct {
		Amount   int64             `json:"amount"`
		Currency string            `json:"currency"`
		Capture  bool              `json:"capture"`
		Card     map[string]string `json:"card"`
		Tags     []string          `json:"tags"`
		Skipped  *string           `json:"skipped"`
	}{
		Amount:   4111111111111111,
		Currency: "usd",
		Capture:  true,
		Card:     map[string]string{"exp_month": "03"},
		Tags:     []string{"a", "b"},
	}

	body, contentType, err := FormURLEncodedContent{Payload: payload}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)

	values, err := url.ParseQuery(string(body))
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", values.Get("amount"))
	assert.Equal(t, "usd", values.Get("currency"))
	assert.Equal(t, "true", values.Get("capture"))
	assert.Equal(t, "03", values.Get("card[exp_month]"))
	assert.Equal(t, "a", values.Get("tags[0]"))
	assert.Equal(t, "b", values.Get("tags[1]"))
	assert.False(t, values.Has("skipped"))
}

func TestFormValues_PassThrough(t *testing.T) {
	v := url.Values{"a": {"1"}}
	got, err := FormValues(v)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	got, err = FormValues(map[string]string{"b": "2"})
	require.NoError(t, err)
	assert.Equal(t, "2", got.Get("b"))

	_, err = FormValues([]int{1, 2})
	assert.Error(t, err)
}

func TestFormDataContent_Encode(t *testing.T) {
	content := FormDataContent{Fields: []FormField{
		{Name: "purpose", Value: "dispute_evidence"},
		{Name: "file", FileName: "receipt.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	}}

	body, contentType, err := content.Encode()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])

	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "purpose", part.FormName())
	value, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "dispute_evidence", string(value))

	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, "receipt.pdf", part.FileName())
	assert.Equal(t, "application/pdf", part.Header.Get("Content-Type"))

	logged, err := content.InnerValue()
	require.NoError(t, err)
	assert.Empty(t, logged)
}

func TestRawBytesContent(t *testing.T) {
	content := RawBytesContent{Data: []byte("raw")}

	body, contentType, err := content.Encode()
	require.NoError(t, err)
	assert.Equal(t, "raw", string(body))
	assert.Empty(t, contentType)
	assert.Equal(t, KindRawBytes, content.Kind())
	assert.Equal(t, "raw_bytes", content.Kind().String())
}
