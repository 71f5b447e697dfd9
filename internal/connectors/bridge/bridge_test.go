package bridge

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
)

type input struct {
	Amount int64
	Fail   error
}

type body struct {
	Value int64 `json:"value"`
}

func (b *body) TryFrom(in input) error {
	if in.Fail != nil {
		return in.Fail
	}
	b.Value = in.Amount * 100
	return nil
}

type reply struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

func TestBridge_RequestBody(t *testing.T) {
	b := New[input, body, reply]()

	got, err := b.RequestBody(input{Amount: 3})
	require.NoError(t, err)
	assert.Equal(t, body{Value: 300}, got)
}

func TestBridge_RequestBodyWrapsPlainErrors(t *testing.T) {
	b := New[input, body, reply]()

	_, err := b.RequestBody(input{Fail: errors.New("bad input")})
	assert.ErrorIs(t, err, domainErrors.ErrRequestEncodingFailed)
}

func TestBridge_RequestBodyKeepsConnectorErrors(t *testing.T) {
	b := New[input, body, reply]()
	notImplemented := domainErrors.NewConnectorError(domainErrors.ErrNotImplemented, "mandates", nil)

	_, err := b.RequestBody(input{Fail: notImplemented})
	assert.ErrorIs(t, err, domainErrors.ErrNotImplemented)
	assert.NotErrorIs(t, err, domainErrors.ErrRequestEncodingFailed)
}

func TestBridge_ResponseBody(t *testing.T) {
	b := New[input, body, reply]()

	tests := []struct {
		name    string
		raw     string
		want    reply
		wantErr bool
	}{
		{name: "object", raw: `{"reference":"psp_1","status":"Authorised"}`, want: reply{Reference: "psp_1", Status: "Authorised"}},
		{name: "empty body", raw: "", want: reply{}},
		{name: "whitespace body", raw: "  \n", want: reply{}},
		{name: "invalid json", raw: "<html>", wantErr: true},
		{name: "wrong shape", raw: `["a"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.ResponseBody([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, domainErrors.ErrResponseDeserializationFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoRequestBody(t *testing.T) {
	b := New[input, NoRequestBody[input], reply]()

	got, err := b.RequestBody(input{Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, NoRequestBody[input]{}, got)
}

type singleton struct {
	id int
}

func TestInstance_BuildsOnce(t *testing.T) {
	var (
		mu     sync.Mutex
		builds int
	)
	build := func() *singleton {
		mu.Lock()
		defer mu.Unlock()
		builds++
		return &singleton{id: builds}
	}

	var wg sync.WaitGroup
	results := make([]*singleton, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Instance(build)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
	assert.Same(t, results[0], Instance(build))
}
