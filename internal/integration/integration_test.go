package integration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
	"github.com/cassiomorais/connector-service/internal/domain/router"
	"github.com/cassiomorais/connector-service/internal/request"
)

type testFlow struct{}

type testCommon struct {
	BaseURL string
}

type testRequest struct {
	Amount int64
}

type testResponse struct {
	Reference string
}

type testRouterData = router.RouterData[testFlow, testCommon, testRequest, testResponse]

// echoConnector overrides the request-building parts of the contract.
type echoConnector struct {
	Defaults[testFlow, testCommon, testRequest, testResponse]
	headerErr error
	bodyCalls int
}

func (c *echoConnector) URL(rd *testRouterData) (string, error) {
	return rd.ResourceCommonData.BaseURL + "payments", nil
}

func (c *echoConnector) Headers(*testRouterData) ([]request.Header, error) {
	if c.headerErr != nil {
		return nil, c.headerErr
	}
	return []request.Header{
		{Name: "Content-Type", Value: request.NormalValue("application/json")},
		{Name: "Authorization", Value: request.MaskedValue("Bearer k")},
	}, nil
}

func (c *echoConnector) RequestBody(rd *testRouterData) (request.Content, error) {
	c.bodyCalls++
	return request.JSONContent{Payload: map[string]int64{"amount": rd.Request.Amount}}, nil
}

func newRouterData() *testRouterData {
	return router.New[testFlow, testResponse](testCommon{BaseURL: "https://connector.example/"}, router.TemporaryAuth{}, testRequest{Amount: 10})
}

func TestBuildRequest(t *testing.T) {
	ci := &echoConnector{}

	req, err := BuildRequest[testFlow, testCommon, testRequest, testResponse](ci, newRouterData())
	require.NoError(t, err)
	require.NotNil(t, req)

	assert.Equal(t, request.MethodPost, req.Method)
	assert.Equal(t, "https://connector.example/payments", req.URL)
	require.Len(t, req.Headers, 3)
	assert.Equal(t, "Via", req.Headers[0].Name)
	assert.Equal(t, "Content-Type", req.Headers[1].Name)
	assert.True(t, req.Headers[2].Value.IsMasked())

	body, _, err := req.Body.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":10}`, string(body))
}

func TestBuildRequest_IsDeterministic(t *testing.T) {
	ci := &echoConnector{}
	rd := newRouterData()

	first, err := BuildRequest[testFlow, testCommon, testRequest, testResponse](ci, rd)
	require.NoError(t, err)
	second, err := BuildRequest[testFlow, testCommon, testRequest, testResponse](ci, rd)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, ci.bodyCalls)

	// the envelope still holds its initial error response
	resp, errResp := rd.Result()
	assert.Nil(t, resp)
	assert.Equal(t, router.DefaultErrorCode, errResp.Code)
}

func TestBuildRequest_PropagatesErrors(t *testing.T) {
	headerErr := domainErrors.NewConnectorError(domainErrors.ErrFailedToObtainAuthType, "", nil)
	ci := &echoConnector{headerErr: headerErr}

	req, err := BuildRequest[testFlow, testCommon, testRequest, testResponse](ci, newRouterData())
	assert.Nil(t, req)
	assert.ErrorIs(t, err, domainErrors.ErrFailedToObtainAuthType)
	assert.Zero(t, ci.bodyCalls)
}

func TestDefaults(t *testing.T) {
	var d Defaults[testFlow, testCommon, testRequest, testResponse]
	rd := newRouterData()

	headers, err := d.Headers(rd)
	require.NoError(t, err)
	assert.Empty(t, headers)
	assert.Equal(t, request.MethodPost, d.HTTPMethod())

	_, err = d.URL(rd)
	assert.ErrorIs(t, err, domainErrors.ErrFlowNotImplemented)

	body, err := d.RequestBody(rd)
	require.NoError(t, err)
	assert.Nil(t, body)

	_, err = d.HandleResponse(rd, router.Response{StatusCode: 200})
	assert.ErrorIs(t, err, domainErrors.ErrFlowNotImplemented)

	errResp, err := d.ErrorResponse(router.Response{StatusCode: 502, Body: []byte("bad gateway")})
	require.NoError(t, err)
	assert.Equal(t, 502, errResp.StatusCode)
	assert.Equal(t, router.NoErrorCode, errResp.Code)
}

func TestBuildRequest_DefaultURLFails(t *testing.T) {
	var d Defaults[testFlow, testCommon, testRequest, testResponse]

	_, err := BuildRequest[testFlow, testCommon, testRequest, testResponse](d, newRouterData())
	assert.True(t, errors.Is(err, domainErrors.ErrFlowNotImplemented))
}
