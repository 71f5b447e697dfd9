package testutil

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cassiomorais/connector-service/internal/domain/connector"
	"github.com/cassiomorais/connector-service/internal/domain/router"
	"github.com/cassiomorais/connector-service/internal/infrastructure/connectorapi"
	"github.com/cassiomorais/connector-service/internal/infrastructure/observability"
	"github.com/cassiomorais/connector-service/internal/wire"
)

// TestCardNumber passes Luhn and the 13-19 digit check.
const TestCardNumber int64 = 4111111111111111

// TestAdyenAuth is a body-key credential accepted by the Adyen connector.
var TestAdyenAuth = router.BodyKey{APIKey: "test_api_key", Key1: "TestMerchantECOM"}

// NewAuthorizeRequest returns a valid card authorize request.
func NewAuthorizeRequest() wire.AuthorizeRequest {
	issuer := "VISA"
	return wire.AuthorizeRequest{
		Amount:      10,
		MinorAmount: 1000,
		Currency:    "eur",
		ReferenceID: "order_1001",
		Metadata:    map[string]string{"order": "1001"},
		PaymentMethod: wire.PaymentMethod{
			Card: &wire.CardDetails{
				CardNumber: TestCardNumber,
				CardCVC:    737,
				CardIssuer: &issuer,
			},
		},
	}
}

// NewConnectors points the Adyen connector at baseURL.
func NewConnectors(baseURL string) connector.Connectors {
	return connector.Connectors{connector.Adyen: connector.NewConnectorParams(baseURL)}
}

// NewEngine builds an outbound engine with a private metrics registry.
func NewEngine(t testing.TB, cfg connectorapi.ClientConfig) (*connectorapi.Engine, *observability.Metrics) {
	t.Helper()
	client, err := connectorapi.NewClient(cfg)
	require.NoError(t, err)
	metrics := observability.NewMetrics("test", prometheus.NewRegistry())
	return connectorapi.NewEngine(client, zerolog.Nop(), metrics, []string{"content-type"}), metrics
}
