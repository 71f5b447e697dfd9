package connector

// ConnectorParams holds the endpoints of one connector.
type ConnectorParams struct {
	BaseURL          string  `json:"base_url" yaml:"base_url"`
	DisputeBaseURL   *string `json:"dispute_base_url,omitempty" yaml:"dispute_base_url,omitempty"`
	SecondaryBaseURL *string `json:"secondary_base_url,omitempty" yaml:"secondary_base_url,omitempty"`
	ThirdBaseURL     *string `json:"third_base_url,omitempty" yaml:"third_base_url,omitempty"`
}

// NewConnectorParams builds params with only a base URL.
func NewConnectorParams(baseURL string) ConnectorParams {
	return ConnectorParams{BaseURL: baseURL}
}

// Connectors maps each connector to its endpoints.
type Connectors map[ConnectorEnum]ConnectorParams

// DefaultConnectors is the compiled-in fallback used when configuration does
// not mention a connector at all.
func DefaultConnectors() Connectors {
	return Connectors{
		Adyen: NewConnectorParams("https://checkout-test.adyen.com/"),
	}
}

// Params returns the configured endpoints for id. An id absent from c falls
// back to DefaultConnectors; an entry present with an empty BaseURL is kept
// as-is so the connector can report it.
func (c Connectors) Params(id ConnectorEnum) ConnectorParams {
	if p, ok := c[id]; ok {
		return p
	}
	return DefaultConnectors()[id]
}
