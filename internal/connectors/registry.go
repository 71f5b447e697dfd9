// Package connectors resolves connector names to their implementations.
package connectors

import (
	"fmt"

	"github.com/cassiomorais/connector-service/internal/connectors/adyen"
	"github.com/cassiomorais/connector-service/internal/domain/connector"
	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
	"github.com/cassiomorais/connector-service/internal/domain/paymentmethod"
	"github.com/cassiomorais/connector-service/internal/integration"
)

// ConnectorData is a resolved connector.
type ConnectorData[T paymentmethod.Holder[T]] struct {
	Connector integration.ConnectorService[T]
	Name      connector.ConnectorEnum
}

// GetConnectorByName returns the implementation of name for representation T.
// Names without an implementation fail with ErrUnsupportedConnector.
func GetConnectorByName[T paymentmethod.Holder[T]](name connector.ConnectorEnum) (ConnectorData[T], error) {
	switch name {
	case connector.Adyen:
		return ConnectorData[T]{Connector: adyen.New[T](), Name: name}, nil
	default:
		return ConnectorData[T]{}, domainErrors.NewConnectorError(
			domainErrors.ErrUnsupportedConnector, fmt.Sprintf("connector %q", name), nil)
	}
}
