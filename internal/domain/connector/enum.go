// Package connector holds the connector-independent data models shared by all
// connectors: flow-common data, per-flow requests and responses, and endpoint
// configuration.
package connector

import (
	"fmt"
	"strings"

	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
)

// ConnectorEnum identifies a payment processor.
type ConnectorEnum string

const (
	Adyen ConnectorEnum = "adyen"
)

var supported = []ConnectorEnum{Adyen}

// Supported lists the connectors compiled into this build.
func Supported() []ConnectorEnum {
	out := make([]ConnectorEnum, len(supported))
	copy(out, supported)
	return out
}

// ParseConnectorEnum resolves a connector name case-insensitively.
func ParseConnectorEnum(name string) (ConnectorEnum, error) {
	candidate := ConnectorEnum(strings.ToLower(strings.TrimSpace(name)))
	for _, c := range supported {
		if c == candidate {
			return c, nil
		}
	}
	return "", domainErrors.NewConnectorError(domainErrors.ErrUnsupportedConnector, fmt.Sprintf("connector %q", name), nil)
}

func (c ConnectorEnum) String() string {
	return string(c)
}
