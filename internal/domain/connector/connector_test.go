package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
)

func TestParseConnectorEnum(t *testing.T) {
	tests := []struct {
		input   string
		want    ConnectorEnum
		wantErr bool
	}{
		{input: "adyen", want: Adyen},
		{input: "ADYEN", want: Adyen},
		{input: " Adyen ", want: Adyen},
		{input: "stripe", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseConnectorEnum(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainErrors.ErrUnsupportedConnector)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnectors_Params(t *testing.T) {
	t.Run("configured entry wins", func(t *testing.T) {
		c := Connectors{Adyen: NewConnectorParams("http://localhost:9000/")}
		assert.Equal(t, "http://localhost:9000/", c.Params(Adyen).BaseURL)
	})

	t.Run("missing entry falls back to default", func(t *testing.T) {
		assert.Equal(t, "https://checkout-test.adyen.com/", Connectors{}.Params(Adyen).BaseURL)
		var nilMap Connectors
		assert.Equal(t, "https://checkout-test.adyen.com/", nilMap.Params(Adyen).BaseURL)
	})

	t.Run("empty base url is kept", func(t *testing.T) {
		c := Connectors{Adyen: ConnectorParams{}}
		assert.Empty(t, c.Params(Adyen).BaseURL)
	})
}

func TestSupported_ReturnsCopy(t *testing.T) {
	list := Supported()
	require.NotEmpty(t, list)
	list[0] = "mutated"
	assert.Equal(t, Adyen, Supported()[0])
}
