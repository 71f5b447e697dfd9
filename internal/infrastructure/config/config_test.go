package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cassiomorais/connector-service/internal/domain/connector"
	"github.com/cassiomorais/connector-service/internal/domain/router"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:             8080,
			ReadTimeout:      15 * time.Second,
			WriteTimeout:     15 * time.Second,
			ShutdownTimeout:  30 * time.Second,
			DefaultConnector: "adyen",
		},
		Connectors: map[string]ConnectorConfig{
			"adyen": {
				BaseURL: "https://checkout-test.adyen.com/",
				Auth:    ConnectorAuthConfig{AuthType: "BodyKey", APIKey: "key", Key1: "merchant"},
			},
		},
	}
}

func TestConfig_Validate_Success(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_InvalidServerPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"port too low", 0},
		{"port negative", -1},
		{"port too high", 99999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Port = tt.port

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "server.port")
		})
	}
}

func TestConfig_Validate_Connectors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown connector",
			mutate:  func(c *Config) { c.Connectors["stripe"] = ConnectorConfig{BaseURL: "https://api.stripe.com"} },
			wantErr: "connectors.stripe",
		},
		{
			name: "relative base url",
			mutate: func(c *Config) {
				c.Connectors["adyen"] = ConnectorConfig{BaseURL: "checkout-test.adyen.com"}
			},
			wantErr: "connectors.adyen.base_url",
		},
		{
			name: "unknown auth type",
			mutate: func(c *Config) {
				c.Connectors["adyen"] = ConnectorConfig{
					BaseURL: "https://checkout-test.adyen.com/",
					Auth:    ConnectorAuthConfig{AuthType: "SignatureKey", APIKey: "k"},
				}
			},
			wantErr: "connectors.adyen.auth",
		},
		{
			name:    "unknown default connector",
			mutate:  func(c *Config) { c.Server.DefaultConnector = "worldpay" },
			wantErr: "server.default_connector",
		},
		{
			name:    "relative proxy url",
			mutate:  func(c *Config) { c.Proxy.HTTPSURL = "proxy:3128" },
			wantErr: "proxy.https_url",
		},
		{
			name: "both root ca sources",
			mutate: func(c *Config) {
				c.Proxy.RootCAPEM = "pem"
				c.Proxy.RootCAFile = "/tmp/ca.pem"
			},
			wantErr: "mutually exclusive",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "short" },
			wantErr: "auth.jwt_secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_EmptyBaseURLAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Connectors["adyen"] = ConnectorConfig{}

	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "server.port")
	assert.Contains(t, errStr, "read_timeout")
	assert.Contains(t, errStr, "write_timeout")
}

func TestConfig_Validate_TraceExporter(t *testing.T) {
	cfg := validConfig()
	cfg.Observability.TraceExporter = "stdout"
	assert.NoError(t, cfg.Validate())

	cfg.Observability.TraceExporter = "zipkin"
	assert.ErrorContains(t, cfg.Validate(), "observability.trace_exporter")
}

func TestConfig_ConnectorParams(t *testing.T) {
	cfg := validConfig()
	cfg.Connectors["adyen"] = ConnectorConfig{
		BaseURL:        "https://checkout-test.adyen.com/",
		DisputeBaseURL: "https://ca-test.adyen.com/",
	}

	params := cfg.ConnectorParams()
	require.Contains(t, params, connector.Adyen)
	assert.Equal(t, "https://checkout-test.adyen.com/", params[connector.Adyen].BaseURL)
	require.NotNil(t, params[connector.Adyen].DisputeBaseURL)
	assert.Equal(t, "https://ca-test.adyen.com/", *params[connector.Adyen].DisputeBaseURL)
	assert.Nil(t, params[connector.Adyen].SecondaryBaseURL)
}

func TestConfig_ConnectorCredentials(t *testing.T) {
	creds := validConfig().ConnectorCredentials()
	assert.Equal(t, router.BodyKey{APIKey: "key", Key1: "merchant"}, creds[connector.Adyen])

	cfg := validConfig()
	cfg.Connectors["adyen"] = ConnectorConfig{BaseURL: "https://checkout-test.adyen.com/"}
	assert.Empty(t, cfg.ConnectorCredentials())
}

func TestConfig_Redacted(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "a-very-long-secret-used-for-signing-tokens"

	red := cfg.Redacted()
	assert.Equal(t, "**MASKED**", red.Connectors["adyen"].Auth.APIKey)
	assert.Equal(t, "**MASKED**", red.Connectors["adyen"].Auth.Key1)
	assert.Equal(t, "**MASKED**", red.Auth.JWTSecret)

	// the source is untouched
	assert.Equal(t, "key", cfg.Connectors["adyen"].Auth.APIKey)
}

func TestProxyConfig_RootCA(t *testing.T) {
	p := ProxyConfig{RootCAPEM: "inline"}
	pem, err := p.RootCA()
	require.NoError(t, err)
	assert.Equal(t, "inline", pem)

	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("from-file"), 0o600))
	pem, err = ProxyConfig{RootCAFile: path}.RootCA()
	require.NoError(t, err)
	assert.Equal(t, "from-file", pem)

	_, err = ProxyConfig{RootCAFile: filepath.Join(t.TempDir(), "missing.pem")}.RootCA()
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
proxy:
  timeout: 20s
connectors:
  adyen:
    base_url: http://localhost:8181/
    auth:
      auth_type: BodyKey
      api_key: test_key
      key1: TestMerchant
unmasked_headers:
  keys: [content-type, x-request-id]
`), 0o600))

	t.Setenv("CONNECTOR_OBSERVABILITY_LOG_LEVEL", "debug")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Proxy.Timeout)
	assert.Equal(t, "http://localhost:8181/", cfg.Connectors["adyen"].BaseURL)
	assert.Equal(t, "TestMerchant", cfg.Connectors["adyen"].Auth.Key1)
	assert.Equal(t, []string{"content-type", "x-request-id"}, cfg.UnmaskedHeaders.Keys)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "adyen", cfg.Server.DefaultConnector)
}

func TestLoadFile_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instance_id: test\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://checkout-test.adyen.com/", cfg.Connectors["adyen"].BaseURL)
	assert.Equal(t, []string{"content-type", "user-agent", "x-request-id"}, cfg.UnmaskedHeaders.Keys)
	assert.True(t, cfg.Proxy.UseSystemRoots)
	assert.Zero(t, cfg.Proxy.Timeout)
	assert.Equal(t, 600, cfg.RateLimit.RequestsPerMinute)
}

func TestLoadFile_MissingExplicitFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
