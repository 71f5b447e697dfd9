package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cassiomorais/connector-service/internal/domain/connector"
	"github.com/cassiomorais/connector-service/internal/domain/router"
)

type Config struct {
	Server          ServerConfig               `mapstructure:"server" yaml:"server"`
	Proxy           ProxyConfig                `mapstructure:"proxy" yaml:"proxy"`
	Connectors      map[string]ConnectorConfig `mapstructure:"connectors" yaml:"connectors"`
	UnmaskedHeaders HeaderMaskingConfig        `mapstructure:"unmasked_headers" yaml:"unmasked_headers"`
	Observability   ObservabilityConfig        `mapstructure:"observability" yaml:"observability"`
	Auth            AuthConfig                 `mapstructure:"auth" yaml:"auth"`
	RateLimit       RateLimitConfig            `mapstructure:"rate_limit" yaml:"rate_limit"`
	InstanceID      string                     `mapstructure:"instance_id" yaml:"instance_id"`
}

type ServerConfig struct {
	Port             int           `mapstructure:"port" yaml:"port"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DefaultConnector string        `mapstructure:"default_connector" yaml:"default_connector"`
	CORS             CORSConfig    `mapstructure:"cors" yaml:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
}

// ProxyConfig shapes the outbound HTTP client.
type ProxyConfig struct {
	HTTPSURL       string        `mapstructure:"https_url" yaml:"https_url"`
	RootCAPEM      string        `mapstructure:"root_ca_pem" yaml:"root_ca_pem"`
	RootCAFile     string        `mapstructure:"root_ca_file" yaml:"root_ca_file"`
	UseSystemRoots bool          `mapstructure:"use_system_roots" yaml:"use_system_roots"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ConnectorConfig holds one connector's endpoints and default credentials.
type ConnectorConfig struct {
	BaseURL          string              `mapstructure:"base_url" yaml:"base_url"`
	DisputeBaseURL   string              `mapstructure:"dispute_base_url" yaml:"dispute_base_url,omitempty"`
	SecondaryBaseURL string              `mapstructure:"secondary_base_url" yaml:"secondary_base_url,omitempty"`
	ThirdBaseURL     string              `mapstructure:"third_base_url" yaml:"third_base_url,omitempty"`
	Auth             ConnectorAuthConfig `mapstructure:"auth" yaml:"auth"`
}

type ConnectorAuthConfig struct {
	AuthType string `mapstructure:"auth_type" yaml:"auth_type"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
	Key1     string `mapstructure:"key1" yaml:"key1"`
}

// HeaderMaskingConfig lists header names that are logged in clear.
type HeaderMaskingConfig struct {
	Keys []string `mapstructure:"keys" yaml:"keys"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTExpiry time.Duration `mapstructure:"jwt_expiry" yaml:"jwt_expiry"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

type ObservabilityConfig struct {
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint" yaml:"jaeger_endpoint"`
	TraceExporter  string `mapstructure:"trace_exporter" yaml:"trace_exporter"`
	EnableMetrics  bool   `mapstructure:"enable_metrics" yaml:"enable_metrics"`
	EnableTracing  bool   `mapstructure:"enable_tracing" yaml:"enable_tracing"`
}

// Load reads configuration from defaults, an optional config file and
// CONNECTOR_-prefixed environment variables.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("CONNECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/connector-service")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout must be positive"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.write_timeout must be positive"))
	}
	if c.Server.DefaultConnector != "" {
		if _, err := connector.ParseConnectorEnum(c.Server.DefaultConnector); err != nil {
			errs = append(errs, fmt.Errorf("server.default_connector: %w", err))
		}
	}

	if c.Proxy.HTTPSURL != "" {
		if u, err := url.Parse(c.Proxy.HTTPSURL); err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("proxy.https_url must be an absolute url"))
		}
	}
	if c.Proxy.RootCAPEM != "" && c.Proxy.RootCAFile != "" {
		errs = append(errs, fmt.Errorf("proxy.root_ca_pem and proxy.root_ca_file are mutually exclusive"))
	}
	if c.Proxy.Timeout < 0 {
		errs = append(errs, fmt.Errorf("proxy.timeout must not be negative"))
	}

	for _, name := range c.connectorNames() {
		cc := c.Connectors[name]
		if _, err := connector.ParseConnectorEnum(name); err != nil {
			errs = append(errs, fmt.Errorf("connectors.%s: %w", name, err))
			continue
		}
		if cc.BaseURL != "" {
			if u, err := url.Parse(cc.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
				errs = append(errs, fmt.Errorf("connectors.%s.base_url must be an absolute url", name))
			}
		}
		if _, err := cc.Auth.Build(); err != nil {
			errs = append(errs, fmt.Errorf("connectors.%s.auth: %w", name, err))
		}
	}

	switch strings.ToLower(c.Observability.TraceExporter) {
	case "", "jaeger", "stdout":
	default:
		errs = append(errs, fmt.Errorf("observability.trace_exporter must be jaeger or stdout, got %q", c.Observability.TraceExporter))
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.requests_per_minute must not be negative"))
	}

	env := os.Getenv("ENV")
	if env == "production" || env == "prod" {
		if c.Auth.JWTSecret == "" {
			errs = append(errs, fmt.Errorf("auth.jwt_secret required in production"))
		}
	}

	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 32 characters"))
	}

	return errors.Join(errs...)
}

// ConnectorParams converts the connectors section into endpoint params.
// Call after Validate; unknown names are skipped.
func (c *Config) ConnectorParams() connector.Connectors {
	out := make(connector.Connectors, len(c.Connectors))
	for name, cc := range c.Connectors {
		id, err := connector.ParseConnectorEnum(name)
		if err != nil {
			continue
		}
		out[id] = connector.ConnectorParams{
			BaseURL:          cc.BaseURL,
			DisputeBaseURL:   optional(cc.DisputeBaseURL),
			SecondaryBaseURL: optional(cc.SecondaryBaseURL),
			ThirdBaseURL:     optional(cc.ThirdBaseURL),
		}
	}
	return out
}

// ConnectorCredentials returns the configured default credentials per
// connector. Connectors without credentials are omitted.
func (c *Config) ConnectorCredentials() map[connector.ConnectorEnum]router.AuthType {
	out := make(map[connector.ConnectorEnum]router.AuthType)
	for name, cc := range c.Connectors {
		id, err := connector.ParseConnectorEnum(name)
		if err != nil || cc.Auth.AuthType == "" {
			continue
		}
		auth, err := cc.Auth.Build()
		if err != nil {
			continue
		}
		out[id] = auth
	}
	return out
}

// Build converts the credentials into a router.AuthType.
func (a ConnectorAuthConfig) Build() (router.AuthType, error) {
	return router.ParseAuthType(a.AuthType, a.APIKey, a.Key1)
}

// RootCA returns the configured PEM bundle, reading root_ca_file if set.
func (p ProxyConfig) RootCA() (string, error) {
	if p.RootCAFile == "" {
		return p.RootCAPEM, nil
	}
	data, err := os.ReadFile(p.RootCAFile)
	if err != nil {
		return "", fmt.Errorf("read proxy.root_ca_file: %w", err)
	}
	return string(data), nil
}

// Redacted returns a copy with secrets replaced, safe to print.
func (c Config) Redacted() Config {
	const redacted = "**MASKED**"
	out := c
	out.Connectors = make(map[string]ConnectorConfig, len(c.Connectors))
	for name, cc := range c.Connectors {
		if cc.Auth.APIKey != "" {
			cc.Auth.APIKey = redacted
		}
		if cc.Auth.Key1 != "" {
			cc.Auth.Key1 = redacted
		}
		out.Connectors[name] = cc
	}
	if out.Auth.JWTSecret != "" {
		out.Auth.JWTSecret = redacted
	}
	return out
}

func (c *Config) connectorNames() []string {
	names := make([]string, 0, len(c.Connectors))
	for name := range c.Connectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.default_connector", string(connector.Adyen))
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.cors.allow_credentials", false)

	// Outbound client defaults; zero timeout leaves the deadline to the caller
	v.SetDefault("proxy.use_system_roots", true)
	v.SetDefault("proxy.timeout", "0s")

	// Connector endpoints
	for id, params := range connector.DefaultConnectors() {
		v.SetDefault("connectors."+string(id)+".base_url", params.BaseURL)
	}

	// Headers logged in clear
	v.SetDefault("unmasked_headers.keys", []string{"content-type", "user-agent", "x-request-id"})

	// Observability defaults
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("observability.enable_metrics", true)
	v.SetDefault("observability.enable_tracing", false)
	v.SetDefault("observability.trace_exporter", "jaeger")

	// Auth defaults
	v.SetDefault("auth.jwt_expiry", "24h")

	v.SetDefault("rate_limit.requests_per_minute", 600)

	// Instance ID
	v.SetDefault("instance_id", "connector-service-1")
}
