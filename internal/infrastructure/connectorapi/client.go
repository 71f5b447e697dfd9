// Package connectorapi performs outbound connector calls and classifies
// their replies.
package connectorapi

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
)

// ClientConfig shapes the outbound HTTP client.
type ClientConfig struct {
	// ProxyURL routes https calls through a proxy when set.
	ProxyURL string
	// RootCAPEM is a PEM bundle of extra trusted roots.
	RootCAPEM string
	// UseSystemRoots keeps the system pool alongside RootCAPEM.
	UseSystemRoots bool
	// Timeout bounds a whole call; zero leaves it to the context.
	Timeout time.Duration
}

// NewClient builds a client that never follows redirects.
func NewClient(cfg ClientConfig) (*http.Client, error) {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, domainErrors.NewAPIClientError(domainErrors.ErrClientConstructionFailed, "default transport is not *http.Transport", nil)
	}
	transport := base.Clone()

	pool, err := rootPool(cfg)
	if err != nil {
		return nil, err
	}
	transport.TLSClientConfig = &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil || proxyURL.Host == "" {
			return nil, domainErrors.NewAPIClientError(domainErrors.ErrInvalidProxyConfiguration, cfg.ProxyURL, err)
		}
		transport.Proxy = httpsOnlyProxy(proxyURL)
	}

	return &http.Client{
		Transport: otelhttp.NewTransport(transport),
		Timeout:   cfg.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}, nil
}

var systemCertPool = x509.SystemCertPool

// rootPool returns nil to use the system roots unchanged.
func rootPool(cfg ClientConfig) (*x509.CertPool, error) {
	if cfg.RootCAPEM == "" {
		return nil, nil
	}

	pool := x509.NewCertPool()
	if cfg.UseSystemRoots {
		sys, err := systemCertPool()
		if err != nil {
			return nil, domainErrors.NewAPIClientError(domainErrors.ErrClientConstructionFailed, "load system roots", err)
		}
		pool = sys
	}
	if !pool.AppendCertsFromPEM([]byte(cfg.RootCAPEM)) {
		return nil, domainErrors.NewAPIClientError(domainErrors.ErrCertificateDecodingFailed, "no certificates found in PEM", nil)
	}
	return pool, nil
}

func httpsOnlyProxy(proxyURL *url.URL) func(*http.Request) (*url.URL, error) {
	return func(r *http.Request) (*url.URL, error) {
		if r.URL.Scheme == "https" {
			return proxyURL, nil
		}
		return nil, nil
	}
}
