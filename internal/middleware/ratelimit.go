package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
)

// ConnectorHeader selects the connector for a request.
const ConnectorHeader = "X-Connector"

// RateLimit caps requests per client IP and target connector.
func RateLimit(requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestsPerMinute,
		1*time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP, keyByConnector),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "rate limit exceeded",
				"code":  "rate_limit",
			})
		}),
	)
}

func keyByConnector(r *http.Request) (string, error) {
	return strings.ToLower(strings.TrimSpace(r.Header.Get(ConnectorHeader))), nil
}
