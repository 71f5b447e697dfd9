package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// AuthorisedBody is the default reply of FakeAdyen.
const AuthorisedBody = `{"pspReference":"8835511210681010","resultCode":"Authorised","merchantReference":"order_1001"}`

// RecordedRequest is one request received by FakeAdyen.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// FakeAdyen is an in-memory stand-in for the Adyen checkout API.
type FakeAdyen struct {
	mu       sync.Mutex
	server   *httptest.Server
	requests []RecordedRequest
	status   int
	body     string
	delay    time.Duration
}

// NewFakeAdyen starts a server that answers every call with AuthorisedBody.
// The server is closed when the test ends.
func NewFakeAdyen(t testing.TB) *FakeAdyen {
	t.Helper()
	f := &FakeAdyen{status: http.StatusOK, body: AuthorisedBody}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *FakeAdyen) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	status, reply, delay := f.status, f.body, f.delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}

// BaseURL is the connector base URL, with a trailing slash.
func (f *FakeAdyen) BaseURL() string {
	return f.server.URL + "/"
}

// Respond sets the reply for subsequent calls.
func (f *FakeAdyen) Respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.body = body
}

// Delay holds every subsequent reply for d.
func (f *FakeAdyen) Delay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay = d
}

// Requests returns a copy of everything received so far.
func (f *FakeAdyen) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// LastRequest returns the most recent request.
func (f *FakeAdyen) LastRequest() (RecordedRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return RecordedRequest{}, false
	}
	return f.requests[len(f.requests)-1], true
}
