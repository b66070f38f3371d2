// Package testutil provides test helpers for gamefinder packages.
//
// It includes an in-memory Twitch token endpoint and an in-memory IGDB
// endpoint. Both are backed by RoundTripFunc, so no sockets are opened.
package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"golang.org/x/oauth2"
)

// DefaultTokenJSON is the body served by a MockOAuth2Server without a custom handler.
const DefaultTokenJSON = `{
	"access_token": "mock-access-token",
	"expires_in": 3600,
	"token_type": "bearer"
}`

// RoundTripFunc allows inlining http.RoundTripper implementations.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls the underlying function.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// MockOAuth2Server simulates the Twitch token endpoint without real sockets.
type MockOAuth2Server struct {
	URL string
	// Ctx carries the mock client under oauth2.HTTPClient.
	Ctx context.Context

	client   *http.Client
	mu       sync.Mutex
	requests []*http.Request
	forms    []map[string]string
}

// NewMockOAuth2Server builds a mock token endpoint backed by an in-memory RoundTripper.
// If handler is nil, every request receives DefaultTokenJSON.
func NewMockOAuth2Server(tb testing.TB, handler RoundTripFunc) *MockOAuth2Server {
	tb.Helper()

	server := &MockOAuth2Server{
		URL: "https://mock-oauth.example.com",
	}

	if handler == nil {
		handler = StaticJSONResponse(DefaultTokenJSON)
	}

	rt := RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		form := make(map[string]string)
		if err := req.ParseForm(); err == nil {
			for key := range req.PostForm {
				form[key] = req.PostForm.Get(key)
			}
		}

		server.mu.Lock()
		server.requests = append(server.requests, req)
		server.forms = append(server.forms, form)
		server.mu.Unlock()

		return handler(req)
	})

	server.client = &http.Client{Transport: rt}
	server.Ctx = context.WithValue(context.Background(), oauth2.HTTPClient, server.client)

	return server
}

// Client returns an http.Client that routes every request to the mock.
func (m *MockOAuth2Server) Client() *http.Client {
	return m.client
}

// TokenURL returns the token endpoint URL of the mock.
func (m *MockOAuth2Server) TokenURL() string {
	return m.URL + "/oauth2/token"
}

// RequestCount returns how many token requests were received.
func (m *MockOAuth2Server) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of the recorded token requests.
func (m *MockOAuth2Server) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*http.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Form returns the form fields of the i-th token request.
func (m *MockOAuth2Server) Form(i int) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.forms) {
		return nil
	}
	return m.forms[i]
}

// Close is a no-op to mirror httptest.Server usage in tests.
func (m *MockOAuth2Server) Close() {}

// CatalogRequest is a request captured by MockCatalog.
type CatalogRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

// MockCatalog simulates the IGDB API without real sockets.
type MockCatalog struct {
	URL string

	transport RoundTripFunc
	mu        sync.Mutex
	requests  []CatalogRequest
}

// NewMockCatalog builds a mock IGDB endpoint. If handler is nil, every request receives "[]".
// The request body is recorded and restored before handler runs.
func NewMockCatalog(tb testing.TB, handler RoundTripFunc) *MockCatalog {
	tb.Helper()

	mock := &MockCatalog{
		URL: "https://mock-igdb.example.com/v4",
	}

	if handler == nil {
		handler = StaticJSONResponse("[]")
	}

	mock.transport = func(req *http.Request) (*http.Response, error) {
		var body []byte
		if req.Body != nil {
			var err error
			body, err = io.ReadAll(req.Body)
			if err != nil {
				return nil, err
			}
			_ = req.Body.Close()
			req.Body = io.NopCloser(bytes.NewReader(body))
		}

		mock.mu.Lock()
		mock.requests = append(mock.requests, CatalogRequest{
			Method: req.Method,
			Path:   req.URL.Path,
			Header: req.Header.Clone(),
			Body:   string(body),
		})
		mock.mu.Unlock()

		return handler(req)
	}

	return mock
}

// Transport returns the mock as an http.RoundTripper.
func (m *MockCatalog) Transport() http.RoundTripper {
	return m.transport
}

// Client returns a plain http.Client for the mock. It adds no auth headers.
func (m *MockCatalog) Client() *http.Client {
	return &http.Client{Transport: m.transport}
}

// RequestCount returns how many catalog requests were received.
func (m *MockCatalog) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of the recorded catalog requests.
func (m *MockCatalog) Requests() []CatalogRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CatalogRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent catalog request, if any.
func (m *MockCatalog) LastRequest() (CatalogRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return CatalogRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// StaticJSONResponse returns a RoundTripper that always responds 200 with the provided JSON body.
func StaticJSONResponse(body string) RoundTripFunc {
	return StatusResponse(http.StatusOK, body)
}

// StatusResponse returns a RoundTripper that always responds with the given status and body.
func StatusResponse(status int, body string) RoundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		return JSONResponse(req, status, body), nil
	}
}

// JSONResponse builds an *http.Response carrying a JSON body.
func JSONResponse(req *http.Request, status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}
