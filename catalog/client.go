package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the IGDB v4 API root.
	DefaultBaseURL = "https://api.igdb.com/v4"

	// maxErrorBody caps how much of a failed response is kept in a QueryError.
	maxErrorBody = 512
)

// Client issues IGDB query-language requests.
//
// The underlying http.Client is expected to authenticate requests, typically
// with an httpclient.OAuth2Transport. Client itself adds no credentials.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// ClientOption is a functional option for configuring Client.
type ClientOption func(*Client)

// WithBaseURL overrides the IGDB API root.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithLogger sets the logger used for per-query debug output.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a catalog client on top of an authenticated HTTP client.
// A nil httpClient falls back to http.DefaultClient.
func NewClient(httpClient *http.Client, opts ...ClientOption) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Query posts body to the given IGDB endpoint (e.g. "games") and decodes the
// JSON array it returns.
//
// A non-2xx response yields a *QueryError. Token failures from the transport
// are returned wrapped, so errors.As reaches the oauth2client error types.
func Query[T any](ctx context.Context, c *Client, endpoint, body string) ([]T, error) {
	var results []T
	if err := c.post(ctx, endpoint, body, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// post performs a single query request and decodes the response into result.
func (c *Client) post(ctx context.Context, endpoint, body string, result any) error {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("catalog: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "text/plain")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("igdb query",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &QueryError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(errBody),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("catalog: failed to decode %s response: %w", endpoint, err)
	}

	return nil
}
