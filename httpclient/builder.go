package httpclient

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/AmmannChristian/gamefinder/oauth2client"
)

// DefaultTimeout bounds a whole request, token fetch included.
const DefaultTimeout = 30 * time.Second

// Builder provides a fluent interface for constructing HTTP clients
// that authenticate against IGDB.
type Builder struct {
	tokenManager *oauth2client.TokenManager

	timeout         time.Duration
	baseTransport   http.RoundTripper
	followRedirects bool
}

// NewBuilder creates a new HTTP client builder.
func NewBuilder() *Builder {
	return &Builder{
		timeout:         DefaultTimeout,
		followRedirects: true,
	}
}

// WithTokenManager sets the token manager used to authenticate requests.
func (b *Builder) WithTokenManager(tm *oauth2client.TokenManager) *Builder {
	b.tokenManager = tm
	return b
}

// WithOAuth2 creates a new TokenManager for the given client credentials.
// Pass oauth2client.TwitchTokenURL as tokenURL for IGDB.
func (b *Builder) WithOAuth2(ctx context.Context, tokenURL, clientID, clientSecret string, opts ...oauth2client.Option) *Builder {
	b.tokenManager = oauth2client.NewTokenManager(ctx, tokenURL, clientID, clientSecret, "", opts...)
	return b
}

// WithTimeout sets the request timeout for the HTTP client.
// Default is 30 seconds if not specified.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

// WithBaseTransport sets a custom base transport.
func (b *Builder) WithBaseTransport(transport http.RoundTripper) *Builder {
	b.baseTransport = transport
	return b
}

// WithoutRedirects disables automatic redirect following.
func (b *Builder) WithoutRedirects() *Builder {
	b.followRedirects = false
	return b
}

// Build constructs the HTTP client with the configured options.
func (b *Builder) Build() (*http.Client, error) {
	transport := b.baseTransport
	if transport == nil {
		transport = defaultTransport()
	}

	if b.tokenManager != nil {
		transport = NewOAuth2Transport(b.tokenManager, transport)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   b.timeout,
	}

	if !b.followRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return client, nil
}

// defaultTransport clones http.DefaultTransport with a TLS 1.2 floor.
// A non-*http.Transport default (e.g., a test stub) is used as is.
func defaultTransport() http.RoundTripper {
	httpTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return http.DefaultTransport
	}

	httpTransport = httpTransport.Clone()
	httpTransport.TLSClientConfig = &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	return httpTransport
}

// NewHTTPClient is a convenience function that creates an authenticated HTTP client
// with the default timeout. For more configuration options, use Builder instead.
//
// Example:
//
//	tm := oauth2client.NewTokenManager(ctx, oauth2client.TwitchTokenURL, clientID, clientSecret, "")
//	client := httpclient.NewHTTPClient(tm)
func NewHTTPClient(tm *oauth2client.TokenManager) *http.Client {
	return &http.Client{
		Transport: NewOAuth2Transport(tm, nil),
		Timeout:   DefaultTimeout,
	}
}
