package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/AmmannChristian/gamefinder/oauth2client"
)

// ClientIDHeader is the header IGDB reads the Twitch client id from.
const ClientIDHeader = "Client-ID"

// OAuth2Transport is an http.RoundTripper that authenticates outgoing requests
// with a Twitch app access token.
//
// It wraps an existing transport (typically http.DefaultTransport) and sets
// "Authorization: Bearer <token>" and "Client-ID" before each request.
type OAuth2Transport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// TokenManager provides OAuth2 access tokens.
	TokenManager *oauth2client.TokenManager
}

// RoundTrip implements http.RoundTripper interface.
// The token fetch respects the request context's cancellation and deadline.
// Token errors are wrapped, so errors.As still reaches the oauth2client error types.
func (t *OAuth2Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.TokenManager == nil {
		closeBody(req)
		return nil, errors.New("httpclient: TokenManager is nil")
	}

	token, err := t.TokenManager.GetTokenWithContext(req.Context())
	if err != nil {
		closeBody(req)
		return nil, fmt.Errorf("httpclient: failed to get token: %w", err)
	}

	// Clone the request to avoid modifying the original
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("Authorization", "Bearer "+token)
	reqClone.Header.Set(ClientIDHeader, t.TokenManager.ClientID())

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(reqClone)
}

// closeBody honors the RoundTripper contract of closing the body on every path.
func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}

// NewOAuth2Transport creates a new OAuth2Transport with the given token manager.
// The base transport defaults to http.DefaultTransport if not specified.
func NewOAuth2Transport(tm *oauth2client.TokenManager, base http.RoundTripper) *OAuth2Transport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &OAuth2Transport{
		Base:         base,
		TokenManager: tm,
	}
}
