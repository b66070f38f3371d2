package oauth2client

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// TwitchTokenURL is the Twitch OAuth2 endpoint that issues app access tokens for IGDB.
const TwitchTokenURL = "https://id.twitch.tv/oauth2/token"

// Logger is an interface for optional logging in TokenManager.
// Implementations can log token refresh events if desired.
type Logger interface {
	Printf(format string, args ...any)
}

// TokenManager caches an OAuth2 app access token obtained with the client
// credentials flow and refreshes it once it expires.
// It is safe for concurrent access.
type TokenManager struct {
	config       *clientcredentials.Config
	token        *oauth2.Token
	mu           sync.RWMutex
	ctx          context.Context // fallback context for GetToken
	httpClient   *http.Client    // client used for token requests (optional)
	expiryLeeway time.Duration
	logger       Logger
	now          func() time.Time
}

// Option is a functional option for configuring TokenManager.
type Option func(*TokenManager)

// WithLogger sets a custom logger for token refresh events.
// If not set, no logging will occur.
func WithLogger(logger Logger) Option {
	return func(tm *TokenManager) {
		tm.logger = logger
	}
}

// WithLoggingEnabled enables logging using the default Go log package.
func WithLoggingEnabled() Option {
	return func(tm *TokenManager) {
		tm.logger = log.Default()
	}
}

// WithExpiryLeeway sets how long before the reported expiry a cached token is
// already treated as expired. The default is zero: the token is used until
// exactly its expiry.
func WithExpiryLeeway(d time.Duration) Option {
	return func(tm *TokenManager) {
		if d >= 0 {
			tm.expiryLeeway = d
		}
	}
}

// WithHTTPClient sets the HTTP client used to call the token endpoint.
// It must not itself inject tokens from this manager.
func WithHTTPClient(client *http.Client) Option {
	return func(tm *TokenManager) {
		tm.httpClient = client
	}
}

// NewTokenManager creates a new OAuth2 token manager using the client credentials flow.
//
// Parameters:
//   - ctx: Context carrying values for token requests (used by GetToken); an
//     oauth2.HTTPClient value in it is used unless WithHTTPClient is given
//   - tokenURL: OAuth2 token endpoint (e.g., TwitchTokenURL)
//   - clientID: OAuth2 client identifier
//   - clientSecret: OAuth2 client secret
//   - scopes: Space-separated list of OAuth2 scopes, empty for Twitch app tokens
//   - opts: Optional configuration options
//
// Missing credentials are not rejected here. They surface as a
// *ConfigurationError on the first token request, before any network call.
func NewTokenManager(ctx context.Context, tokenURL, clientID, clientSecret, scopes string, opts ...Option) *TokenManager {
	if ctx == nil {
		ctx = context.Background()
	} else {
		ctx = context.WithoutCancel(ctx)
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       strings.Fields(scopes),
		// Twitch expects client_id and client_secret in the form body.
		AuthStyle: oauth2.AuthStyleInParams,
	}

	tm := &TokenManager{
		config: config,
		ctx:    ctx,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(tm)
	}

	// A client stored under oauth2.HTTPClient in ctx serves every token request,
	// not only those made through GetToken.
	if tm.httpClient == nil {
		if client, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok {
			tm.httpClient = client
		}
	}

	return tm
}

// ClientID returns the OAuth2 client identifier. IGDB requires it alongside the bearer token.
func (tm *TokenManager) ClientID() string {
	return tm.config.ClientID
}

// GetTokenWithContext returns a valid access token, fetching a new one if none is
// cached or the cached one has expired. The fetch honors ctx cancellation and deadline.
//
// Errors:
//   - *ConfigurationError if the client id or secret is empty (no request is sent)
//   - *AuthError if the token endpoint fails or answers with a non-success status
func (tm *TokenManager) GetTokenWithContext(ctx context.Context) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Fast path: check if we have a valid token without write lock
	tm.mu.RLock()
	if tm.tokenValid() {
		token := tm.token.AccessToken
		tm.mu.RUnlock()
		return token, nil
	}
	tm.mu.RUnlock()

	tm.mu.Lock()
	defer tm.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if tm.tokenValid() {
		return tm.token.AccessToken, nil
	}

	if err := tm.checkCredentials(); err != nil {
		return "", err
	}

	if tm.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, tm.httpClient)
	}

	token, err := tm.config.Token(ctx)
	if err != nil {
		return "", newAuthError(err)
	}

	tm.token = token

	if tm.logger != nil {
		tm.logger.Printf("oauth2: obtained new access token (expires: %s)", token.Expiry.Format(time.RFC3339))
	}

	return token.AccessToken, nil
}

// GetToken returns a valid access token, fetching or refreshing if necessary.
//
// Deprecated: Use GetTokenWithContext instead to properly handle context cancellation and deadlines.
// This method uses the context passed to NewTokenManager and cannot be cancelled by the caller.
func (tm *TokenManager) GetToken() (string, error) {
	return tm.GetTokenWithContext(tm.ctx)
}

// checkCredentials reports a missing client id or secret.
func (tm *TokenManager) checkCredentials() error {
	if tm.config.ClientID == "" {
		return &ConfigurationError{Field: "client_id"}
	}
	if tm.config.ClientSecret == "" {
		return &ConfigurationError{Field: "client_secret"}
	}
	return nil
}

// tokenValid reports whether the cached token may still be used.
// A token without expires_in has a zero Expiry and is never reused.
// Callers must hold tm.mu.
func (tm *TokenManager) tokenValid() bool {
	if tm.token == nil || tm.token.AccessToken == "" || tm.token.Expiry.IsZero() {
		return false
	}
	return tm.token.Expiry.Sub(tm.now()) > tm.expiryLeeway
}

// appendAuthMetadata adds the bearer token and client id to outgoing gRPC metadata.
func (tm *TokenManager) appendAuthMetadata(ctx context.Context) (context.Context, error) {
	token, err := tm.GetTokenWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("oauth2: failed to get token: %w", err)
	}

	return metadata.AppendToOutgoingContext(ctx,
		"authorization", "Bearer "+token,
		"client-id", tm.config.ClientID,
	), nil
}

// UnaryClientInterceptor returns a gRPC unary client interceptor that adds
// "authorization: Bearer <token>" and "client-id" to the outgoing metadata.
// If the token fetch fails, the RPC is aborted with the error.
//
// Usage:
//
//	conn, err := grpc.NewClient(
//	    "server:9090",
//	    grpc.WithUnaryInterceptor(tokenManager.UnaryClientInterceptor()),
//	)
func (tm *TokenManager) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		ctx, err := tm.appendAuthMetadata(ctx)
		if err != nil {
			return err
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor returns a gRPC stream client interceptor that adds
// the same metadata as UnaryClientInterceptor before the stream is opened.
func (tm *TokenManager) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		ctx, err := tm.appendAuthMetadata(ctx)
		if err != nil {
			return nil, err
		}
		return streamer(ctx, desc, cc, method, opts...)
	}
}
