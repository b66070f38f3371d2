package oauth2client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AmmannChristian/gamefinder/testutil"
	"golang.org/x/oauth2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type stubLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *stubLogger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func (l *stubLogger) getMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	msgs := make([]string, len(l.messages))
	copy(msgs, l.messages)
	return msgs
}

// Mock Twitch token endpoint for testing
func newMockOAuth2Server(tb testing.TB) *testutil.MockOAuth2Server {
	tb.Helper()

	return testutil.NewMockOAuth2Server(tb, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/oauth2/token" {
			tb.Fatalf("unexpected path: %s", req.URL.Path)
		}

		if req.Method != http.MethodPost {
			tb.Fatalf("unexpected method: %s", req.Method)
		}

		return testutil.JSONResponse(req, http.StatusOK, testutil.DefaultTokenJSON), nil
	})
}

func newTestManager(server *testutil.MockOAuth2Server, opts ...Option) *TokenManager {
	return NewTokenManager(server.Ctx, server.TokenURL(), "test-client", "test-secret", "", opts...)
}

func TestNewTokenManager(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		tokenURL     string
		clientID     string
		clientSecret string
		scopes       string
		wantScopes   int
	}{
		{
			name:         "twitch app token",
			tokenURL:     TwitchTokenURL,
			clientID:     "test-client",
			clientSecret: "test-secret",
			scopes:       "",
			wantScopes:   0,
		},
		{
			name:         "multiple scopes",
			tokenURL:     "https://auth.example.com/token",
			clientID:     "test-client",
			clientSecret: "test-secret",
			scopes:       "analytics:read:games  user:read:email",
			wantScopes:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := NewTokenManager(ctx, tt.tokenURL, tt.clientID, tt.clientSecret, tt.scopes)

			if tm.config.ClientID != tt.clientID {
				t.Errorf("expected ClientID %s, got %s", tt.clientID, tm.config.ClientID)
			}

			if tm.config.TokenURL != tt.tokenURL {
				t.Errorf("expected TokenURL %s, got %s", tt.tokenURL, tm.config.TokenURL)
			}

			if len(tm.config.Scopes) != tt.wantScopes {
				t.Errorf("expected %d scopes, got %v", tt.wantScopes, tm.config.Scopes)
			}

			if tm.config.AuthStyle != oauth2.AuthStyleInParams {
				t.Errorf("expected credentials in form params, got auth style %v", tm.config.AuthStyle)
			}

			if tm.expiryLeeway != 0 {
				t.Errorf("expected zero expiryLeeway, got %v", tm.expiryLeeway)
			}

			if tm.ClientID() != tt.clientID {
				t.Errorf("ClientID() = %q, want %q", tm.ClientID(), tt.clientID)
			}
		})
	}
}

func TestNewTokenManager_NilContext(t *testing.T) {
	//lint:ignore SA1012 intentionally verify nil context falls back to background
	//nolint:staticcheck // golangci-lint
	tm := NewTokenManager(nil, TwitchTokenURL, "client", "secret", "")

	if tm.ctx == nil {
		t.Fatal("context should not be nil (should use Background)")
	}
}

func TestTokenManager_GetToken_SendsClientCredentialsForm(t *testing.T) {
	server := newMockOAuth2Server(t)
	tm := newTestManager(server)

	if _, err := tm.GetTokenWithContext(context.Background()); err != nil {
		t.Fatalf("GetTokenWithContext failed: %v", err)
	}

	form := server.Form(0)
	want := map[string]string{
		"client_id":     "test-client",
		"client_secret": "test-secret",
		"grant_type":    "client_credentials",
	}
	for key, value := range want {
		if form[key] != value {
			t.Errorf("form[%q] = %q, want %q", key, form[key], value)
		}
	}
}

func TestTokenManager_GetToken_ReusesCachedToken(t *testing.T) {
	server := newMockOAuth2Server(t)
	tm := newTestManager(server)

	token1, err := tm.GetToken()
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}

	if token1 != "mock-access-token" {
		t.Errorf("expected token 'mock-access-token', got '%s'", token1)
	}

	token2, err := tm.GetToken()
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}

	if token2 != token1 {
		t.Error("expected cached token to be returned")
	}

	if server.RequestCount() != 1 {
		t.Fatalf("expected a single token request, got %d", server.RequestCount())
	}
}

func TestTokenManager_GetToken_ExpiredTokenRefreshesOnce(t *testing.T) {
	var calls int
	var mu sync.Mutex
	server := testutil.NewMockOAuth2Server(t, func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		body := fmt.Sprintf(`{"access_token":"token-%d","expires_in":3600,"token_type":"bearer"}`, n)
		return testutil.JSONResponse(req, http.StatusOK, body), nil
	})

	tm := newTestManager(server)

	first, err := tm.GetTokenWithContext(context.Background())
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if first != "token-1" {
		t.Fatalf("expected token-1, got %s", first)
	}

	// Jump past the expiry of the cached token.
	tm.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	second, err := tm.GetTokenWithContext(context.Background())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if second != "token-2" {
		t.Fatalf("expected refreshed token-2, got %s", second)
	}

	if server.RequestCount() != 2 {
		t.Fatalf("expected exactly one refresh (2 requests total), got %d", server.RequestCount())
	}
}

func TestTokenManager_GetToken_Concurrent(t *testing.T) {
	server := newMockOAuth2Server(t)
	tm := newTestManager(server)

	const goroutines = 10
	results := make(chan string, goroutines)
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			token, err := tm.GetToken()
			if err != nil {
				errs <- err
				return
			}
			results <- token
		}()
	}

	for i := 0; i < goroutines; i++ {
		select {
		case token := <-results:
			if token != "mock-access-token" {
				t.Errorf("expected 'mock-access-token', got '%s'", token)
			}
		case err := <-errs:
			t.Errorf("GetToken failed in goroutine: %v", err)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for goroutine")
		}
	}

	if server.RequestCount() != 1 {
		t.Fatalf("expected concurrent callers to share one token request, got %d", server.RequestCount())
	}
}

func TestTokenManager_GetTokenWithContext_DoubleCheckCache(t *testing.T) {
	requestStarted := make(chan struct{})
	requestComplete := make(chan struct{})

	server := testutil.NewMockOAuth2Server(t, func(req *http.Request) (*http.Response, error) {
		select {
		case requestStarted <- struct{}{}:
		default:
		}

		<-requestComplete

		return testutil.JSONResponse(req, http.StatusOK, testutil.DefaultTokenJSON), nil
	})

	tm := newTestManager(server)

	var wg sync.WaitGroup
	wg.Add(2)

	tokens := make(chan string, 2)
	errs := make(chan error, 2)

	fetch := func() {
		defer wg.Done()
		token, err := tm.GetTokenWithContext(context.Background())
		if err != nil {
			errs <- err
			return
		}
		tokens <- token
	}

	go fetch()
	<-requestStarted
	go fetch()

	close(requestComplete)
	wg.Wait()

	close(errs)
	for err := range errs {
		t.Fatalf("GetTokenWithContext failed: %v", err)
	}

	if server.RequestCount() != 1 {
		t.Fatalf("expected single token request due to double-check locking, got %d", server.RequestCount())
	}

	close(tokens)
	received := 0
	for token := range tokens {
		received++
		if token != "mock-access-token" {
			t.Errorf("unexpected token: %s", token)
		}
	}
	if received != 2 {
		t.Errorf("expected 2 tokens received, got %d", received)
	}
}

func TestTokenManager_MissingCredentials(t *testing.T) {
	tests := []struct {
		name         string
		clientID     string
		clientSecret string
		wantField    string
	}{
		{name: "missing client id", clientID: "", clientSecret: "secret", wantField: "client_id"},
		{name: "missing client secret", clientID: "client", clientSecret: "", wantField: "client_secret"},
		{name: "missing both", clientID: "", clientSecret: "", wantField: "client_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newMockOAuth2Server(t)
			tm := NewTokenManager(server.Ctx, server.TokenURL(), tt.clientID, tt.clientSecret, "")

			_, err := tm.GetTokenWithContext(context.Background())

			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T (%v)", err, err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("expected missing field %q, got %q", tt.wantField, cfgErr.Field)
			}
			if server.RequestCount() != 0 {
				t.Fatalf("expected no token request, got %d", server.RequestCount())
			}
		})
	}
}

func TestTokenManager_AuthErrorStatus(t *testing.T) {
	server := testutil.NewMockOAuth2Server(t, testutil.StatusResponse(
		http.StatusBadRequest, `{"status":400,"message":"invalid client secret"}`,
	))
	tm := newTestManager(server)

	_, err := tm.GetTokenWithContext(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected credentials")
	}

	if !errors.Is(err, ErrAuth) {
		t.Errorf("expected errors.Is(err, ErrAuth), got %v", err)
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %T", err)
	}
	if authErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", authErr.StatusCode)
	}

	// A failed fetch must not poison the cache.
	if tm.token != nil {
		t.Error("token should not be cached after a failure")
	}
}

func TestTokenManager_AuthErrorTransport(t *testing.T) {
	server := testutil.NewMockOAuth2Server(t, func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("token fetch failed")
	})
	tm := newTestManager(server)

	_, err := tm.GetToken()
	if err == nil {
		t.Fatal("expected error for unreachable server, got nil")
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %T", err)
	}
	if authErr.StatusCode != 0 {
		t.Errorf("expected status 0 for transport failure, got %d", authErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "token fetch failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTokenManager_WithHTTPClient(t *testing.T) {
	server := newMockOAuth2Server(t)

	// Background context carries no oauth2.HTTPClient, so the option must supply it.
	tm := NewTokenManager(context.Background(), server.TokenURL(), "client", "secret", "",
		WithHTTPClient(server.Client()))

	token, err := tm.GetTokenWithContext(context.Background())
	if err != nil {
		t.Fatalf("GetTokenWithContext failed: %v", err)
	}
	if token != "mock-access-token" {
		t.Errorf("unexpected token: %s", token)
	}
	if server.RequestCount() != 1 {
		t.Errorf("expected request through configured client, got %d", server.RequestCount())
	}
}

func TestTokenManager_TokenValid(t *testing.T) {
	tm := NewTokenManager(context.Background(), TwitchTokenURL, "client", "secret", "", WithExpiryLeeway(time.Minute))

	if tm.tokenValid() {
		t.Error("nil token should not be valid")
	}

	tm.token = &oauth2.Token{
		AccessToken: "test-token",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(30 * time.Second),
	}

	if tm.tokenValid() {
		t.Error("token inside the leeway should be treated as invalid")
	}

	tm.token = &oauth2.Token{
		AccessToken: "test-token",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(2 * time.Minute),
	}

	if !tm.tokenValid() {
		t.Error("fresh token should be valid")
	}

	tm.token = &oauth2.Token{AccessToken: "test-token", TokenType: "Bearer"}

	if tm.tokenValid() {
		t.Error("token without expiry should not be reused")
	}
}

func TestTokenManager_GetToken_ShortLivedTokenReused(t *testing.T) {
	server := testutil.NewMockOAuth2Server(t, testutil.StaticJSONResponse(
		`{"access_token":"short-lived","expires_in":30,"token_type":"bearer"}`))
	tm := newTestManager(server)

	for i := 0; i < 3; i++ {
		token, err := tm.GetTokenWithContext(context.Background())
		if err != nil {
			t.Fatalf("fetch %d failed: %v", i, err)
		}
		if token != "short-lived" {
			t.Fatalf("unexpected token: %s", token)
		}
	}

	if server.RequestCount() != 1 {
		t.Fatalf("expected a 30s token to be reused, got %d token requests", server.RequestCount())
	}
}

func TestTokenManager_GetToken_MissingExpiresInNotCached(t *testing.T) {
	server := testutil.NewMockOAuth2Server(t, testutil.StaticJSONResponse(
		`{"access_token":"no-expiry","token_type":"bearer"}`))
	tm := newTestManager(server)

	for i := 0; i < 3; i++ {
		if _, err := tm.GetTokenWithContext(context.Background()); err != nil {
			t.Fatalf("fetch %d failed: %v", i, err)
		}
	}

	if server.RequestCount() != 3 {
		t.Fatalf("expected a token without expires_in to be fetched every time, got %d requests", server.RequestCount())
	}
}

func TestTokenManager_TokenValid_ZeroLeeway(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager(context.Background(), TwitchTokenURL, "client", "secret", "", WithExpiryLeeway(0))
	tm.now = func() time.Time { return now }

	tests := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{name: "before expiry", expiry: now.Add(time.Second), want: true},
		{name: "at expiry", expiry: now, want: false},
		{name: "after expiry", expiry: now.Add(-time.Second), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm.token = &oauth2.Token{AccessToken: "t", Expiry: tt.expiry}
			if got := tm.tokenValid(); got != tt.want {
				t.Errorf("tokenValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithExpiryLeeway_IgnoresNegative(t *testing.T) {
	tm := NewTokenManager(context.Background(), TwitchTokenURL, "client", "secret", "",
		WithExpiryLeeway(time.Minute), WithExpiryLeeway(-time.Second))
	if tm.expiryLeeway != time.Minute {
		t.Errorf("negative leeway should keep the previous value, got %v", tm.expiryLeeway)
	}
}

func TestTokenManager_UnaryClientInterceptor(t *testing.T) {
	server := newMockOAuth2Server(t)
	tm := newTestManager(server)

	interceptor := tm.UnaryClientInterceptor()

	called := false
	mockInvoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		called = true

		md, ok := metadata.FromOutgoingContext(ctx)
		if !ok {
			t.Error("metadata not found in context")
			return nil
		}

		if got := md.Get("authorization"); len(got) == 0 || got[0] != "Bearer mock-access-token" {
			t.Errorf("unexpected authorization metadata: %v", got)
		}
		if got := md.Get("client-id"); len(got) == 0 || got[0] != "test-client" {
			t.Errorf("unexpected client-id metadata: %v", got)
		}

		return nil
	}

	if err := interceptor(server.Ctx, "/igdb.Games/Get", nil, nil, nil, mockInvoker); err != nil {
		t.Errorf("interceptor failed: %v", err)
	}

	if !called {
		t.Error("invoker was not called")
	}
}

func TestTokenManager_StreamClientInterceptor(t *testing.T) {
	server := newMockOAuth2Server(t)
	tm := newTestManager(server)

	interceptor := tm.StreamClientInterceptor()

	called := false
	mockStreamer := func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		called = true

		md, ok := metadata.FromOutgoingContext(ctx)
		if !ok {
			t.Error("metadata not found in context")
			return nil, nil
		}

		if got := md.Get("authorization"); len(got) == 0 || !strings.HasPrefix(got[0], "Bearer ") {
			t.Errorf("expected Bearer token, got: %v", got)
		}

		return nil, nil
	}

	if _, err := interceptor(server.Ctx, &grpc.StreamDesc{}, nil, "/igdb.Games/Watch", mockStreamer); err != nil {
		t.Errorf("interceptor failed: %v", err)
	}

	if !called {
		t.Error("streamer was not called")
	}
}

func TestTokenManager_Interceptor_TokenFetchError(t *testing.T) {
	server := testutil.NewMockOAuth2Server(t, func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("token fetch failed")
	})
	tm := newTestManager(server)

	unaryInterceptor := tm.UnaryClientInterceptor()
	err := unaryInterceptor(server.Ctx, "/test", nil, nil, nil, func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		t.Error("invoker should not be called when token fetch fails")
		return nil
	})
	if !errors.Is(err, ErrAuth) {
		t.Errorf("expected auth error from unary interceptor, got %v", err)
	}

	streamInterceptor := tm.StreamClientInterceptor()
	_, err = streamInterceptor(server.Ctx, &grpc.StreamDesc{}, nil, "/test", func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		t.Error("streamer should not be called when token fetch fails")
		return nil, nil
	})
	if err == nil {
		t.Error("expected error from stream interceptor, got nil")
	}
}

func TestTokenManager_WithLogger_LogsOnFetch(t *testing.T) {
	server := newMockOAuth2Server(t)
	logger := &stubLogger{}

	tm := newTestManager(server, WithLogger(logger))
	if _, err := tm.GetTokenWithContext(context.Background()); err != nil {
		t.Fatalf("GetTokenWithContext failed: %v", err)
	}

	msgs := logger.getMessages()
	if len(msgs) == 0 {
		t.Fatal("expected logger to receive messages")
	}
	for _, msg := range msgs {
		if strings.Contains(msg, "mock-access-token") {
			t.Errorf("log message leaks the access token: %s", msg)
		}
	}
}

func TestTokenManager_WithLoggingEnabled_SetsLogger(t *testing.T) {
	tm := NewTokenManager(context.Background(), TwitchTokenURL, "client", "secret", "", WithLoggingEnabled())
	if tm.logger == nil {
		t.Fatal("expected logger to be set")
	}
}

func BenchmarkTokenManager_GetToken_Cached(b *testing.B) {
	server := newMockOAuth2Server(b)
	tm := newTestManager(server)

	_, _ = tm.GetToken()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tm.GetToken()
	}
}
