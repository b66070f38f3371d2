// Package oauth2client provides the client-credentials token manager used to
// authenticate against IGDB through Twitch.
//
// A TokenManager memoizes one app access token in memory and only contacts the
// token endpoint when no token is cached or the cached one has expired.
// Concurrent callers that hit an expired token share a single refresh.
//
// # Errors
//
//   - *ConfigurationError: the client id or secret is empty. Returned before any request.
//   - *AuthError: the token endpoint failed. errors.Is(err, ErrAuth) matches it.
//
// # Quick Start
//
//	tm := oauth2client.NewTokenManager(
//	    ctx,
//	    oauth2client.TwitchTokenURL,
//	    os.Getenv("TWITCH_CLIENT_ID"),
//	    os.Getenv("TWITCH_CLIENT_SECRET"),
//	    "",
//	    oauth2client.WithLoggingEnabled(),
//	)
//
//	client := &http.Client{Transport: httpclient.NewOAuth2Transport(tm, nil)}
//
// The same manager can authenticate gRPC connections through
// UnaryClientInterceptor and StreamClientInterceptor.
package oauth2client
