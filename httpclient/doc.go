// Package httpclient builds HTTP clients that authenticate against IGDB.
//
// OAuth2Transport wraps any RoundTripper and sets "Authorization: Bearer <token>"
// and "Client-ID" from an oauth2client.TokenManager on every request. Builder
// assembles an http.Client around it with a timeout, an optional base transport
// and optional redirect disabling.
//
// # Quick Start
//
//	client, err := httpclient.NewBuilder().
//	    WithOAuth2(ctx, oauth2client.TwitchTokenURL, clientID, clientSecret).
//	    WithTimeout(10 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Manual Transport Wrapping
//
//	transport := httpclient.NewOAuth2Transport(tm, nil)
//	client := &http.Client{Transport: transport}
package httpclient
