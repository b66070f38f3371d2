// Package bootstrap wires the token manager, authenticated HTTP client and
// catalog client from configuration. Both binaries start through it.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/AmmannChristian/gamefinder/catalog"
	"github.com/AmmannChristian/gamefinder/httpclient"
	"github.com/AmmannChristian/gamefinder/internal/config"
	"github.com/AmmannChristian/gamefinder/internal/logger"
	"github.com/AmmannChristian/gamefinder/oauth2client"
)

// Options overrides pieces of the wiring. Zero values use the defaults.
type Options struct {
	// TokenHTTPClient is used for token requests.
	TokenHTTPClient *http.Client
	// BaseTransport carries authenticated IGDB requests.
	BaseTransport http.RoundTripper
}

// Catalog builds a catalog client authenticated with the configured Twitch credentials.
func Catalog(ctx context.Context, cfg *config.Config, log *slog.Logger, opts Options) (*catalog.Client, error) {
	if log == nil {
		log = slog.Default()
	}

	tmOpts := []oauth2client.Option{oauth2client.WithLogger(logger.Printf(log))}
	if opts.TokenHTTPClient != nil {
		tmOpts = append(tmOpts, oauth2client.WithHTTPClient(opts.TokenHTTPClient))
	}

	builder := httpclient.NewBuilder().
		WithOAuth2(ctx, cfg.TwitchTokenURL, cfg.TwitchClientID, cfg.TwitchClientSecret, tmOpts...).
		WithTimeout(cfg.RequestTimeout)
	if opts.BaseTransport != nil {
		builder = builder.WithBaseTransport(opts.BaseTransport)
	}

	httpClient, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("bootstrap: failed to build http client: %w", err)
	}

	return catalog.NewClient(httpClient,
		catalog.WithBaseURL(cfg.IGDBBaseURL),
		catalog.WithLogger(log),
	), nil
}
