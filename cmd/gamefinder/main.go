// Package main is the entry point of the gamefinder web server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AmmannChristian/gamefinder/internal/bootstrap"
	"github.com/AmmannChristian/gamefinder/internal/config"
	"github.com/AmmannChristian/gamefinder/internal/logger"
	"github.com/AmmannChristian/gamefinder/internal/version"
	"github.com/AmmannChristian/gamefinder/internal/web"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info("gamefinder"))
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	games, err := bootstrap.Catalog(ctx, cfg, log, bootstrap.Options{})
	if err != nil {
		return err
	}

	app := web.New(web.Config{
		RequestTimeout: cfg.RequestTimeout,
		SearchDebounce: cfg.SearchDebounce,
	}, games, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		errCh <- app.Listen(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func printUsage() {
	fmt.Println(`gamefinder - search the IGDB game catalog from the browser

Usage:
  gamefinder [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Environment:
  TWITCH_CLIENT_ID       Twitch application client id (required)
  TWITCH_CLIENT_SECRET   Twitch application client secret (required)
  TWITCH_TOKEN_URL       Token endpoint (default https://id.twitch.tv/oauth2/token)
  IGDB_BASE_URL          IGDB API root (default https://api.igdb.com/v4)
  HTTP_ADDR              Listen address (default :8080)
  REQUEST_TIMEOUT        Upstream timeout per lookup (default 10s)
  SEARCH_DEBOUNCE        Search box debounce (default 300ms)
  LOG_LEVEL              debug, info, warn or error (default info)

A .env file in the working directory is loaded first if present.`)
}
