// Package main is the entry point of the gamefinder terminal client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AmmannChristian/gamefinder/internal/bootstrap"
	"github.com/AmmannChristian/gamefinder/internal/config"
	"github.com/AmmannChristian/gamefinder/internal/logger"
	"github.com/AmmannChristian/gamefinder/internal/tui"
	"github.com/AmmannChristian/gamefinder/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info("gamefinder-tui"))
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

	// Logs go to a file so they do not draw over the alt screen.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	log, err := logger.Setup(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}

	games, err := bootstrap.Catalog(context.Background(), cfg, log, bootstrap.Options{})
	if err != nil {
		return err
	}

	model := tui.NewModel(games, tui.Options{
		Debounce: cfg.SearchDebounce,
		Timeout:  cfg.RequestTimeout,
		Logger:   log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func printUsage() {
	fmt.Println(`gamefinder-tui - search the IGDB game catalog from the terminal

Usage:
  gamefinder-tui [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  type            Search (at least 2 characters)
  Up/Down         Move through results
  Enter           Show game details
  Esc             Back to results
  Ctrl+C          Quit

Configuration is read from .env and the environment; see gamefinder --help.
Logs are written to LOG_FILE (default gamefinder-tui.log).`)
}
