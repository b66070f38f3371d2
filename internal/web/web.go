// Package web serves the game search and detail pages and their JSON API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/AmmannChristian/gamefinder/catalog"
)

const (
	// DefaultRequestTimeout bounds each upstream lookup when Config leaves it unset.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultSearchDebounce is the delay the search page waits after the last keystroke.
	DefaultSearchDebounce = 300 * time.Millisecond

	// GalleryLimit is how many artworks and screenshots the detail page shows.
	GalleryLimit = 6
)

// GameService is the catalog surface the handlers need. *catalog.Client implements it.
type GameService interface {
	SearchGames(ctx context.Context, query string) ([]catalog.SearchResult, error)
	GetGame(ctx context.Context, id int64) (*catalog.GameDetail, error)
}

// Config tunes the web app.
type Config struct {
	RequestTimeout time.Duration
	SearchDebounce time.Duration
}

type handler struct {
	games    GameService
	logger   *slog.Logger
	timeout  time.Duration
	debounce time.Duration
}

// New builds the fiber app with all routes registered.
func New(cfg Config, games GameService, logger *slog.Logger) *fiber.App {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = DefaultSearchDebounce
	}

	h := &handler{
		games:    games,
		logger:   logger,
		timeout:  cfg.RequestTimeout,
		debounce: cfg.SearchDebounce,
	}

	app := fiber.New(fiber.Config{
		AppName:               "gamefinder",
		DisableStartupMessage: true,
		ErrorHandler:          h.handleError,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(requestLogger(logger))

	app.Get("/healthz", h.health)

	api := app.Group("/api")
	api.Get("/search", h.searchGames)
	api.Get("/games/:id", h.getGame)

	app.Get("/", h.indexPage)
	app.Get("/game/:id", h.gamePage)

	return app
}

// requestLogger logs one record per request after the handler chain has run.
func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		logger.Info("http request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		)
		return err
	}
}

// handleError renders errors that escape the handlers, including unknown routes.
func (h *handler) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		h.logger.Error("unhandled request error", "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Success: false,
		Message: message,
	})
}

// lookupContext derives the context for one upstream call.
func (h *handler) lookupContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.timeout)
}
