package web

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AmmannChristian/gamefinder/catalog"
)

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Success bool                   `json:"success"`
	Data    []catalog.SearchResult `json:"data"`
	Message string                 `json:"message,omitempty"`
}

// GameResponse is the body of a successful GET /api/games/:id.
type GameResponse struct {
	Success bool                `json:"success"`
	Data    *catalog.GameDetail `json:"data"`
	Message string              `json:"message,omitempty"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const messageGameNotFound = "Game not found"

func (h *handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// searchGames answers with an empty list when the lookup fails.
func (h *handler) searchGames(c *fiber.Ctx) error {
	query := c.Query("q")

	ctx, cancel := h.lookupContext(c)
	defer cancel()

	results, err := h.games.SearchGames(ctx, query)
	if err != nil {
		h.logger.Error("search failed", "query", query, "error", err)
		results = []catalog.SearchResult{}
	}
	if results == nil {
		results = []catalog.SearchResult{}
	}

	return c.JSON(SearchResponse{
		Success: true,
		Data:    results,
	})
}

// getGame answers 404 for unknown games and for failed lookups.
func (h *handler) getGame(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Success: false,
			Message: "Invalid game id",
		})
	}

	game, err := h.lookupGame(c, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Success: false,
			Message: messageGameNotFound,
		})
	}

	return c.JSON(GameResponse{
		Success: true,
		Data:    game,
	})
}

// lookupGame fetches a game and logs failures other than not-found.
func (h *handler) lookupGame(c *fiber.Ctx, id int64) (*catalog.GameDetail, error) {
	ctx, cancel := h.lookupContext(c)
	defer cancel()

	game, err := h.games.GetGame(ctx, id)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			h.logger.Error("get game failed", "id", id, "error", err)
		}
		return nil, err
	}
	return game, nil
}

// parseID accepts positive base-10 game ids.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, catalog.ErrInvalidID
	}
	return id, nil
}
