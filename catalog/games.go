package catalog

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	gamesEndpoint = "games"

	// MinSearchLength is the shortest trimmed input, in runes, that triggers a search.
	MinSearchLength = 2

	// SearchLimit caps how many results SearchGames returns.
	SearchLimit = 10

	// excludedThemeID is the IGDB theme hidden from search results (erotic).
	excludedThemeID = 42
)

var (
	searchFields = []string{"id", "name", "cover.image_id", "summary"}

	detailFields = []string{
		"id",
		"name",
		"genres.name",
		"first_release_date",
		"total_rating",
		"total_rating_count",
		"cover.image_id",
		"artworks.image_id",
		"screenshots.image_id",
		"summary",
	}
)

// Image references an IGDB image. Build a URL for it with ImageURL.
type Image struct {
	ID      int64  `json:"id"`
	ImageID string `json:"image_id"`
}

// Genre is a named IGDB genre.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SearchResult is the search projection of a game.
type SearchResult struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Cover   *Image `json:"cover,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// GameDetail is the detail projection of a game.
type GameDetail struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Genres           []Genre `json:"genres,omitempty"`
	FirstReleaseDate int64   `json:"first_release_date,omitempty"` // unix seconds
	TotalRating      float64 `json:"total_rating,omitempty"`       // 0-100
	TotalRatingCount int     `json:"total_rating_count,omitempty"`
	Cover            *Image  `json:"cover,omitempty"`
	Artworks         []Image `json:"artworks,omitempty"`
	Screenshots      []Image `json:"screenshots,omitempty"`
	Summary          string  `json:"summary,omitempty"`
}

// ReleaseDate returns the first release date in UTC, or false if IGDB has none.
func (g *GameDetail) ReleaseDate() (time.Time, bool) {
	if g.FirstReleaseDate == 0 {
		return time.Time{}, false
	}
	return time.Unix(g.FirstReleaseDate, 0).UTC(), true
}

// StarRating converts the 0-100 total rating to a 5-point scale.
func (g *GameDetail) StarRating() float64 {
	return g.TotalRating / 20
}

// Gallery returns artworks followed by screenshots, at most limit of them.
// A limit of zero or less returns all.
func (g *GameDetail) Gallery(limit int) []Image {
	images := make([]Image, 0, len(g.Artworks)+len(g.Screenshots))
	images = append(images, g.Artworks...)
	images = append(images, g.Screenshots...)

	if limit > 0 && len(images) > limit {
		images = images[:limit]
	}
	return images
}

// SearchQuery returns the query body SearchGames sends for the given name prefix.
func SearchQuery(name string) string {
	where := "(name ~ " + Quote(name) + "*" +
		" & themes != (" + strconv.Itoa(excludedThemeID) + ")" +
		" & version_parent = null & parent_game = null)"

	return NewQuery().
		Fields(searchFields...).
		Where(where).
		Sort("rating", Desc).
		Limit(SearchLimit).
		String()
}

// GameQuery returns the query body GetGame sends for the given id.
func GameQuery(id int64) string {
	return NewQuery().
		Fields(detailFields...).
		Where("id = " + strconv.FormatInt(id, 10)).
		String()
}

// SearchGames finds games whose name starts with query, best rated first.
//
// Input shorter than MinSearchLength after trimming returns an empty slice
// without contacting IGDB. Version and parent variants and the excluded theme
// are filtered out, and at most SearchLimit results are returned.
func (c *Client) SearchGames(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchLength {
		return []SearchResult{}, nil
	}

	results, err := Query[SearchResult](ctx, c, gamesEndpoint, SearchQuery(query))
	if err != nil {
		return nil, err
	}

	if results == nil {
		results = []SearchResult{}
	}
	if len(results) > SearchLimit {
		results = results[:SearchLimit]
	}

	return results, nil
}

// GetGame fetches the detail projection of one game.
// It returns ErrNotFound when IGDB has no game with that id.
func (c *Client) GetGame(ctx context.Context, id int64) (*GameDetail, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	results, err := Query[GameDetail](ctx, c, gamesEndpoint, GameQuery(id))
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}

	game := results[0]
	return &game, nil
}
