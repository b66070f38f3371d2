package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AmmannChristian/gamefinder/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	indexTemplate    = mustPage("index.html")
	gameTemplate     = mustPage("game.html")
	notFoundTemplate = mustPage("notfound.html")

	// counts are rendered the way en-US readers expect, e.g. "12,345".
	countPrinter = message.NewPrinter(language.AmericanEnglish)
)

// releaseDateLayout renders dates such as "January 2, 2006".
const releaseDateLayout = "January 2, 2006"

func mustPage(name string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

type indexView struct {
	DebounceMS     int64
	MinQueryLength int
}

type gameView struct {
	Name        string
	HeaderURL   string
	Genres      []string
	ReleaseDate string
	Rating      string
	RatingCount string
	Summary     string
	Gallery     []string
}

// newGameView prepares a game for the detail template. Missing fields stay empty
// and their sections are left out of the page.
func newGameView(game *catalog.GameDetail) gameView {
	view := gameView{
		Name:      game.Name,
		HeaderURL: game.Cover.URL(catalog.ScreenshotHuge),
		Summary:   game.Summary,
	}

	for _, genre := range game.Genres {
		view.Genres = append(view.Genres, genre.Name)
	}
	if date, ok := game.ReleaseDate(); ok {
		view.ReleaseDate = date.Format(releaseDateLayout)
	}
	if game.TotalRating > 0 {
		view.Rating = fmt.Sprintf("%.1f", game.StarRating())
	}
	if game.TotalRatingCount > 0 {
		view.RatingCount = countPrinter.Sprintf("%d", game.TotalRatingCount)
	}
	for _, img := range game.Gallery(GalleryLimit) {
		if u := catalog.ImageURL(catalog.ScreenshotBig, img.ImageID); u != "" {
			view.Gallery = append(view.Gallery, u)
		}
	}

	return view
}

func (h *handler) indexPage(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, indexTemplate, indexView{
		DebounceMS:     h.debounce.Milliseconds(),
		MinQueryLength: catalog.MinSearchLength,
	})
}

// gamePage renders the not-found page for bad ids, unknown games and failed lookups.
func (h *handler) gamePage(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return render(c, fiber.StatusNotFound, notFoundTemplate, nil)
	}

	game, err := h.lookupGame(c, id)
	if err != nil {
		return render(c, fiber.StatusNotFound, notFoundTemplate, nil)
	}

	return render(c, fiber.StatusOK, gameTemplate, newGameView(game))
}

func render(c *fiber.Ctx, status int, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("web: render %s: %w", tmpl.Name(), err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
