package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AmmannChristian/gamefinder/catalog"
)

var countPrinter = message.NewPrinter(language.AmericanEnglish)

// View renders the current screen.
func (m *Model) View() string {
	if m.mode == viewDetail {
		return docStyle.Render(m.detailView())
	}
	return docStyle.Render(m.resultsView())
}

func (m *Model) contentWidth() int {
	if m.width <= 8 {
		return 72
	}
	return m.width - 6
}

func (m *Model) resultsView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Search for a game!"))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(m.spinner.View() + " " + mutedStyle.Render("Searching..."))
		b.WriteString("\n")
	case len(m.results) == 0 && m.results != nil:
		b.WriteString(mutedStyle.Render("No results found"))
		b.WriteString("\n")
	}

	width := m.contentWidth()
	for i, r := range m.results {
		name := ansi.Truncate(r.Name, width-2, "…")
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("› " + name))
		} else {
			b.WriteString(itemStyle.Render(name))
		}
		b.WriteString("\n")

		if r.Summary != "" {
			summary := strings.Join(strings.Fields(r.Summary), " ")
			b.WriteString(summaryStyle.Render(ansi.Truncate(summary, width-4, "…")))
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render(helpLine(m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Quit)))
	return b.String()
}

func (m *Model) detailView() string {
	var b strings.Builder
	help := helpStyle.Render(helpLine(m.keys.Back, m.keys.Quit))

	if m.loading {
		b.WriteString(m.spinner.View() + " " + mutedStyle.Render("Loading..."))
		b.WriteString("\n")
		b.WriteString(help)
		return b.String()
	}

	if m.game == nil {
		b.WriteString(titleStyle.Render("Game not found"))
		b.WriteString("\n")
		b.WriteString(help)
		return b.String()
	}

	g := m.game
	b.WriteString(titleStyle.Render(g.Name))
	b.WriteString("\n")

	if len(g.Genres) > 0 {
		badges := make([]string, 0, len(g.Genres))
		for _, genre := range g.Genres {
			badges = append(badges, badgeStyle.Render(genre.Name))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, badges...))
		b.WriteString("\n\n")
	}

	if meta := detailMeta(g); meta != "" {
		b.WriteString(meta)
		b.WriteString("\n\n")
	}

	if g.Summary != "" {
		b.WriteString(lipgloss.NewStyle().Width(m.contentWidth()).Render(g.Summary))
		b.WriteString("\n\n")
	}

	if cover := g.Cover.URL(catalog.CoverBig); cover != "" {
		b.WriteString(mutedStyle.Render("Cover: " + cover))
		b.WriteString("\n")
	}
	if n := len(g.Gallery(0)); n > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Gallery: %d images", n)))
		b.WriteString("\n")
	}

	b.WriteString(help)
	return b.String()
}

// detailMeta renders release date, rating and rating count, skipping unknown values.
func detailMeta(g *catalog.GameDetail) string {
	var parts []string

	if date, ok := g.ReleaseDate(); ok {
		parts = append(parts, date.Format("January 2, 2006"))
	}
	if g.TotalRating > 0 {
		parts = append(parts, ratingStyle.Render(fmt.Sprintf("%.1f", g.StarRating()))+mutedStyle.Render(" / 5"))
	}
	if g.TotalRatingCount > 0 {
		parts = append(parts, mutedStyle.Render(countPrinter.Sprintf("%d ratings", g.TotalRatingCount)))
	}

	return strings.Join(parts, "   ")
}
