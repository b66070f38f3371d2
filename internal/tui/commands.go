package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debounceCmd schedules the search tick for the keystroke numbered seq.
func debounceCmd(seq int, query string, wait time.Duration) tea.Cmd {
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, query: query}
	})
}

// searchCmd runs one catalog search.
func searchCmd(games GameService, timeout time.Duration, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		results, err := games.SearchGames(ctx, query)
		return searchResultMsg{query: query, results: results, err: err}
	}
}

// loadGameCmd fetches the detail of one game.
func loadGameCmd(games GameService, timeout time.Duration, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		game, err := games.GetGame(ctx, id)
		return gameLoadedMsg{id: id, game: game, err: err}
	}
}
