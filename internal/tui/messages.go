package tui

import "github.com/AmmannChristian/gamefinder/catalog"

// debounceMsg fires once the input has been idle for the debounce window.
// Only the tick carrying the latest sequence number starts a search.
type debounceMsg struct {
	seq   int
	query string
}

// searchResultMsg carries the answer for query.
type searchResultMsg struct {
	query   string
	results []catalog.SearchResult
	err     error
}

// gameLoadedMsg carries the detail lookup for id.
type gameLoadedMsg struct {
	id   int64
	game *catalog.GameDetail
	err  error
}
