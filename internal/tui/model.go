// Package tui implements the terminal game search client with Bubble Tea.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AmmannChristian/gamefinder/catalog"
)

const (
	// DefaultDebounce is the idle time after the last keystroke before a search starts.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultTimeout bounds each catalog lookup.
	DefaultTimeout = 10 * time.Second
)

// GameService is the catalog surface the client needs. *catalog.Client implements it.
type GameService interface {
	SearchGames(ctx context.Context, query string) ([]catalog.SearchResult, error)
	GetGame(ctx context.Context, id int64) (*catalog.GameDetail, error)
}

type viewMode int

const (
	viewResults viewMode = iota
	viewDetail
)

// Options tunes the model. Zero values select the defaults.
type Options struct {
	Debounce time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	games    GameService
	logger   *slog.Logger
	debounce time.Duration
	timeout  time.Duration
	keys     KeyMap

	input   textinput.Model
	spinner spinner.Model

	mode viewMode

	// seq numbers input changes; a debounce tick from an older change is ignored.
	seq       int
	searching bool
	results   []catalog.SearchResult
	cursor    int

	loadingID int64
	loading   bool
	game      *catalog.GameDetail

	width  int
	height int
}

// NewModel creates the root model.
func NewModel(games GameService, opts Options) *Model {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Search games..."
	ti.Prompt = "› "
	ti.CharLimit = 100
	ti.Width = 50
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = mutedStyle.Foreground(primary)

	return &Model{
		games:    games,
		logger:   opts.Logger,
		debounce: opts.Debounce,
		timeout:  opts.Timeout,
		keys:     DefaultKeyMap(),
		input:    ti,
		spinner:  s,
	}
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - 10; w > 10 {
			m.input.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case debounceMsg:
		return m, m.handleDebounce(msg)

	case searchResultMsg:
		m.handleSearchResult(msg)
		return m, nil

	case gameLoadedMsg:
		m.handleGameLoaded(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.searching && !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}

	if m.mode == viewDetail {
		if key.Matches(msg, m.keys.Back) {
			m.mode = viewResults
			m.loading = false
			m.loadingID = 0
			m.game = nil
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return nil
	case key.Matches(msg, m.keys.Enter):
		return m.openSelected()
	case key.Matches(msg, m.keys.Back):
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}

	return tea.Batch(cmd, m.queryChanged())
}

// queryChanged starts a new debounce window for the current input.
func (m *Model) queryChanged() tea.Cmd {
	m.seq++

	query := m.query()
	if utf8.RuneCountInString(query) < catalog.MinSearchLength {
		m.results = nil
		m.cursor = 0
		m.searching = false
		return nil
	}

	return debounceCmd(m.seq, query, m.debounce)
}

func (m *Model) handleDebounce(msg debounceMsg) tea.Cmd {
	if msg.seq != m.seq {
		return nil
	}

	tick := m.spinnerTick()
	m.searching = true
	return tea.Batch(searchCmd(m.games, m.timeout, msg.query), tick)
}

// spinnerTick starts the spinner unless a search or detail load already keeps it ticking.
func (m *Model) spinnerTick() tea.Cmd {
	if m.searching || m.loading {
		return nil
	}
	return m.spinner.Tick
}

// handleSearchResult drops answers for anything but the current input.
func (m *Model) handleSearchResult(msg searchResultMsg) {
	if msg.query != m.query() {
		return
	}

	m.searching = false
	m.cursor = 0

	if msg.err != nil {
		m.logger.Error("search failed", "query", msg.query, "error", msg.err)
		m.results = []catalog.SearchResult{}
		return
	}

	m.results = msg.results
	if m.results == nil {
		m.results = []catalog.SearchResult{}
	}
}

func (m *Model) openSelected() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return nil
	}

	id := m.results[m.cursor].ID
	tick := m.spinnerTick()
	m.mode = viewDetail
	m.loading = true
	m.loadingID = id
	m.game = nil

	return tea.Batch(loadGameCmd(m.games, m.timeout, id), tick)
}

// handleGameLoaded ignores lookups the user has already navigated away from.
func (m *Model) handleGameLoaded(msg gameLoadedMsg) {
	if m.mode != viewDetail || !m.loading || msg.id != m.loadingID {
		return
	}

	m.loading = false
	if msg.err != nil {
		if !errors.Is(msg.err, catalog.ErrNotFound) {
			m.logger.Error("get game failed", "id", msg.id, "error", msg.err)
		}
		m.game = nil
		return
	}
	m.game = msg.game
}

func (m *Model) query() string {
	return strings.TrimSpace(m.input.Value())
}
