package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/services"
)

// searchDebounce is how long input must be quiet before a query fires.
// Short enough to feel incremental, long enough to skip intermediate
// keystrokes on a normal typing cadence.
const searchDebounce = 300 * time.Millisecond

type searchDebouncedMsg struct {
	gen int
}

type searchResultsMsg struct {
	gen     int
	results []models.UserSearchResult
	err     error
}

// SearchModel implements debounced incremental user search.
//
// Each edit bumps a generation counter; only the debounce timer and response
// carrying the current generation are honored, so stale responses can never
// overwrite results for newer input. Result sets replace each other wholly.
type SearchModel struct {
	ctx       context.Context
	service   services.SearchService
	input     textinput.Model
	gen       int
	searching bool
	searched  bool
	results   []models.UserSearchResult
	cursor    int
	err       error
}

// NewSearchModel creates a search model bound to the given service.
func NewSearchModel(ctx context.Context, service services.SearchService) SearchModel {
	input := textinput.New()
	input.Placeholder = "Search golfers..."
	input.CharLimit = 64
	return SearchModel{ctx: ctx, service: service, input: input}
}

// Focus gives keyboard focus to the query input.
func (m *SearchModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes keyboard focus from the query input.
func (m *SearchModel) Blur() {
	m.input.Blur()
}

// Focused reports whether the query input has keyboard focus.
func (m SearchModel) Focused() bool {
	return m.input.Focused()
}

// Query returns the current trimmed query text.
func (m SearchModel) Query() string {
	return strings.TrimSpace(m.input.Value())
}

// Results returns the current result set.
func (m SearchModel) Results() []models.UserSearchResult {
	return m.results
}

// Selected returns the highlighted result, or nil when there is none.
func (m SearchModel) Selected() *models.UserSearchResult {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return nil
	}
	return &m.results[m.cursor]
}

// Searching reports whether a query is in flight.
func (m SearchModel) Searching() bool {
	return m.searching
}

// Err returns the dismissable error from the last failed query.
func (m SearchModel) Err() error {
	return m.err
}

// DismissError clears the current error without touching results.
func (m *SearchModel) DismissError() {
	m.err = nil
}

// Update handles input, debounce timers, and query responses.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "esc":
			if m.err != nil {
				m.err = nil
				return m, nil
			}
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() == before {
			return m, cmd
		}

		m.gen++
		m.cursor = 0
		if m.Query() == "" {
			// Cleared input resets the view without a round trip.
			m.searching = false
			m.searched = false
			m.results = nil
			m.err = nil
			return m, cmd
		}

		gen := m.gen
		return m, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebouncedMsg{gen: gen}
		}))

	case searchDebouncedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.searching = true
		return m, m.search(msg.gen, m.Query())

	case searchResultsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.searching = false
		m.searched = true
		if msg.err != nil {
			// An undismissed error stays until the user clears it; later
			// failures do not replace it.
			if m.err == nil {
				m.err = msg.err
			}
			return m, nil
		}
		m.err = nil
		m.results = msg.results
		if m.cursor >= len(m.results) {
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}

// View renders the query input, status line, and result rows.
func (m SearchModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Search failed: %v", m.err)))
		b.WriteString(styles.help.Render("  (esc to dismiss)"))
	case m.searching:
		b.WriteString(styles.help.Render("Searching..."))
	case m.searched && m.Query() != "" && len(m.results) == 0:
		b.WriteString(styles.help.Render("No golfers found"))
	default:
		for i, result := range m.results {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s\n", cursor, renderSearchResult(result)))
		}
	}

	return b.String()
}

// renderSearchResult formats one result row with handicap, elo, and
// relationship badge.
func renderSearchResult(r models.UserSearchResult) string {
	row := fmt.Sprintf("%s (@%s)  hcp %.1f  elo %d", r.FullName, r.Username, r.Handicap, r.Elo)
	switch r.FriendshipStatus {
	case models.FriendshipAccepted:
		row += styles.ok.Render("  friend")
	case models.FriendshipPending:
		row += styles.warn.Render("  pending")
	case models.FriendshipBlocked:
		row += styles.err.Render("  blocked")
	case models.FriendshipSelf:
		row += styles.help.Render("  you")
	}
	return row
}

func (m SearchModel) search(gen int, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.service.SearchUsers(m.ctx, query)
		return searchResultsMsg{gen: gen, results: results, err: err}
	}
}
