package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/services"
)

type matchesFetchedMsg struct {
	matches []models.MatchSummary
	err     error
}

// homeModel renders the signed-in user's recent matches.
type homeModel struct {
	ctx     context.Context
	home    services.HomeService
	user    *models.UserSearchResult
	matches []models.MatchSummary
	loaded  bool
	err     error
}

func newHomeModel(ctx context.Context, home services.HomeService) homeModel {
	return homeModel{ctx: ctx, home: home}
}

func (m homeModel) load() tea.Cmd {
	return func() tea.Msg {
		matches, err := m.home.RecentMatches(m.ctx, 10)
		return matchesFetchedMsg{matches: matches, err: err}
	}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case matchesFetchedMsg:
		m.loaded = true
		m.matches = msg.matches
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "R" {
			m.loaded = false
			return m, m.load()
		}
	}
	return m, nil
}

func (m homeModel) View() string {
	var b strings.Builder

	if m.user != nil {
		b.WriteString(fmt.Sprintf("%s (@%s)  hcp %.1f  elo %d\n\n",
			m.user.FullName, m.user.Username, m.user.Handicap, m.user.Elo))
	}

	b.WriteString(styles.title.Render("Recent Matches"))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Could not load matches: %v", m.err)))
	case !m.loaded:
		b.WriteString(styles.help.Render("Loading..."))
	case len(m.matches) == 0:
		b.WriteString(styles.help.Render("No matches played yet"))
	default:
		for _, match := range m.matches {
			outcome := styles.err.Render("L")
			if match.Won() {
				outcome = styles.ok.Render("W")
			}
			delta := fmt.Sprintf("%+d", match.EloDelta)
			b.WriteString(fmt.Sprintf("%s  %s vs %s  %d-%d  %s\n",
				outcome, match.CourseName, match.OpponentName, match.MyScore, match.TheirScore, delta))
		}
	}

	return b.String()
}
