package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/services"
)

type leaderboardFetchedMsg struct {
	entries []models.LeaderboardEntry
	err     error
}

// rankingsModel renders the global elo leaderboard.
type rankingsModel struct {
	ctx     context.Context
	home    services.HomeService
	entries []models.LeaderboardEntry
	cursor  int
	loaded  bool
	err     error
}

func newRankingsModel(ctx context.Context, home services.HomeService) rankingsModel {
	return rankingsModel{ctx: ctx, home: home}
}

func (m rankingsModel) load() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.home.Leaderboard(m.ctx, 50)
		return leaderboardFetchedMsg{entries: entries, err: err}
	}
}

func (m rankingsModel) Update(msg tea.Msg) (rankingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case leaderboardFetchedMsg:
		m.loaded = true
		m.entries = msg.entries
		m.err = msg.err
		if m.cursor >= len(m.entries) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "R":
			m.loaded = false
			return m, m.load()
		}
	}
	return m, nil
}

func (m rankingsModel) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Rankings"))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Could not load leaderboard: %v", m.err)))
	case !m.loaded:
		b.WriteString(styles.help.Render("Loading..."))
	case len(m.entries) == 0:
		b.WriteString(styles.help.Render("Nobody ranked yet"))
	default:
		for i, entry := range m.entries {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s#%-3d %s (@%s)  elo %d  hcp %.1f\n",
				cursor, entry.Rank, entry.FullName, entry.Username, entry.Elo, entry.Handicap))
		}
	}

	return b.String()
}
