package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/services"
)

type tournamentsFetchedMsg struct {
	tournaments []models.Tournament
	err         error
}

// tournamentsModel renders upcoming tournament listings.
type tournamentsModel struct {
	ctx         context.Context
	home        services.HomeService
	tournaments []models.Tournament
	loaded      bool
	err         error
}

func newTournamentsModel(ctx context.Context, home services.HomeService) tournamentsModel {
	return tournamentsModel{ctx: ctx, home: home}
}

func (m tournamentsModel) load() tea.Cmd {
	return func() tea.Msg {
		tournaments, err := m.home.Tournaments(m.ctx)
		return tournamentsFetchedMsg{tournaments: tournaments, err: err}
	}
}

func (m tournamentsModel) Update(msg tea.Msg) (tournamentsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tournamentsFetchedMsg:
		m.loaded = true
		m.tournaments = msg.tournaments
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

func (m tournamentsModel) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Tournaments"))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Could not load tournaments: %v", m.err)))
	case !m.loaded:
		b.WriteString(styles.help.Render("Loading..."))
	case len(m.tournaments) == 0:
		b.WriteString(styles.help.Render("No upcoming tournaments"))
	default:
		for _, t := range m.tournaments {
			spots := fmt.Sprintf("%d/%d entered", t.Entrants, t.MaxEntries)
			if t.Entrants >= t.MaxEntries {
				spots = styles.warn.Render("full")
			}
			b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
				t.StartsAt.Format("Jan 2"), t.Name, t.CourseName, spots))
		}
	}

	return b.String()
}
