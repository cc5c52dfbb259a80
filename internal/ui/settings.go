package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/shared"
)

// settingsModel renders the signed-in account and client configuration.
type settingsModel struct {
	config *shared.Config
	user   *models.UserSearchResult
}

func newSettingsModel(config *shared.Config) settingsModel {
	return settingsModel{config: config}
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	return m, nil
}

func (m settingsModel) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Settings"))
	b.WriteString("\n")

	if m.user != nil {
		b.WriteString(fmt.Sprintf("Signed in as %s (@%s)\n\n", m.user.FullName, m.user.Username))
	} else {
		b.WriteString(styles.help.Render("Not signed in\n\n"))
	}

	if m.config != nil {
		b.WriteString(fmt.Sprintf("API       %s\n", m.config.API.BaseURL))
		b.WriteString(fmt.Sprintf("Realtime  %s\n", m.config.API.RealtimeURL))
		b.WriteString(fmt.Sprintf("OCR       %s\n", m.config.OCR.BaseURL))
		b.WriteString(fmt.Sprintf("Cache     %s\n", m.config.Database.Path))
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("rounds auth logout to sign out"))

	return b.String()
}
