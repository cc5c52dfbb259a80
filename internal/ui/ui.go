package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/services"
	"github.com/roundsapp/rounds/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	TabsView
)

// flashDuration is how long a selected tab label stays highlighted. The
// highlight fires on every selection, including re-selecting the active tab,
// so the user always gets acknowledgment.
const flashDuration = 250 * time.Millisecond

// Deps carries the service clients the TUI depends on.
type Deps struct {
	Auth    services.AuthService
	Friends services.FriendService
	Search  services.SearchService
	Home    services.HomeService
	Feed    *services.RealtimeFeed
	Config  *shared.Config
}

type loggedInMsg struct {
	user *models.UserSearchResult
	err  error
}

type flashClearMsg struct {
	tab TabID
}

type realtimeEventMsg services.Event

// Model is the root TUI application state.
//
// All five tab models are constructed once and stay mounted; switching tabs
// changes which one receives key input and is rendered, never their state.
type Model struct {
	ctx       context.Context
	deps      Deps
	view      ViewState
	selection TabSelection
	flashTab  TabID
	flashing  bool

	home        homeModel
	rankings    rankingsModel
	social      socialModel
	tournaments tournamentsModel
	settings    settingsModel
	tabLoaded   [TabCount]bool

	email      textinput.Model
	password   textinput.Model
	onPassword bool
	loggingIn  bool
	user       *models.UserSearchResult

	width  int
	height int
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates the root TUI model with the provided dependencies.
func NewModel(ctx context.Context, deps Deps) *Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	return &Model{
		ctx:         ctx,
		deps:        deps,
		view:        LoginView,
		selection:   NewTabSelection(),
		home:        newHomeModel(ctx, deps.Home),
		rankings:    newRankingsModel(ctx, deps.Home),
		social:      newSocialModel(ctx, deps.Friends, deps.Search),
		tournaments: newTournamentsModel(ctx, deps.Home),
		settings:    newSettingsModel(deps.Config),
		email:       email,
		password:    password,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// WithUser starts the TUI already signed in, skipping the login view.
// Used when a persisted session was resumed.
func (m *Model) WithUser(user *models.UserSearchResult) *Model {
	m.user = user
	m.home.user = user
	m.settings.user = user
	m.view = TabsView
	return m
}

// Selection exposes the tab state machine.
func (m *Model) Selection() TabSelection {
	return m.selection
}

// Init loads the initial tab, or just blinks the cursor on the login view.
func (m *Model) Init() tea.Cmd {
	if m.view == TabsView {
		return tea.Batch(m.loadTab(m.selection.Active()), m.waitForEvent())
	}
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loggedInMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.user = msg.user
		m.home.user = msg.user
		m.settings.user = msg.user
		m.view = TabsView
		return m, tea.Batch(m.loadTab(m.selection.Active()), m.waitForEvent())

	case flashClearMsg:
		if m.flashing && msg.tab == m.flashTab {
			m.flashing = false
		}
		return m, nil

	case realtimeEventMsg:
		return m.handleEvent(services.Event(msg))

	case tea.KeyMsg:
		if m.view == LoginView {
			return m.handleLoginKeys(msg)
		}
		return m.handleTabKeys(msg)
	}

	return m.updateTabs(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.view == LoginView {
		return m.renderLogin()
	}
	return m.renderTabs()
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.toggleLoginFocus()
		return m, nil
	case "enter":
		if !m.onPassword {
			m.toggleLoginFocus()
			return m, nil
		}
		if m.loggingIn {
			return m, nil
		}
		m.loggingIn = true
		m.err = nil
		return m, m.login(m.email.Value(), m.password.Value())
	}

	var cmd tea.Cmd
	if m.onPassword {
		m.password, cmd = m.password.Update(msg)
	} else {
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleLoginFocus() {
	m.onPassword = !m.onPassword
	if m.onPassword {
		m.email.Blur()
		m.password.Focus()
	} else {
		m.password.Blur()
		m.email.Focus()
	}
}

func (m *Model) handleTabKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A focused search input captures everything except interrupt.
	typing := m.selection.Active() == TabSocial && m.social.search.Focused()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if !typing {
			return m, tea.Quit
		}
	case "1", "2", "3", "4", "5":
		if !typing {
			return m, m.selectTab(TabID(int(msg.String()[0] - '1')))
		}
	case "tab":
		if !typing {
			return m, m.selectTab((m.selection.Active() + 1) % TabCount)
		}
	case "shift+tab":
		if !typing {
			return m, m.selectTab((m.selection.Active() + TabCount - 1) % TabCount)
		}
	}

	return m.updateActiveTab(msg)
}

// selectTab switches tabs and triggers the selection flash. Re-selecting the
// active tab flashes without changing the active tab.
func (m *Model) selectTab(tab TabID) tea.Cmd {
	changed := m.selection.Select(tab)

	m.flashTab = tab
	m.flashing = true
	flash := tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{tab: tab}
	})

	if changed && !m.tabLoaded[tab] {
		return tea.Batch(flash, m.loadTab(tab))
	}
	return flash
}

// loadTab issues the initial fetch for a tab's data.
func (m *Model) loadTab(tab TabID) tea.Cmd {
	m.tabLoaded[tab] = true
	switch tab {
	case TabHome:
		return m.home.load()
	case TabRankings:
		return m.rankings.load()
	case TabSocial:
		return m.social.load()
	case TabTournaments:
		return m.tournaments.load()
	}
	return nil
}

// updateActiveTab routes key input to the active tab only.
func (m *Model) updateActiveTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.selection.Active() {
	case TabHome:
		m.home, cmd = m.home.Update(msg)
	case TabRankings:
		m.rankings, cmd = m.rankings.Update(msg)
	case TabSocial:
		m.social, cmd = m.social.Update(msg)
	case TabTournaments:
		m.tournaments, cmd = m.tournaments.Update(msg)
	case TabSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return m, cmd
}

// updateTabs routes data messages to every tab so inactive tabs keep their
// state current.
func (m *Model) updateTabs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.home, cmd = m.home.Update(msg)
	cmds = append(cmds, cmd)
	m.rankings, cmd = m.rankings.Update(msg)
	cmds = append(cmds, cmd)
	m.social, cmd = m.social.Update(msg)
	cmds = append(cmds, cmd)
	m.tournaments, cmd = m.tournaments.Update(msg)
	cmds = append(cmds, cmd)
	m.settings, cmd = m.settings.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleEvent reacts to pushed backend events and re-arms the listener.
func (m *Model) handleEvent(event services.Event) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch event.Kind {
	case services.EventFriendRequestCreated, services.EventFriendRequestAnswered:
		if m.tabLoaded[TabSocial] {
			cmd = m.social.load()
		}
	case services.EventMatchCompleted:
		if m.tabLoaded[TabHome] {
			cmd = m.home.load()
		}
	}
	return m, tea.Batch(cmd, m.waitForEvent())
}

func (m *Model) waitForEvent() tea.Cmd {
	if m.deps.Feed == nil {
		return nil
	}
	events := m.deps.Feed.Events()
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return realtimeEventMsg(event)
	}
}

func (m *Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.deps.Auth.Login(m.ctx, email, password); err != nil {
			return loggedInMsg{err: err}
		}
		user, err := m.deps.Auth.Me(m.ctx)
		return loggedInMsg{user: user, err: err}
	}
}

func (m *Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Rounds"))
	b.WriteString("\n\n")
	b.WriteString(m.email.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.loggingIn {
		b.WriteString(styles.help.Render("Signing in..."))
	} else if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Sign in failed: %v", m.err)))
	} else {
		b.WriteString(styles.help.Render("enter to sign in, ctrl+c to quit"))
	}

	return b.String()
}

func (m *Model) renderTabs() string {
	var bar []string
	for tab := TabID(0); tab < TabCount; tab++ {
		label := fmt.Sprintf("%d %s", tab+1, tab)
		switch {
		case m.flashing && tab == m.flashTab:
			bar = append(bar, styles.flash.Render(label))
		case tab == m.selection.Active():
			bar = append(bar, styles.active.Render(label))
		default:
			bar = append(bar, styles.tab.Render(label))
		}
	}

	var body string
	switch m.selection.Active() {
	case TabHome:
		body = m.home.View()
	case TabRankings:
		body = m.rankings.View()
	case TabSocial:
		body = m.social.View()
	case TabTournaments:
		body = m.tournaments.View()
	case TabSettings:
		body = m.settings.View()
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s\n\n%s\n\n%s", strings.Join(bar, " "), body, helpView)
}
