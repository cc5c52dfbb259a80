package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/services"
)

type friendsFetchedMsg struct {
	friends  []models.UserSearchResult
	requests []models.FriendRequest
	err      error
}

type requestSentMsg struct {
	request *models.FriendRequest
	err     error
}

type requestAnsweredMsg struct {
	request *models.FriendRequest
	err     error
}

// socialModel combines the friends list, incoming requests, and user search.
//
// While the search input is focused, all key input goes to the search model;
// otherwise keys navigate the friends and requests lists.
type socialModel struct {
	ctx      context.Context
	friends  services.FriendService
	search   SearchModel
	list     []models.UserSearchResult
	requests []models.FriendRequest
	cursor   int
	loaded   bool
	status   string
	err      error
	keys     keyMap
}

func newSocialModel(ctx context.Context, friends services.FriendService, search services.SearchService) socialModel {
	return socialModel{
		ctx:     ctx,
		friends: friends,
		search:  NewSearchModel(ctx, search),
		keys:    newKeyMap(),
	}
}

func (m socialModel) load() tea.Cmd {
	return func() tea.Msg {
		friends, err := m.friends.Friends(m.ctx)
		if err != nil {
			return friendsFetchedMsg{err: err}
		}
		requests, err := m.friends.Requests(m.ctx)
		return friendsFetchedMsg{friends: friends, requests: requests, err: err}
	}
}

func (m socialModel) Update(msg tea.Msg) (socialModel, tea.Cmd) {
	switch msg := msg.(type) {
	case friendsFetchedMsg:
		m.loaded = true
		m.err = msg.err
		if msg.err == nil {
			m.list = msg.friends
			m.requests = msg.requests
		}
		return m, nil

	case requestSentMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Could not send request: %v", msg.err))
			return m, nil
		}
		m.status = styles.ok.Render("Friend request sent")
		return m, nil

	case requestAnsweredMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Could not answer request: %v", msg.err))
			return m, nil
		}
		// The backend owns request state; refresh to render its answer.
		return m, m.load()

	case searchDebouncedMsg, searchResultsMsg:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m socialModel) handleKeys(msg tea.KeyMsg) (socialModel, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "esc":
			if m.search.Err() == nil && m.search.Query() == "" {
				m.search.Blur()
				return m, nil
			}
		case "enter":
			if selected := m.search.Selected(); selected != nil {
				return m, m.sendRequest(selected.ID)
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "/":
		m.status = ""
		return m, m.search.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.requests)+len(m.list)-1 {
			m.cursor++
		}
	case "a":
		if request := m.selectedRequest(); request != nil {
			return m, m.answerRequest(request.ID, true)
		}
	case "d":
		if request := m.selectedRequest(); request != nil {
			return m, m.answerRequest(request.ID, false)
		}
	case "b":
		if friend := m.selectedFriend(); friend != nil {
			return m, m.blockUser(friend.ID)
		}
	case "R":
		m.loaded = false
		m.status = ""
		return m, m.load()
	}
	return m, nil
}

// selectedRequest returns the highlighted pending request, if the cursor is
// in the requests section.
func (m socialModel) selectedRequest() *models.FriendRequest {
	if m.cursor < len(m.requests) {
		return &m.requests[m.cursor]
	}
	return nil
}

// selectedFriend returns the highlighted friend, if the cursor is in the
// friends section.
func (m socialModel) selectedFriend() *models.UserSearchResult {
	i := m.cursor - len(m.requests)
	if i >= 0 && i < len(m.list) {
		return &m.list[i]
	}
	return nil
}

func (m socialModel) sendRequest(userID string) tea.Cmd {
	return func() tea.Msg {
		request, err := m.friends.SendRequest(m.ctx, userID)
		return requestSentMsg{request: request, err: err}
	}
}

func (m socialModel) answerRequest(requestID string, accept bool) tea.Cmd {
	return func() tea.Msg {
		request, err := m.friends.RespondToRequest(m.ctx, requestID, accept)
		return requestAnsweredMsg{request: request, err: err}
	}
}

func (m socialModel) blockUser(userID string) tea.Cmd {
	return func() tea.Msg {
		err := m.friends.Block(m.ctx, userID)
		return requestAnsweredMsg{err: err}
	}
}

func (m socialModel) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Social"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Could not load friends: %v", m.err)))
	case !m.loaded:
		b.WriteString(styles.help.Render("Loading..."))
	default:
		if len(m.requests) > 0 {
			b.WriteString(styles.warn.Render(fmt.Sprintf("Requests (%d)", len(m.requests))))
			b.WriteString("\n")
			for i, request := range m.requests {
				cursor := "  "
				if !m.search.Focused() && i == m.cursor {
					cursor = "> "
				}
				name := request.RequesterID
				if request.Requester != nil {
					name = fmt.Sprintf("%s (@%s)", request.Requester.FullName(), request.Requester.Username())
				}
				b.WriteString(fmt.Sprintf("%s%s  a/d to answer\n", cursor, name))
			}
			b.WriteString("\n")
		}

		b.WriteString("Friends\n")
		if len(m.list) == 0 {
			b.WriteString(styles.help.Render("No friends yet, try / to search"))
		}
		for i, friend := range m.list {
			cursor := "  "
			if !m.search.Focused() && i+len(m.requests) == m.cursor {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s\n", cursor, renderSearchResult(friend)))
		}
	}

	return b.String()
}
