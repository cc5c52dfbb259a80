// Friend client for the Rounds social service.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/shared"
	"golang.org/x/oauth2"
)

// FriendClient implements [FriendService] against the backend social API.
type FriendClient struct {
	rest restClient
}

// NewFriendClient creates a FriendClient for the given base URL, drawing
// bearer tokens from the provided source.
func NewFriendClient(baseURL string, tokens oauth2.TokenSource, client *http.Client) *FriendClient {
	c := &FriendClient{rest: newRESTClient(baseURL, client)}
	c.rest.setTokenSource(tokens)
	return c
}

// Friends lists the current user's accepted friends.
func (f *FriendClient) Friends(ctx context.Context) ([]models.UserSearchResult, error) {
	var response struct {
		Friends []models.UserSearchResult `json:"friends"`
	}
	if err := f.rest.doRequest(ctx, http.MethodGet, "/friends", nil, &response); err != nil {
		return nil, err
	}
	return response.Friends, nil
}

// Requests lists incoming pending friend requests.
func (f *FriendClient) Requests(ctx context.Context) ([]models.FriendRequest, error) {
	var response struct {
		Requests []models.FriendRequest `json:"requests"`
	}
	if err := f.rest.doRequest(ctx, http.MethodGet, "/friends/requests", nil, &response); err != nil {
		return nil, err
	}
	return response.Requests, nil
}

// SendRequest creates a friend request addressed to the given user.
func (f *FriendClient) SendRequest(ctx context.Context, toUserID string) (*models.FriendRequest, error) {
	if toUserID == "" {
		return nil, shared.Terminal(fmt.Errorf("%w: recipient user ID", shared.ErrMissingArgument))
	}

	body := map[string]string{"recipient_id": toUserID}
	var request models.FriendRequest
	if err := f.rest.doRequest(ctx, http.MethodPost, "/friends/requests", body, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// RespondToRequest accepts or declines a pending request. The returned record
// carries the backend's authoritative post-transition status.
func (f *FriendClient) RespondToRequest(ctx context.Context, requestID string, accept bool) (*models.FriendRequest, error) {
	if requestID == "" {
		return nil, shared.Terminal(fmt.Errorf("%w: request ID", shared.ErrMissingArgument))
	}

	action := "decline"
	if accept {
		action = "accept"
	}

	endpoint := fmt.Sprintf("/friends/requests/%s/%s", url.PathEscape(requestID), action)
	var request models.FriendRequest
	if err := f.rest.doRequest(ctx, http.MethodPost, endpoint, nil, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// Block blocks the given user.
func (f *FriendClient) Block(ctx context.Context, userID string) error {
	if userID == "" {
		return shared.Terminal(fmt.Errorf("%w: user ID", shared.ErrMissingArgument))
	}

	endpoint := fmt.Sprintf("/friends/%s/block", url.PathEscape(userID))
	return f.rest.doRequest(ctx, http.MethodPost, endpoint, nil, nil)
}
