// User search client with client-side rate limiting.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// SearchClient implements [SearchService] against the backend user index.
//
// A rate limiter caps outbound queries independently of the UI's debounce, so
// a scripted caller (the CLI search command in a loop, tests) cannot hammer
// the backend either.
type SearchClient struct {
	rest    restClient
	limiter *rate.Limiter
}

// NewSearchClient creates a SearchClient. queriesPerSecond <= 0 defaults to 5.
func NewSearchClient(baseURL string, tokens oauth2.TokenSource, client *http.Client, queriesPerSecond float64) *SearchClient {
	if queriesPerSecond <= 0 {
		queriesPerSecond = 5
	}

	c := &SearchClient{
		rest:    newRESTClient(baseURL, client),
		limiter: rate.NewLimiter(rate.Limit(queriesPerSecond), 1),
	}
	c.rest.setTokenSource(tokens)
	return c
}

// SearchUsers returns users matching the free-text query. An empty or
// whitespace-only query returns an empty result set without a network call.
func (s *SearchClient) SearchUsers(ctx context.Context, query string) ([]models.UserSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, shared.Transient(fmt.Errorf("%w: %v", shared.ErrTimeout, err))
	}

	endpoint := fmt.Sprintf("/users/search?q=%s", url.QueryEscape(query))
	var response struct {
		Results []models.UserSearchResult `json:"results"`
	}
	if err := s.rest.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}
