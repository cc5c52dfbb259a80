package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/roundsapp/rounds/internal/shared"
	"golang.org/x/oauth2"
)

// restClient is the shared HTTP plumbing for backend API clients.
//
// Authenticated requests draw their bearer token from the oauth2 token
// source, which refreshes transparently when the access token expires.
type restClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
}

func newRESTClient(baseURL string, client *http.Client) restClient {
	if client == nil {
		client = http.DefaultClient
	}
	return restClient{baseURL: baseURL, httpClient: client}
}

// setTokenSource installs the token source used for bearer authentication.
func (c *restClient) setTokenSource(ts oauth2.TokenSource) {
	c.tokens = ts
}

// doRequest performs a JSON request against the backend API. The response
// body is decoded into result when result is non-nil. Failures are classified
// so callers can distinguish retryable from terminal errors: transport errors
// and 5xx responses are transient, 4xx responses are terminal.
func (c *restClient) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return shared.Terminal(fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err))
		}
		token.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return shared.Transient(fmt.Errorf("%w: %v", shared.ErrAPIRequest, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// apiError is the backend's error envelope.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// classifyStatus converts a non-2xx response into a classified error,
// surfacing the backend's message verbatim when one is present.
func classifyStatus(resp *http.Response) error {
	msg := fmt.Sprintf("status %d", resp.StatusCode)

	var envelope apiError
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if envelope.Message != "" {
			msg = envelope.Message
		} else if envelope.Error != "" {
			msg = envelope.Error
		}
	}

	err := fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
	if resp.StatusCode >= 500 {
		return shared.Transient(err)
	}
	return shared.Terminal(err)
}
