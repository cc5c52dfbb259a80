// Auth client for the Rounds identity service.
//
// The backend issues OAuth2 tokens; login uses the resource-owner password
// grant and browser SSO uses the standard authorization-code flow through the
// local callback server.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/shared"
	"golang.org/x/oauth2"
)

// AuthClient implements [AuthService] against the backend token endpoint.
type AuthClient struct {
	rest   restClient
	config *oauth2.Config
	token  *oauth2.Token
}

// AuthOpts contains the endpoints and client credentials for AuthClient.
type AuthOpts struct {
	BaseURL      string // backend API base URL, for /me
	AuthURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	HTTPClient   *http.Client
}

// NewAuthClient creates an AuthClient from the given options.
func NewAuthClient(opts AuthOpts) (*AuthClient, error) {
	if opts.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}
	if opts.TokenURL == "" {
		return nil, fmt.Errorf("%w: missing token_url", shared.ErrMissingConfig)
	}

	config := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		RedirectURL:  opts.RedirectURI,
		Scopes:       []string{"profile", "social", "courses"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  opts.AuthURL,
			TokenURL: opts.TokenURL,
		},
	}

	return &AuthClient{
		rest:   newRESTClient(opts.BaseURL, opts.HTTPClient),
		config: config,
	}, nil
}

// Login exchanges an email/password pair for a session via the password grant.
// Empty credentials are rejected locally before any network call.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*Credentials, error) {
	if email == "" || password == "" {
		return nil, shared.Terminal(fmt.Errorf("%w: email and password are required", shared.ErrInvalidInput))
	}

	token, err := a.config.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		return nil, classifyOAuthError(err)
	}

	a.adopt(token)
	return a.credentials(email, token), nil
}

// Refresh exchanges a refresh token for a fresh access token.
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	if refreshToken == "" {
		return nil, shared.Terminal(shared.ErrNoRefreshToken)
	}

	source := a.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, classifyOAuthError(fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err))
	}

	a.adopt(token)
	return a.credentials("", token), nil
}

// Resume installs a previously persisted token without a network round trip.
func (a *AuthClient) Resume(ctx context.Context, accessToken, refreshToken string, expiresAt time.Time) {
	a.adopt(&oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Expiry:       expiresAt,
	})
	// Reuse the config token source so expired tokens refresh on demand.
	a.rest.setTokenSource(a.config.TokenSource(ctx, a.token))
}

// ExchangeCode completes a browser SSO flow with the authorization code
// delivered to the local callback server, adopting the resulting token.
func (a *AuthClient) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, classifyOAuthError(fmt.Errorf("failed to exchange auth code: %w", err))
	}

	a.adopt(token)
	return token, nil
}

// Exchange is ExchangeCode returning session credentials.
func (a *AuthClient) Exchange(ctx context.Context, code string) (*Credentials, error) {
	token, err := a.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return a.credentials("", token), nil
}

// AuthURL returns the authorization URL for browser SSO login.
func (a *AuthClient) AuthURL(state string) string {
	return a.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// OAuthConfig exposes the underlying config for the callback server.
func (a *AuthClient) OAuthConfig() *oauth2.Config {
	return a.config
}

// TokenSource returns the authenticated token source for other API clients.
// Returns nil until a login, refresh, or resume has succeeded.
func (a *AuthClient) TokenSource() oauth2.TokenSource {
	return a.rest.tokens
}

// Me retrieves the authenticated user's profile.
func (a *AuthClient) Me(ctx context.Context) (*models.UserSearchResult, error) {
	if a.token == nil {
		return nil, shared.Terminal(shared.ErrNotAuthenticated)
	}

	var me models.UserSearchResult
	if err := a.rest.doRequest(ctx, http.MethodGet, "/me", nil, &me); err != nil {
		return nil, err
	}
	me.FriendshipStatus = models.FriendshipSelf
	return &me, nil
}

// Claims returns the registered claims of the current access token, parsed
// without signature verification. Verification belongs to the backend; the
// client only reads subject and expiry for display and session bookkeeping.
func (a *AuthClient) Claims() (*jwt.RegisteredClaims, error) {
	if a.token == nil {
		return nil, shared.ErrNotAuthenticated
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(a.token.AccessToken, claims); err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	return claims, nil
}

func (a *AuthClient) adopt(token *oauth2.Token) {
	a.token = token
	a.rest.setTokenSource(oauth2.StaticTokenSource(token))
}

// credentials builds the Credentials result from a token, pulling the user ID
// from the JWT subject claim when the token is a JWT.
func (a *AuthClient) credentials(email string, token *oauth2.Token) *Credentials {
	creds := &Credentials{
		Email:        email,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		creds.ExpiresAt = token.Expiry.Unix()
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token.AccessToken, claims); err == nil {
		creds.UserID = claims.Subject
	}

	return creds
}

// classifyOAuthError maps oauth2 failures onto the transient/terminal
// taxonomy: a structured RetrieveError is a definitive rejection, anything
// else is assumed to be a transport problem.
func classifyOAuthError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil && retrieveErr.Response.StatusCode >= 500 {
			return shared.Transient(fmt.Errorf("%w: %v", shared.ErrAuthFailed, err))
		}
		return shared.Terminal(fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err))
	}
	return shared.Transient(fmt.Errorf("%w: %v", shared.ErrAuthFailed, err))
}
