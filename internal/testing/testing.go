// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/services"
)

// MockAuthService is a configurable test double for [services.AuthService]
type MockAuthService struct {
	LoginFunc   func(ctx context.Context, email, password string) (*services.Credentials, error)
	RefreshFunc func(ctx context.Context, refreshToken string) (*services.Credentials, error)
	MeFunc      func(ctx context.Context) (*models.UserSearchResult, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.Credentials, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &services.Credentials{UserID: "user-1", Email: email, AccessToken: "token"}, nil
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*services.Credentials, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return &services.Credentials{UserID: "user-1", AccessToken: "token"}, nil
}

func (m *MockAuthService) Me(ctx context.Context) (*models.UserSearchResult, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx)
	}
	return &models.UserSearchResult{ID: "user-1", Username: "me", FriendshipStatus: models.FriendshipSelf}, nil
}

// MockFriendService is a configurable test double for [services.FriendService]
type MockFriendService struct {
	FriendsFunc  func(ctx context.Context) ([]models.UserSearchResult, error)
	RequestsFunc func(ctx context.Context) ([]models.FriendRequest, error)
	SendFunc     func(ctx context.Context, toUserID string) (*models.FriendRequest, error)
	RespondFunc  func(ctx context.Context, requestID string, accept bool) (*models.FriendRequest, error)
	BlockFunc    func(ctx context.Context, userID string) error
}

func (m *MockFriendService) Friends(ctx context.Context) ([]models.UserSearchResult, error) {
	if m.FriendsFunc != nil {
		return m.FriendsFunc(ctx)
	}
	return []models.UserSearchResult{}, nil
}

func (m *MockFriendService) Requests(ctx context.Context) ([]models.FriendRequest, error) {
	if m.RequestsFunc != nil {
		return m.RequestsFunc(ctx)
	}
	return []models.FriendRequest{}, nil
}

func (m *MockFriendService) SendRequest(ctx context.Context, toUserID string) (*models.FriendRequest, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, toUserID)
	}
	return &models.FriendRequest{ID: "req-1", RecipientID: toUserID, Status: models.FriendshipPending}, nil
}

func (m *MockFriendService) RespondToRequest(ctx context.Context, requestID string, accept bool) (*models.FriendRequest, error) {
	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, requestID, accept)
	}
	status := models.FriendshipDeclined
	if accept {
		status = models.FriendshipAccepted
	}
	return &models.FriendRequest{ID: requestID, Status: status}, nil
}

func (m *MockFriendService) Block(ctx context.Context, userID string) error {
	if m.BlockFunc != nil {
		return m.BlockFunc(ctx, userID)
	}
	return nil
}

// MockSearchService is a configurable test double for [services.SearchService]
type MockSearchService struct {
	SearchFunc func(ctx context.Context, query string) ([]models.UserSearchResult, error)
	Queries    []string
}

func (m *MockSearchService) SearchUsers(ctx context.Context, query string) ([]models.UserSearchResult, error) {
	m.Queries = append(m.Queries, query)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []models.UserSearchResult{}, nil
}

// MockHomeService is a configurable test double for [services.HomeService]
type MockHomeService struct {
	MatchesFunc     func(ctx context.Context, limit int) ([]models.MatchSummary, error)
	LeaderboardFunc func(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	TournamentsFunc func(ctx context.Context) ([]models.Tournament, error)
}

func (m *MockHomeService) RecentMatches(ctx context.Context, limit int) ([]models.MatchSummary, error) {
	if m.MatchesFunc != nil {
		return m.MatchesFunc(ctx, limit)
	}
	return []models.MatchSummary{}, nil
}

func (m *MockHomeService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, limit)
	}
	return []models.LeaderboardEntry{}, nil
}

func (m *MockHomeService) Tournaments(ctx context.Context) ([]models.Tournament, error) {
	if m.TournamentsFunc != nil {
		return m.TournamentsFunc(ctx)
	}
	return []models.Tournament{}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
