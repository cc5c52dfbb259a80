// Course and dashboard clients for the Rounds backend.
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

// CourseClient implements [CourseService] and [HomeService].
type CourseClient struct {
	rest restClient
}

// NewCourseClient creates a CourseClient for the given base URL.
func NewCourseClient(baseURL string, tokens oauth2.TokenSource, client *http.Client) *CourseClient {
	c := &CourseClient{rest: newRESTClient(baseURL, client)}
	c.rest.setTokenSource(tokens)
	return c
}

// courseWire is the backend representation of a full course.
type courseWire struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	City  string        `json:"city"`
	State string        `json:"state"`
	Holes []models.Hole `json:"holes"`
}

// Courses lists all courses visible to the user.
func (c *CourseClient) Courses(ctx context.Context) ([]CourseSummary, error) {
	var response struct {
		Courses []CourseSummary `json:"courses"`
	}
	if err := c.rest.doRequest(ctx, http.MethodGet, "/courses", nil, &response); err != nil {
		return nil, err
	}
	return response.Courses, nil
}

// Course retrieves a single course with its hole layout.
func (c *CourseClient) Course(ctx context.Context, courseID string) (*models.Course, error) {
	if courseID == "" {
		return nil, shared.Terminal(fmt.Errorf("%w: course ID", shared.ErrMissingArgument))
	}

	endpoint := fmt.Sprintf("/courses/%s", url.PathEscape(courseID))
	var wire courseWire
	if err := c.rest.doRequest(ctx, http.MethodGet, endpoint, nil, &wire); err != nil {
		return nil, err
	}

	course := models.NewCourse(0, wire.Name, wire.Holes)
	course.SetRemoteID(wire.ID)
	course.SetLocation(wire.City, wire.State)
	return course, nil
}

// CreateCourse uploads an imported course and returns its remote ID.
// The course is validated locally before any network call.
func (c *CourseClient) CreateCourse(ctx context.Context, course *models.Course) (string, error) {
	if err := course.Validate(); err != nil {
		return "", shared.Terminal(fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
	}

	body := courseWire{
		Name:  course.Name(),
		City:  course.City(),
		State: course.State(),
		Holes: course.Holes(),
	}

	var response struct {
		ID string `json:"id"`
	}
	if err := c.rest.doRequest(ctx, http.MethodPost, "/courses", body, &response); err != nil {
		return "", err
	}
	return response.ID, nil
}

// RecentMatches returns the user's most recent completed rounds.
func (c *CourseClient) RecentMatches(ctx context.Context, limit int) ([]models.MatchSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	endpoint := fmt.Sprintf("/matches/recent?limit=%d", limit)
	var response struct {
		Matches []models.MatchSummary `json:"matches"`
	}
	if err := c.rest.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}
	return response.Matches, nil
}

// Leaderboard returns the global ranking page.
func (c *CourseClient) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/leaderboard?limit=%d", limit)
	var response struct {
		Entries []models.LeaderboardEntry `json:"entries"`
	}
	if err := c.rest.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}
	return response.Entries, nil
}

// Tournaments returns upcoming tournament listings.
func (c *CourseClient) Tournaments(ctx context.Context) ([]models.Tournament, error) {
	var response struct {
		Tournaments []models.Tournament `json:"tournaments"`
	}
	if err := c.rest.doRequest(ctx, http.MethodGet, "/tournaments", nil, &response); err != nil {
		return nil, err
	}
	return response.Tournaments, nil
}
