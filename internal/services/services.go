// package services defines clients for the Rounds backend HTTP API
//
// auth, friends, search, courses, scorecard OCR proxy, realtime events
package services

import (
	"context"

	"github.com/roundsapp/rounds/internal/models"
)

// AuthService performs authentication against the backend token endpoint.
type AuthService interface {
	// Login exchanges an email/password pair for an authenticated session.
	Login(ctx context.Context, email, password string) (*Credentials, error)

	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*Credentials, error)

	// Me retrieves the authenticated user's profile.
	Me(ctx context.Context) (*models.UserSearchResult, error)
}

// FriendService issues friendship commands. The backend owns all request
// state; these calls return the authoritative record after each mutation.
type FriendService interface {
	// Friends lists the current user's accepted friends.
	Friends(ctx context.Context) ([]models.UserSearchResult, error)

	// Requests lists incoming pending friend requests.
	Requests(ctx context.Context) ([]models.FriendRequest, error)

	// SendRequest creates a friend request addressed to the given user.
	SendRequest(ctx context.Context, toUserID string) (*models.FriendRequest, error)

	// RespondToRequest accepts or declines a pending request.
	RespondToRequest(ctx context.Context, requestID string, accept bool) (*models.FriendRequest, error)

	// Block blocks the given user and removes any existing relationship.
	Block(ctx context.Context, userID string) error
}

// SearchService performs user search for the social tab.
type SearchService interface {
	// SearchUsers returns users matching the free-text query. Each response
	// replaces the previous result set wholly; there is no pagination or merge.
	SearchUsers(ctx context.Context, query string) ([]models.UserSearchResult, error)
}

// CourseService reads and writes course data on the backend.
type CourseService interface {
	// Courses lists all courses visible to the user.
	Courses(ctx context.Context) ([]CourseSummary, error)

	// Course retrieves a single course with its hole layout.
	Course(ctx context.Context, courseID string) (*models.Course, error)

	// CreateCourse uploads an imported course and returns its remote ID.
	CreateCourse(ctx context.Context, course *models.Course) (string, error)
}

// HomeService fetches the read-only feeds backing the dashboard tabs.
type HomeService interface {
	// RecentMatches returns the user's most recent completed rounds.
	RecentMatches(ctx context.Context, limit int) ([]models.MatchSummary, error)

	// Leaderboard returns the global ranking page.
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)

	// Tournaments returns upcoming tournament listings.
	Tournaments(ctx context.Context) ([]models.Tournament, error)
}

// Recognizer extracts text and hole scores from scorecard images.
// Implemented by the EasyOCR proxy client.
type Recognizer interface {
	// Health checks whether the OCR service is reachable.
	Health(ctx context.Context) error

	// Recognize runs plain OCR over an image and returns raw detections.
	Recognize(ctx context.Context, image []byte) ([]Detection, error)

	// ExtractHoles extracts hole values from a scorecard image.
	ExtractHoles(ctx context.Context, image []byte, expected int) (*ScorecardExtraction, error)
}

// Credentials is the result of a successful login or refresh.
type Credentials struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64 // unix seconds, 0 if the backend did not report expiry
}

// CourseSummary is the list form of a course, without hole data.
type CourseSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	State     string `json:"state"`
	HoleCount int    `json:"hole_count"`
	TotalPar  int    `json:"total_par"`
}

// Detection is a single OCR text detection with its bounding box.
type Detection struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Box        Box     `json:"bbox"`
}

// Box is a detection bounding box in image coordinates.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ScorecardExtraction is the proxy's score extraction for one image: hole
// values in scorecard order, plus one aggregate confidence over the readings
// the proxy kept. The proxy does not report per-hole confidence.
type ScorecardExtraction struct {
	Scores        []int   `json:"scores"`
	Total         int     `json:"total"`
	Confidence    float64 `json:"confidence"`
	HolesFound    int     `json:"holes_found"`
	ExpectedHoles int     `json:"expected_holes"`
}
