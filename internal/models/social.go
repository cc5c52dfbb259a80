package models

import "time"

// FriendshipStatus enumerates the possible relationship states between the
// current user and another user. The backend owns all transitions; the client
// only renders the authoritative value it receives.
type FriendshipStatus string

const (
	FriendshipNone     FriendshipStatus = "none"
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipDeclined FriendshipStatus = "declined"
	FriendshipBlocked  FriendshipStatus = "blocked"
	FriendshipSelf     FriendshipStatus = "self"
)

// Valid reports whether s is one of the enumerated statuses.
func (s FriendshipStatus) Valid() bool {
	switch s {
	case FriendshipNone, FriendshipPending, FriendshipAccepted, FriendshipDeclined, FriendshipBlocked, FriendshipSelf:
		return true
	}
	return false
}

// FriendRequest represents a friendship request between two users.
//
// Requests are created and mutated exclusively by the backend; the client
// issues commands (send, accept, decline) and re-renders the state returned.
type FriendRequest struct {
	ID          string           `json:"id"`
	RequesterID string           `json:"requester_id"`
	RecipientID string           `json:"recipient_id"`
	Requester   *Profile         `json:"requester,omitempty"`
	Recipient   *Profile         `json:"recipient,omitempty"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// UserSearchResult represents a single row of a user search response.
type UserSearchResult struct {
	ID               string           `json:"id"`
	FullName         string           `json:"full_name"`
	Username         string           `json:"username"`
	Handicap         float64          `json:"handicap"`
	Elo              int              `json:"elo"`
	FriendshipStatus FriendshipStatus `json:"friendship_status"`
	ProfileImageURL  string           `json:"profile_image_url,omitempty"`
}

// LeaderboardEntry represents one ranked row of the global leaderboard.
type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	UserID   string  `json:"user_id"`
	FullName string  `json:"full_name"`
	Username string  `json:"username"`
	Elo      int     `json:"elo"`
	Handicap float64 `json:"handicap"`
}

// MatchSummary represents a completed round shown on the home dashboard.
type MatchSummary struct {
	ID           string    `json:"id"`
	CourseName   string    `json:"course_name"`
	OpponentName string    `json:"opponent_name"`
	MyScore      int       `json:"my_score"`
	TheirScore   int       `json:"their_score"`
	EloDelta     int       `json:"elo_delta"`
	PlayedAt     time.Time `json:"played_at"`
}

// Won reports whether the current user won the match (match play scoring,
// lower stroke total wins).
func (m MatchSummary) Won() bool {
	return m.MyScore < m.TheirScore
}

// Tournament represents an upcoming tournament listing.
type Tournament struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CourseName string    `json:"course_name"`
	StartsAt   time.Time `json:"starts_at"`
	Entrants   int       `json:"entrants"`
	MaxEntries int       `json:"max_entries"`
}
