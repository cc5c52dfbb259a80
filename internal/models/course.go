package models

import (
	"fmt"
	"strings"
	"time"
)

// Hole represents a single hole on a golf course.
type Hole struct {
	Number      int `json:"number"`       // 1-based hole number
	Par         int `json:"par"`          // 3, 4 or 5
	Yardage     int `json:"yardage"`      // from the back tees, 0 if unknown
	StrokeIndex int `json:"stroke_index"` // handicap stroke allocation, 1-18
}

// validate checks a hole against the bounds a scorecard can legally contain.
func (h Hole) validate() error {
	if h.Number < 1 || h.Number > 18 {
		return fmt.Errorf("hole number %d out of range", h.Number)
	}
	if h.Par < 3 || h.Par > 5 {
		return fmt.Errorf("hole %d: par %d out of range", h.Number, h.Par)
	}
	if h.StrokeIndex < 0 || h.StrokeIndex > 18 {
		return fmt.Errorf("hole %d: stroke index %d out of range", h.Number, h.StrokeIndex)
	}
	return nil
}

// Course represents a golf course with its full hole layout.
type Course struct {
	entity
	remoteID string
	name     string
	city     string
	state    string
	holes    []Hole
}

// NewCourse creates a new Course with the given hole layout.
func NewCourse(sequence int, name string, holes []Hole) *Course {
	return &Course{
		entity: newEntity(sequence),
		name:   name,
		holes:  append([]Hole(nil), holes...),
	}
}

func (c *Course) RemoteID() string { return c.remoteID }
func (c *Course) Name() string     { return c.name }
func (c *Course) City() string     { return c.city }
func (c *Course) State() string    { return c.state }

// Holes returns a copy of the hole layout.
func (c *Course) Holes() []Hole { return append([]Hole(nil), c.holes...) }

func (c *Course) HoleCount() int { return len(c.holes) }

// TotalPar sums par across all holes.
func (c *Course) TotalPar() int {
	total := 0
	for _, h := range c.holes {
		total += h.Par
	}
	return total
}

func (c *Course) SetRemoteID(id string)       { c.remoteID = id }
func (c *Course) SetName(name string)         { c.name = name }
func (c *Course) SetLocation(city, st string) { c.city, c.state = city, st }
func (c *Course) SetHoles(holes []Hole)       { c.holes = append([]Hole(nil), holes...) }

// Validate checks that the course has a name and a plausible scorecard:
// 9 or 18 holes, consecutively numbered, each within par/stroke-index bounds.
func (c *Course) Validate() error {
	if strings.TrimSpace(c.name) == "" {
		return fmt.Errorf("course name is required")
	}
	if n := len(c.holes); n != 9 && n != 18 {
		return fmt.Errorf("course must have 9 or 18 holes, got %d", n)
	}
	for i, h := range c.holes {
		if h.Number != i+1 {
			return fmt.Errorf("holes out of order: position %d has number %d", i+1, h.Number)
		}
		if err := h.validate(); err != nil {
			return err
		}
	}
	total := c.TotalPar()
	min, max := len(c.holes)*3, len(c.holes)*5
	if total < min || total > max {
		return fmt.Errorf("total par %d outside plausible range [%d, %d]", total, min, max)
	}
	return nil
}

// Session represents a persisted authenticated session.
type Session struct {
	entity
	userID       string
	email        string
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// NewSession creates a new Session for the given user.
func NewSession(sequence int, userID, email, accessToken string) *Session {
	return &Session{
		entity:      newEntity(sequence),
		userID:      userID,
		email:       email,
		accessToken: accessToken,
	}
}

func (s *Session) UserID() string       { return s.userID }
func (s *Session) Email() string        { return s.email }
func (s *Session) AccessToken() string  { return s.accessToken }
func (s *Session) RefreshToken() string { return s.refreshToken }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

func (s *Session) SetAccessToken(token string)  { s.accessToken = token }
func (s *Session) SetRefreshToken(token string) { s.refreshToken = token }
func (s *Session) SetExpiresAt(t time.Time)     { s.expiresAt = t }

// Expired reports whether the access token has passed its expiry.
// Sessions without a recorded expiry never report expired.
func (s *Session) Expired() bool {
	return !s.expiresAt.IsZero() && time.Now().After(s.expiresAt)
}

// Validate checks that the session carries an identity and a token.
func (s *Session) Validate() error {
	if strings.TrimSpace(s.userID) == "" {
		return fmt.Errorf("session user ID is required")
	}
	if strings.TrimSpace(s.accessToken) == "" {
		return fmt.Errorf("session access token is required")
	}
	return nil
}
