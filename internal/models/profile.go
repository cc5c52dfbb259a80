package models

import (
	"fmt"
	"strings"
)

// Profile represents a cached user profile.
//
// The remote ID is the backend's identifier; the local ID is cache-scoped.
type Profile struct {
	entity
	remoteID string
	fullName string
	username string
	email    string
	handicap float64
	elo      int
	imageURL string
}

// NewProfile creates a new Profile cache entry.
func NewProfile(sequence int, remoteID, fullName, username string) *Profile {
	return &Profile{
		entity:   newEntity(sequence),
		remoteID: remoteID,
		fullName: fullName,
		username: username,
		elo:      1200,
	}
}

func (p *Profile) RemoteID() string  { return p.remoteID }
func (p *Profile) FullName() string  { return p.fullName }
func (p *Profile) Username() string  { return p.username }
func (p *Profile) Email() string     { return p.email }
func (p *Profile) Handicap() float64 { return p.handicap }
func (p *Profile) Elo() int          { return p.elo }
func (p *Profile) ImageURL() string  { return p.imageURL }

func (p *Profile) SetEmail(email string)       { p.email = email }
func (p *Profile) SetHandicap(h float64)       { p.handicap = h }
func (p *Profile) SetElo(elo int)              { p.elo = elo }
func (p *Profile) SetImageURL(url string)      { p.imageURL = url }
func (p *Profile) SetFullName(name string)     { p.fullName = name }
func (p *Profile) SetUsername(username string) { p.username = username }

// Validate checks that the profile carries the minimum identifying fields.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.remoteID) == "" {
		return fmt.Errorf("profile remote ID is required")
	}
	if strings.TrimSpace(p.username) == "" {
		return fmt.Errorf("profile username is required")
	}
	if p.elo < 0 {
		return fmt.Errorf("profile elo cannot be negative: %d", p.elo)
	}
	return nil
}
