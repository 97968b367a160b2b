package model

import (
	"strings"

	"github.com/google/uuid"
)

// GuestNickname is the default nickname for an unidentified profile.
const GuestNickname = "Guest"

// UserProfile is the user identity plus derived fields. Buid is the opaque
// stable identifier; an empty Buid means guest mode and no remote sync.
type UserProfile struct {
	Buid              string   `json:"buid"`
	Nickname          string   `json:"nickname"`
	Email             string   `json:"email"`
	BirthDate         string   `json:"birthDate"`
	Interests         []string `json:"interests"`
	IsProfileComplete bool     `json:"isProfileComplete"`
	LastUpdated       int64    `json:"lastUpdated"` // epoch milliseconds
}

// NewGuestProfile returns a fresh profile with a locally generated buid.
func NewGuestProfile(now int64) UserProfile {
	return UserProfile{
		Buid:        uuid.Must(uuid.NewV7()).String(),
		Nickname:    GuestNickname,
		Interests:   []string{},
		LastUpdated: now,
	}
}

// ProfileUpdate is a partial profile mutation. Nil fields are left unchanged.
type ProfileUpdate struct {
	Nickname  *string  `json:"nickname,omitempty"`
	Email     *string  `json:"email,omitempty"`
	BirthDate *string  `json:"birthDate,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// Apply merges the update onto the profile and recomputes the derived
// completion flag. The flag is monotonic: once true it never reverts, even if
// a later partial update clears one of its defining fields. Returns the
// interests that were newly added (case-insensitive diff).
func (p *UserProfile) Apply(u ProfileUpdate, now int64) (added []string) {
	old := p.Interests
	if u.Nickname != nil {
		p.Nickname = *u.Nickname
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.BirthDate != nil {
		p.BirthDate = *u.BirthDate
	}
	if u.Interests != nil {
		p.Interests = u.Interests
		for _, interest := range u.Interests {
			if !containsFold(old, interest) {
				added = append(added, interest)
			}
		}
	}
	p.LastUpdated = now

	if !p.IsProfileComplete && p.Nickname != GuestNickname && p.Email != "" && p.BirthDate != "" {
		p.IsProfileComplete = true
	}
	return added
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
