package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionPrincipal is the logged-in identity carried by a session.
// ExpiresAt is a unix timestamp in seconds.
type SessionPrincipal struct {
	Id              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageUrl string `json:"profileImageUrl"`
	AccessToken     string `json:"accessToken,omitempty"`
	RefreshToken    string `json:"refreshToken,omitempty"`
	ExpiresAt       int64  `json:"expires_at"`
}

func (p *SessionPrincipal) Expired(now time.Time) bool {
	return p.ExpiresAt != 0 && now.Unix() > p.ExpiresAt
}

type Session struct {
	Id        uuid.UUID        `json:"id"`
	Principal SessionPrincipal `json:"principal"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}
