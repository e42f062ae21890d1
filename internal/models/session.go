package models

import "time"

// Session is the authorization context tied to a bearer token. Its role set
// is scoped to the currently selected organization: switching organizations
// invalidates the previous roles and requires a fresh session fetch.
type Session struct {
	UserIdentifier   string    `json:"userIdentifier"`
	ClientIdentifier string    `json:"clientIdentifier"`
	Roles            RoleSet   `json:"roles"`
	IssuedAt         time.Time `json:"issuedAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
}

// Expired reports whether the session expiry lies in the past at t.
func (s Session) Expired(t time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(t)
}

// TokenPayload is the session summary the backend returns alongside a freshly
// issued token.
type TokenPayload struct {
	UserIdentifier   string    `json:"userIdentifier"`
	ClientIdentifier string    `json:"clientIdentifier"`
	Roles            RoleSet   `json:"roles"`
	IssuedAt         time.Time `json:"issuedAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
}

// UserSession bundles the authenticated identity with its session data, the
// way the client persists them between runs.
type UserSession struct {
	User    User    `json:"userData"`
	Session Session `json:"session"`
}
