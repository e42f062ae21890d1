package models

import "time"

// User is the account profile as returned by the backend.
type User struct {
	UUID                    string     `json:"uuid"`
	PresentationName        string     `json:"presentationName"`
	PrimaryEmail            string     `json:"primaryEmail"`
	PrimaryEmailConfirmedAt *time.Time `json:"primaryEmailConfirmedAt,omitempty"`
	PreferredRegion         string     `json:"preferredRegion"`
}

// EmailConfirmed reports whether the primary email was ever confirmed.
func (u User) EmailConfirmed() bool {
	return u.PrimaryEmailConfirmedAt != nil && !u.PrimaryEmailConfirmedAt.IsZero()
}
