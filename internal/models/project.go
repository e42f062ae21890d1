package models

import "time"

// Project belongs to an organization and is addressed by its profile name.
type Project struct {
	UUID             string     `json:"uuid"`
	Name             string     `json:"name"`
	ProfileName      string     `json:"profileName"`
	ShortDescription string     `json:"shortDescription"`
	CreatedAt        time.Time  `json:"createdAt"`
	ArchivedAt       *time.Time `json:"archivedAt,omitempty"`
}

// Archived reports whether the project was archived.
func (p Project) Archived() bool {
	return p.ArchivedAt != nil && !p.ArchivedAt.IsZero()
}
