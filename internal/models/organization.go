package models

// Organization is a tenant entity owning members and projects. ProfileName is
// the URL-safe unique handle used to publicly identify the organization.
type Organization struct {
	UUID             string `json:"uuid"`
	PresentationName string `json:"presentationName"`
	ProfileName      string `json:"profileName"`
}

// Member is the relationship between a user and an organization.
type Member struct {
	UUID                string       `json:"uuid"`
	IsOrganizationOwner bool         `json:"isOrganizationOwner"`
	Roles               []MemberRole `json:"roles"`
	User                User         `json:"user"`
}

// OrganizationContext is the currently selected organization together with
// the caller's own membership in it. It is valid only while its organization
// profile name matches the one requested by the navigation context.
type OrganizationContext struct {
	Organization                Organization `json:"organization"`
	AuthenticatedUserMembership Member       `json:"authenticatedUserMembership"`
}
