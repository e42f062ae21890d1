// Package api implements the typed client for the platform's REST backend.
// All payloads are JSON over HTTP(S); authorization uses a bearer token set
// on the client and injected into every request.
package api

import (
	"context"

	"github.com/opencrew/orgcli/internal/models"
)

// TokenResponse is returned by every token issuing endpoint.
type TokenResponse struct {
	Token   string              `json:"token"`
	Payload models.TokenPayload `json:"payload"`
}

// CreateUserRequest is the payload for account creation.
type CreateUserRequest struct {
	PresentationName string `json:"presentationName"`
	PrimaryEmail     string `json:"primaryEmail"`
	Password         string `json:"password"`
	PreferredRegion  string `json:"preferredRegion"`
}

// UpdateUserDataRequest updates the authenticated user's profile.
type UpdateUserDataRequest struct {
	PresentationName string `json:"presentationName"`
	PreferredRegion  string `json:"preferredRegion"`
}

// UpdatePasswordRequest changes the authenticated user's password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CreateOrganizationRequest creates an organization owned by the caller.
type CreateOrganizationRequest struct {
	PresentationName string `json:"presentationName"`
	ProfileName      string `json:"profileName"`
}

// CreateInviteRequest invites an email address into an organization.
type CreateInviteRequest struct {
	MemberEmail        string `json:"memberEmail"`
	InviteMailLanguage string `json:"inviteMailLanguage"`
}

// Client is the remote API surface the application depends on. The concrete
// implementation is RestClient; tests substitute fakes.
//
// Token returns the ambient bearer token, SetToken replaces it. Operations
// with a *WithToken variant accept an explicit token so callers can exercise
// a freshly issued credential before committing it to the stores.
type Client interface {
	Token() string
	SetToken(token string)
	Ping(ctx context.Context) error

	// Authentication.
	TokenWithEmailAndPassword(ctx context.Context, email string, password []byte, clientIdentifier string) (*TokenResponse, error)
	TokenWithPassword(ctx context.Context, password []byte) (*TokenResponse, error)
	RefreshToken(ctx context.Context, organizationID string) (*TokenResponse, error)
	FetchAuthenticatedUser(ctx context.Context) (*models.User, error)
	FetchAuthenticatedUserWithToken(ctx context.Context, token string) (*models.User, error)
	FetchSession(ctx context.Context) (*models.Session, error)
	FetchSessionWithToken(ctx context.Context, token string) (*models.Session, error)

	// Account lifecycle.
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	CheckEmailAvailability(ctx context.Context, email string) (bool, error)
	SendPrimaryEmailConfirmationMail(ctx context.Context, language string) error
	ConfirmPrimaryEmail(ctx context.Context, token string) error
	SendPrimaryEmailChangeMail(ctx context.Context, newEmail, language string) error
	UpdatePrimaryEmailWithToken(ctx context.Context, token string) (*models.User, error)
	SendPasswordRecoveryMail(ctx context.Context, email, language string) error
	UpdateUserData(ctx context.Context, req UpdateUserDataRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, req UpdatePasswordRequest) (*models.User, error)

	// Organizations.
	CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*models.Organization, error)
	FindOrganizationByProfileName(ctx context.Context, profileName string) (*models.Organization, error)
	ListMyOrganizations(ctx context.Context, page, limit int) ([]models.Organization, error)

	// Members.
	ListMembers(ctx context.Context, organizationID string, page, limit int) ([]models.Member, error)
	MemberPagination(ctx context.Context, organizationID string, limit int) (*models.Pagination, error)
	FetchMyMembership(ctx context.Context, organizationID string) (*models.Member, error)
	UpdateMemberRoles(ctx context.Context, organizationID, memberID string, roles []models.MemberRole) (*models.Member, error)
	RemoveMember(ctx context.Context, organizationID, memberID string) error
	TransferOwnership(ctx context.Context, organizationID, memberID string) error

	// Invites.
	CreateInvite(ctx context.Context, organizationID string, req CreateInviteRequest) (*models.Invite, error)
	ListInvites(ctx context.Context, organizationID string, page, limit int) ([]models.Invite, error)
	InvitePagination(ctx context.Context, organizationID string, limit int) (*models.Pagination, error)
	FindInviteByToken(ctx context.Context, inviteToken string) (*models.Invite, error)
	IngressByInvite(ctx context.Context, inviteToken string) (*models.Member, error)
	RemoveInvite(ctx context.Context, organizationID, inviteID string) error
	ResendInviteMail(ctx context.Context, organizationID, inviteID, language string) error

	// Projects.
	ListProjects(ctx context.Context, organizationID string, page, limit int) ([]models.Project, error)
	ProjectPagination(ctx context.Context, organizationID string, limit int) (*models.Pagination, error)
	FindProjectByProfileName(ctx context.Context, organizationID, profileName string) (*models.Project, error)
}
