package api

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/opencrew/orgcli/internal/models"
)

// RestClient is the resty-backed implementation of Client. The bearer token
// is held on the client and attached to every outgoing request unless the
// request already carries an explicit Authorization header.
type RestClient struct {
	http *resty.Client

	mu    sync.RWMutex
	token string
}

// NewRestClient builds a client for the backend at baseURL. A zero timeout
// falls back to 10 seconds.
func NewRestClient(baseURL string, timeout time.Duration) *RestClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &RestClient{}
	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get("Authorization") != "" {
			return nil
		}
		if token := c.Token(); token != "" {
			req.SetAuthToken(token)
		}
		return nil
	})

	return c
}

// Token returns the ambient bearer token, empty when unauthenticated.
func (c *RestClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the ambient bearer token. An empty string clears it.
func (c *RestClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// check folds a resty transport error or an HTTP error response into the
// package error taxonomy.
func (c *RestClient) check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		tag := ErrorTag(resp.Header().Get("X-Error"))
		if tag == "" {
			tag = TagUnknown
		}
		return &Error{StatusCode: resp.StatusCode(), Tag: tag}
	}
	return nil
}

func (c *RestClient) r(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

func (c *RestClient) Ping(ctx context.Context) error {
	resp, err := c.r(ctx).Get("/api/health")
	return c.check(resp, err)
}

func (c *RestClient) TokenWithEmailAndPassword(ctx context.Context, email string, password []byte, clientIdentifier string) (*TokenResponse, error) {
	var out TokenResponse
	resp, err := c.r(ctx).
		SetBody(map[string]string{
			"primaryEmail":     email,
			"password":         string(password),
			"clientIdentifier": clientIdentifier,
		}).
		SetResult(&out).
		Post("/api/auth/public/tokens/email-and-password")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) TokenWithPassword(ctx context.Context, password []byte) (*TokenResponse, error) {
	var out TokenResponse
	resp, err := c.r(ctx).
		SetBody(map[string]string{"password": string(password)}).
		SetResult(&out).
		Post("/api/auth/tokens/password")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) RefreshToken(ctx context.Context, organizationID string) (*TokenResponse, error) {
	body := map[string]string{}
	if organizationID != "" {
		body["organizationId"] = organizationID
	}
	var out TokenResponse
	resp, err := c.r(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/api/auth/refresh-token")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) FetchAuthenticatedUser(ctx context.Context) (*models.User, error) {
	return c.fetchUser(c.r(ctx))
}

func (c *RestClient) FetchAuthenticatedUserWithToken(ctx context.Context, token string) (*models.User, error) {
	return c.fetchUser(c.r(ctx).SetAuthToken(token))
}

func (c *RestClient) fetchUser(req *resty.Request) (*models.User, error) {
	var out models.User
	resp, err := req.SetResult(&out).Get("/api/me")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) FetchSession(ctx context.Context) (*models.Session, error) {
	return c.fetchSession(c.r(ctx))
}

func (c *RestClient) FetchSessionWithToken(ctx context.Context, token string) (*models.Session, error) {
	return c.fetchSession(c.r(ctx).SetAuthToken(token))
}

func (c *RestClient) fetchSession(req *resty.Request) (*models.Session, error) {
	var out models.Session
	resp, err := req.SetResult(&out).Get("/api/me/session")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) CreateUser(ctx context.Context, in CreateUserRequest) (*models.User, error) {
	var out models.User
	resp, err := c.r(ctx).SetBody(in).SetResult(&out).Post("/api/users/public")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) CheckEmailAvailability(ctx context.Context, email string) (bool, error) {
	var out struct {
		Available bool `json:"available"`
	}
	resp, err := c.r(ctx).
		SetQueryParam("email", email).
		SetResult(&out).
		Get("/api/users/public/email-availability")
	if err := c.check(resp, err); err != nil {
		return false, err
	}
	return out.Available, nil
}

func (c *RestClient) SendPrimaryEmailConfirmationMail(ctx context.Context, language string) error {
	resp, err := c.r(ctx).
		SetBody(map[string]string{"mailLanguage": language}).
		Post("/api/auth/send-primary-email-confirmation-mail")
	return c.check(resp, err)
}

func (c *RestClient) ConfirmPrimaryEmail(ctx context.Context, token string) error {
	resp, err := c.r(ctx).
		SetBody(map[string]string{"token": token}).
		Post("/api/users/public/confirm-primary-email")
	return c.check(resp, err)
}

func (c *RestClient) SendPrimaryEmailChangeMail(ctx context.Context, newEmail, language string) error {
	resp, err := c.r(ctx).
		SetBody(map[string]string{"newEmail": newEmail, "mailLanguage": language}).
		Post("/api/auth/send-primary-email-change-mail")
	return c.check(resp, err)
}

func (c *RestClient) UpdatePrimaryEmailWithToken(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	resp, err := c.r(ctx).
		SetBody(map[string]string{"token": token}).
		SetResult(&out).
		Put("/api/me/primary-email")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) SendPasswordRecoveryMail(ctx context.Context, email, language string) error {
	resp, err := c.r(ctx).
		SetBody(map[string]string{"primaryEmail": email, "mailLanguage": language}).
		Post("/api/auth/public/send-password-recovery-mail")
	return c.check(resp, err)
}

func (c *RestClient) UpdateUserData(ctx context.Context, in UpdateUserDataRequest) (*models.User, error) {
	var out models.User
	resp, err := c.r(ctx).SetBody(in).SetResult(&out).Put("/api/me")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) UpdatePassword(ctx context.Context, in UpdatePasswordRequest) (*models.User, error) {
	var out models.User
	resp, err := c.r(ctx).SetBody(in).SetResult(&out).Put("/api/me/password")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) CreateOrganization(ctx context.Context, in CreateOrganizationRequest) (*models.Organization, error) {
	var out models.Organization
	resp, err := c.r(ctx).SetBody(in).SetResult(&out).Post("/api/organizations")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) FindOrganizationByProfileName(ctx context.Context, profileName string) (*models.Organization, error) {
	var out models.Organization
	resp, err := c.r(ctx).
		SetPathParam("profileName", profileName).
		SetResult(&out).
		Get("/api/organizations/find-by-profile-name/{profileName}")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) ListMyOrganizations(ctx context.Context, page, limit int) ([]models.Organization, error) {
	var out []models.Organization
	resp, err := c.r(ctx).
		SetQueryParams(pageParams(page, limit)).
		SetResult(&out).
		Get("/api/me/organizations")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RestClient) ListMembers(ctx context.Context, organizationID string, page, limit int) ([]models.Member, error) {
	var out []models.Member
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetQueryParams(pageParams(page, limit)).
		SetQueryParam("pagination", "false").
		SetResult(&out).
		Get("/api/organizations/{organizationId}/members")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RestClient) MemberPagination(ctx context.Context, organizationID string, limit int) (*models.Pagination, error) {
	return c.pagination(ctx, "/api/organizations/{organizationId}/members", organizationID, limit)
}

func (c *RestClient) FetchMyMembership(ctx context.Context, organizationID string) (*models.Member, error) {
	var out models.Member
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetResult(&out).
		Get("/api/organizations/{organizationId}/members/me")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) UpdateMemberRoles(ctx context.Context, organizationID, memberID string, roles []models.MemberRole) (*models.Member, error) {
	var out models.Member
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetPathParam("memberId", memberID).
		SetBody(map[string][]models.MemberRole{"roles": roles}).
		SetResult(&out).
		Put("/api/organizations/{organizationId}/members/{memberId}/roles")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) RemoveMember(ctx context.Context, organizationID, memberID string) error {
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetPathParam("memberId", memberID).
		Delete("/api/organizations/{organizationId}/members/{memberId}")
	return c.check(resp, err)
}

func (c *RestClient) TransferOwnership(ctx context.Context, organizationID, memberID string) error {
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetBody(map[string]string{"memberUuid": memberID}).
		Post("/api/organizations/{organizationId}/transfer-ownership")
	return c.check(resp, err)
}

func (c *RestClient) CreateInvite(ctx context.Context, organizationID string, in CreateInviteRequest) (*models.Invite, error) {
	var out models.Invite
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetBody(in).
		SetResult(&out).
		Post("/api/organizations/{organizationId}/invites")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) ListInvites(ctx context.Context, organizationID string, page, limit int) ([]models.Invite, error) {
	var out []models.Invite
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetQueryParams(pageParams(page, limit)).
		SetQueryParam("pagination", "false").
		SetResult(&out).
		Get("/api/organizations/{organizationId}/invites")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RestClient) InvitePagination(ctx context.Context, organizationID string, limit int) (*models.Pagination, error) {
	return c.pagination(ctx, "/api/organizations/{organizationId}/invites", organizationID, limit)
}

func (c *RestClient) FindInviteByToken(ctx context.Context, inviteToken string) (*models.Invite, error) {
	var out models.Invite
	resp, err := c.r(ctx).
		SetPathParam("token", inviteToken).
		SetResult(&out).
		Get("/api/organization-member-invites/public/by-token/{token}")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) IngressByInvite(ctx context.Context, inviteToken string) (*models.Member, error) {
	var out models.Member
	resp, err := c.r(ctx).
		SetBody(map[string]string{"token": inviteToken}).
		SetResult(&out).
		Post("/api/organization-members/public/ingress-by-invite")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) RemoveInvite(ctx context.Context, organizationID, inviteID string) error {
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetPathParam("inviteId", inviteID).
		Delete("/api/organizations/{organizationId}/invites/{inviteId}")
	return c.check(resp, err)
}

func (c *RestClient) ResendInviteMail(ctx context.Context, organizationID, inviteID, language string) error {
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetPathParam("inviteId", inviteID).
		SetBody(map[string]string{"mailLanguage": language}).
		Post("/api/organizations/{organizationId}/invites/{inviteId}/resend-mail")
	return c.check(resp, err)
}

func (c *RestClient) ListProjects(ctx context.Context, organizationID string, page, limit int) ([]models.Project, error) {
	var out []models.Project
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetQueryParams(pageParams(page, limit)).
		SetResult(&out).
		Get("/api/organizations/{organizationId}/projects")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RestClient) ProjectPagination(ctx context.Context, organizationID string, limit int) (*models.Pagination, error) {
	return c.pagination(ctx, "/api/organizations/{organizationId}/projects", organizationID, limit)
}

func (c *RestClient) FindProjectByProfileName(ctx context.Context, organizationID, profileName string) (*models.Project, error) {
	var out models.Project
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetPathParam("profileName", profileName).
		SetResult(&out).
		Get("/api/organizations/{organizationId}/projects/find-by-profile-name/{profileName}")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RestClient) pagination(ctx context.Context, path, organizationID string, limit int) (*models.Pagination, error) {
	var out models.Pagination
	resp, err := c.r(ctx).
		SetPathParam("organizationId", organizationID).
		SetQueryParam("pagination", "true").
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out).
		Get(path)
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func pageParams(page, limit int) map[string]string {
	return map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}
}

var _ Client = (*RestClient)(nil)
