package session

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/opencrew/orgcli/internal/api"
	"github.com/opencrew/orgcli/internal/logging"
	"github.com/opencrew/orgcli/internal/models"
	"github.com/opencrew/orgcli/internal/store"
)

// fakeAPI implements just the slice of api.Client the session package uses.
// The embedded interface panics on anything a test did not stub, which keeps
// unintended calls visible.
type fakeAPI struct {
	api.Client

	mu    sync.Mutex
	token string
	calls map[string]int

	findOrgFn        func(ctx context.Context, profileName string) (*models.Organization, error)
	refreshTokenFn   func(ctx context.Context, organizationID string) (*api.TokenResponse, error)
	fetchUserFn      func(ctx context.Context) (*models.User, error)
	fetchSessionFn   func(ctx context.Context) (*models.Session, error)
	fetchMemberFn    func(ctx context.Context, organizationID string) (*models.Member, error)
	tokenWithPassFn  func(ctx context.Context, password []byte) (*api.TokenResponse, error)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int)}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeAPI) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeAPI) FindOrganizationByProfileName(ctx context.Context, profileName string) (*models.Organization, error) {
	f.record("FindOrganizationByProfileName")
	return f.findOrgFn(ctx, profileName)
}

func (f *fakeAPI) RefreshToken(ctx context.Context, organizationID string) (*api.TokenResponse, error) {
	f.record("RefreshToken")
	return f.refreshTokenFn(ctx, organizationID)
}

func (f *fakeAPI) FetchAuthenticatedUser(ctx context.Context) (*models.User, error) {
	f.record("FetchAuthenticatedUser")
	return f.fetchUserFn(ctx)
}

func (f *fakeAPI) FetchSession(ctx context.Context) (*models.Session, error) {
	f.record("FetchSession")
	return f.fetchSessionFn(ctx)
}

func (f *fakeAPI) FetchMyMembership(ctx context.Context, organizationID string) (*models.Member, error) {
	f.record("FetchMyMembership")
	return f.fetchMemberFn(ctx, organizationID)
}

func (f *fakeAPI) TokenWithPassword(ctx context.Context, password []byte) (*api.TokenResponse, error) {
	f.record("TokenWithPassword")
	return f.tokenWithPassFn(ctx, password)
}

func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func testStores(t *testing.T) *store.Stores {
	t.Helper()
	return store.NewStores(store.NewMemoryKV())
}

// happyFake returns a fake wired for a full successful resolution of the
// organization named by profileName.
func happyFake(profileName string) *fakeAPI {
	f := newFakeAPI()

	org := &models.Organization{
		UUID:             "org-1",
		PresentationName: "Acme Corp",
		ProfileName:      profileName,
	}
	user := &models.User{UUID: "user-1", PrimaryEmail: "ana@example.com"}
	sess := &models.Session{
		UserIdentifier: "user-1",
		Roles:          models.RoleSet{models.RoleOrgAdministrator, models.RoleSTLSameSession},
	}
	member := &models.Member{
		UUID:  "member-1",
		Roles: []models.MemberRole{models.MemberRoleAdministrator},
		User:  *user,
	}

	f.findOrgFn = func(_ context.Context, _ string) (*models.Organization, error) {
		return org, nil
	}
	f.refreshTokenFn = func(_ context.Context, _ string) (*api.TokenResponse, error) {
		return &api.TokenResponse{Token: "scoped-token"}, nil
	}
	f.fetchUserFn = func(_ context.Context) (*models.User, error) {
		return user, nil
	}
	f.fetchSessionFn = func(_ context.Context) (*models.Session, error) {
		return sess, nil
	}
	f.fetchMemberFn = func(_ context.Context, _ string) (*models.Member, error) {
		return member, nil
	}
	return f
}
