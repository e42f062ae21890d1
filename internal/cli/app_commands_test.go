package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencrew/orgcli/internal/api"
	"github.com/opencrew/orgcli/internal/config"
	"github.com/opencrew/orgcli/internal/logging"
	"github.com/opencrew/orgcli/internal/models"
	"github.com/opencrew/orgcli/internal/store"
)

// fakeClient stubs the slice of api.Client the commands under test exercise.
// The embedded interface panics on anything not stubbed.
type fakeClient struct {
	api.Client

	mu    sync.Mutex
	token string

	tokenWithEmailFn func(ctx context.Context, email string, password []byte, clientID string) (*api.TokenResponse, error)
	fetchUserFn      func(ctx context.Context) (*models.User, error)
	fetchSessionFn   func(ctx context.Context) (*models.Session, error)
	sendConfirmFn    func(ctx context.Context, language string) error
	recoveryFn       func(ctx context.Context, email, language string) error
}

func (f *fakeClient) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeClient) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeClient) TokenWithEmailAndPassword(ctx context.Context, email string, password []byte, clientID string) (*api.TokenResponse, error) {
	return f.tokenWithEmailFn(ctx, email, password, clientID)
}

func (f *fakeClient) FetchAuthenticatedUser(ctx context.Context) (*models.User, error) {
	return f.fetchUserFn(ctx)
}

func (f *fakeClient) FetchSession(ctx context.Context) (*models.Session, error) {
	return f.fetchSessionFn(ctx)
}

func (f *fakeClient) SendPrimaryEmailConfirmationMail(ctx context.Context, language string) error {
	return f.sendConfirmFn(ctx, language)
}

func (f *fakeClient) SendPasswordRecoveryMail(ctx context.Context, email, language string) error {
	return f.recoveryFn(ctx, email, language)
}

func newTestApp(t *testing.T, client api.Client) (*App, *store.Stores) {
	t.Helper()

	stores := store.NewStores(store.NewMemoryKV())
	cfg := &config.Config{}
	cfg.LoadDefaults()
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))

	return NewApp(cfg, client, stores, logger), stores
}

// stubInput replaces the interactive seams for the duration of the test.
func stubInput(t *testing.T, texts []string, passwords [][]byte) {
	t.Helper()

	origText, origPass, origPrint := getSimpleText, getPassword, printlnFn
	t.Cleanup(func() {
		getSimpleText, getPassword, printlnFn = origText, origPass, origPrint
	})

	printlnFn = func(...any) (int, error) { return 0, nil }

	ti := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		require.Less(t, ti, len(texts), "unexpected text prompt")
		s := texts[ti]
		ti++
		return s, nil
	}

	pi := 0
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		require.Less(t, pi, len(passwords), "unexpected password prompt")
		p := passwords[pi]
		pi++
		return p, nil
	}
}

func TestApp_Login_PersistsState(t *testing.T) {
	ctx := context.Background()

	user := &models.User{UUID: "user-1", PrimaryEmail: "ana@example.com"}
	var gotClientID string
	client := &fakeClient{
		tokenWithEmailFn: func(_ context.Context, email string, password []byte, clientID string) (*api.TokenResponse, error) {
			assert.Equal(t, "ana@example.com", email)
			assert.Equal(t, "hunter2", string(password))
			gotClientID = clientID
			return &api.TokenResponse{Token: "tok-1"}, nil
		},
		fetchUserFn: func(_ context.Context) (*models.User, error) { return user, nil },
		fetchSessionFn: func(_ context.Context) (*models.Session, error) {
			return &models.Session{UserIdentifier: "user-1"}, nil
		},
	}

	app, stores := newTestApp(t, client)
	stubInput(t, []string{"ana@example.com"}, [][]byte{[]byte("hunter2")})

	require.NoError(t, app.Login(ctx))

	assert.NotEmpty(t, gotClientID, "login must carry the client identifier")
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "(ana@example.com)", app.getStatus())
	assert.Equal(t, "tok-1", client.Token())

	token, err := stores.Credential.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	us, err := stores.Session.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, us)
	assert.Equal(t, "ana@example.com", us.User.PrimaryEmail)

	// A second login reuses the same client identifier.
	firstID := gotClientID
	stubInput(t, []string{"ana@example.com"}, [][]byte{[]byte("hunter2")})
	require.NoError(t, app.Login(ctx))
	assert.Equal(t, firstID, gotClientID)
}

func TestApp_Login_BadCredentialsLeaveNoState(t *testing.T) {
	ctx := context.Background()

	client := &fakeClient{
		tokenWithEmailFn: func(_ context.Context, _ string, _ []byte, _ string) (*api.TokenResponse, error) {
			return nil, &api.Error{StatusCode: 401, Tag: api.TagInvalidCredentials}
		},
	}

	app, stores := newTestApp(t, client)
	stubInput(t, []string{"ana@example.com"}, [][]byte{[]byte("wrong")})

	err := app.Login(ctx)
	require.Error(t, err)
	assert.True(t, api.HasTag(err, api.TagInvalidCredentials))
	assert.False(t, app.isLoggedIn())

	token, err := stores.Credential.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestApp_Logout_ClearsState(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{token: "tok-1"}
	app, stores := newTestApp(t, client)
	app.userEmail = "ana@example.com"
	app.orgProfile = "acme"
	require.NoError(t, stores.Credential.Store(ctx, "tok-1"))

	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	require.NoError(t, app.Logout(ctx))

	assert.False(t, app.isLoggedIn())
	assert.Empty(t, app.getStatus())
	assert.Empty(t, client.Token())

	token, err := stores.Credential.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestApp_SendConfirmationMail_Cooldown(t *testing.T) {
	ctx := context.Background()

	sent := 0
	client := &fakeClient{
		sendConfirmFn: func(_ context.Context, language string) error {
			assert.Equal(t, mailLanguage, language)
			sent++
			return nil
		},
	}

	app, _ := newTestApp(t, client)
	stubInput(t, nil, nil)

	require.NoError(t, app.SendConfirmationMail(ctx))
	assert.Equal(t, 1, sent)

	// An immediate retry is throttled locally.
	require.NoError(t, app.SendConfirmationMail(ctx))
	assert.Equal(t, 1, sent)

	// After the cooldown has elapsed, sending works again.
	origNow := timeNow
	timeNow = func() time.Time { return origNow().Add(mailCooldown + time.Second) }
	t.Cleanup(func() { timeNow = origNow })

	require.NoError(t, app.SendConfirmationMail(ctx))
	assert.Equal(t, 2, sent)
}

func TestApp_RecoverPassword(t *testing.T) {
	ctx := context.Background()

	var gotEmail string
	client := &fakeClient{
		recoveryFn: func(_ context.Context, email, language string) error {
			gotEmail = email
			return nil
		},
	}

	app, _ := newTestApp(t, client)
	stubInput(t, []string{"lost@example.com"}, nil)

	require.NoError(t, app.RecoverPassword(ctx))
	assert.Equal(t, "lost@example.com", gotEmail)
}

func signedTestToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiresAt.Unix(),
	})
	s, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestApp_Restore(t *testing.T) {
	t.Run("live credential restores the session", func(t *testing.T) {
		ctx := context.Background()
		client := &fakeClient{}
		app, stores := newTestApp(t, client)

		live := signedTestToken(t, time.Now().Add(time.Hour))
		require.NoError(t, stores.Credential.Store(ctx, live))
		require.NoError(t, stores.Session.Store(ctx, &models.UserSession{
			User: models.User{PrimaryEmail: "ana@example.com"},
		}))
		require.NoError(t, stores.OrgContext.Store(ctx, &models.OrganizationContext{
			Organization: models.Organization{ProfileName: "acme"},
		}))

		app.Restore(ctx)

		assert.True(t, app.isLoggedIn())
		assert.Equal(t, "(ana@example.com @ acme)", app.getStatus())
		assert.Equal(t, live, client.Token())
	})

	t.Run("expired credential is discarded", func(t *testing.T) {
		ctx := context.Background()
		client := &fakeClient{}
		app, stores := newTestApp(t, client)

		expired := signedTestToken(t, time.Now().Add(-time.Hour))
		require.NoError(t, stores.Credential.Store(ctx, expired))
		require.NoError(t, stores.Session.Store(ctx, &models.UserSession{
			User: models.User{PrimaryEmail: "ana@example.com"},
		}))

		app.Restore(ctx)

		assert.False(t, app.isLoggedIn())
		assert.Empty(t, client.Token())

		token, err := stores.Credential.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, token, "dead credentials must not survive a restart")
	})

	t.Run("no credential is a clean start", func(t *testing.T) {
		client := &fakeClient{}
		app, _ := newTestApp(t, client)

		app.Restore(context.Background())

		assert.False(t, app.isLoggedIn())
	})
}
