package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencrew/orgcli/internal/models"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestInspectToken(t *testing.T) {
	issued := time.Now().Add(-time.Minute).Truncate(time.Second)
	expires := time.Now().Add(time.Hour).Truncate(time.Second)

	raw := signedToken(t, jwt.MapClaims{
		"sub":              "user-1",
		"clientIdentifier": "device-1",
		"roles":            []string{"ROLE_ORG_ADMINISTRATOR", "ROLE_STL_SECURE"},
		"iat":              issued.Unix(),
		"exp":              expires.Unix(),
	})

	payload, err := InspectToken(raw)
	require.NoError(t, err)

	assert.Equal(t, "user-1", payload.UserIdentifier)
	assert.Equal(t, "device-1", payload.ClientIdentifier)
	assert.Equal(t, models.RoleSet{models.RoleOrgAdministrator, models.RoleSTLSecure}, payload.Roles)
	assert.True(t, payload.IssuedAt.Equal(issued))
	assert.True(t, payload.ExpiresAt.Equal(expires))
}

func TestInspectToken_Garbage(t *testing.T) {
	_, err := InspectToken("not-a-token")
	require.ErrorIs(t, err, ErrUnreadableToken)
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	expired := signedToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": now.Add(-time.Hour).Unix(),
	})
	live := signedToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": now.Add(time.Hour).Unix(),
	})
	noExpiry := signedToken(t, jwt.MapClaims{
		"sub": "user-1",
	})

	assert.True(t, TokenExpired(expired, now))
	assert.False(t, TokenExpired(live, now))
	assert.False(t, TokenExpired(noExpiry, now), "tokens without expiry never expire locally")
	assert.False(t, TokenExpired("garbage", now), "unreadable tokens are left to the backend")
}
