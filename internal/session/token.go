package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/opencrew/orgcli/internal/models"
)

// ErrUnreadableToken is returned when a stored credential cannot be decoded
// as a JWT. The credential is opaque to the client; decoding is best-effort
// and only used locally.
var ErrUnreadableToken = errors.New("credential is not a readable token")

type tokenClaims struct {
	ClientIdentifier string   `json:"clientIdentifier"`
	Roles            []string `json:"roles"`
	jwt.RegisteredClaims
}

// InspectToken decodes the bearer token's claims without verifying its
// signature (the client holds no key; verification is the backend's job).
// It is used to surface session expiry and to drop dead credentials on
// startup instead of failing the first request.
func InspectToken(token string) (*models.TokenPayload, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, ErrUnreadableToken
	}

	payload := &models.TokenPayload{
		UserIdentifier:   claims.Subject,
		ClientIdentifier: claims.ClientIdentifier,
	}
	for _, r := range claims.Roles {
		payload.Roles = append(payload.Roles, models.Role(r))
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Time
	}
	return payload, nil
}

// TokenExpired reports whether the token carries an expiry in the past.
// Unreadable tokens are not treated as expired; the backend stays the
// authority on their validity.
func TokenExpired(token string, now time.Time) bool {
	payload, err := InspectToken(token)
	if err != nil {
		return false
	}
	return !payload.ExpiresAt.IsZero() && payload.ExpiresAt.Before(now)
}
