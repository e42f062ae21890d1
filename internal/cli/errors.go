package cli

import (
	"errors"

	"github.com/opencrew/orgcli/internal/api"
	"github.com/opencrew/orgcli/internal/session"
)

// humanize maps internal errors onto messages suitable for the terminal.
// Unrecognized errors pass through unchanged.
func humanize(err error) string {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return "the server is unavailable, try again later"
	case errors.Is(err, session.ErrMissingOrganizationContext):
		return "no organization selected, run 'use <profile>' first"
	case errors.Is(err, session.ErrChallengeActive):
		return "another confirmation is already in progress"
	case errors.Is(err, session.ErrSuperseded):
		return "superseded by a newer organization switch"
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Tag {
		case api.TagInvalidCredentials:
			return "invalid email or password"
		case api.TagInvalidPassword:
			return "the password does not meet the requirements"
		case api.TagInvalidEmail:
			return "the email address is not valid"
		case api.TagEmailNotConfirmed:
			return "confirm your email address first (see 'send-confirmation-mail')"
		case api.TagDuplicated:
			return "already exists"
		case api.TagNotFound:
			return "not found"
		case api.TagForbidden:
			return "you are not allowed to do that"
		case api.TagTooManyRequests:
			return "too many requests, slow down"
		case api.TagPaymentRequired:
			return "the organization plan does not allow this"
		case api.TagValidation, api.TagInvalidParameters:
			return "the server rejected the input"
		}
	}

	if errors.Is(err, api.ErrUnauthorized) {
		return "not authorized, try logging in again"
	}

	return err.Error()
}
