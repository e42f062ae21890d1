package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opencrew/orgcli/internal/api"
	"github.com/opencrew/orgcli/internal/session"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "unavailable",
			err:  fmt.Errorf("%w: dial tcp: refused", api.ErrUnavailable),
			want: "the server is unavailable, try again later",
		},
		{
			name: "missing organization",
			err:  session.ErrMissingOrganizationContext,
			want: "no organization selected, run 'use <profile>' first",
		},
		{
			name: "challenge active",
			err:  session.ErrChallengeActive,
			want: "another confirmation is already in progress",
		},
		{
			name: "invalid credentials tag",
			err:  &api.Error{StatusCode: 401, Tag: api.TagInvalidCredentials},
			want: "invalid email or password",
		},
		{
			name: "not found tag",
			err:  &api.Error{StatusCode: 404, Tag: api.TagNotFound},
			want: "not found",
		},
		{
			name: "wrapped resolution error keeps the tag",
			err: &session.ResolutionError{
				ProfileName: "acme",
				Err:         &api.Error{StatusCode: 404, Tag: api.TagNotFound},
			},
			want: "not found",
		},
		{
			name: "unauthorized without a known tag",
			err:  &api.Error{StatusCode: 403, Tag: api.ErrorTag("SOMETHING_NEW")},
			want: "not authorized, try logging in again",
		},
		{
			name: "unknown errors pass through",
			err:  errors.New("kaboom"),
			want: "kaboom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanize(tt.err))
		})
	}
}
