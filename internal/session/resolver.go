// Package session implements the client's session core: resolving an
// organization context from a profile name, step-up authentication before
// sensitive actions, and role gating over the cached session.
package session

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/opencrew/orgcli/internal/api"
	"github.com/opencrew/orgcli/internal/logging"
	"github.com/opencrew/orgcli/internal/models"
	"github.com/opencrew/orgcli/internal/store"
)

// Resolver produces a consistent (identity, session, organization context)
// triple for an organization profile name, serving from the local stores when
// the cached context matches and from the remote API otherwise.
//
// Concurrent resolutions of the same profile name are collapsed into one
// remote sequence. Resolutions that lose to a newer request discard their
// results instead of overwriting fresher state.
type Resolver struct {
	api    api.Client
	stores *store.Stores
	log    logging.Logger

	group singleflight.Group
	gen   atomic.Uint64
}

func NewResolver(client api.Client, stores *store.Stores, log logging.Logger) *Resolver {
	return &Resolver{api: client, stores: stores, log: log}
}

// Resolve returns the organization context for profileName.
//
// A cached context whose organization profile name equals profileName is
// returned as-is, with no network calls. On a miss the resolver fetches the
// organization, requests a token scoped to it, refreshes identity and session
// with that token, fetches the caller's membership, and commits credential,
// session and context to the stores in one transaction. Any remote failure
// aborts the whole sequence with a *ResolutionError and leaves every store
// untouched.
func (r *Resolver) Resolve(ctx context.Context, profileName string) (*models.OrganizationContext, error) {
	if profileName == "" {
		return nil, ErrMissingOrganizationContext
	}

	if cached, err := r.stores.OrgContext.Get(ctx); err == nil && cached != nil {
		if cached.Organization.ProfileName == profileName {
			return cached, nil
		}
	}

	v, err, _ := r.group.Do(profileName, func() (any, error) {
		return r.resolve(ctx, profileName)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.OrganizationContext), nil
}

func (r *Resolver) resolve(ctx context.Context, profileName string) (*models.OrganizationContext, error) {
	gen := r.gen.Add(1)

	fail := func(err error) (*models.OrganizationContext, error) {
		return nil, &ResolutionError{ProfileName: profileName, Err: err}
	}

	org, err := r.api.FindOrganizationByProfileName(ctx, profileName)
	if err != nil {
		return fail(err)
	}

	tok, err := r.api.RefreshToken(ctx, org.UUID)
	if err != nil {
		return fail(err)
	}

	prev := r.api.Token()
	r.api.SetToken(tok.Token)

	user, err := r.api.FetchAuthenticatedUser(ctx)
	if err != nil {
		r.api.SetToken(prev)
		return fail(err)
	}

	sess, err := r.api.FetchSession(ctx)
	if err != nil {
		r.api.SetToken(prev)
		return fail(err)
	}

	membership, err := r.api.FetchMyMembership(ctx, org.UUID)
	if err != nil {
		r.api.SetToken(prev)
		return fail(err)
	}

	if r.gen.Load() != gen {
		r.api.SetToken(prev)
		r.log.Warn(ctx, "discarding stale organization resolution", "profileName", profileName)
		return fail(ErrSuperseded)
	}

	octx := &models.OrganizationContext{
		Organization:                *org,
		AuthenticatedUserMembership: *membership,
	}
	us := &models.UserSession{User: *user, Session: *sess}

	if err := r.stores.CommitResolution(ctx, tok.Token, us, octx); err != nil {
		r.api.SetToken(prev)
		return fail(err)
	}

	r.log.Info(ctx, "organization context resolved",
		"profileName", profileName, "organizationId", org.UUID)
	return octx, nil
}

// Invalidate clears the cached organization context. Callers use it after
// operations the cache cannot safely patch in place (ownership transfers,
// changes to the caller's own membership); the next Resolve performs a full
// remote sequence.
func (r *Resolver) Invalidate(ctx context.Context) error {
	return r.stores.OrgContext.Clear(ctx)
}
