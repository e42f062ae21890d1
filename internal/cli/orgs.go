package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/opencrew/orgcli/internal/api"
)

const listPageSize = 50

// Orgs lists the organizations the authenticated user belongs to.
func (a *App) Orgs(ctx context.Context) error {
	orgs, err := a.api.ListMyOrganizations(ctx, 1, listPageSize)
	if err != nil {
		return err
	}
	if len(orgs) == 0 {
		printlnFn("You do not belong to any organization yet. Try 'create-org'.")
		return nil
	}
	for _, org := range orgs {
		printlnFn(fmt.Sprintf("  %-24s %s", org.ProfileName, org.PresentationName))
	}
	return nil
}

// Use selects the organization with the given profile name. The resolver
// serves a matching cached context without touching the network; otherwise it
// runs the full remote sequence and re-scopes the credential to the
// organization.
func (a *App) Use(ctx context.Context, profileName string) error {
	octx, err := a.resolver.Resolve(ctx, profileName)
	if err != nil {
		return err
	}
	a.orgProfile = octx.Organization.ProfileName
	printlnFn("Using organization", octx.Organization.PresentationName)
	return nil
}

// CreateOrg prompts for the organization fields, creates it and switches the
// session to it.
func (a *App) CreateOrg(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter organization name", os.Stdout)
	if err != nil {
		return err
	}
	profile, err := getSimpleText(a.reader, "Enter profile name (URL-safe handle)", os.Stdout)
	if err != nil {
		return err
	}

	org, err := a.api.CreateOrganization(ctx, api.CreateOrganizationRequest{
		PresentationName: name,
		ProfileName:      profile,
	})
	if err != nil {
		return err
	}

	printlnFn("Organization created:", org.ProfileName)
	return a.Use(ctx, org.ProfileName)
}
