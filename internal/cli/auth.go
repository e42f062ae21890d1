package cli

import (
	"context"
	"os"

	"github.com/opencrew/orgcli/internal/api"
	"github.com/opencrew/orgcli/internal/common"
	"github.com/opencrew/orgcli/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates a new account.
//
// The email is checked for availability before the password is asked for, so
// the user learns about a taken address as early as possible. On success the
// backend sends a confirmation mail; the account stays usable but some
// operations are limited until the email is confirmed.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	available, err := a.api.CheckEmailAvailability(ctx, email)
	if err != nil {
		return err
	}
	if !available {
		printlnFn("That email is already registered.")
		return nil
	}

	region, err := getSimpleText(a.reader, "Enter preferred region (e.g. eu-west)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	_, err = a.api.CreateUser(ctx, api.CreateUserRequest{
		PresentationName: name,
		PrimaryEmail:     email,
		Password:         string(password),
		PreferredRegion:  region,
	})
	if err != nil {
		return err
	}

	printlnFn("Success! Check your inbox for a confirmation mail, then 'login'.")
	return nil
}

// Login prompts for credentials, obtains a bearer token and persists the
// authenticated state. The client identifier names this install to the
// backend and is stable across logins.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	clientID, err := a.stores.Device.ClientIdentifier(ctx)
	if err != nil {
		return err
	}

	tok, err := a.api.TokenWithEmailAndPassword(ctx, email, password, clientID)
	if err != nil {
		return err
	}
	a.api.SetToken(tok.Token)

	user, err := a.api.FetchAuthenticatedUser(ctx)
	if err != nil {
		return err
	}
	sess, err := a.api.FetchSession(ctx)
	if err != nil {
		return err
	}

	if err := a.stores.Credential.Store(ctx, tok.Token); err != nil {
		return err
	}
	us := &models.UserSession{User: *user, Session: *sess}
	if err := a.stores.Session.Store(ctx, us); err != nil {
		return err
	}

	a.userEmail = user.PrimaryEmail
	a.orgProfile = ""
	a.log.Info(ctx, "logged in", "user", user.UUID)
	printlnFn("Logged in. Select an organization with 'use <profile>'.")
	return nil
}

// Logout clears the persisted credential, session and organization context
// and drops the in-memory state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.stores.ClearAuthentication(ctx); err != nil {
		return err
	}
	a.api.SetToken("")
	a.userEmail = ""
	a.orgProfile = ""
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the authenticated user, the selected organization and the
// caller's roles in it, from the local stores only.
func (a *App) Whoami(ctx context.Context) error {
	us, err := a.stores.Session.Get(ctx)
	if err != nil {
		return err
	}
	if us == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn("User: ", us.User.PresentationName, "<"+us.User.PrimaryEmail+">")
	if !us.User.EmailConfirmed() {
		printlnFn("  (email not confirmed)")
	}

	octx, err := a.stores.OrgContext.Get(ctx)
	if err != nil {
		return err
	}
	if octx == nil {
		printlnFn("No organization selected.")
		return nil
	}

	printlnFn("Organization: ", octx.Organization.PresentationName, "("+octx.Organization.ProfileName+")")
	m := octx.AuthenticatedUserMembership
	if m.IsOrganizationOwner {
		printlnFn("  owner")
	}
	for _, role := range m.Roles {
		if lr, ok := models.LabeledMemberRoleFor(role); ok {
			printlnFn("  role:", lr.Label)
		}
	}
	return nil
}
