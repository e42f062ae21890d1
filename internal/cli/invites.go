package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/opencrew/orgcli/internal/api"
	"github.com/opencrew/orgcli/internal/models"
)

// Invite sends an organization invite to an email address. The action needs
// a fresh secure session but not the strongest tier.
func (a *App) Invite(ctx context.Context) error {
	octx, err := a.selectedOrg(ctx)
	if err != nil {
		return err
	}
	if ok, err := a.canManageMembers(ctx); err != nil || !ok {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email to invite", os.Stdout)
	if err != nil {
		return err
	}

	if ok, err := a.requireStepUp(ctx, models.RoleSTLSecure); err != nil || !ok {
		return err
	}

	invite, err := a.api.CreateInvite(ctx, octx.Organization.UUID, api.CreateInviteRequest{
		MemberEmail:        email,
		InviteMailLanguage: mailLanguage,
	})
	if err != nil {
		return err
	}

	printlnFn("Invite sent to", invite.MemberEmail)
	return nil
}

// Invites lists the pending invites of the selected organization.
func (a *App) Invites(ctx context.Context) error {
	octx, err := a.selectedOrg(ctx)
	if err != nil {
		return err
	}

	invites, err := a.api.ListInvites(ctx, octx.Organization.UUID, 1, listPageSize)
	if err != nil {
		return err
	}
	if len(invites) == 0 {
		printlnFn("No pending invites.")
		return nil
	}
	for _, inv := range invites {
		printlnFn(fmt.Sprintf("  %-36s %-32s %s",
			inv.UUID, inv.MemberEmail, inv.CreatedAt.Format("2006-01-02 15:04")))
	}
	return nil
}

// RevokeInvite withdraws a pending invite.
func (a *App) RevokeInvite(ctx context.Context) error {
	octx, err := a.selectedOrg(ctx)
	if err != nil {
		return err
	}
	if ok, err := a.canManageMembers(ctx); err != nil || !ok {
		return err
	}

	inviteID, err := getSimpleText(a.reader, "Enter invite id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.RemoveInvite(ctx, octx.Organization.UUID, inviteID); err != nil {
		return err
	}
	printlnFn("Invite revoked.")
	return nil
}

// ResendInvite sends the invite mail again.
func (a *App) ResendInvite(ctx context.Context) error {
	octx, err := a.selectedOrg(ctx)
	if err != nil {
		return err
	}
	if ok, err := a.canManageMembers(ctx); err != nil || !ok {
		return err
	}

	inviteID, err := getSimpleText(a.reader, "Enter invite id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.ResendInviteMail(ctx, octx.Organization.UUID, inviteID, mailLanguage); err != nil {
		return err
	}
	printlnFn("Invite mail resent.")
	return nil
}

// Join accepts an organization invite using the token from the invite mail.
// The invite is shown first so the user confirms the right organization.
func (a *App) Join(ctx context.Context, inviteToken string) error {
	invite, err := a.api.FindInviteByToken(ctx, inviteToken)
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf("Join organization %q as %s?",
		invite.Organization.PresentationName, invite.MemberEmail)
	confirmed, err := GetConfirmation(a.reader, prompt, os.Stdout)
	if err != nil {
		return err
	}
	if !confirmed {
		printlnFn("Cancelled.")
		return nil
	}

	if _, err := a.api.IngressByInvite(ctx, inviteToken); err != nil {
		return err
	}

	printlnFn("Welcome to", invite.Organization.PresentationName+"!")
	if a.isLoggedIn() {
		return a.Use(ctx, invite.Organization.ProfileName)
	}
	printlnFn("Log in to start working with the organization.")
	return nil
}
