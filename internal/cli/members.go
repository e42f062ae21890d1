package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/opencrew/orgcli/internal/models"
	"github.com/opencrew/orgcli/internal/session"
)

// selectedOrg returns the cached organization context, or
// ErrMissingOrganizationContext when no organization has been selected yet.
func (a *App) selectedOrg(ctx context.Context) (*models.OrganizationContext, error) {
	octx, err := a.stores.OrgContext.Get(ctx)
	if err != nil {
		return nil, err
	}
	if octx == nil {
		return nil, session.ErrMissingOrganizationContext
	}
	return octx, nil
}

// canManageMembers gates member management on the cached session roles. The
// backend enforces the same rule; this check only saves the user a round trip
// and produces a friendlier message.
func (a *App) canManageMembers(ctx context.Context) (bool, error) {
	us, err := a.stores.Session.Get(ctx)
	if err != nil {
		return false, err
	}
	if us == nil {
		return false, nil
	}
	ok, text := session.Explain(us.Session.Roles,
		[]models.Role{models.RoleOrgAdministrator, models.RoleOrgMemberAdministrator},
		"", "You need a member management role in this organization.")
	if !ok {
		printlnFn(text)
	}
	return ok, nil
}

// Members lists the members of the selected organization.
func (a *App) Members(ctx context.Context) error {
	octx, err := a.selectedOrg(ctx)
	if err != nil {
		return err
	}

	members, err := a.api.ListMembers(ctx, octx.Organization.UUID, 1, listPageSize)
	if err != nil {
		return err
	}

	for _, m := range members {
		marker := " "
		if m.IsOrganizationOwner {
			marker = "*"
		}
		roles := make([]string, 0, len(m.Roles))
		for _, r := range m.Roles {
			if lr, ok := models.LabeledMemberRoleFor(r); ok {
				roles = append(roles, lr.Label)
			}
		}
		printlnFn(fmt.Sprintf("%s %-36s %-28s %s",
			marker, m.UUID, m.User.PresentationName, strings.Join(roles, ", ")))
	}
	return nil
}

// SetRoles changes a member's roles. The action is guarded by the strongest
// step-up level; when the caller edits their own membership the cached
// organization context is invalidated so the next command sees fresh roles.
func (a *App) SetRoles(ctx context.Context) error {
	octx, err := a.selectedOrg(ctx)
	if err != nil {
		return err
	}
	if ok, err := a.canManageMembers(ctx); err != nil || !ok {
		return err
	}

	memberID, err := getSimpleText(a.reader, "Enter member id", os.Stdout)
	if err != nil {
		return err
	}

	printlnFn("Assignable roles:")
	for _, lr := range models.LabeledMemberRoles() {
		printlnFn(fmt.Sprintf("  %-24s %s (%s)", lr.Value, lr.Label, lr.Description))
	}
	line, err := getSimpleText(a.reader, "Enter roles, comma separated (empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	var roles []models.MemberRole
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		role := models.MemberRole(part)
		if _, ok := models.LabeledMemberRoleFor(role); !ok {
			printlnFn("Unknown role:", part)
			return nil
		}
		roles = append(roles, role)
	}

	if ok, err := a.requireStepUp(ctx, models.RoleSTLMostSecure); err != nil || !ok {
		return err
	}

	updated, err := a.api.UpdateMemberRoles(ctx, octx.Organization.UUID, memberID, roles)
	if err != nil {
		return err
	}

	if updated.UUID == octx.AuthenticatedUserMembership.UUID {
		if err := a.resolver.Invalidate(ctx); err != nil {
			return err
		}
	}
	printlnFn("Roles updated.")
	return nil
}

// RemoveMember removes a member from the selected organization.
func (a *App) RemoveMember(ctx context.Context) error {
	octx, err := a.selectedOrg(ctx)
	if err != nil {
		return err
	}
	if ok, err := a.canManageMembers(ctx); err != nil || !ok {
		return err
	}

	memberID, err := getSimpleText(a.reader, "Enter member id", os.Stdout)
	if err != nil {
		return err
	}

	confirmed, err := GetConfirmation(a.reader, "Remove member "+memberID+"?", os.Stdout)
	if err != nil {
		return err
	}
	if !confirmed {
		printlnFn("Cancelled.")
		return nil
	}

	if ok, err := a.requireStepUp(ctx, models.RoleSTLMostSecure); err != nil || !ok {
		return err
	}

	if err := a.api.RemoveMember(ctx, octx.Organization.UUID, memberID); err != nil {
		return err
	}

	if memberID == octx.AuthenticatedUserMembership.UUID {
		if err := a.resolver.Invalidate(ctx); err != nil {
			return err
		}
		a.orgProfile = ""
		printlnFn("You left the organization.")
		return nil
	}
	printlnFn("Member removed.")
	return nil
}

// TransferOwnership hands the organization to another member. Ownership
// affects the caller's own membership, so the cached context is always
// invalidated afterwards.
func (a *App) TransferOwnership(ctx context.Context) error {
	octx, err := a.selectedOrg(ctx)
	if err != nil {
		return err
	}
	if !octx.AuthenticatedUserMembership.IsOrganizationOwner {
		printlnFn("Only the organization owner can transfer ownership.")
		return nil
	}

	memberID, err := getSimpleText(a.reader, "Enter member id of the new owner", os.Stdout)
	if err != nil {
		return err
	}

	confirmed, err := GetConfirmation(a.reader, "Transfer ownership to "+memberID+"? This cannot be undone by you.", os.Stdout)
	if err != nil {
		return err
	}
	if !confirmed {
		printlnFn("Cancelled.")
		return nil
	}

	if ok, err := a.requireStepUp(ctx, models.RoleSTLMostSecure); err != nil || !ok {
		return err
	}

	if err := a.api.TransferOwnership(ctx, octx.Organization.UUID, memberID); err != nil {
		return err
	}
	if err := a.resolver.Invalidate(ctx); err != nil {
		return err
	}
	printlnFn("Ownership transferred.")
	return nil
}
