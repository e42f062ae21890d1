// Package models defines the backend API data shapes shared by the client:
// users, sessions, organizations, memberships, invites, projects and roles.
package models

// Role is a role tag granted to a session. Tags come from two disjoint
// families: security-level (STL) roles describing how recently/strongly the
// user proved their identity, and organization-capability roles scoped to the
// currently selected organization.
type Role string

const (
	RoleOrgAdministrator       Role = "ROLE_ORG_ADMINISTRATOR"
	RoleOrgMemberAdministrator Role = "ROLE_ORG_MEMBER_ADMINISTRATOR"

	RoleSTLMostSecure  Role = "ROLE_STL_MOST_SECURE"
	RoleSTLSecure      Role = "ROLE_STL_SECURE"
	RoleSTLSameSession Role = "ROLE_STL_SAME_SESSION"
)

// stlRank orders the STL tiers. Higher means a stronger/fresher proof of
// identity. Roles outside this map are not STL roles and carry no ordering.
var stlRank = map[Role]int{
	RoleSTLSameSession: 1,
	RoleSTLSecure:      2,
	RoleSTLMostSecure:  3,
}

// IsSTL reports whether r belongs to the security-level family.
func IsSTL(r Role) bool {
	_, ok := stlRank[r]
	return ok
}

// RoleSet is the set of roles granted to a session.
type RoleSet []Role

// Has reports whether the set contains r.
func (s RoleSet) Has(r Role) bool {
	for _, have := range s {
		if have == r {
			return true
		}
	}
	return false
}

// HasAny reports whether the set contains at least one of the given roles.
// Roles are presence-checked; no ordering is applied.
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// MeetsSTL reports whether the set satisfies the required security level.
// Unlike plain presence checks, STL tiers are ordered: a session holding a
// stronger tier satisfies any weaker requirement.
func MeetsSTL(s RoleSet, required Role) bool {
	need, ok := stlRank[required]
	if !ok {
		return false
	}
	for _, r := range s {
		if stlRank[r] >= need {
			return true
		}
	}
	return false
}

// MemberRole is a capability role attached to an organization membership.
// These are the membership-side counterparts of the ROLE_ORG_* session tags.
type MemberRole string

const (
	MemberRoleAdministrator       MemberRole = "ORG_ADMINISTRATOR"
	MemberRoleMemberAdministrator MemberRole = "ORG_MEMBER_ADMINISTRATOR"
)

// LabeledMemberRole pairs a MemberRole with human-readable texts for display.
type LabeledMemberRole struct {
	Label       string
	Description string
	Value       MemberRole
}

// LabeledMemberRoles returns every assignable member role with its label and
// description, in presentation order.
func LabeledMemberRoles() []LabeledMemberRole {
	return []LabeledMemberRole{
		{
			Label:       "Administrator",
			Value:       MemberRoleAdministrator,
			Description: "Allows the user to fully administer the organization",
		},
		{
			Label:       "Member manager",
			Value:       MemberRoleMemberAdministrator,
			Description: "Allows the user to add, change and remove organization members",
		},
	}
}

// LabeledMemberRoleFor returns the labeled representation of role.
func LabeledMemberRoleFor(role MemberRole) (LabeledMemberRole, bool) {
	for _, lr := range LabeledMemberRoles() {
		if lr.Value == role {
			return lr, true
		}
	}
	return LabeledMemberRole{}, false
}
