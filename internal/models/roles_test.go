package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleSet_Has(t *testing.T) {
	s := RoleSet{RoleOrgAdministrator, RoleSTLSecure}

	assert.True(t, s.Has(RoleOrgAdministrator))
	assert.True(t, s.Has(RoleSTLSecure))
	assert.False(t, s.Has(RoleSTLMostSecure))
	assert.False(t, RoleSet{}.Has(RoleOrgAdministrator))
}

func TestRoleSet_HasAny(t *testing.T) {
	s := RoleSet{RoleOrgMemberAdministrator}

	assert.True(t, s.HasAny(RoleOrgAdministrator, RoleOrgMemberAdministrator))
	assert.False(t, s.HasAny(RoleOrgAdministrator))
	assert.False(t, s.HasAny())
}

func TestMeetsSTL_Ordering(t *testing.T) {
	tests := []struct {
		name     string
		roles    RoleSet
		required Role
		want     bool
	}{
		{"same tier satisfies itself", RoleSet{RoleSTLSameSession}, RoleSTLSameSession, true},
		{"secure satisfies same-session", RoleSet{RoleSTLSecure}, RoleSTLSameSession, true},
		{"most-secure satisfies same-session", RoleSet{RoleSTLMostSecure}, RoleSTLSameSession, true},
		{"most-secure satisfies secure", RoleSet{RoleSTLMostSecure}, RoleSTLSecure, true},
		{"most-secure satisfies most-secure", RoleSet{RoleSTLMostSecure}, RoleSTLMostSecure, true},
		{"same-session does not satisfy secure", RoleSet{RoleSTLSameSession}, RoleSTLSecure, false},
		{"same-session does not satisfy most-secure", RoleSet{RoleSTLSameSession}, RoleSTLMostSecure, false},
		{"secure does not satisfy most-secure", RoleSet{RoleSTLSecure}, RoleSTLMostSecure, false},
		{"empty set satisfies nothing", RoleSet{}, RoleSTLSameSession, false},
		{"org roles carry no security level", RoleSet{RoleOrgAdministrator}, RoleSTLSameSession, false},
		{"non-STL requirement is never met by ordering", RoleSet{RoleSTLMostSecure}, RoleOrgAdministrator, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MeetsSTL(tt.roles, tt.required))
		})
	}
}

func TestIsSTL(t *testing.T) {
	assert.True(t, IsSTL(RoleSTLSameSession))
	assert.True(t, IsSTL(RoleSTLSecure))
	assert.True(t, IsSTL(RoleSTLMostSecure))
	assert.False(t, IsSTL(RoleOrgAdministrator))
	assert.False(t, IsSTL(Role("ROLE_SOMETHING_ELSE")))
}

func TestLabeledMemberRoles(t *testing.T) {
	roles := LabeledMemberRoles()
	assert.Len(t, roles, 2)

	lr, ok := LabeledMemberRoleFor(MemberRoleAdministrator)
	assert.True(t, ok)
	assert.Equal(t, "Administrator", lr.Label)

	_, ok = LabeledMemberRoleFor(MemberRole("NOPE"))
	assert.False(t, ok)
}
