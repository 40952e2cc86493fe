package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesOf(t *testing.T) {
	cases := []struct {
		role    string
		operate bool
		manage  bool
		admin   bool
	}{
		{RoleCustomer, false, false, false},
		{RoleThemeManager, true, false, false},
		{RoleBranchManager, true, true, false},
		{RoleAdmin, true, true, true},
		{"unknown", false, false, false},
		{"", false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			caps := CapabilitiesOf(tc.role)
			assert.Equal(t, tc.operate, caps[CapOperateThemes])
			assert.Equal(t, tc.manage, caps[CapManageBranch])
			assert.Equal(t, tc.admin, caps[CapAdmin])
		})
	}
}

func TestIsStaff(t *testing.T) {
	assert.False(t, IsStaff(RoleCustomer))
	assert.True(t, IsStaff(RoleThemeManager))
	assert.True(t, IsStaff(RoleBranchManager))
	assert.True(t, IsStaff(RoleAdmin))
}

// Higher staff roles must keep every capability of the roles below them;
// a branch manager who cannot run the floor would be a regression.
func TestCapabilityHierarchy(t *testing.T) {
	assert.True(t, HasCapability(RoleBranchManager, CapOperateThemes))
	assert.True(t, HasCapability(RoleAdmin, CapOperateThemes))
	assert.True(t, HasCapability(RoleAdmin, CapManageBranch))
}

func TestBranchScopeAllows(t *testing.T) {
	cases := []struct {
		name     string
		role     string
		assigned bool
		want     bool
	}{
		{"admin without assignment", RoleAdmin, false, true},
		{"branch manager assigned", RoleBranchManager, true, true},
		{"branch manager elsewhere", RoleBranchManager, false, false},
		{"theme manager even if assigned", RoleThemeManager, true, false},
		{"customer", RoleCustomer, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BranchScopeAllows(tc.role, tc.assigned))
		})
	}
}

func TestValidRating(t *testing.T) {
	for n := 1; n <= 5; n++ {
		assert.True(t, ValidRating(n), "rating %d", n)
	}
	assert.False(t, ValidRating(0))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(-1))
}

func TestValidIssueStatus(t *testing.T) {
	assert.True(t, ValidIssueStatus(IssueReported))
	assert.True(t, ValidIssueStatus(IssueInProgress))
	assert.True(t, ValidIssueStatus(IssueResolved))
	assert.False(t, ValidIssueStatus("Closed"))
	assert.False(t, ValidIssueStatus(""))
}
