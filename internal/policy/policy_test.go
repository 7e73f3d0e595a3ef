package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/model"
)

func actor(role model.Role, orgID string) model.Actor {
	return model.Actor{UID: "u1", OrgID: orgID, Role: role}
}

func TestAllowMatrix(t *testing.T) {
	pol := New()

	tests := []struct {
		name   string
		op     Operation
		actor  model.Actor
		target string
		want   bool
	}{
		{"admin creates organization", OpOrganizationCreate, actor(model.RoleAdmin, "org1"), "", true},
		{"manager cannot create organization", OpOrganizationCreate, actor(model.RoleManager, "org1"), "", false},
		{"viewer cannot create organization", OpOrganizationCreate, actor(model.RoleViewer, "org1"), "", false},

		{"viewer reads own organization", OpOrganizationRead, actor(model.RoleViewer, "org1"), "org1", true},
		{"viewer cannot read other organization", OpOrganizationRead, actor(model.RoleViewer, "org1"), "org2", false},
		{"admin cannot read other organization", OpOrganizationRead, actor(model.RoleAdmin, "org1"), "org2", false},

		{"manager updates own organization", OpOrganizationUpdate, actor(model.RoleManager, "org1"), "org1", true},
		{"volunteer cannot update own organization", OpOrganizationUpdate, actor(model.RoleVolunteer, "org1"), "org1", false},

		{"admin deletes own organization", OpOrganizationDelete, actor(model.RoleAdmin, "org1"), "org1", true},
		{"manager cannot delete organization", OpOrganizationDelete, actor(model.RoleManager, "org1"), "org1", false},

		{"manager creates volunteer in own org", OpVolunteerCreate, actor(model.RoleManager, "org1"), "org1", true},
		{"manager cannot create volunteer in other org", OpVolunteerCreate, actor(model.RoleManager, "org1"), "org2", false},
		{"volunteer role reads own org roster", OpVolunteerRead, actor(model.RoleVolunteer, "org1"), "org1", true},
		{"viewer cannot update volunteer", OpVolunteerUpdate, actor(model.RoleViewer, "org1"), "org1", false},
		{"manager deletes volunteer in own org", OpVolunteerDelete, actor(model.RoleManager, "org1"), "org1", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pol.Allow(tc.op, tc.actor, tc.target))
		})
	}
}

func TestAllowDeniesActorWithoutOrganization(t *testing.T) {
	pol := New()
	rootless := model.Actor{UID: "u1", Role: model.RoleAdmin}

	assert.False(t, pol.Allow(OpOrganizationRead, rootless, "org1"))
	assert.False(t, pol.Allow(OpOrganizationRead, rootless, ""))
}

func TestAllowDeniesUnknownOperation(t *testing.T) {
	pol := New()
	assert.False(t, pol.Allow(Operation("organization.export"), actor(model.RoleAdmin, "org1"), "org1"))
}

func TestCheckReturnsForbidden(t *testing.T) {
	pol := New()

	err := pol.Check(OpOrganizationDelete, actor(model.RoleManager, "org1"), "org1")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	assert.NoError(t, pol.Check(OpOrganizationRead, actor(model.RoleViewer, "org1"), "org1"))
}

func TestParseOverlaysRules(t *testing.T) {
	content := []byte(`
rules:
  - operation: organization.create
    roles: [admin, manager]
  - operation: volunteer.delete
    roles: [admin]
    ownership: true
`)

	pol, err := Parse(content)
	require.NoError(t, err)

	assert.True(t, pol.Allow(OpOrganizationCreate, actor(model.RoleManager, "org1"), ""))
	assert.False(t, pol.Allow(OpVolunteerDelete, actor(model.RoleManager, "org1"), "org1"))
	// Operations the file does not mention keep their defaults
	assert.True(t, pol.Allow(OpOrganizationUpdate, actor(model.RoleManager, "org1"), "org1"))
}

func TestParseRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown operation", "rules:\n  - operation: organization.export\n    roles: [admin]\n"},
		{"unknown role", "rules:\n  - operation: organization.create\n    roles: [superuser]\n"},
		{"empty roles", "rules:\n  - operation: organization.create\n    roles: []\n"},
		{"not yaml", "{{nope"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.content))
			assert.Error(t, err)
		})
	}
}
