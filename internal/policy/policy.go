// Package policy decides, per operation and per actor, whether access is
// permitted. Rules are data, not control flow: each operation maps to the
// roles allowed to perform it and whether the actor must belong to the
// target organization. Adding an operation means adding a row. The policy
// performs no I/O and mutates nothing.
package policy

import (
	"fmt"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/model"
)

// Operation names an access-controlled service operation
type Operation string

// Operations
const (
	OpOrganizationCreate Operation = "organization.create"
	OpOrganizationRead   Operation = "organization.read"
	OpOrganizationUpdate Operation = "organization.update"
	OpOrganizationDelete Operation = "organization.delete"
	OpVolunteerCreate    Operation = "volunteer.create"
	OpVolunteerRead      Operation = "volunteer.read"
	OpVolunteerUpdate    Operation = "volunteer.update"
	OpVolunteerDelete    Operation = "volunteer.delete"
)

// Rule is one row of the policy table
type Rule struct {
	Roles     []model.Role
	Ownership bool // require actor.OrgID == target organization
}

func (r Rule) allowsRole(role model.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

var anyRole = []model.Role{model.RoleAdmin, model.RoleManager, model.RoleVolunteer, model.RoleViewer}

// defaultRules is the built-in policy table
func defaultRules() map[Operation]Rule {
	return map[Operation]Rule{
		OpOrganizationCreate: {Roles: []model.Role{model.RoleAdmin}},
		OpOrganizationRead:   {Roles: anyRole, Ownership: true},
		OpOrganizationUpdate: {Roles: []model.Role{model.RoleAdmin, model.RoleManager}, Ownership: true},
		OpOrganizationDelete: {Roles: []model.Role{model.RoleAdmin}, Ownership: true},

		OpVolunteerCreate: {Roles: []model.Role{model.RoleAdmin, model.RoleManager}, Ownership: true},
		OpVolunteerRead:   {Roles: anyRole, Ownership: true},
		OpVolunteerUpdate: {Roles: []model.Role{model.RoleAdmin, model.RoleManager}, Ownership: true},
		OpVolunteerDelete: {Roles: []model.Role{model.RoleAdmin, model.RoleManager}, Ownership: true},
	}
}

// Policy evaluates the rule table
type Policy struct {
	rules map[Operation]Rule
}

// New returns a policy with the built-in rule table
func New() *Policy {
	return &Policy{rules: defaultRules()}
}

// Allow reports whether the actor may perform the operation against the
// target organization. Unknown operations are denied. A failed role check
// and a failed ownership check are indistinguishable to the caller.
func (p *Policy) Allow(op Operation, actor model.Actor, targetOrgID string) bool {
	rule, ok := p.rules[op]
	if !ok {
		return false
	}
	if !rule.allowsRole(actor.Role) {
		return false
	}
	if rule.Ownership && (actor.OrgID == "" || actor.OrgID != targetOrgID) {
		return false
	}
	return true
}

// Check is Allow returning the typed error the services raise, naming the
// denied operation but not the reason.
func (p *Policy) Check(op Operation, actor model.Actor, targetOrgID string) error {
	if !p.Allow(op, actor, targetOrgID) {
		return apperrors.Forbidden(fmt.Sprintf("not permitted to perform %s", op))
	}
	return nil
}
