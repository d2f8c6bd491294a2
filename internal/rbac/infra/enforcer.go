package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const RoleAuthenticated = "authenticated"

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// DefaultPolicies lists every permission the UI needs. All signed-in users
// share the same role.
var DefaultPolicies = [][]string{
	{RoleAuthenticated, "employee", "read"},
	{RoleAuthenticated, "employee", "create"},
	{RoleAuthenticated, "employee", "update"},
	{RoleAuthenticated, "employee", "delete"},
	{RoleAuthenticated, "maintenance", "repair"},
	{RoleAuthenticated, "dashboard", "read"},
	{RoleAuthenticated, "export", "read"},
}

// NewEnforcer builds an in-memory enforcer loaded with policies. A nil
// policies slice loads DefaultPolicies.
func NewEnforcer(policies [][]string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if policies == nil {
		policies = DefaultPolicies
	}
	if len(policies) > 0 {
		if _, err := e.AddPolicies(policies); err != nil {
			return nil, err
		}
	}

	// service_role (the backend key of the hosted store) inherits everything.
	if _, err := e.AddGroupingPolicy("service_role", RoleAuthenticated); err != nil {
		return nil, err
	}

	return e, nil
}
