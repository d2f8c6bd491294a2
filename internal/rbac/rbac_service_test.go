package rbac

import (
	"testing"

	"go-nexushr/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, policies [][]string) Service {
	t.Helper()
	e, err := infra.NewEnforcer(policies)
	assert.NoError(t, err)
	return NewService(e, zap.NewNop())
}

func TestRBACService_Enforce(t *testing.T) {
	service := newTestService(t, nil)

	cases := []struct {
		name string
		req  EnforceRequest
		want bool
	}{
		{"authenticated reads employees", EnforceRequest{Role: "authenticated", Resource: "employee", Action: "read"}, true},
		{"authenticated repairs data", EnforceRequest{Role: "authenticated", Resource: "maintenance", Action: "repair"}, true},
		{"service role inherits", EnforceRequest{Role: "service_role", Resource: "export", Action: "read"}, true},
		{"anon is denied", EnforceRequest{Role: "anon", Resource: "employee", Action: "read"}, false},
		{"empty role is denied", EnforceRequest{Resource: "employee", Action: "read"}, false},
		{"unknown action", EnforceRequest{Role: "authenticated", Resource: "employee", Action: "approve"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := service.Enforce(tc.req)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, allowed)
		})
	}
}

func TestRBACService_CustomPolicies(t *testing.T) {
	service := newTestService(t, [][]string{{"authenticated", "dashboard", "read"}})

	allowed, err := service.Enforce(EnforceRequest{Role: "authenticated", Resource: "dashboard", Action: "read"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.Enforce(EnforceRequest{Role: "authenticated", Resource: "employee", Action: "delete"})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestRBACService_Permissions(t *testing.T) {
	service := newTestService(t, [][]string{
		{"authenticated", "employee", "update"},
		{"authenticated", "dashboard", "read"},
		{"authenticated", "employee", "read"},
	})

	t.Run("sorted by resource then action", func(t *testing.T) {
		resp, err := service.Permissions("authenticated")
		assert.NoError(t, err)
		assert.Equal(t, []Permission{
			{Resource: "dashboard", Action: "read"},
			{Resource: "employee", Action: "read"},
			{Resource: "employee", Action: "update"},
		}, resp.Permissions)
	})

	t.Run("service role inherits", func(t *testing.T) {
		resp, err := service.Permissions("service_role")
		assert.NoError(t, err)
		assert.Equal(t, "service_role", resp.Role)
		assert.Len(t, resp.Permissions, 3)
	})

	t.Run("unknown role gets an empty list", func(t *testing.T) {
		resp, err := service.Permissions("anon")
		assert.NoError(t, err)
		assert.NotNil(t, resp.Permissions)
		assert.Empty(t, resp.Permissions)
	})
}
