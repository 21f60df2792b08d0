package rbac_test

import (
	"testing"

	"github.com/ibrahim77gh/salary-portal-backend/internal/domain"
	"github.com/ibrahim77gh/salary-portal-backend/internal/rbac"
	"github.com/ibrahim77gh/salary-portal-backend/internal/rbac/infra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRBACService_Enforce(t *testing.T) {
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)
	svc := rbac.NewService(enforcer)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"user reads own notifications", "user", "notification", "read", true},
		{"empty role falls back to user", "", "upload_log", "read", true},
		{"user cannot upload payroll", "user", "payroll_upload", "create", false},
		{"user cannot read employees", "", "employee", "read", false},
		{"hr uploads payroll", "hr", "payroll_upload", "create", true},
		{"hr wildcard action on slips", "hr", "salary_slip", "disburse", true},
		{"hr inherits user permissions", "hr", "notification", "update", true},
		{"admin wildcard", "admin", "column_mapping", "delete", true},
		{"unknown role", "auditor", "employee", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				UserID:   "user-1",
				Role:     tc.role,
				Resource: tc.resource,
				Action:   tc.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
