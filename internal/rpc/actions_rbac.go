package rpc

import (
	"strings"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
)

// toggle(role, permissionId, enabled)
func togglePermission(svc Services) Handler {
	return func(c *Call) (any, error) {
		var (
			role    models.Role
			enabled bool
		)
		if err := c.Arg(0, &role); err != nil {
			return nil, err
		}
		if role == "" {
			return nil, common.Validation("Role wajib diisi.")
		}
		permissionID, err := c.RequiredString(1, "Permission")
		if err != nil {
			return nil, err
		}
		if err := c.Arg(2, &enabled); err != nil {
			return nil, err
		}
		return nil, svc.RBAC.TogglePermission(c.Ctx, role, permissionID, enabled)
	}
}

// lookupRole reads a role name for read-only lookups. Unknown names pass
// through unchanged and resolve to the Dashboard-only defaults.
func lookupRole(c *Call, i int) (models.Role, error) {
	var name string
	if err := c.Arg(i, &name); err != nil {
		return "", err
	}
	if role, ok := models.ParseRole(name); ok {
		return role, nil
	}
	return models.Role(strings.ToUpper(strings.TrimSpace(name))), nil
}

func permissionMatrix(svc Services) Handler {
	return func(c *Call) (any, error) {
		return svc.RBAC.GetPermissionMatrix(c.Ctx)
	}
}

func rbacActions(svc Services) map[string]Action {
	return map[string]Action{
		"getPermissionMatrix": {Guard: adminOnly, Handler: permissionMatrix(svc)},
		"togglePermission":    {Guard: adminOnly, Handler: togglePermission(svc)},
		// getPermissionsForRole(role)
		"getPermissionsForRole": {Guard: signedIn, Handler: func(c *Call) (any, error) {
			role, err := lookupRole(c, 0)
			if err != nil {
				return nil, err
			}
			return svc.RBAC.GetPermissionsForRole(c.Ctx, role), nil
		}},
	}
}

func rbacMatrixActions(svc Services) map[string]Action {
	return map[string]Action{
		"getRBACData":          {Guard: adminOnly, Handler: permissionMatrix(svc)},
		"toggleRolePermission": {Guard: adminOnly, Handler: togglePermission(svc)},
	}
}
