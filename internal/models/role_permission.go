package models

// RolePermission is a row of the role/permission join. The pair is the key.
type RolePermission struct {
	Role         Role   `json:"role" db:"role"`
	PermissionID string `json:"permissionId" db:"permissionId"`
}

// PermissionMatrix is everything the RBAC matrix screen needs in one call.
type PermissionMatrix struct {
	Permissions     []*Permission     `json:"permissions"`
	RolePermissions []*RolePermission `json:"rolePermissions"`
	Roles           []Role            `json:"roles"`
}
