package repositories

import (
	"context"
	"fmt"

	"pkbmadmin/internal/models"
)

// RolePermissionRepository manages the global role to permission assignment rows.
type RolePermissionRepository interface {
	List(ctx context.Context) ([]*models.RolePermission, error)
	ListByRole(ctx context.Context, role models.Role) ([]string, error)
	Add(ctx context.Context, role models.Role, permissionID string) error
	Remove(ctx context.Context, role models.Role, permissionID string) error
}

type rolePermissionRepo struct {
	db DBTX
}

func NewRolePermissionRepo(db DBTX) RolePermissionRepository {
	return &rolePermissionRepo{db: db}
}

func (r *rolePermissionRepo) List(ctx context.Context) ([]*models.RolePermission, error) {
	query := `SELECT role::text, "permissionId" FROM "RolePermission" ORDER BY role, "permissionId"`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rolePermissions := []*models.RolePermission{}
	for rows.Next() {
		rp := &models.RolePermission{}
		if err := rows.Scan(&rp.Role, &rp.PermissionID); err != nil {
			return nil, err
		}
		rolePermissions = append(rolePermissions, rp)
	}
	return rolePermissions, rows.Err()
}

// ListByRole returns the permission ids assigned to role, ordered by id.
func (r *rolePermissionRepo) ListByRole(ctx context.Context, role models.Role) ([]string, error) {
	query := `SELECT "permissionId" FROM "RolePermission" WHERE role::text = $1 ORDER BY "permissionId"`
	rows, err := r.db.Query(ctx, query, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		permissions = append(permissions, id)
	}
	return permissions, rows.Err()
}

func (r *rolePermissionRepo) Add(ctx context.Context, role models.Role, permissionID string) error {
	query := `
		INSERT INTO "RolePermission" (role, "permissionId")
		VALUES ($1::"Role", $2)
		ON CONFLICT (role, "permissionId") DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, string(role), permissionID); err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	return nil
}

func (r *rolePermissionRepo) Remove(ctx context.Context, role models.Role, permissionID string) error {
	query := `DELETE FROM "RolePermission" WHERE role::text = $1 AND "permissionId" = $2`
	if _, err := r.db.Exec(ctx, query, string(role), permissionID); err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	return nil
}
