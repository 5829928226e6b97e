package repositories

import (
	"context"

	"pkbmadmin/internal/models"
)

type PermissionRepository interface {
	List(ctx context.Context) ([]*models.Permission, error)
}

type permissionRepo struct {
	db DBTX
}

func NewPermissionRepo(db DBTX) PermissionRepository {
	return &permissionRepo{db: db}
}

func (r *permissionRepo) List(ctx context.Context) ([]*models.Permission, error) {
	query := `SELECT id, name, description FROM "Permission" ORDER BY id ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	permissions := []*models.Permission{}
	for rows.Next() {
		p := &models.Permission{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}
