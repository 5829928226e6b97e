package repositories

import (
	"context"
	"fmt"

	"pkbmadmin/internal/models"
)

type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id string, patch models.TenantPatch) (*models.Tenant, error)
}

type tenantRepo struct {
	db DBTX
}

func NewTenantRepo(db DBTX) TenantRepository {
	return &tenantRepo{db: db}
}

const tenantColumns = `id, name, npsn, address, "foundationName", "principalName", "logoUrl", "createdAt", "updatedAt"`

func scanTenant(row interface{ Scan(...any) error }) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := row.Scan(&tenant.ID, &tenant.Name, &tenant.NPSN, &tenant.Address, &tenant.FoundationName,
		&tenant.PrincipalName, &tenant.LogoURL, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM "Tenant" WHERE id = $1`
	tenant, err := scanTenant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return tenant, nil
}

func (r *tenantRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM "Tenant" WHERE id = $1)`
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Update changes the caller's own tenant profile; the id is the tenant predicate.
func (r *tenantRepo) Update(ctx context.Context, id string, patch models.TenantPatch) (*models.Tenant, error) {
	u := newScopedUpdate("Tenant", "")
	setOpt(u, "name", patch.Name)
	setOpt(u, "npsn", patch.NPSN)
	setOpt(u, "address", patch.Address)
	setOpt(u, "foundationName", patch.FoundationName)
	setOpt(u, "principalName", patch.PrincipalName)
	setOpt(u, "logoUrl", patch.LogoURL)
	if u.empty() {
		return nil, ErrEmptyUpdate
	}
	query, args := u.build(id, id, tenantColumns)
	tenant, err := scanTenant(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", notFoundIfNoRows(err))
	}
	return tenant, nil
}
