package services

import (
	"context"
	"fmt"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/repositories"

	"github.com/sirupsen/logrus"
)

// DefaultPermissions returns the built-in menu set for role, used whenever the
// RolePermission table has nothing for it.
func DefaultPermissions(role models.Role) []string {
	switch role {
	case models.RoleAdmin:
		return []string{
			models.PermDashboard, models.PermDataSiswa, models.PermDataTutor, models.PermMataPelajaran,
			models.PermUjianTugas, models.PermLaporan, models.PermProfilPKBM, models.PermUserManagement,
		}
	case models.RoleTutor:
		return []string{
			models.PermDashboard, models.PermDataSiswa, models.PermDataTutor, models.PermMataPelajaran,
			models.PermUjianTugas,
		}
	default:
		return []string{models.PermDashboard}
	}
}

type RBACService interface {
	GetPermissionsForRole(ctx context.Context, role models.Role) []string
	TogglePermission(ctx context.Context, role models.Role, permissionID string, enabled bool) error
	GetPermissionMatrix(ctx context.Context) (*models.PermissionMatrix, error)
}

type rbacService struct {
	rolePermissionRepo repositories.RolePermissionRepository
	permissionRepo     repositories.PermissionRepository
	log                *logrus.Logger
}

func NewRBACService(rolePermissionRepo repositories.RolePermissionRepository, permissionRepo repositories.PermissionRepository, log *logrus.Logger) RBACService {
	return &rbacService{
		rolePermissionRepo: rolePermissionRepo,
		permissionRepo:     permissionRepo,
		log:                log,
	}
}

// GetPermissionsForRole never fails: an empty assignment or a storage error both
// resolve to the default matrix.
func (s *rbacService) GetPermissionsForRole(ctx context.Context, role models.Role) []string {
	perms, err := s.rolePermissionRepo.ListByRole(ctx, role)
	if err != nil {
		s.log.WithError(err).WithField("role", role).Warn("Fallback permissions used")
		return DefaultPermissions(role)
	}
	if len(perms) == 0 {
		return DefaultPermissions(role)
	}
	return perms
}

func (s *rbacService) TogglePermission(ctx context.Context, role models.Role, permissionID string, enabled bool) error {
	if !role.Valid() {
		return common.Validation(fmt.Sprintf("Role %q tidak dikenal.", role))
	}
	if err := common.ValidateRequiredString(permissionID, "permissionId"); err != nil {
		return common.Validation(err.Error())
	}
	if enabled {
		return s.rolePermissionRepo.Add(ctx, role, permissionID)
	}
	return s.rolePermissionRepo.Remove(ctx, role, permissionID)
}

func (s *rbacService) GetPermissionMatrix(ctx context.Context) (*models.PermissionMatrix, error) {
	permissions, err := s.permissionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	rolePermissions, err := s.rolePermissionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	return &models.PermissionMatrix{
		Permissions:     permissions,
		RolePermissions: rolePermissions,
		Roles:           models.AllRoles,
	}, nil
}
