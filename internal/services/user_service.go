package services

import (
	"context"
	"fmt"
	"strings"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/repositories"
)

type CreateUserRequest struct {
	Email    string
	Name     string
	FullName string
	Role     models.Role
	Password string
	NISN     string
	Program  string
}

type UpdateUserRequest struct {
	Name     *string
	FullName *string
	Role     *models.Role
	Password *string
}

type UserService interface {
	List(ctx context.Context, tenantID string) ([]*models.User, error)
	// Create inserts the user and, for SISWA and TUTOR, its extension record in one transaction.
	Create(ctx context.Context, tenantID string, req CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, tenantID, id string, req UpdateUserRequest) (*models.User, error)
	UpdateRole(ctx context.Context, tenantID, id string, role models.Role) (*models.User, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type userService struct {
	store  *repositories.Store
	hasher *PasswordHasher
}

func NewUserService(store *repositories.Store, hasher *PasswordHasher) UserService {
	return &userService{store: store, hasher: hasher}
}

func (s *userService) List(ctx context.Context, tenantID string) ([]*models.User, error) {
	return s.store.Users.List(ctx, tenantID)
}

func (s *userService) Create(ctx context.Context, tenantID string, req CreateUserRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return nil, common.Validation(err.Error())
	}
	if !req.Role.Valid() {
		return nil, common.Validation(fmt.Sprintf("Role %q tidak dikenal.", req.Role))
	}
	password := req.Password
	if password == "" {
		password = DefaultPassword
	}

	var created *models.User
	err := s.store.WithTx(ctx, func(tx *repositories.Store) error {
		user, err := tx.Users.Create(ctx, models.NewUser{
			Email:        req.Email,
			Name:         req.Name,
			FullName:     req.FullName,
			Role:         req.Role,
			TenantID:     tenantID,
			PasswordHash: s.hasher.Hash(password),
		})
		if err != nil {
			return err
		}

		switch req.Role {
		case models.RoleSiswa:
			_, err = tx.Students.Create(ctx, models.NewStudent{
				UserID:  user.ID,
				NISN:    common.StringPtr(req.NISN),
				Program: common.StringPtr(req.Program),
			})
		case models.RoleTutor:
			_, err = tx.Tutors.Create(ctx, models.NewTutor{
				UserID:   user.ID,
				FullName: common.StringPtr(req.FullName),
			})
		}
		if err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *userService) Update(ctx context.Context, tenantID, id string, req UpdateUserRequest) (*models.User, error) {
	patch := models.UserPatch{
		Name:     req.Name,
		FullName: req.FullName,
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, common.Validation(fmt.Sprintf("Role %q tidak dikenal.", *req.Role))
		}
		patch.Role = req.Role
	}
	if req.Password != nil && *req.Password != "" {
		hash := s.hasher.Hash(*req.Password)
		patch.PasswordHash = &hash
	}
	return s.store.Users.Update(ctx, tenantID, id, patch)
}

func (s *userService) UpdateRole(ctx context.Context, tenantID, id string, role models.Role) (*models.User, error) {
	return s.Update(ctx, tenantID, id, UpdateUserRequest{Role: &role})
}

func (s *userService) Delete(ctx context.Context, tenantID, id string) error {
	return s.store.Users.Delete(ctx, tenantID, id)
}
