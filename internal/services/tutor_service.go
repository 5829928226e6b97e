package services

import (
	"context"
	"strings"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/repositories"
)

type CreateTutorRequest struct {
	Name           string
	Email          string
	NUPTK          string
	Specialization string
}

type TutorService interface {
	List(ctx context.Context, tenantID string) ([]*models.Tutor, error)
	// Create inserts a TUTOR user with the default password and its tutor record.
	Create(ctx context.Context, tenantID string, req CreateTutorRequest) (*models.Tutor, error)
	Update(ctx context.Context, tenantID, id string, patch models.TutorPatch) (*models.Tutor, error)
	// Delete removes the tutor record and its user account together.
	Delete(ctx context.Context, tenantID, id string) error
}

type tutorService struct {
	store  *repositories.Store
	hasher *PasswordHasher
}

func NewTutorService(store *repositories.Store, hasher *PasswordHasher) TutorService {
	return &tutorService{store: store, hasher: hasher}
}

func (s *tutorService) List(ctx context.Context, tenantID string) ([]*models.Tutor, error) {
	return s.store.Tutors.List(ctx, tenantID)
}

func (s *tutorService) Create(ctx context.Context, tenantID string, req CreateTutorRequest) (*models.Tutor, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Name == "" {
		return nil, common.Validation("Nama dan email tutor wajib diisi.")
	}

	var created *models.Tutor
	err := s.store.WithTx(ctx, func(tx *repositories.Store) error {
		user, err := tx.Users.Create(ctx, models.NewUser{
			Email:        req.Email,
			Name:         req.Name,
			FullName:     req.Name,
			Role:         models.RoleTutor,
			TenantID:     tenantID,
			PasswordHash: s.hasher.Hash(DefaultPassword),
		})
		if err != nil {
			return err
		}
		id, err := tx.Tutors.Create(ctx, models.NewTutor{
			UserID:         user.ID,
			NUPTK:          common.StringPtr(req.NUPTK),
			FullName:       &req.Name,
			Specialization: common.StringPtr(req.Specialization),
		})
		if err != nil {
			return err
		}
		created, err = tx.Tutors.GetByID(ctx, tenantID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *tutorService) Update(ctx context.Context, tenantID, id string, patch models.TutorPatch) (*models.Tutor, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, common.Validation("Status tutor harus AKTIF, NON-AKTIF atau LULUS.")
	}
	if patch.Empty() {
		return nil, repositories.ErrEmptyUpdate
	}

	var updated *models.Tutor
	err := s.store.WithTx(ctx, func(tx *repositories.Store) error {
		if err := tx.Tutors.Update(ctx, tenantID, id, patch); err != nil {
			return err
		}
		current, err := tx.Tutors.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if patch.FullName != nil && *patch.FullName != "" {
			_, err := tx.Users.Update(ctx, tenantID, current.UserID, models.UserPatch{
				Name:     patch.FullName,
				FullName: patch.FullName,
			})
			if err != nil {
				return err
			}
			current.UserName = patch.FullName
			current.FullName = patch.FullName
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *tutorService) Delete(ctx context.Context, tenantID, id string) error {
	return s.store.WithTx(ctx, func(tx *repositories.Store) error {
		userID, err := tx.Tutors.Delete(ctx, tenantID, id)
		if err != nil {
			return err
		}
		return tx.Users.Delete(ctx, tenantID, userID)
	})
}
