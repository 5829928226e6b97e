package services

import (
	"context"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/repositories"
)

type StudentService interface {
	List(ctx context.Context, tenantID string) ([]*models.Student, error)
	Get(ctx context.Context, tenantID, id string) (*models.Student, error)
	// Update writes academic fields and, when FullName is set, the owning user's name and fullName.
	Update(ctx context.Context, tenantID, id string, patch models.StudentPatch) (*models.Student, error)
	// Delete removes the student record; the user account stays.
	Delete(ctx context.Context, tenantID, id string) error
}

type studentService struct {
	store *repositories.Store
}

func NewStudentService(store *repositories.Store) StudentService {
	return &studentService{store: store}
}

func (s *studentService) List(ctx context.Context, tenantID string) ([]*models.Student, error) {
	return s.store.Students.List(ctx, tenantID)
}

func (s *studentService) Get(ctx context.Context, tenantID, id string) (*models.Student, error) {
	return s.store.Students.GetByID(ctx, tenantID, id)
}

func (s *studentService) Update(ctx context.Context, tenantID, id string, patch models.StudentPatch) (*models.Student, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, common.Validation("Status siswa harus AKTIF, NON-AKTIF atau LULUS.")
	}
	if patch.FullName == nil && patch.AcademicEmpty() {
		return nil, repositories.ErrEmptyUpdate
	}

	var updated *models.Student
	err := s.store.WithTx(ctx, func(tx *repositories.Store) error {
		current, err := tx.Students.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if patch.FullName != nil {
			_, err := tx.Users.Update(ctx, tenantID, current.UserID, models.UserPatch{
				Name:     patch.FullName,
				FullName: patch.FullName,
			})
			if err != nil {
				return err
			}
		}
		if !patch.AcademicEmpty() {
			if err := tx.Students.Update(ctx, tenantID, id, patch); err != nil {
				return err
			}
		}
		updated, err = tx.Students.GetByID(ctx, tenantID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *studentService) Delete(ctx context.Context, tenantID, id string) error {
	return s.store.Students.Delete(ctx, tenantID, id)
}
