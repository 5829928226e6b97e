package services

import (
	"context"
	"encoding/json"

	"pkbmadmin/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context, tenantID string) ([]*models.User, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, tenantID, id string) (*models.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, tenantID, email string) (*models.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user models.NewUser) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, tenantID, id string, patch models.UserPatch) (*models.User, error) {
	args := m.Called(ctx, tenantID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, tenantID string) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, id string, patch models.TenantPatch) (*models.Tenant, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

type MockRolePermissionRepository struct {
	mock.Mock
}

func (m *MockRolePermissionRepository) List(ctx context.Context) ([]*models.RolePermission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RolePermission), args.Error(1)
}

func (m *MockRolePermissionRepository) ListByRole(ctx context.Context, role models.Role) ([]string, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRolePermissionRepository) Add(ctx context.Context, role models.Role, permissionID string) error {
	args := m.Called(ctx, role, permissionID)
	return args.Error(0)
}

func (m *MockRolePermissionRepository) Remove(ctx context.Context, role models.Role, permissionID string) error {
	args := m.Called(ctx, role, permissionID)
	return args.Error(0)
}

type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) List(ctx context.Context) ([]*models.Permission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Permission), args.Error(1)
}

type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) List(ctx context.Context, tenantID string) ([]*models.Subject, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) Create(ctx context.Context, tenantID, name string) (*models.Subject, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) Count(ctx context.Context, tenantID string) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) List(ctx context.Context, tenantID string) ([]*models.Lesson, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) Create(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	args := m.Called(ctx, lesson)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) Count(ctx context.Context, tenantID string) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) List(ctx context.Context, tenantID string) ([]*models.Exam, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.Exam), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) List(ctx context.Context, tenantID string) ([]*models.Payment, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Settle(ctx context.Context, tenantID, id string, status models.PaymentStatus) (*models.Payment, error) {
	args := m.Called(ctx, tenantID, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) List(ctx context.Context, tenantID string) ([]*models.Report, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.Report), args.Error(1)
}

func (m *MockReportRepository) Create(ctx context.Context, tenantID, studentID string, data json.RawMessage) (*models.Report, error) {
	args := m.Called(ctx, tenantID, studentID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

type MockLoginLimiter struct {
	mock.Mock
}

func (m *MockLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginLimiter) RecordFailure(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockLoginLimiter) Reset(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockLogoStore struct {
	mock.Mock
}

func (m *MockLogoStore) PutLogo(ctx context.Context, tenantID, filename, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, tenantID, filename, contentType, data)
	return args.String(0), args.Error(1)
}

type MockRBACService struct {
	mock.Mock
}

func (m *MockRBACService) GetPermissionsForRole(ctx context.Context, role models.Role) []string {
	args := m.Called(ctx, role)
	return args.Get(0).([]string)
}

func (m *MockRBACService) TogglePermission(ctx context.Context, role models.Role, permissionID string, enabled bool) error {
	args := m.Called(ctx, role, permissionID, enabled)
	return args.Error(0)
}

func (m *MockRBACService) GetPermissionMatrix(ctx context.Context) (*models.PermissionMatrix, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PermissionMatrix), args.Error(1)
}

type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Run(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
