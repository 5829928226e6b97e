package rpc

import (
	"context"
	"encoding/json"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/services"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Authenticate(ctx context.Context, email string, password *string, tenantID string) (*models.AuthResult, error) {
	args := m.Called(ctx, email, password, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResult), args.Error(1)
}

type MockDashboardService struct{ mock.Mock }

func (m *MockDashboardService) Stats(ctx context.Context, tenantID string) (*models.DashboardStats, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockDashboardService) Migrate(ctx context.Context) common.MigrateResult {
	args := m.Called(ctx)
	return args.Get(0).(common.MigrateResult)
}

func (m *MockDashboardService) DatabaseSchema(ctx context.Context) (map[string][]models.ColumnInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]models.ColumnInfo), args.Error(1)
}

type MockStudentService struct{ mock.Mock }

func (m *MockStudentService) List(ctx context.Context, tenantID string) ([]*models.Student, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Student), args.Error(1)
}

func (m *MockStudentService) Get(ctx context.Context, tenantID, id string) (*models.Student, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentService) Update(ctx context.Context, tenantID, id string, patch models.StudentPatch) (*models.Student, error) {
	args := m.Called(ctx, tenantID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentService) Delete(ctx context.Context, tenantID, id string) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) List(ctx context.Context, tenantID string) ([]*models.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, tenantID string, req services.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, tenantID, id string, req services.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateRole(ctx context.Context, tenantID, id string, role models.Role) (*models.User, error) {
	args := m.Called(ctx, tenantID, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, tenantID, id string) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type MockFinanceService struct{ mock.Mock }

func (m *MockFinanceService) ListPayments(ctx context.Context, tenantID string) ([]*models.Payment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockFinanceService) CreatePayment(ctx context.Context, tenantID, studentID string, amount float64, paymentType string) (*models.Payment, error) {
	args := m.Called(ctx, tenantID, studentID, amount, paymentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockFinanceService) UpdatePaymentStatus(ctx context.Context, tenantID, id string, status models.PaymentStatus) (*models.Payment, error) {
	args := m.Called(ctx, tenantID, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

type MockRBACService struct{ mock.Mock }

func (m *MockRBACService) GetPermissionsForRole(ctx context.Context, role models.Role) []string {
	return m.Called(ctx, role).Get(0).([]string)
}

func (m *MockRBACService) TogglePermission(ctx context.Context, role models.Role, permissionID string, enabled bool) error {
	return m.Called(ctx, role, permissionID, enabled).Error(0)
}

func (m *MockRBACService) GetPermissionMatrix(ctx context.Context) (*models.PermissionMatrix, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PermissionMatrix), args.Error(1)
}

func rawArgs(values ...any) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			panic(err)
		}
		out = append(out, b)
	}
	return out
}
