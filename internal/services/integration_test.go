//go:build integration

package services

import (
	"context"
	"testing"
	"time"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/observability"
	"pkbmadmin/internal/repositories"
	"pkbmadmin/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const otherTenant = "pkbm-lain"

type IntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	store     *repositories.Store
	hasher    *PasswordHasher
	rbac      RBACService
	ctx       context.Context
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (suite *IntegrationTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	log := observability.NewNopLogger()

	container, err := postgres.Run(suite.ctx, "postgres:16-alpine",
		postgres.WithDatabase("pkbm_test"),
		postgres.WithUsername("pkbm"),
		postgres.WithPassword("pkbm_test_password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		suite.T().Skipf("postgres container unavailable: %v", err)
	}
	suite.container = container

	dsn, err := container.ConnectionString(suite.ctx, "sslmode=disable")
	require.NoError(suite.T(), err)
	suite.pool, err = database.NewPool(suite.ctx, dsn, log)
	require.NoError(suite.T(), err)

	suite.hasher = NewPasswordHasher("integration-salt")
	migrator := database.NewMigrator(suite.pool, suite.hasher.Hash, log, observability.NewMetrics())
	require.NoError(suite.T(), migrator.Run(suite.ctx))

	_, err = suite.pool.Exec(suite.ctx, `INSERT INTO "Tenant" (id, name) VALUES ($1, 'PKBM Lain')`, otherTenant)
	require.NoError(suite.T(), err)

	suite.store = repositories.NewStore(suite.pool)
	suite.rbac = NewRBACService(suite.store.RolePermissions, suite.store.Permissions, log)
}

func (suite *IntegrationTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := suite.container.Terminate(ctx); err != nil {
			suite.T().Logf("failed to terminate container: %v", err)
		}
	}
}

func (suite *IntegrationTestSuite) auth() AuthService {
	return NewAuthService(suite.store.Users, suite.store.Tenants, suite.rbac, suite.hasher,
		NewSessionService("integration-secret", time.Hour), nil,
		AuthOptions{DefaultTenantID: testTenant}, observability.NewNopLogger())
}

func (suite *IntegrationTestSuite) rowCounts() map[string]int {
	counts := map[string]int{}
	for _, table := range []string{"Tenant", "User", "Tutor", "Permission", "RolePermission"} {
		var n int
		err := suite.pool.QueryRow(suite.ctx, `SELECT COUNT(*) FROM "`+table+`"`).Scan(&n)
		require.NoError(suite.T(), err)
		counts[table] = n
	}
	return counts
}

func (suite *IntegrationTestSuite) TestMigrationIsRepeatable() {
	before := suite.rowCounts()
	require.Positive(suite.T(), before["Tenant"])
	require.Positive(suite.T(), before["User"])
	require.Positive(suite.T(), before["Tutor"])
	require.Positive(suite.T(), before["Permission"])

	migrator := database.NewMigrator(suite.pool, suite.hasher.Hash, observability.NewNopLogger(), observability.NewMetrics())
	require.NoError(suite.T(), migrator.Run(suite.ctx))
	assert.Equal(suite.T(), before, suite.rowCounts())

	tables, err := suite.store.Schema.Describe(suite.ctx)
	require.NoError(suite.T(), err)
	for _, table := range []string{"User", "Student", "Tutor", "Payment", "RolePermission"} {
		assert.Contains(suite.T(), tables, table)
	}
}

func (suite *IntegrationTestSuite) TestSeededAdminCanLogIn() {
	password := DefaultPassword
	result, err := suite.auth().Authenticate(suite.ctx, "admin@penahikmah.com", &password, "")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleAdmin, result.User.Role)
	assert.Equal(suite.T(), testTenant, result.User.TenantID)
}

func (suite *IntegrationTestSuite) TestUnknownEmail() {
	password := DefaultPassword
	_, err := suite.auth().Authenticate(suite.ctx, "nobody@example.com", &password, testTenant)
	assert.ErrorIs(suite.T(), err, common.NotFound("User tidak ditemukan."))
}

func (suite *IntegrationTestSuite) TestRolePermissionsFallbackThenVerbatim() {
	assert.Equal(suite.T(), DefaultPermissions(models.RoleSiswa), suite.rbac.GetPermissionsForRole(suite.ctx, models.RoleSiswa))

	require.NoError(suite.T(), suite.rbac.TogglePermission(suite.ctx, models.RoleSiswa, models.PermLaporan, true))
	assert.Equal(suite.T(), []string{models.PermLaporan}, suite.rbac.GetPermissionsForRole(suite.ctx, models.RoleSiswa))

	require.NoError(suite.T(), suite.rbac.TogglePermission(suite.ctx, models.RoleSiswa, models.PermDashboard, true))
	assert.Equal(suite.T(), []string{models.PermDashboard, models.PermLaporan}, suite.rbac.GetPermissionsForRole(suite.ctx, models.RoleSiswa))

	require.NoError(suite.T(), suite.rbac.TogglePermission(suite.ctx, models.RoleSiswa, models.PermLaporan, false))
	require.NoError(suite.T(), suite.rbac.TogglePermission(suite.ctx, models.RoleSiswa, models.PermDashboard, false))
	assert.Equal(suite.T(), DefaultPermissions(models.RoleSiswa), suite.rbac.GetPermissionsForRole(suite.ctx, models.RoleSiswa))
}

func (suite *IntegrationTestSuite) TestTutorRoundTrip() {
	tutors := NewTutorService(suite.store, suite.hasher)

	created, err := tutors.Create(suite.ctx, testTenant, CreateTutorRequest{Name: "Siti Aminah", Email: "siti@example.com"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Siti Aminah", *created.FullName)

	renamed := "Siti Aminah, S.Pd"
	updated, err := tutors.Update(suite.ctx, testTenant, created.ID, models.TutorPatch{FullName: &renamed})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), renamed, *updated.UserName)

	_, err = tutors.Update(suite.ctx, otherTenant, created.ID, models.TutorPatch{FullName: &renamed})
	assert.ErrorIs(suite.T(), err, repositories.ErrNotFound)

	require.NoError(suite.T(), tutors.Delete(suite.ctx, testTenant, created.ID))
	_, err = suite.store.Users.GetByEmail(suite.ctx, testTenant, "siti@example.com")
	assert.ErrorIs(suite.T(), err, repositories.ErrNotFound)
}

func (suite *IntegrationTestSuite) TestSiswaUserPaymentLifecycle() {
	user, err := NewUserService(suite.store, suite.hasher).Create(suite.ctx, testTenant, CreateUserRequest{
		Email: "rina@example.com", Name: "Rina", FullName: "Rina Wati", Role: models.RoleSiswa, NISN: "0099887766",
	})
	require.NoError(suite.T(), err)

	students, err := suite.store.Students.List(suite.ctx, testTenant)
	require.NoError(suite.T(), err)
	var studentID string
	for _, s := range students {
		if s.UserID == user.ID {
			studentID = s.ID
		}
	}
	require.NotEmpty(suite.T(), studentID)

	_, err = NewStudentService(suite.store).Get(suite.ctx, otherTenant, studentID)
	assert.ErrorIs(suite.T(), err, repositories.ErrNotFound)

	finance := NewFinanceService(suite.store.Payments)
	payment, err := finance.CreatePayment(suite.ctx, testTenant, studentID, 250000, "SPP")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PaymentPending, payment.Status)

	paid, err := finance.UpdatePaymentStatus(suite.ctx, testTenant, payment.ID, models.PaymentPaid)
	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), paid.PaymentDate)

	_, err = finance.UpdatePaymentStatus(suite.ctx, testTenant, payment.ID, models.PaymentFailed)
	assert.ErrorIs(suite.T(), err, repositories.ErrPaymentSettled)

	_, err = finance.UpdatePaymentStatus(suite.ctx, otherTenant, payment.ID, models.PaymentPaid)
	assert.ErrorIs(suite.T(), err, repositories.ErrNotFound)

	others, err := finance.ListPayments(suite.ctx, otherTenant)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), others)
}
