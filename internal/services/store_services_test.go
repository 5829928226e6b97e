package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/repositories"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var (
	storeFixedAt = time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	userCols     = []string{"id", "email", "name", "fullName", "role", "tenantId", "createdAt", "updatedAt"}
	studentCols  = []string{"id", "userId", "nisn", "birthPlace", "birthDate", "program", "grade", "major",
		"address", "phoneNumber", "fatherName", "motherName", "parentJob", "parentPhone", "parentAddress",
		"status", "createdAt", "updatedAt", "userName", "userEmail", "fullName", "tenantId"}
	tutorCols = []string{"id", "userId", "nuptk", "specialization", "birthPlace", "birthDate", "address",
		"phoneNumber", "status", "educationHistory", "createdAt", "updatedAt",
		"userName", "userEmail", "fullName", "tenantId"}
)

func ptr(s string) *string { return &s }

func sqlLike(fragment string) string { return regexp.QuoteMeta(fragment) }

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func userRow(id, email, name string, role models.Role) *pgxmock.Rows {
	return pgxmock.NewRows(userCols).
		AddRow(id, email, ptr(name), ptr(name), string(role), testTenant, storeFixedAt, storeFixedAt)
}

func studentRows(id, userID, name string) *pgxmock.Rows {
	none := (*string)(nil)
	return pgxmock.NewRows(studentCols).
		AddRow(id, userID, ptr("0012345678"), none, (*time.Time)(nil), ptr("Paket C"), none, none,
			none, none, none, none, none, none, none,
			"AKTIF", storeFixedAt, storeFixedAt, ptr(name), "budi@example.com", ptr(name), testTenant)
}

func tutorRows(id, userID, name string) *pgxmock.Rows {
	none := (*string)(nil)
	return pgxmock.NewRows(tutorCols).
		AddRow(id, userID, ptr("1234567890123456"), ptr("Matematika"), none, (*time.Time)(nil), none,
			none, "AKTIF", []byte(`[]`), storeFixedAt, storeFixedAt,
			ptr(name), "guru@example.com", ptr(name), testTenant)
}

// StoreServicesTestSuite covers the services that write through transactions.
type StoreServicesTestSuite struct {
	suite.Suite
	mock   pgxmock.PgxPoolIface
	store  *repositories.Store
	hasher *PasswordHasher
	ctx    context.Context
}

func (suite *StoreServicesTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.store = repositories.NewStore(mock)
	suite.hasher = NewPasswordHasher("salt")
	suite.ctx = context.Background()
}

func (suite *StoreServicesTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestStoreServicesTestSuite(t *testing.T) {
	suite.Run(t, new(StoreServicesTestSuite))
}

func (suite *StoreServicesTestSuite) TestUserCreate_SiswaGetsStudentRecord() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(sqlLike(`INSERT INTO "User"`)).
		WithArgs(pgxmock.AnyArg(), "budi@example.com", "Budi", "Budi Santoso", "SISWA", testTenant, suite.hasher.Hash(DefaultPassword)).
		WillReturnRows(userRow("u_1", "budi@example.com", "Budi", models.RoleSiswa))
	suite.mock.ExpectExec(sqlLike(`INSERT INTO "Student"`)).
		WithArgs(pgxmock.AnyArg(), "u_1", ptr("0012345678"), ptr("Paket C"), "AKTIF").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	user, err := NewUserService(suite.store, suite.hasher).Create(suite.ctx, testTenant, CreateUserRequest{
		Email:    " Budi@Example.com",
		Name:     "Budi",
		FullName: "Budi Santoso",
		Role:     models.RoleSiswa,
		NISN:     "0012345678",
		Program:  "Paket C",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "u_1", user.ID)
	assert.Equal(suite.T(), models.RoleSiswa, user.Role)
}

func (suite *StoreServicesTestSuite) TestUserCreate_AdminHasNoExtension() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(sqlLike(`INSERT INTO "User"`)).
		WithArgs(anyArgs(7)...).
		WillReturnRows(userRow("u_2", "ops@example.com", "Ops", models.RoleAdmin))
	suite.mock.ExpectCommit()

	_, err := NewUserService(suite.store, suite.hasher).Create(suite.ctx, testTenant, CreateUserRequest{
		Email: "ops@example.com", Name: "Ops", Role: models.RoleAdmin, Password: "rahasia",
	})
	assert.NoError(suite.T(), err)
}

func (suite *StoreServicesTestSuite) TestUserCreate_ExtensionFailureRollsBack() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(sqlLike(`INSERT INTO "User"`)).
		WithArgs(anyArgs(7)...).
		WillReturnRows(userRow("u_3", "guru@example.com", "Guru", models.RoleTutor))
	suite.mock.ExpectExec(sqlLike(`INSERT INTO "Tutor"`)).
		WithArgs(anyArgs(6)...).
		WillReturnError(assert.AnError)
	suite.mock.ExpectRollback()

	user, err := NewUserService(suite.store, suite.hasher).Create(suite.ctx, testTenant, CreateUserRequest{
		Email: "guru@example.com", Name: "Guru", Role: models.RoleTutor,
	})
	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, assert.AnError)
}

func (suite *StoreServicesTestSuite) TestUserCreate_Validation() {
	service := NewUserService(suite.store, suite.hasher)

	_, err := service.Create(suite.ctx, testTenant, CreateUserRequest{Email: " ", Role: models.RoleAdmin})
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))

	_, err = service.Create(suite.ctx, testTenant, CreateUserRequest{Email: "a@b.c", Role: models.Role("GURU")})
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *StoreServicesTestSuite) TestUserUpdate_HashesPassword() {
	password := "baru123"
	suite.mock.ExpectQuery(sqlLike(`UPDATE "User" SET "password" = $1`)).
		WithArgs(suite.hasher.Hash(password), "u_1", testTenant).
		WillReturnRows(userRow("u_1", "budi@example.com", "Budi", models.RoleSiswa))

	_, err := NewUserService(suite.store, suite.hasher).Update(suite.ctx, testTenant, "u_1", UpdateUserRequest{Password: &password})
	assert.NoError(suite.T(), err)
}

func (suite *StoreServicesTestSuite) TestTutorCreate_FullNameFollowsName() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(sqlLike(`INSERT INTO "User"`)).
		WithArgs(pgxmock.AnyArg(), "guru@example.com", "Siti Aminah", "Siti Aminah", "TUTOR", testTenant, suite.hasher.Hash(DefaultPassword)).
		WillReturnRows(userRow("u_5", "guru@example.com", "Siti Aminah", models.RoleTutor))
	suite.mock.ExpectExec(sqlLike(`INSERT INTO "Tutor"`)).
		WithArgs(pgxmock.AnyArg(), "u_5", ptr("1234567890123456"), ptr("Siti Aminah"), ptr("Matematika"), "AKTIF").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectQuery(sqlLike(`WHERE t.id = $1 AND u."tenantId" = $2`)).
		WithArgs(pgxmock.AnyArg(), testTenant).
		WillReturnRows(tutorRows("t_5", "u_5", "Siti Aminah"))
	suite.mock.ExpectCommit()

	tutor, err := NewTutorService(suite.store, suite.hasher).Create(suite.ctx, testTenant, CreateTutorRequest{
		Name:           " Siti Aminah ",
		Email:          "GURU@example.com",
		NUPTK:          "1234567890123456",
		Specialization: "Matematika",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "t_5", tutor.ID)
	assert.Equal(suite.T(), "Siti Aminah", *tutor.FullName)
}

func (suite *StoreServicesTestSuite) TestTutorCreate_RequiresNameAndEmail() {
	_, err := NewTutorService(suite.store, suite.hasher).Create(suite.ctx, testTenant, CreateTutorRequest{Email: "guru@example.com"})
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *StoreServicesTestSuite) TestTutorDelete_RemovesUser() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(sqlLike(`DELETE FROM "Tutor" WHERE id = $1`)).
		WithArgs("t_5", testTenant).
		WillReturnRows(pgxmock.NewRows([]string{"userId"}).AddRow("u_5"))
	suite.mock.ExpectExec(sqlLike(`DELETE FROM "User" WHERE id = $1 AND "tenantId" = $2`)).
		WithArgs("u_5", testTenant).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := NewTutorService(suite.store, suite.hasher).Delete(suite.ctx, testTenant, "t_5")
	assert.NoError(suite.T(), err)
}

func (suite *StoreServicesTestSuite) TestTutorDelete_OtherTenantIsNotFound() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(sqlLike(`DELETE FROM "Tutor" WHERE id = $1`)).
		WithArgs("t_5", testTenant).
		WillReturnRows(pgxmock.NewRows([]string{"userId"}))
	suite.mock.ExpectRollback()

	err := NewTutorService(suite.store, suite.hasher).Delete(suite.ctx, testTenant, "t_5")
	assert.ErrorIs(suite.T(), err, repositories.ErrNotFound)
}

func (suite *StoreServicesTestSuite) TestStudentUpdate_FullNamePropagatesToUser() {
	name := "Budi Santoso"
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(sqlLike(`WHERE s.id = $1`)).
		WithArgs("s_1", testTenant).
		WillReturnRows(studentRows("s_1", "u_1", "Budi"))
	suite.mock.ExpectQuery(sqlLike(`UPDATE "User" SET "name" = $1, "fullName" = $2`)).
		WithArgs(name, name, "u_1", testTenant).
		WillReturnRows(userRow("u_1", "budi@example.com", name, models.RoleSiswa))
	suite.mock.ExpectQuery(sqlLike(`WHERE s.id = $1`)).
		WithArgs("s_1", testTenant).
		WillReturnRows(studentRows("s_1", "u_1", name))
	suite.mock.ExpectCommit()

	student, err := NewStudentService(suite.store).Update(suite.ctx, testTenant, "s_1", models.StudentPatch{FullName: &name})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), name, *student.FullName)
}

func (suite *StoreServicesTestSuite) TestStudentUpdate_Validation() {
	service := NewStudentService(suite.store)

	_, err := service.Update(suite.ctx, testTenant, "s_1", models.StudentPatch{})
	assert.ErrorIs(suite.T(), err, repositories.ErrEmptyUpdate)

	status := models.StudentStatus("PINDAH")
	_, err = service.Update(suite.ctx, testTenant, "s_1", models.StudentPatch{Status: &status})
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *StoreServicesTestSuite) TestStudentDelete_KeepsUser() {
	suite.mock.ExpectExec(sqlLike(`DELETE FROM "Student" WHERE id = $1`)).
		WithArgs("s_1", testTenant).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(suite.T(), NewStudentService(suite.store).Delete(suite.ctx, testTenant, "s_1"))
}
