package services

import (
	"context"
	"testing"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AcademicServiceTestSuite struct {
	suite.Suite
	subjects *MockSubjectRepository
	lessons  *MockLessonRepository
	exams    *MockExamRepository
	service  AcademicService
	ctx      context.Context
}

func (suite *AcademicServiceTestSuite) SetupTest() {
	suite.subjects = new(MockSubjectRepository)
	suite.lessons = new(MockLessonRepository)
	suite.exams = new(MockExamRepository)
	suite.service = NewAcademicService(suite.subjects, suite.lessons, suite.exams)
	suite.ctx = context.Background()
}

func (suite *AcademicServiceTestSuite) TearDownTest() {
	suite.subjects.AssertExpectations(suite.T())
	suite.lessons.AssertExpectations(suite.T())
	suite.exams.AssertExpectations(suite.T())
}

func TestAcademicServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AcademicServiceTestSuite))
}

func (suite *AcademicServiceTestSuite) TestCreateSubject_TrimsName() {
	suite.subjects.On("Create", suite.ctx, testTenant, "Matematika").
		Return(&models.Subject{ID: "sub_1", Name: "Matematika", TenantID: testTenant}, nil)

	subject, err := suite.service.CreateSubject(suite.ctx, testTenant, "  Matematika ")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "sub_1", subject.ID)
}

func (suite *AcademicServiceTestSuite) TestCreateSubject_RequiresName() {
	_, err := suite.service.CreateSubject(suite.ctx, testTenant, " ")
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *AcademicServiceTestSuite) TestCreateLesson() {
	content := "Pecahan dan desimal"
	lesson := models.Lesson{Title: "Bab 1", Content: &content, SubjectID: "sub_1", TenantID: testTenant}
	created := lesson
	created.ID = "l_1"
	suite.lessons.On("Create", suite.ctx, lesson).Return(&created, nil)

	got, err := suite.service.CreateLesson(suite.ctx, testTenant, "Bab 1", &content, "sub_1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "l_1", got.ID)
}

func (suite *AcademicServiceTestSuite) TestCreateLesson_Validation() {
	_, err := suite.service.CreateLesson(suite.ctx, testTenant, "", nil, "sub_1")
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))

	_, err = suite.service.CreateLesson(suite.ctx, testTenant, "Bab 1", nil, "")
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *AcademicServiceTestSuite) TestListsAreTenantScoped() {
	suite.subjects.On("List", suite.ctx, testTenant).Return([]*models.Subject{{ID: "sub_1"}}, nil)
	suite.lessons.On("List", suite.ctx, testTenant).Return([]*models.Lesson{}, nil)
	suite.exams.On("List", suite.ctx, testTenant).Return([]*models.Exam{{ID: "e_1"}}, nil)

	subjects, err := suite.service.ListSubjects(suite.ctx, testTenant)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), subjects, 1)

	lessons, err := suite.service.ListLessons(suite.ctx, testTenant)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), lessons)

	exams, err := suite.service.ListExams(suite.ctx, testTenant)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), exams, 1)
}
