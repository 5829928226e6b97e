package services

import (
	"context"
	"strings"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/repositories"
)

type AcademicService interface {
	ListSubjects(ctx context.Context, tenantID string) ([]*models.Subject, error)
	CreateSubject(ctx context.Context, tenantID, name string) (*models.Subject, error)
	ListLessons(ctx context.Context, tenantID string) ([]*models.Lesson, error)
	CreateLesson(ctx context.Context, tenantID, title string, content *string, subjectID string) (*models.Lesson, error)
	ListExams(ctx context.Context, tenantID string) ([]*models.Exam, error)
}

type academicService struct {
	subjects repositories.SubjectRepository
	lessons  repositories.LessonRepository
	exams    repositories.ExamRepository
}

func NewAcademicService(subjects repositories.SubjectRepository, lessons repositories.LessonRepository, exams repositories.ExamRepository) AcademicService {
	return &academicService{subjects: subjects, lessons: lessons, exams: exams}
}

func (s *academicService) ListSubjects(ctx context.Context, tenantID string) ([]*models.Subject, error) {
	return s.subjects.List(ctx, tenantID)
}

func (s *academicService) CreateSubject(ctx context.Context, tenantID, name string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.Validation("Nama mata pelajaran wajib diisi.")
	}
	return s.subjects.Create(ctx, tenantID, name)
}

func (s *academicService) ListLessons(ctx context.Context, tenantID string) ([]*models.Lesson, error) {
	return s.lessons.List(ctx, tenantID)
}

func (s *academicService) CreateLesson(ctx context.Context, tenantID, title string, content *string, subjectID string) (*models.Lesson, error) {
	title = strings.TrimSpace(title)
	if title == "" || subjectID == "" {
		return nil, common.Validation("Judul materi dan mata pelajaran wajib diisi.")
	}
	return s.lessons.Create(ctx, models.Lesson{
		Title:     title,
		Content:   content,
		SubjectID: subjectID,
		TenantID:  tenantID,
	})
}

func (s *academicService) ListExams(ctx context.Context, tenantID string) ([]*models.Exam, error) {
	return s.exams.List(ctx, tenantID)
}
