package services

import (
	"context"
	"errors"
	"fmt"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/repositories"

	"github.com/sirupsen/logrus"
)

// Migrator applies the idempotent schema migration.
type Migrator interface {
	Run(ctx context.Context) error
}

const migrateSuccessMessage = "Database migrated successfully with Student, Tutor, and Payment support."

type DashboardService interface {
	Stats(ctx context.Context, tenantID string) (*models.DashboardStats, error)
	Migrate(ctx context.Context) common.MigrateResult
	DatabaseSchema(ctx context.Context) (map[string][]models.ColumnInfo, error)
}

type dashboardService struct {
	users    repositories.UserRepository
	subjects repositories.SubjectRepository
	lessons  repositories.LessonRepository
	schema   repositories.SchemaRepository
	migrator Migrator
	log      *logrus.Logger
}

func NewDashboardService(store *repositories.Store, migrator Migrator, log *logrus.Logger) DashboardService {
	return &dashboardService{
		users:    store.Users,
		subjects: store.Subjects,
		lessons:  store.Lessons,
		schema:   store.Schema,
		migrator: migrator,
		log:      log,
	}
}

func (s *dashboardService) Stats(ctx context.Context, tenantID string) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error
	if stats.UserCount, err = s.users.Count(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.SubjectCount, err = s.subjects.Count(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("failed to count subjects: %w", err)
	}
	if stats.LessonCount, err = s.lessons.Count(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("failed to count lessons: %w", err)
	}
	return &stats, nil
}

// Migrate never returns an error; the outcome is reported in the result body.
func (s *dashboardService) Migrate(ctx context.Context) common.MigrateResult {
	if err := s.migrator.Run(ctx); err != nil {
		s.log.WithError(err).Error("Migration failed")
		msg := "Migrasi database gagal."
		var stepErr interface{ FailedStep() string }
		if errors.As(err, &stepErr) {
			msg = fmt.Sprintf("Migrasi database gagal pada langkah %q.", stepErr.FailedStep())
		}
		return common.MigrateResult{Success: false, Message: msg}
	}
	return common.MigrateResult{Success: true, Message: migrateSuccessMessage}
}

func (s *dashboardService) DatabaseSchema(ctx context.Context) (map[string][]models.ColumnInfo, error) {
	return s.schema.Describe(ctx)
}
