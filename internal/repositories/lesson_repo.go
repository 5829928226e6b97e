package repositories

import (
	"context"
	"fmt"

	"pkbmadmin/internal/models"
)

type LessonRepository interface {
	List(ctx context.Context, tenantID string) ([]*models.Lesson, error)
	Create(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	Count(ctx context.Context, tenantID string) (int, error)
}

type lessonRepo struct {
	db DBTX
}

func NewLessonRepo(db DBTX) LessonRepository {
	return &lessonRepo{db: db}
}

const lessonColumns = `id, title, content, "subjectId", "tenantId"`

func (r *lessonRepo) List(ctx context.Context, tenantID string) ([]*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM "Lesson" WHERE "tenantId" = $1 ORDER BY title ASC`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lessons := []*models.Lesson{}
	for rows.Next() {
		l := &models.Lesson{}
		if err := rows.Scan(&l.ID, &l.Title, &l.Content, &l.SubjectID, &l.TenantID); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// Create inserts the lesson only when its subject belongs to the same tenant.
// A foreign subject yields ErrNotFound.
func (r *lessonRepo) Create(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	if lesson.ID == "" {
		lesson.ID = newID("lsn_")
	}
	query := `
		INSERT INTO "Lesson" (id, title, content, "subjectId", "tenantId")
		SELECT $1, $2, $3, $4, $5
		WHERE EXISTS (SELECT 1 FROM "Subject" WHERE id = $4 AND "tenantId" = $5)
		RETURNING ` + lessonColumns
	l := &models.Lesson{}
	err := r.db.QueryRow(ctx, query, lesson.ID, lesson.Title, lesson.Content, lesson.SubjectID, lesson.TenantID).
		Scan(&l.ID, &l.Title, &l.Content, &l.SubjectID, &l.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", notFoundIfNoRows(err))
	}
	return l, nil
}

func (r *lessonRepo) Count(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*)::int FROM "Lesson" WHERE "tenantId" = $1`, tenantID).Scan(&count)
	return count, err
}
