package repositories

import (
	"context"

	"pkbmadmin/internal/models"
)

type ExamRepository interface {
	List(ctx context.Context, tenantID string) ([]*models.Exam, error)
}

type examRepo struct {
	db DBTX
}

func NewExamRepo(db DBTX) ExamRepository {
	return &examRepo{db: db}
}

func (r *examRepo) List(ctx context.Context, tenantID string) ([]*models.Exam, error) {
	query := `SELECT id, title, "tenantId" FROM "Exam" WHERE "tenantId" = $1 ORDER BY title ASC`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exams := []*models.Exam{}
	for rows.Next() {
		e := &models.Exam{}
		if err := rows.Scan(&e.ID, &e.Title, &e.TenantID); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}
