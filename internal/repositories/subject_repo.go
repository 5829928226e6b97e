package repositories

import (
	"context"
	"fmt"

	"pkbmadmin/internal/models"
)

type SubjectRepository interface {
	List(ctx context.Context, tenantID string) ([]*models.Subject, error)
	Create(ctx context.Context, tenantID, name string) (*models.Subject, error)
	Count(ctx context.Context, tenantID string) (int, error)
}

type subjectRepo struct {
	db DBTX
}

func NewSubjectRepo(db DBTX) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) List(ctx context.Context, tenantID string) ([]*models.Subject, error) {
	query := `SELECT id, name, "tenantId" FROM "Subject" WHERE "tenantId" = $1 ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []*models.Subject{}
	for rows.Next() {
		s := &models.Subject{}
		if err := rows.Scan(&s.ID, &s.Name, &s.TenantID); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *subjectRepo) Create(ctx context.Context, tenantID, name string) (*models.Subject, error) {
	query := `INSERT INTO "Subject" (id, name, "tenantId") VALUES ($1, $2, $3) RETURNING id, name, "tenantId"`
	s := &models.Subject{}
	err := r.db.QueryRow(ctx, query, newID("subj_"), name, tenantID).Scan(&s.ID, &s.Name, &s.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}
	return s, nil
}

func (r *subjectRepo) Count(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*)::int FROM "Subject" WHERE "tenantId" = $1`, tenantID).Scan(&count)
	return count, err
}
