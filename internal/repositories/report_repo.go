package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"pkbmadmin/internal/models"
)

type ReportRepository interface {
	List(ctx context.Context, tenantID string) ([]*models.Report, error)
	Create(ctx context.Context, tenantID, studentID string, data json.RawMessage) (*models.Report, error)
}

type reportRepo struct {
	db DBTX
}

func NewReportRepo(db DBTX) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) List(ctx context.Context, tenantID string) ([]*models.Report, error) {
	query := `
		SELECT r.id, r."studentId", r."tenantId", r.data, r."createdAt", r."updatedAt", u.name
		FROM "Report" r
		JOIN "Student" s ON r."studentId" = s.id
		JOIN "User" u ON s."userId" = u.id
		WHERE r."tenantId" = $1
		ORDER BY r."createdAt" DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []*models.Report{}
	for rows.Next() {
		rep := &models.Report{}
		if err := rows.Scan(&rep.ID, &rep.StudentID, &rep.TenantID, &rep.Data, &rep.CreatedAt, &rep.UpdatedAt, &rep.StudentName); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// Create stores an opaque report payload for a student of the same tenant.
func (r *reportRepo) Create(ctx context.Context, tenantID, studentID string, data json.RawMessage) (*models.Report, error) {
	query := `
		INSERT INTO "Report" (id, "studentId", "tenantId", data, "createdAt", "updatedAt")
		SELECT $1, $2, $3, $4::jsonb, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
		WHERE EXISTS (
			SELECT 1 FROM "Student" s JOIN "User" u ON s."userId" = u.id
			WHERE s.id = $2 AND u."tenantId" = $3
		)
		RETURNING id, "studentId", "tenantId", data, "createdAt", "updatedAt"
	`
	rep := &models.Report{}
	err := r.db.QueryRow(ctx, query, newID("rpt_"), studentID, tenantID, string(data)).
		Scan(&rep.ID, &rep.StudentID, &rep.TenantID, &rep.Data, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", notFoundIfNoRows(err))
	}
	return rep, nil
}
