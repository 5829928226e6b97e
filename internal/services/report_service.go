package services

import (
	"context"
	"encoding/json"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/repositories"
)

type ReportService interface {
	List(ctx context.Context, tenantID string) ([]*models.Report, error)
	Create(ctx context.Context, tenantID, studentID string, content json.RawMessage) (*models.Report, error)
}

type reportService struct {
	reports repositories.ReportRepository
}

func NewReportService(reports repositories.ReportRepository) ReportService {
	return &reportService{reports: reports}
}

func (s *reportService) List(ctx context.Context, tenantID string) ([]*models.Report, error) {
	return s.reports.List(ctx, tenantID)
}

func (s *reportService) Create(ctx context.Context, tenantID, studentID string, content json.RawMessage) (*models.Report, error) {
	if studentID == "" {
		return nil, common.Validation("Siswa wajib dipilih.")
	}
	if len(content) == 0 {
		content = json.RawMessage("null")
	}
	if !json.Valid(content) {
		return nil, common.Validation("Isi laporan harus berupa JSON yang valid.")
	}
	return s.reports.Create(ctx, tenantID, studentID, content)
}
