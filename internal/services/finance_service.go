package services

import (
	"context"
	"math"
	"strings"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/repositories"
)

type FinanceService interface {
	ListPayments(ctx context.Context, tenantID string) ([]*models.Payment, error)
	CreatePayment(ctx context.Context, tenantID, studentID string, amount float64, paymentType string) (*models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, tenantID, id string, status models.PaymentStatus) (*models.Payment, error)
}

type financeService struct {
	payments repositories.PaymentRepository
}

func NewFinanceService(payments repositories.PaymentRepository) FinanceService {
	return &financeService{payments: payments}
}

func (s *financeService) ListPayments(ctx context.Context, tenantID string) ([]*models.Payment, error) {
	return s.payments.List(ctx, tenantID)
}

func (s *financeService) CreatePayment(ctx context.Context, tenantID, studentID string, amount float64, paymentType string) (*models.Payment, error) {
	paymentType = strings.TrimSpace(paymentType)
	if studentID == "" || paymentType == "" {
		return nil, common.Validation("Siswa dan jenis pembayaran wajib diisi.")
	}
	// DECIMAL(10,2): round to cents before the range check so sub-cent amounts are rejected.
	amount = math.Round(amount*100) / 100
	if amount <= 0 || amount >= 1e8 {
		return nil, common.Validation("Nominal pembayaran tidak valid.")
	}
	return s.payments.Create(ctx, models.Payment{
		StudentID: studentID,
		Amount:    amount,
		Type:      paymentType,
		TenantID:  tenantID,
	})
}

// UpdatePaymentStatus settles a pending payment. Only PAID and FAILED are accepted targets.
func (s *financeService) UpdatePaymentStatus(ctx context.Context, tenantID, id string, status models.PaymentStatus) (*models.Payment, error) {
	if !status.Settled() {
		return nil, common.Validation("Status pembayaran harus PAID atau FAILED.")
	}
	return s.payments.Settle(ctx, tenantID, id, status)
}
