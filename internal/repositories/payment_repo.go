package repositories

import (
	"context"
	"errors"
	"fmt"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
)

// ErrPaymentSettled is returned when a PAID or FAILED payment is asked to change status again.
var ErrPaymentSettled = common.Conflict("Status pembayaran sudah final dan tidak dapat diubah.", nil)

type PaymentRepository interface {
	List(ctx context.Context, tenantID string) ([]*models.Payment, error)
	Create(ctx context.Context, payment models.Payment) (*models.Payment, error)
	Settle(ctx context.Context, tenantID, id string, status models.PaymentStatus) (*models.Payment, error)
}

type paymentRepo struct {
	db DBTX
}

func NewPaymentRepo(db DBTX) PaymentRepository {
	return &paymentRepo{db: db}
}

const paymentColumns = `id, "studentId", amount::float8, type, status, "paymentDate", "tenantId", "createdAt", "updatedAt"`

func scanPayment(row interface{ Scan(...any) error }, extra ...any) (*models.Payment, error) {
	p := &models.Payment{}
	dest := append([]any{&p.ID, &p.StudentID, &p.Amount, &p.Type, &p.Status, &p.PaymentDate,
		&p.TenantID, &p.CreatedAt, &p.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepo) List(ctx context.Context, tenantID string) ([]*models.Payment, error) {
	query := `
		SELECT p.id, p."studentId", p.amount::float8, p.type, p.status, p."paymentDate", p."tenantId",
			p."createdAt", p."updatedAt", u.name, s.nisn
		FROM "Payment" p
		JOIN "Student" s ON p."studentId" = s.id
		JOIN "User" u ON s."userId" = u.id
		WHERE p."tenantId" = $1
		ORDER BY p."createdAt" DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		var studentName, nisn *string
		p, err := scanPayment(rows, &studentName, &nisn)
		if err != nil {
			return nil, err
		}
		p.StudentName, p.NISN = studentName, nisn
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Create records a PENDING payment for a student of the same tenant. A foreign
// student yields ErrNotFound.
func (r *paymentRepo) Create(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	if payment.ID == "" {
		payment.ID = newID("pay_")
	}
	query := `
		INSERT INTO "Payment" (id, "studentId", amount, type, status, "tenantId", "createdAt", "updatedAt")
		SELECT $1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
		WHERE EXISTS (
			SELECT 1 FROM "Student" s JOIN "User" u ON s."userId" = u.id
			WHERE s.id = $2 AND u."tenantId" = $6
		)
		RETURNING ` + paymentColumns
	p, err := scanPayment(r.db.QueryRow(ctx, query, payment.ID, payment.StudentID, payment.Amount, payment.Type,
		string(models.PaymentPending), payment.TenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", notFoundIfNoRows(err))
	}
	return p, nil
}

// Settle moves a PENDING payment to PAID or FAILED and stamps paymentDate. The
// transition is one-way: settled payments return ErrPaymentSettled.
func (r *paymentRepo) Settle(ctx context.Context, tenantID, id string, status models.PaymentStatus) (*models.Payment, error) {
	query := `
		UPDATE "Payment"
		SET status = $1, "paymentDate" = CURRENT_TIMESTAMP, "updatedAt" = CURRENT_TIMESTAMP
		WHERE id = $2 AND "tenantId" = $3 AND status = $4
		RETURNING ` + paymentColumns
	p, err := scanPayment(r.db.QueryRow(ctx, query, string(status), id, tenantID, string(models.PaymentPending)))
	if err == nil {
		return p, nil
	}
	if err = notFoundIfNoRows(err); !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	var current string
	err = r.db.QueryRow(ctx, `SELECT status FROM "Payment" WHERE id = $1 AND "tenantId" = $2`, id, tenantID).Scan(&current)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return nil, ErrPaymentSettled
}
