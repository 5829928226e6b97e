package models

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Settled reports whether s is a terminal status.
func (s PaymentStatus) Settled() bool {
	return s == PaymentPaid || s == PaymentFailed
}

type Payment struct {
	ID          string        `json:"id" db:"id"`
	StudentID   string        `json:"studentId" db:"studentId"`
	Amount      float64       `json:"amount" db:"amount"`
	Type        string        `json:"type" db:"type"`
	Status      PaymentStatus `json:"status" db:"status"`
	PaymentDate *time.Time    `json:"paymentDate" db:"paymentDate"`
	TenantID    string        `json:"tenantId" db:"tenantId"`
	CreatedAt   time.Time     `json:"createdAt" db:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updatedAt"`

	StudentName *string `json:"studentName,omitempty" db:"studentName"`
	NISN        *string `json:"nisn,omitempty" db:"nisn"`
}
