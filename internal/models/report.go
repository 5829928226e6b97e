package models

import (
	"encoding/json"
	"time"
)

type Report struct {
	ID        string          `json:"id" db:"id"`
	StudentID string          `json:"studentId" db:"studentId"`
	TenantID  string          `json:"tenantId" db:"tenantId"`
	Data      json.RawMessage `json:"data" db:"data"`
	CreatedAt time.Time       `json:"createdAt" db:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updatedAt"`

	StudentName *string `json:"studentName,omitempty" db:"studentName"`
}
