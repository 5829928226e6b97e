package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type EducationEntry struct {
	Institution string `json:"institution"`
	Major       string `json:"major"`
	Year        string `json:"year"`
	Degree      string `json:"degree"`
}

// EducationHistory is stored as a JSONB array, oldest entry first.
type EducationHistory []EducationEntry

func (h *EducationHistory) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*h = EducationHistory{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into EducationHistory", src)
	}
	if len(raw) == 0 {
		*h = EducationHistory{}
		return nil
	}
	return json.Unmarshal(raw, (*[]EducationEntry)(h))
}

func (h EducationHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]EducationEntry(h))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Tutor is the tutor extension record joined with its owning user.
type Tutor struct {
	ID               string           `json:"id" db:"id"`
	UserID           string           `json:"userId" db:"userId"`
	NUPTK            *string          `json:"nuptk" db:"nuptk"`
	Specialization   *string          `json:"specialization" db:"specialization"`
	BirthPlace       *string          `json:"birthPlace" db:"birthPlace"`
	BirthDate        *time.Time       `json:"birthDate" db:"birthDate"`
	Address          *string          `json:"address" db:"address"`
	PhoneNumber      *string          `json:"phoneNumber" db:"phoneNumber"`
	Status           string           `json:"status" db:"status"`
	EducationHistory EducationHistory `json:"educationHistory" db:"educationHistory"`
	CreatedAt        time.Time        `json:"createdAt" db:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updatedAt"`

	UserName  *string `json:"userName" db:"userName"`
	UserEmail string  `json:"userEmail" db:"userEmail"`
	FullName  *string `json:"fullName" db:"fullName"`
	TenantID  string  `json:"tenantId" db:"tenantId"`
}

type NewTutor struct {
	ID             string
	UserID         string
	NUPTK          *string
	FullName       *string
	Specialization *string
}

type TutorPatch struct {
	NUPTK            *string           `json:"nuptk"`
	Specialization   *string           `json:"specialization"`
	BirthPlace       *string           `json:"birthPlace"`
	BirthDate        *Date             `json:"birthDate"`
	Address          *string           `json:"address"`
	PhoneNumber      *string           `json:"phoneNumber"`
	Status           *StudentStatus    `json:"status"`
	FullName         *string           `json:"fullName"`
	EducationHistory *EducationHistory `json:"educationHistory"`
}

func (p TutorPatch) Empty() bool {
	return p.NUPTK == nil && p.Specialization == nil && p.BirthPlace == nil && p.BirthDate == nil &&
		p.Address == nil && p.PhoneNumber == nil && p.Status == nil && p.FullName == nil &&
		p.EducationHistory == nil
}
