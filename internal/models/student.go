package models

import "time"

type StudentStatus string

const (
	StudentActive    StudentStatus = "AKTIF"
	StudentInactive  StudentStatus = "NON-AKTIF"
	StudentGraduated StudentStatus = "LULUS"
)

func (s StudentStatus) Valid() bool {
	return s == StudentActive || s == StudentInactive || s == StudentGraduated
}

// Student is the student extension record joined with its owning user.
type Student struct {
	ID            string     `json:"id" db:"id"`
	UserID        string     `json:"userId" db:"userId"`
	NISN          *string    `json:"nisn" db:"nisn"`
	BirthPlace    *string    `json:"birthPlace" db:"birthPlace"`
	BirthDate     *time.Time `json:"birthDate" db:"birthDate"`
	Program       *string    `json:"program" db:"program"`
	Grade         *string    `json:"grade" db:"grade"`
	Major         *string    `json:"major" db:"major"`
	Address       *string    `json:"address" db:"address"`
	PhoneNumber   *string    `json:"phoneNumber" db:"phoneNumber"`
	FatherName    *string    `json:"fatherName" db:"fatherName"`
	MotherName    *string    `json:"motherName" db:"motherName"`
	ParentJob     *string    `json:"parentJob" db:"parentJob"`
	ParentPhone   *string    `json:"parentPhone" db:"parentPhone"`
	ParentAddress *string    `json:"parentAddress" db:"parentAddress"`
	Status        string     `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"createdAt" db:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updatedAt"`

	// From the owning user.
	UserName  *string `json:"userName" db:"userName"`
	UserEmail string  `json:"userEmail" db:"userEmail"`
	FullName  *string `json:"fullName" db:"fullName"`
	TenantID  string  `json:"tenantId" db:"tenantId"`
}

type NewStudent struct {
	ID      string
	UserID  string
	NISN    *string
	Program *string
}

// StudentPatch holds the academic fields of a student. FullName is stored on the user.
type StudentPatch struct {
	NISN          *string        `json:"nisn"`
	FullName      *string        `json:"fullName"`
	BirthPlace    *string        `json:"birthPlace"`
	BirthDate     *Date          `json:"birthDate"`
	Program       *string        `json:"program"`
	Grade         *string        `json:"grade"`
	Major         *string        `json:"major"`
	Address       *string        `json:"address"`
	PhoneNumber   *string        `json:"phoneNumber"`
	Status        *StudentStatus `json:"status"`
	FatherName    *string        `json:"fatherName"`
	MotherName    *string        `json:"motherName"`
	ParentJob     *string        `json:"parentJob"`
	ParentPhone   *string        `json:"parentPhone"`
	ParentAddress *string        `json:"parentAddress"`
}

// AcademicEmpty reports whether no Student-table column is set.
func (p StudentPatch) AcademicEmpty() bool {
	return p.NISN == nil && p.BirthPlace == nil && p.BirthDate == nil && p.Program == nil &&
		p.Grade == nil && p.Major == nil && p.Address == nil && p.PhoneNumber == nil &&
		p.Status == nil && p.FatherName == nil && p.MotherName == nil && p.ParentJob == nil &&
		p.ParentPhone == nil && p.ParentAddress == nil
}
