package repositories

import (
	"context"
	"fmt"

	"pkbmadmin/internal/models"
)

type StudentRepository interface {
	List(ctx context.Context, tenantID string) ([]*models.Student, error)
	GetByID(ctx context.Context, tenantID, id string) (*models.Student, error)
	Create(ctx context.Context, student models.NewStudent) (string, error)
	Update(ctx context.Context, tenantID, id string, patch models.StudentPatch) error
	Delete(ctx context.Context, tenantID, id string) error
}

type studentRepo struct {
	db DBTX
}

func NewStudentRepo(db DBTX) StudentRepository {
	return &studentRepo{db: db}
}

const studentSelect = `
		SELECT s.id, s."userId", s.nisn, s."birthPlace", s."birthDate", s.program, s.grade, s.major,
			s.address, s."phoneNumber", s."fatherName", s."motherName", s."parentJob", s."parentPhone",
			s."parentAddress", s.status, s."createdAt", s."updatedAt",
			u.name, u.email, u."fullName", u."tenantId"
		FROM "Student" s
		JOIN "User" u ON s."userId" = u.id
`

func scanStudent(row interface{ Scan(...any) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.UserID, &s.NISN, &s.BirthPlace, &s.BirthDate, &s.Program, &s.Grade, &s.Major,
		&s.Address, &s.PhoneNumber, &s.FatherName, &s.MotherName, &s.ParentJob, &s.ParentPhone,
		&s.ParentAddress, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		&s.UserName, &s.UserEmail, &s.FullName, &s.TenantID)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *studentRepo) List(ctx context.Context, tenantID string) ([]*models.Student, error) {
	query := studentSelect + `
		WHERE u."tenantId" = $1
		ORDER BY s."createdAt" DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *studentRepo) GetByID(ctx context.Context, tenantID, id string) (*models.Student, error) {
	query := studentSelect + `
		WHERE s.id = $1 AND u."tenantId" = $2
		LIMIT 1
	`
	s, err := scanStudent(r.db.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return s, nil
}

// Create inserts the student extension of an existing user and returns its id.
func (r *studentRepo) Create(ctx context.Context, student models.NewStudent) (string, error) {
	if student.ID == "" {
		student.ID = newID("s_")
	}
	query := `
		INSERT INTO "Student" (id, "userId", nisn, program, status, "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	_, err := r.db.Exec(ctx, query, student.ID, student.UserID, student.NISN, student.Program, string(models.StudentActive))
	if err != nil {
		return "", fmt.Errorf("failed to create student: %w", err)
	}
	return student.ID, nil
}

// Update writes the academic columns only; fullName lives on the owning user.
func (r *studentRepo) Update(ctx context.Context, tenantID, id string, patch models.StudentPatch) error {
	u := newScopedUpdate("Student", byOwningUser)
	setOpt(u, "nisn", patch.NISN)
	setOpt(u, "birthPlace", patch.BirthPlace)
	if patch.BirthDate != nil {
		u.set("birthDate", patch.BirthDate.TimePtr())
	}
	setOpt(u, "program", patch.Program)
	setOpt(u, "grade", patch.Grade)
	setOpt(u, "major", patch.Major)
	setOpt(u, "address", patch.Address)
	setOpt(u, "phoneNumber", patch.PhoneNumber)
	if patch.Status != nil {
		u.set("status", string(*patch.Status))
	}
	setOpt(u, "fatherName", patch.FatherName)
	setOpt(u, "motherName", patch.MotherName)
	setOpt(u, "parentJob", patch.ParentJob)
	setOpt(u, "parentPhone", patch.ParentPhone)
	setOpt(u, "parentAddress", patch.ParentAddress)
	if u.empty() {
		return ErrEmptyUpdate
	}
	query, args := u.build(id, tenantID, "")
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the student record only. The owning user account is kept.
func (r *studentRepo) Delete(ctx context.Context, tenantID, id string) error {
	query := `DELETE FROM "Student" WHERE id = $1 AND ` + fmt.Sprintf(byOwningUser, "$2")
	tag, err := r.db.Exec(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
