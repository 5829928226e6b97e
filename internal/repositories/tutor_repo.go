package repositories

import (
	"context"
	"fmt"

	"pkbmadmin/internal/models"
)

type TutorRepository interface {
	List(ctx context.Context, tenantID string) ([]*models.Tutor, error)
	GetByID(ctx context.Context, tenantID, id string) (*models.Tutor, error)
	Create(ctx context.Context, tutor models.NewTutor) (string, error)
	Update(ctx context.Context, tenantID, id string, patch models.TutorPatch) error
	// Delete removes the tutor record and returns the id of its owning user.
	Delete(ctx context.Context, tenantID, id string) (string, error)
}

type tutorRepo struct {
	db DBTX
}

func NewTutorRepo(db DBTX) TutorRepository {
	return &tutorRepo{db: db}
}

const tutorSelect = `
		SELECT t.id, t."userId", t.nuptk, t.specialization, t."birthPlace", t."birthDate", t.address,
			t."phoneNumber", t.status, t."educationHistory", t."createdAt", t."updatedAt",
			u.name, u.email, u."fullName", u."tenantId"
		FROM "Tutor" t
		JOIN "User" u ON t."userId" = u.id
`

func scanTutor(row interface{ Scan(...any) error }) (*models.Tutor, error) {
	t := &models.Tutor{}
	err := row.Scan(&t.ID, &t.UserID, &t.NUPTK, &t.Specialization, &t.BirthPlace, &t.BirthDate, &t.Address,
		&t.PhoneNumber, &t.Status, &t.EducationHistory, &t.CreatedAt, &t.UpdatedAt,
		&t.UserName, &t.UserEmail, &t.FullName, &t.TenantID)
	if err != nil {
		return nil, err
	}
	if t.EducationHistory == nil {
		t.EducationHistory = models.EducationHistory{}
	}
	return t, nil
}

func (r *tutorRepo) List(ctx context.Context, tenantID string) ([]*models.Tutor, error) {
	query := tutorSelect + `
		WHERE u."tenantId" = $1
		ORDER BY t."createdAt" DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tutors := []*models.Tutor{}
	for rows.Next() {
		t, err := scanTutor(rows)
		if err != nil {
			return nil, err
		}
		tutors = append(tutors, t)
	}
	return tutors, rows.Err()
}

func (r *tutorRepo) GetByID(ctx context.Context, tenantID, id string) (*models.Tutor, error) {
	query := tutorSelect + `
		WHERE t.id = $1 AND u."tenantId" = $2
		LIMIT 1
	`
	t, err := scanTutor(r.db.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return t, nil
}

func (r *tutorRepo) Create(ctx context.Context, tutor models.NewTutor) (string, error) {
	if tutor.ID == "" {
		tutor.ID = newID("t_")
	}
	query := `
		INSERT INTO "Tutor" (id, "userId", nuptk, "fullName", specialization, status, "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	_, err := r.db.Exec(ctx, query, tutor.ID, tutor.UserID, tutor.NUPTK, tutor.FullName, tutor.Specialization,
		string(models.StudentActive))
	if err != nil {
		return "", fmt.Errorf("failed to create tutor: %w", err)
	}
	return tutor.ID, nil
}

func (r *tutorRepo) Update(ctx context.Context, tenantID, id string, patch models.TutorPatch) error {
	u := newScopedUpdate("Tutor", byOwningUser)
	setOpt(u, "nuptk", patch.NUPTK)
	setOpt(u, "specialization", patch.Specialization)
	setOpt(u, "birthPlace", patch.BirthPlace)
	if patch.BirthDate != nil {
		u.set("birthDate", patch.BirthDate.TimePtr())
	}
	setOpt(u, "address", patch.Address)
	setOpt(u, "phoneNumber", patch.PhoneNumber)
	if patch.Status != nil {
		u.set("status", string(*patch.Status))
	}
	setOpt(u, "fullName", patch.FullName)
	setOpt(u, "educationHistory", patch.EducationHistory)
	if u.empty() {
		return ErrEmptyUpdate
	}
	query, args := u.build(id, tenantID, "")
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update tutor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tutorRepo) Delete(ctx context.Context, tenantID, id string) (string, error) {
	query := `DELETE FROM "Tutor" WHERE id = $1 AND ` + fmt.Sprintf(byOwningUser, "$2") + ` RETURNING "userId"`
	var userID string
	if err := r.db.QueryRow(ctx, query, id, tenantID).Scan(&userID); err != nil {
		return "", fmt.Errorf("failed to delete tutor: %w", notFoundIfNoRows(err))
	}
	return userID, nil
}
