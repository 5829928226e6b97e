package repositories

import (
	"context"
	"fmt"

	"pkbmadmin/internal/models"
)

type UserRepository interface {
	List(ctx context.Context, tenantID string) ([]*models.User, error)
	GetByID(ctx context.Context, tenantID, id string) (*models.User, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*models.User, error)
	Create(ctx context.Context, user models.NewUser) (*models.User, error)
	Update(ctx context.Context, tenantID, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, tenantID, id string) error
	Count(ctx context.Context, tenantID string) (int, error)
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, name, "fullName", role::text, "tenantId", "createdAt", "updatedAt"`

func scanUser(row interface{ Scan(...any) error }, extra ...any) (*models.User, error) {
	user := &models.User{}
	dest := append([]any{&user.ID, &user.Email, &user.Name, &user.FullName, &user.Role,
		&user.TenantID, &user.CreatedAt, &user.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) List(ctx context.Context, tenantID string) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM "User"
		WHERE "tenantId" = $1
		ORDER BY "createdAt" DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepo) GetByID(ctx context.Context, tenantID, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM "User" WHERE id = $1 AND "tenantId" = $2`
	user, err := scanUser(r.db.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return user, nil
}

// GetByEmail is the login lookup and is the only read that returns the password hash.
func (r *userRepo) GetByEmail(ctx context.Context, tenantID, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + `, password FROM "User" WHERE email = $1 AND "tenantId" = $2 LIMIT 1`
	var password *string
	user, err := scanUser(r.db.QueryRow(ctx, query, email, tenantID), &password)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	user.Password = password
	return user, nil
}

func (r *userRepo) Create(ctx context.Context, user models.NewUser) (*models.User, error) {
	if user.ID == "" {
		user.ID = newID("u_")
	}
	query := `
		INSERT INTO "User" (id, email, name, "fullName", role, "tenantId", password, "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING ` + userColumns
	created, err := scanUser(r.db.QueryRow(ctx, query, user.ID, user.Email, user.Name, user.FullName,
		string(user.Role), user.TenantID, user.PasswordHash))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (r *userRepo) Update(ctx context.Context, tenantID, id string, patch models.UserPatch) (*models.User, error) {
	u := newScopedUpdate("User", byTenantColumn)
	setOpt(u, "name", patch.Name)
	setOpt(u, "fullName", patch.FullName)
	if patch.Role != nil {
		u.set("role", string(*patch.Role))
	}
	setOpt(u, "password", patch.PasswordHash)
	if u.empty() {
		return nil, ErrEmptyUpdate
	}
	query, args := u.build(id, tenantID, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", notFoundIfNoRows(err))
	}
	return user, nil
}

func (r *userRepo) Delete(ctx context.Context, tenantID, id string) error {
	query := `DELETE FROM "User" WHERE id = $1 AND "tenantId" = $2`
	tag, err := r.db.Exec(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepo) Count(ctx context.Context, tenantID string) (int, error) {
	var count int
	query := `SELECT COUNT(*)::int FROM "User" WHERE "tenantId" = $1`
	if err := r.db.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
