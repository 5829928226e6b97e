package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pkbmadmin/internal/common"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and the pgxmock pool.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var (
	// ErrNotFound wraps pgx.ErrNoRows so common.Classify reports it as NotFound.
	ErrNotFound = fmt.Errorf("record not found: %w", pgx.ErrNoRows)

	ErrEmptyUpdate = common.Validation("Tidak ada data yang diubah.")
)

// Tenant predicates used by scoped statements. Student and Tutor rows belong to a
// tenant through their owning user.
const (
	byTenantColumn = `"tenantId" = %s`
	byOwningUser   = `"userId" IN (SELECT id FROM "User" WHERE "tenantId" = %s)`
)

func newID(prefix string) string {
	return prefix + uuid.NewString()
}

func notFoundIfNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// scopedUpdate builds an UPDATE over allow-listed columns. The WHERE clause always
// carries both the row id and the tenant predicate, and updatedAt is always refreshed.
type scopedUpdate struct {
	table  string
	tenant string
	sets   []string
	args   []any
}

func newScopedUpdate(table, tenantPredicate string) *scopedUpdate {
	return &scopedUpdate{table: table, tenant: tenantPredicate}
}

func (u *scopedUpdate) arg(v any) string {
	u.args = append(u.args, v)
	return fmt.Sprintf("$%d", len(u.args))
}

func (u *scopedUpdate) set(column string, v any) {
	u.sets = append(u.sets, fmt.Sprintf(`"%s" = %s`, column, u.arg(v)))
}

func (u *scopedUpdate) empty() bool {
	return len(u.sets) == 0
}

// build returns the statement and its arguments. returning may be empty.
func (u *scopedUpdate) build(id, tenantID, returning string) (string, []any) {
	assignments := strings.Join(append(u.sets, `"updatedAt" = CURRENT_TIMESTAMP`), ", ")
	where := "id = " + u.arg(id)
	if u.tenant != "" {
		where += " AND " + fmt.Sprintf(u.tenant, u.arg(tenantID))
	}
	query := fmt.Sprintf(`UPDATE "%s" SET %s WHERE %s`, u.table, assignments, where)
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, u.args
}

func setOpt[T any](u *scopedUpdate, column string, v *T) {
	if v != nil {
		u.set(column, *v)
	}
}

// Store groups the repositories over one connection, or over one transaction inside WithTx.
type Store struct {
	db DBTX

	Tenants         TenantRepository
	Users           UserRepository
	Students        StudentRepository
	Tutors          TutorRepository
	Subjects        SubjectRepository
	Lessons         LessonRepository
	Exams           ExamRepository
	Payments        PaymentRepository
	Reports         ReportRepository
	Permissions     PermissionRepository
	RolePermissions RolePermissionRepository
	Schema          SchemaRepository
}

func NewStore(db DBTX) *Store {
	return &Store{
		db:              db,
		Tenants:         NewTenantRepo(db),
		Users:           NewUserRepo(db),
		Students:        NewStudentRepo(db),
		Tutors:          NewTutorRepo(db),
		Subjects:        NewSubjectRepo(db),
		Lessons:         NewLessonRepo(db),
		Exams:           NewExamRepo(db),
		Payments:        NewPaymentRepo(db),
		Reports:         NewReportRepo(db),
		Permissions:     NewPermissionRepo(db),
		RolePermissions: NewRolePermissionRepo(db),
		Schema:          NewSchemaRepo(db),
	}
}

// WithTx runs fn against a Store bound to a new transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
