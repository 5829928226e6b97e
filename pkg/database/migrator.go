package database

import (
	"context"
	"fmt"

	"pkbmadmin/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

// Execer is the part of a pgx pool the migrator needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// StepError reports which structural migration step failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("migration step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

func (e *StepError) FailedStep() string { return e.Step }

type step struct {
	name string
	sql  string
	args []any
	// optional steps are logged and skipped on failure
	optional bool
}

// Migrator creates and upgrades the schema in place. Every step is idempotent, so
// Run may be called any number of times.
type Migrator struct {
	db           Execer
	hashPassword func(string) string
	log          *logrus.Logger
	metrics      *observability.Metrics
}

func NewMigrator(db Execer, hashPassword func(string) string, log *logrus.Logger, metrics *observability.Metrics) *Migrator {
	return &Migrator{db: db, hashPassword: hashPassword, log: log, metrics: metrics}
}

const (
	seedTenantID      = "pkbm-pena-hikmah"
	seedPassword      = "password123"
	seedTutorNUPTK    = "1234567890123456"
	seedTutorSubjects = "Matematika & Sains"
)

var seedUsers = []struct {
	id, email, name, role string
}{
	{"admin_ph", "admin@penahikmah.com", "Admin Utama", "ADMIN"},
	{"tutor_ph", "tutor@penahikmah.com", "Tutor Pengajar", "TUTOR"},
	{"siswa_ph", "siswa@penahikmah.com", "Siswa Belajar", "SISWA"},
}

var seedPermissions = []struct {
	id, description string
}{
	{"Dashboard", "Ringkasan statistik lembaga"},
	{"Data Siswa", "Kelola data siswa"},
	{"Data Tutor", "Kelola data tutor"},
	{"Mata Pelajaran", "Kelola mata pelajaran dan materi"},
	{"Ujian & Tugas", "Lihat ujian dan tugas"},
	{"Laporan", "Laporan hasil belajar"},
	{"Profil PKBM", "Profil lembaga"},
	{"User Management", "Kelola akun pengguna"},
}

func addColumn(table, column, definition string) step {
	return step{
		name:     fmt.Sprintf("add %s.%s", table, column),
		sql:      fmt.Sprintf(`ALTER TABLE "%s" ADD COLUMN IF NOT EXISTS "%s" %s`, table, column, definition),
		optional: true,
	}
}

func (m *Migrator) steps() []step {
	steps := []step{
		{name: "role enum", sql: `
			DO $$ BEGIN
				CREATE TYPE "Role" AS ENUM ('ADMIN', 'TUTOR', 'SISWA');
			EXCEPTION WHEN duplicate_object THEN null;
			END $$;`},
		{name: "tenant table", sql: `
			CREATE TABLE IF NOT EXISTS "Tenant" (
				"id" TEXT PRIMARY KEY,
				"name" TEXT NOT NULL,
				"npsn" TEXT,
				"address" TEXT,
				"foundationName" TEXT,
				"principalName" TEXT,
				"logoUrl" TEXT,
				"createdAt" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				"updatedAt" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`},
		{name: "user table", sql: `
			CREATE TABLE IF NOT EXISTS "User" (
				"id" TEXT PRIMARY KEY,
				"email" TEXT UNIQUE NOT NULL,
				"name" TEXT,
				"fullName" TEXT,
				"tenantId" TEXT NOT NULL REFERENCES "Tenant"("id") ON DELETE CASCADE
			)`},
		addColumn("User", "name", "TEXT"),
		addColumn("User", "fullName", "TEXT"),
		addColumn("User", "password", "TEXT"),
		addColumn("User", "role", `"Role" NOT NULL DEFAULT 'SISWA'`),
		addColumn("User", "createdAt", "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"),
		addColumn("User", "updatedAt", "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"),
		{name: "seed tenant", sql: `
			INSERT INTO "Tenant" (id, name, npsn, address, "foundationName", "principalName")
			VALUES ($1, 'PKBM Pena Hikmah', '12345678', 'Jl. Pendidikan No. 123', 'Yayasan Bina Hikmah', 'H. Akhmad Fauzi, M.Pd')
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
			args: []any{seedTenantID}},
	}

	hash := m.hashPassword(seedPassword)
	for _, u := range seedUsers {
		steps = append(steps, step{
			name: "seed user " + u.email,
			sql: `
			INSERT INTO "User" (id, email, name, "fullName", role, "tenantId", password)
			VALUES ($1, $2, $3, $3, $4::"Role", $5, $6)
			ON CONFLICT (email) DO UPDATE SET name = COALESCE(EXCLUDED.name, "User".name), role = EXCLUDED.role`,
			args: []any{u.id, u.email, u.name, u.role, seedTenantID, hash},
		})
	}

	steps = append(steps, step{name: "student table", sql: `
			CREATE TABLE IF NOT EXISTS "Student" (
				"id" TEXT PRIMARY KEY,
				"userId" TEXT UNIQUE NOT NULL REFERENCES "User"("id") ON DELETE CASCADE,
				"nisn" TEXT UNIQUE,
				"birthPlace" TEXT,
				"birthDate" TIMESTAMP,
				"program" TEXT,
				"grade" TEXT,
				"major" TEXT,
				"address" TEXT,
				"phoneNumber" TEXT,
				"fatherName" TEXT,
				"motherName" TEXT,
				"parentJob" TEXT,
				"parentPhone" TEXT,
				"parentAddress" TEXT,
				"status" TEXT NOT NULL DEFAULT 'AKTIF',
				"createdAt" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				"updatedAt" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`})
	for _, col := range []struct{ name, def string }{
		{"birthPlace", "TEXT"}, {"birthDate", "TIMESTAMP"}, {"program", "TEXT"}, {"grade", "TEXT"},
		{"major", "TEXT"}, {"fatherName", "TEXT"}, {"motherName", "TEXT"}, {"parentJob", "TEXT"},
		{"parentPhone", "TEXT"}, {"parentAddress", "TEXT"},
	} {
		steps = append(steps, addColumn("Student", col.name, col.def))
	}
	steps = append(steps,
		step{name: "drop Student.fullName", sql: `ALTER TABLE "Student" DROP COLUMN IF EXISTS "fullName"`, optional: true},
		step{name: "tutor table", sql: `
			CREATE TABLE IF NOT EXISTS "Tutor" (
				"id" TEXT PRIMARY KEY,
				"userId" TEXT UNIQUE NOT NULL REFERENCES "User"("id") ON DELETE CASCADE,
				"nuptk" TEXT UNIQUE,
				"specialization" TEXT,
				"birthPlace" TEXT,
				"birthDate" TIMESTAMP,
				"address" TEXT,
				"phoneNumber" TEXT,
				"status" TEXT NOT NULL DEFAULT 'AKTIF',
				"createdAt" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				"updatedAt" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`},
		addColumn("Tutor", "fullName", "TEXT"),
		addColumn("Tutor", "educationHistory", `JSONB DEFAULT '[]'`),
		step{name: "seed tutor", sql: `
			INSERT INTO "Tutor" (id, "userId", nuptk, "fullName", specialization, status)
			SELECT 't_tutor_ph', u.id, $2, u.name, $3, 'AKTIF'
			FROM "User" u WHERE u.email = $1
			ON CONFLICT ("userId") DO UPDATE SET specialization = EXCLUDED.specialization`,
			args: []any{"tutor@penahikmah.com", seedTutorNUPTK, seedTutorSubjects}},
		step{name: "payment table", sql: `
			CREATE TABLE IF NOT EXISTS "Payment" (
				"id" TEXT PRIMARY KEY,
				"studentId" TEXT NOT NULL REFERENCES "Student"("id") ON DELETE CASCADE,
				"amount" DECIMAL(10, 2) NOT NULL,
				"type" TEXT NOT NULL,
				"status" TEXT NOT NULL DEFAULT 'PENDING',
				"paymentDate" TIMESTAMP,
				"tenantId" TEXT NOT NULL REFERENCES "Tenant"("id") ON DELETE CASCADE,
				"createdAt" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				"updatedAt" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`},
		step{name: "subject table", sql: `
			CREATE TABLE IF NOT EXISTS "Subject" (
				"id" TEXT PRIMARY KEY,
				"name" TEXT NOT NULL,
				"tenantId" TEXT NOT NULL REFERENCES "Tenant"("id") ON DELETE CASCADE
			)`},
		step{name: "lesson table", sql: `
			CREATE TABLE IF NOT EXISTS "Lesson" (
				"id" TEXT PRIMARY KEY,
				"title" TEXT NOT NULL,
				"content" TEXT,
				"subjectId" TEXT NOT NULL REFERENCES "Subject"("id") ON DELETE CASCADE,
				"tenantId" TEXT NOT NULL REFERENCES "Tenant"("id") ON DELETE CASCADE
			)`},
		step{name: "exam table", sql: `
			CREATE TABLE IF NOT EXISTS "Exam" (
				"id" TEXT PRIMARY KEY,
				"title" TEXT NOT NULL,
				"tenantId" TEXT NOT NULL REFERENCES "Tenant"("id") ON DELETE CASCADE
			)`},
		step{name: "report table", sql: `
			CREATE TABLE IF NOT EXISTS "Report" (
				"id" TEXT PRIMARY KEY,
				"studentId" TEXT NOT NULL REFERENCES "Student"("id") ON DELETE CASCADE,
				"tenantId" TEXT NOT NULL REFERENCES "Tenant"("id") ON DELETE CASCADE,
				"data" JSONB NOT NULL DEFAULT '{}',
				"createdAt" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				"updatedAt" TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`},
		step{name: "permission table", sql: `
			CREATE TABLE IF NOT EXISTS "Permission" (
				"id" TEXT PRIMARY KEY,
				"name" TEXT UNIQUE NOT NULL,
				"description" TEXT
			)`},
	)
	for _, p := range seedPermissions {
		steps = append(steps, step{
			name: "seed permission " + p.id,
			sql: `
			INSERT INTO "Permission" (id, name, description) VALUES ($1, $1, $2)
			ON CONFLICT (id) DO NOTHING`,
			args: []any{p.id, p.description},
		})
	}
	steps = append(steps,
		step{name: "role permission table", sql: `
			CREATE TABLE IF NOT EXISTS "RolePermission" (
				"role" "Role" NOT NULL,
				"permissionId" TEXT NOT NULL REFERENCES "Permission"("id") ON DELETE CASCADE,
				PRIMARY KEY ("role", "permissionId")
			)`},
		step{name: "index User.tenantId", sql: `CREATE INDEX IF NOT EXISTS "User_tenantId_idx" ON "User" ("tenantId")`, optional: true},
		step{name: "index Payment.tenantId", sql: `CREATE INDEX IF NOT EXISTS "Payment_tenantId_idx" ON "Payment" ("tenantId")`, optional: true},
		step{name: "index Report.tenantId", sql: `CREATE INDEX IF NOT EXISTS "Report_tenantId_idx" ON "Report" ("tenantId")`, optional: true},
	)
	return steps
}

// Run applies every step in order. Optional steps only log their failures; any
// other failure stops the run with a *StepError.
func (m *Migrator) Run(ctx context.Context) error {
	m.log.Info("Synchronizing database schema")
	for _, s := range m.steps() {
		if _, err := m.db.Exec(ctx, s.sql, s.args...); err != nil {
			if s.optional {
				m.log.WithError(err).WithField("step", s.name).Warn("Migration step skipped")
				continue
			}
			m.metrics.ObserveMigration(false)
			return &StepError{Step: s.name, Err: err}
		}
		m.log.WithField("step", s.name).Debug("Migration step applied")
	}
	m.metrics.ObserveMigration(true)
	m.log.Info("Database schema is up to date")
	return nil
}
