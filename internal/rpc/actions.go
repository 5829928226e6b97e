package rpc

import (
	"pkbmadmin/internal/observability"
	"pkbmadmin/internal/services"
)

// Services are the dependencies of the action table.
type Services struct {
	Auth      services.AuthService
	Dashboard services.DashboardService
	Users     services.UserService
	Students  services.StudentService
	Tutors    services.TutorService
	Academic  services.AcademicService
	Finance   services.FinanceService
	Reports   services.ReportService
	Tenants   services.TenantService
	RBAC      services.RBACService
	Metrics   *observability.Metrics
}

// NewRegistry builds the full module/function table exposed on /api/rpc.
func NewRegistry(svc Services) Registry {
	return Registry{
		"auth":           authActions(svc),
		"dashboard":      dashboardActions(svc),
		"schema":         schemaActions(svc),
		"tenant":         tenantActions(svc),
		"rbac":           rbacActions(svc),
		"rbacMatrix":     rbacMatrixActions(svc),
		"user":           userActions(svc),
		"userManagement": userManagementActions(svc),
		"student":        studentActions(svc),
		"tutor":          tutorActions(svc),
		"academic":       academicActions(svc),
		"finance":        financeActions(svc),
		"report":         reportActions(svc),
	}
}
