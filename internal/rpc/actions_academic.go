package rpc

import (
	"encoding/json"

	"pkbmadmin/internal/models"
)

type createSubjectArgs struct {
	Name     string `json:"name" validate:"required"`
	TenantID string `json:"tenantId"`
}

type createLessonArgs struct {
	Title     string  `json:"title" validate:"required"`
	Content   *string `json:"content"`
	SubjectID string  `json:"subjectId" validate:"required"`
	TenantID  string  `json:"tenantId"`
}

type createPaymentArgs struct {
	StudentID string  `json:"studentId" validate:"required"`
	Amount    float64 `json:"amount"`
	Type      string  `json:"type" validate:"required"`
	TenantID  string  `json:"tenantId"`
}

type createReportArgs struct {
	StudentID string          `json:"studentId" validate:"required"`
	TenantID  string          `json:"tenantId"`
	Content   json.RawMessage `json:"content"`
}

// listScoped adapts a tenant-scoped list to the (tenantId) call shape.
func listScoped[T any](list func(c *Call, tenantID string) (T, error)) Handler {
	return func(c *Call) (any, error) {
		tenantID, err := c.TenantArg(0)
		if err != nil {
			return nil, err
		}
		return list(c, tenantID)
	}
}

func academicActions(svc Services) map[string]Action {
	read := requirePermission(models.PermMataPelajaran)
	write := requirePermission(models.PermMataPelajaran, models.RoleAdmin, models.RoleTutor)
	return map[string]Action{
		"getSubjects": {Guard: read, Handler: listScoped(func(c *Call, tenantID string) ([]*models.Subject, error) {
			return svc.Academic.ListSubjects(c.Ctx, tenantID)
		})},
		"createSubject": {Guard: write, Handler: func(c *Call) (any, error) {
			var args createSubjectArgs
			if err := c.Bind(0, &args); err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant(args.TenantID)
			if err != nil {
				return nil, err
			}
			return svc.Academic.CreateSubject(c.Ctx, tenantID, args.Name)
		}},
		"getLessons": {Guard: read, Handler: listScoped(func(c *Call, tenantID string) ([]*models.Lesson, error) {
			return svc.Academic.ListLessons(c.Ctx, tenantID)
		})},
		"createLesson": {Guard: write, Handler: func(c *Call) (any, error) {
			var args createLessonArgs
			if err := c.Bind(0, &args); err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant(args.TenantID)
			if err != nil {
				return nil, err
			}
			return svc.Academic.CreateLesson(c.Ctx, tenantID, args.Title, args.Content, args.SubjectID)
		}},
		"getExams": {Guard: requirePermission(models.PermUjianTugas), Handler: listScoped(func(c *Call, tenantID string) ([]*models.Exam, error) {
			return svc.Academic.ListExams(c.Ctx, tenantID)
		})},
	}
}

func financeActions(svc Services) map[string]Action {
	return map[string]Action{
		"getPayments": {Guard: adminOnly, Handler: listScoped(func(c *Call, tenantID string) ([]*models.Payment, error) {
			return svc.Finance.ListPayments(c.Ctx, tenantID)
		})},
		"createPayment": {Guard: adminOnly, Handler: func(c *Call) (any, error) {
			var args createPaymentArgs
			if err := c.Bind(0, &args); err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant(args.TenantID)
			if err != nil {
				return nil, err
			}
			return svc.Finance.CreatePayment(c.Ctx, tenantID, args.StudentID, args.Amount, args.Type)
		}},
		// updatePaymentStatus(id, status)
		"updatePaymentStatus": {Guard: adminOnly, Handler: func(c *Call) (any, error) {
			id, err := c.RequiredString(0, "ID pembayaran")
			if err != nil {
				return nil, err
			}
			var status models.PaymentStatus
			if err := c.Arg(1, &status); err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant("")
			if err != nil {
				return nil, err
			}
			return svc.Finance.UpdatePaymentStatus(c.Ctx, tenantID, id, status)
		}},
	}
}

func reportActions(svc Services) map[string]Action {
	return map[string]Action{
		"getReports": {Guard: requirePermission(models.PermLaporan), Handler: listScoped(func(c *Call, tenantID string) ([]*models.Report, error) {
			return svc.Reports.List(c.Ctx, tenantID)
		})},
		// createReport({studentId, tenantId, content})
		"createReport": {Guard: requirePermission(models.PermLaporan, models.RoleAdmin, models.RoleTutor), Handler: func(c *Call) (any, error) {
			var args createReportArgs
			if err := c.Bind(0, &args); err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant(args.TenantID)
			if err != nil {
				return nil, err
			}
			return svc.Reports.Create(c.Ctx, tenantID, args.StudentID, args.Content)
		}},
	}
}
