package rpc

import (
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/services"
)

type createUserArgs struct {
	Email    string      `json:"email" validate:"required,email"`
	Name     string      `json:"name" validate:"required"`
	FullName string      `json:"fullName"`
	Role     models.Role `json:"role" validate:"required"`
	TenantID string      `json:"tenantId"`
	Password string      `json:"password"`
	NISN     string      `json:"nisn"`
	Program  string      `json:"program"`
}

type updateUserArgs struct {
	Name     *string      `json:"name"`
	FullName *string      `json:"fullName"`
	Role     *models.Role `json:"role"`
	Password *string      `json:"password"`
}

type createTutorArgs struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	NUPTK          string `json:"nuptk"`
	Specialization string `json:"specialization"`
	TenantID       string `json:"tenantId"`
}

func listUsers(svc Services) Handler {
	return func(c *Call) (any, error) {
		tenantID, err := c.TenantArg(0)
		if err != nil {
			return nil, err
		}
		return svc.Users.List(c.Ctx, tenantID)
	}
}

// deleteUser(id, tenantId?)
func deleteUser(svc Services) Handler {
	return func(c *Call) (any, error) {
		id, err := c.RequiredString(0, "ID pengguna")
		if err != nil {
			return nil, err
		}
		tenantID, err := c.TenantArg(1)
		if err != nil {
			return nil, err
		}
		if c.Session.ID == id {
			return nil, errSelfDelete
		}
		if err := svc.Users.Delete(c.Ctx, tenantID, id); err != nil {
			return nil, err
		}
		return Result{Message: "Pengguna berhasil dihapus dari sistem."}, nil
	}
}

func userActions(svc Services) map[string]Action {
	guard := requirePermission(models.PermUserManagement, models.RoleAdmin)
	return map[string]Action{
		"getUsers": {Guard: guard, Handler: listUsers(svc)},
		// createUser({email, name, fullName, role, tenantId, password, nisn, program})
		"createUser": {Guard: guard, Handler: func(c *Call) (any, error) {
			var args createUserArgs
			if err := c.Bind(0, &args); err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant(args.TenantID)
			if err != nil {
				return nil, err
			}
			user, err := svc.Users.Create(c.Ctx, tenantID, services.CreateUserRequest{
				Email:    args.Email,
				Name:     args.Name,
				FullName: args.FullName,
				Role:     args.Role,
				Password: args.Password,
				NISN:     args.NISN,
				Program:  args.Program,
			})
			if err != nil {
				return nil, err
			}
			return Result{Data: user, Message: "Pengguna berhasil ditambahkan ke sistem."}, nil
		}},
		// updateUser(id, tenantId, data)
		"updateUser": {Guard: guard, Handler: func(c *Call) (any, error) {
			id, err := c.RequiredString(0, "ID pengguna")
			if err != nil {
				return nil, err
			}
			tenantID, err := c.TenantArg(1)
			if err != nil {
				return nil, err
			}
			var args updateUserArgs
			if err := c.Arg(2, &args); err != nil {
				return nil, err
			}
			user, err := svc.Users.Update(c.Ctx, tenantID, id, services.UpdateUserRequest(args))
			if err != nil {
				return nil, err
			}
			return Result{Data: user, Message: "Informasi pengguna berhasil diperbarui."}, nil
		}},
		"deleteUser": {Guard: guard, Handler: deleteUser(svc)},
	}
}

func userManagementActions(svc Services) map[string]Action {
	guard := requirePermission(models.PermUserManagement, models.RoleAdmin)
	return map[string]Action{
		"getUsers": {Guard: guard, Handler: listUsers(svc)},
		// updateUserRole(userId, newRole)
		"updateUserRole": {Guard: guard, Handler: func(c *Call) (any, error) {
			id, err := c.RequiredString(0, "ID pengguna")
			if err != nil {
				return nil, err
			}
			var role models.Role
			if err := c.Arg(1, &role); err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant("")
			if err != nil {
				return nil, err
			}
			user, err := svc.Users.UpdateRole(c.Ctx, tenantID, id, role)
			if err != nil {
				return nil, err
			}
			return Result{Data: user, Message: "Role pengguna berhasil diperbarui."}, nil
		}},
		"deleteUser": {Guard: guard, Handler: deleteUser(svc)},
	}
}

func studentActions(svc Services) map[string]Action {
	read := requirePermission(models.PermDataSiswa)
	write := requirePermission(models.PermDataSiswa, models.RoleAdmin)
	return map[string]Action{
		"getStudents": {Guard: read, Handler: func(c *Call) (any, error) {
			tenantID, err := c.TenantArg(0)
			if err != nil {
				return nil, err
			}
			return svc.Students.List(c.Ctx, tenantID)
		}},
		"getStudentById": {Guard: read, Handler: func(c *Call) (any, error) {
			id, err := c.RequiredString(0, "ID siswa")
			if err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant("")
			if err != nil {
				return nil, err
			}
			return svc.Students.Get(c.Ctx, tenantID, id)
		}},
		// updateStudent(id, data)
		"updateStudent": {Guard: write, Handler: func(c *Call) (any, error) {
			id, err := c.RequiredString(0, "ID siswa")
			if err != nil {
				return nil, err
			}
			var patch models.StudentPatch
			if err := c.Arg(1, &patch); err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant("")
			if err != nil {
				return nil, err
			}
			student, err := svc.Students.Update(c.Ctx, tenantID, id, patch)
			if err != nil {
				return nil, err
			}
			return Result{Data: student, Message: "Data siswa berhasil diperbarui."}, nil
		}},
		"deleteStudent": {Guard: write, Handler: func(c *Call) (any, error) {
			id, err := c.RequiredString(0, "ID siswa")
			if err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant("")
			if err != nil {
				return nil, err
			}
			if err := svc.Students.Delete(c.Ctx, tenantID, id); err != nil {
				return nil, err
			}
			return Result{Message: "Data siswa berhasil dihapus."}, nil
		}},
	}
}

func tutorActions(svc Services) map[string]Action {
	read := requirePermission(models.PermDataTutor)
	write := requirePermission(models.PermDataTutor, models.RoleAdmin)
	return map[string]Action{
		"getTutors": {Guard: read, Handler: func(c *Call) (any, error) {
			tenantID, err := c.TenantArg(0)
			if err != nil {
				return nil, err
			}
			return svc.Tutors.List(c.Ctx, tenantID)
		}},
		// createTutor({name, email, nuptk, specialization, tenantId})
		"createTutor": {Guard: write, Handler: func(c *Call) (any, error) {
			var args createTutorArgs
			if err := c.Bind(0, &args); err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant(args.TenantID)
			if err != nil {
				return nil, err
			}
			return svc.Tutors.Create(c.Ctx, tenantID, services.CreateTutorRequest{
				Name:           args.Name,
				Email:          args.Email,
				NUPTK:          args.NUPTK,
				Specialization: args.Specialization,
			})
		}},
		// updateTutor(id, data)
		"updateTutor": {Guard: write, Handler: func(c *Call) (any, error) {
			id, err := c.RequiredString(0, "ID tutor")
			if err != nil {
				return nil, err
			}
			var patch models.TutorPatch
			if err := c.Arg(1, &patch); err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant("")
			if err != nil {
				return nil, err
			}
			return svc.Tutors.Update(c.Ctx, tenantID, id, patch)
		}},
		"deleteTutor": {Guard: write, Handler: func(c *Call) (any, error) {
			id, err := c.RequiredString(0, "ID tutor")
			if err != nil {
				return nil, err
			}
			tenantID, err := c.Tenant("")
			if err != nil {
				return nil, err
			}
			if err := svc.Tutors.Delete(c.Ctx, tenantID, id); err != nil {
				return nil, err
			}
			return Result{Message: "Data tutor berhasil dihapus."}, nil
		}},
	}
}
