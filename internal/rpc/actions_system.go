package rpc

import (
	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
)

func authActions(svc Services) map[string]Action {
	return map[string]Action{
		// authenticateUser(email, password?, tenantId?)
		"authenticateUser": {Guard: public, Handler: func(c *Call) (any, error) {
			var (
				email    string
				password *string
				tenantID string
			)
			if err := c.Arg(0, &email); err != nil {
				return nil, err
			}
			if err := c.Arg(1, &password); err != nil {
				return nil, err
			}
			if err := c.Arg(2, &tenantID); err != nil {
				return nil, err
			}
			res, err := svc.Auth.Authenticate(c.Ctx, email, password, tenantID)
			svc.Metrics.ObserveLogin(string(common.KindOf(err)))
			return res, err
		}},
	}
}

func dashboardActions(svc Services) map[string]Action {
	migrate := func(c *Call) (any, error) {
		return svc.Dashboard.Migrate(c.Ctx), nil
	}
	return map[string]Action{
		"getDashboardStats": {Guard: signedIn, Handler: func(c *Call) (any, error) {
			tenantID, err := c.Tenant("")
			if err != nil {
				return nil, err
			}
			return svc.Dashboard.Stats(c.Ctx, tenantID)
		}},
		"initializeDatabasePublic": {Guard: public, Handler: migrate},
		"performDatabaseSync":      {Guard: adminOnly, Handler: migrate},
	}
}

func schemaActions(svc Services) map[string]Action {
	return map[string]Action{
		"getDatabaseSchema": {Guard: adminOnly, Handler: func(c *Call) (any, error) {
			return svc.Dashboard.DatabaseSchema(c.Ctx)
		}},
	}
}

type logoUploadArgs struct {
	Filename string `json:"filename" validate:"required"`
	Data     []byte `json:"data" validate:"required"`
}

func tenantActions(svc Services) map[string]Action {
	profileAdmin := requirePermission(models.PermProfilPKBM, models.RoleAdmin)
	return map[string]Action{
		// getTenantProfile(id)
		"getTenantProfile": {Guard: signedIn, Handler: func(c *Call) (any, error) {
			tenantID, err := c.TenantArg(0)
			if err != nil {
				return nil, err
			}
			return svc.Tenants.GetProfile(c.Ctx, tenantID)
		}},
		// updateTenantProfile(id, data)
		"updateTenantProfile": {Guard: profileAdmin, Handler: func(c *Call) (any, error) {
			tenantID, err := c.TenantArg(0)
			if err != nil {
				return nil, err
			}
			var patch models.TenantPatch
			if err := c.Arg(1, &patch); err != nil {
				return nil, err
			}
			tenant, err := svc.Tenants.UpdateProfile(c.Ctx, tenantID, patch)
			if err != nil {
				return nil, err
			}
			return Result{Data: tenant, Message: "Profil lembaga berhasil diperbarui dan disimpan."}, nil
		}},
		// uploadTenantLogo(id, {filename, data}) with data base64 encoded
		"uploadTenantLogo": {Guard: profileAdmin, Handler: func(c *Call) (any, error) {
			tenantID, err := c.TenantArg(0)
			if err != nil {
				return nil, err
			}
			var args logoUploadArgs
			if err := c.Bind(1, &args); err != nil {
				return nil, err
			}
			tenant, err := svc.Tenants.UploadLogo(c.Ctx, tenantID, args.Filename, args.Data)
			if err != nil {
				return nil, err
			}
			return Result{Data: tenant, Message: "Logo lembaga berhasil diunggah."}, nil
		}},
	}
}
