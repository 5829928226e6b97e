package services

import (
	"context"
	"net/http"
	"strings"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/repositories"
)

const maxLogoBytes = 2 << 20

// LogoStore persists tenant logos and returns their public URL.
type LogoStore interface {
	PutLogo(ctx context.Context, tenantID, filename, contentType string, data []byte) (string, error)
}

type TenantService interface {
	GetProfile(ctx context.Context, tenantID string) (*models.Tenant, error)
	UpdateProfile(ctx context.Context, tenantID string, patch models.TenantPatch) (*models.Tenant, error)
	// UploadLogo stores the image and records its URL on the tenant.
	UploadLogo(ctx context.Context, tenantID, filename string, data []byte) (*models.Tenant, error)
}

type tenantService struct {
	tenants repositories.TenantRepository
	logos   LogoStore
}

// NewTenantService accepts a nil LogoStore; logo uploads are then rejected.
func NewTenantService(tenants repositories.TenantRepository, logos LogoStore) TenantService {
	return &tenantService{tenants: tenants, logos: logos}
}

func (s *tenantService) GetProfile(ctx context.Context, tenantID string) (*models.Tenant, error) {
	return s.tenants.GetByID(ctx, tenantID)
}

func (s *tenantService) UpdateProfile(ctx context.Context, tenantID string, patch models.TenantPatch) (*models.Tenant, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, common.Validation("Nama lembaga tidak boleh kosong.")
	}
	for field, value := range map[string]*string{
		"address":        patch.Address,
		"foundationName": patch.FoundationName,
		"principalName":  patch.PrincipalName,
	} {
		if err := common.SanitizeHTMLField(value, field); err != nil {
			return nil, common.Validation(err.Error())
		}
	}
	return s.tenants.Update(ctx, tenantID, patch)
}

func (s *tenantService) UploadLogo(ctx context.Context, tenantID, filename string, data []byte) (*models.Tenant, error) {
	if s.logos == nil {
		return nil, &common.AppError{Kind: common.KindConnectionUnavailable, Message: "Penyimpanan berkas belum dikonfigurasi."}
	}
	if len(data) == 0 || len(data) > maxLogoBytes {
		return nil, common.Validation("Ukuran logo harus antara 1 byte dan 2 MB.")
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, common.Validation("Logo harus berupa gambar.")
	}

	url, err := s.logos.PutLogo(ctx, tenantID, filename, contentType, data)
	if err != nil {
		return nil, err
	}
	return s.tenants.Update(ctx, tenantID, models.TenantPatch{LogoURL: &url})
}
