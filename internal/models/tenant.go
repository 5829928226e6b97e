package models

import "time"

type Tenant struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	NPSN           *string   `json:"npsn" db:"npsn"`
	Address        *string   `json:"address" db:"address"`
	FoundationName *string   `json:"foundationName" db:"foundationName"`
	PrincipalName  *string   `json:"principalName" db:"principalName"`
	LogoURL        *string   `json:"logoUrl" db:"logoUrl"`
	CreatedAt      time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updatedAt"`
}

// TenantPatch is the editable part of a tenant profile.
type TenantPatch struct {
	Name           *string `json:"name"`
	NPSN           *string `json:"npsn"`
	Address        *string `json:"address"`
	FoundationName *string `json:"foundationName"`
	PrincipalName  *string `json:"principalName"`
	LogoURL        *string `json:"logoUrl"`
}

func (p TenantPatch) Empty() bool {
	return p.Name == nil && p.NPSN == nil && p.Address == nil &&
		p.FoundationName == nil && p.PrincipalName == nil && p.LogoURL == nil
}
