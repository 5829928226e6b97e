package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is the single role enum shared by users, sessions and the permission matrix.
// It maps onto the "Role" enum type in the database.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleTutor Role = "TUTOR"
	RoleSiswa Role = "SISWA"
)

// AllRoles lists the roles in display order.
var AllRoles = []Role{RoleAdmin, RoleTutor, RoleSiswa}

// ParseRole normalises a role name. "STUDENT" is accepted as an alias of SISWA.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADMIN":
		return RoleAdmin, true
	case "TUTOR":
		return RoleTutor, true
	case "SISWA", "STUDENT":
		return RoleSiswa, true
	}
	return "", false
}

// UnmarshalJSON normalises client input through ParseRole.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	role, ok := ParseRole(s)
	if !ok {
		return fmt.Errorf("unknown role %q", s)
	}
	*r = role
	return nil
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTutor || r == RoleSiswa
}

type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      *string   `json:"name" db:"name"`
	FullName  *string   `json:"fullName" db:"fullName"`
	Role      Role      `json:"role" db:"role"`
	Password  *string   `json:"-" db:"password"` // hash, never serialized
	TenantID  string    `json:"tenantId" db:"tenantId"`
	CreatedAt time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updatedAt"`
}

// NewUser carries the fields accepted when inserting a user. Password is already hashed.
type NewUser struct {
	ID           string
	Email        string
	Name         string
	FullName     string
	Role         Role
	TenantID     string
	PasswordHash string
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Name         *string
	FullName     *string
	Role         *Role
	PasswordHash *string
}

func (p UserPatch) Empty() bool {
	return p.Name == nil && p.FullName == nil && p.Role == nil && p.PasswordHash == nil
}
