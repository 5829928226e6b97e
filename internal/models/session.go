package models

import "time"

// Session is the descriptor returned on login and carried by every authenticated call.
type Session struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        *string  `json:"name,omitempty"`
	FullName    *string  `json:"fullName,omitempty"`
	Role        Role     `json:"role"`
	TenantID    string   `json:"tenantId"`
	Permissions []string `json:"permissions"`
}

func (s *Session) HasPermission(name string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// ColumnInfo describes one column in the live database schema.
type ColumnInfo struct {
	Column   string `json:"column"`
	Type     string `json:"type"`
	Nullable string `json:"nullable"`
}

// AuthResult is returned by a successful login.
type AuthResult struct {
	User      *Session  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
